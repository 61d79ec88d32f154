// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Value is the closed union of every shape a Strand datum can take.
// The concrete types are Null, Bool, String, Int, Double, Array,
// Object, Bytes, Ref, SetRef, Query, Time, and Date; no other type
// implements the interface.
//
// Equal is structural: two values are equal iff they have the same
// variant and equal contents, recursively. Int and Double never
// compare equal to each other, even when numerically identical.
type Value interface {
	// Equal reports whether other is structurally equal to this value.
	Equal(other Value) bool

	// String renders the value for diagnostics and error messages.
	// The rendering is stable (object keys sorted) but is not the
	// wire format; use lib/wire for serialization.
	String() string

	isValue()
}

// Null is the absent value.
type Null struct{}

// Bool is a boolean value.
type Bool bool

// String is a UTF-8 string value.
type String string

// Int is a 64-bit signed integer value. Int and Double are distinct
// variants: no implicit widening or narrowing happens anywhere in the
// pipeline.
type Int int64

// Double is an IEEE-754 64-bit floating point value.
type Double float64

// Array is an ordered sequence of values. Order is significant.
type Array []Value

// Object maps string keys to values. Key order is irrelevant to
// semantics; keys are unique. Keys beginning with '@' are reserved for
// the wire protocol's tagged types — the query builder's literal
// wrapping (lib/query) guarantees user data can never collide with
// them.
type Object map[string]Value

// Bytes is a raw byte sequence. It round-trips exactly; the wire form
// is URL-safe base64 under the "@bytes" tag.
type Bytes []byte

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (String) isValue() {}
func (Int) isValue()    {}
func (Double) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}
func (Bytes) isValue()  {}

// Equal reports whether other is also Null.
func (Null) Equal(other Value) bool {
	_, ok := other.(Null)
	return ok
}

// Equal reports whether other is a Bool with the same truth value.
func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && b == o
}

// Equal reports whether other is a String with the same contents.
func (s String) Equal(other Value) bool {
	o, ok := other.(String)
	return ok && s == o
}

// Equal reports whether other is an Int with the same value. A Double
// is never equal to an Int.
func (i Int) Equal(other Value) bool {
	o, ok := other.(Int)
	return ok && i == o
}

// Equal reports whether other is a Double with the same value. An Int
// is never equal to a Double. NaN compares unequal to everything,
// including itself, per IEEE-754.
func (d Double) Equal(other Value) bool {
	o, ok := other.(Double)
	return ok && d == o
}

// Equal reports whether other is an Array of the same length whose
// elements are pairwise equal.
func (a Array) Equal(other Value) bool {
	o, ok := other.(Array)
	if !ok || len(a) != len(o) {
		return false
	}
	for i, element := range a {
		if !element.Equal(o[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether other is an Object with the same key set and
// pairwise-equal values.
func (obj Object) Equal(other Value) bool {
	o, ok := other.(Object)
	if !ok || len(obj) != len(o) {
		return false
	}
	for key, element := range obj {
		counterpart, present := o[key]
		if !present || !element.Equal(counterpart) {
			return false
		}
	}
	return true
}

// Equal reports whether other is a Bytes with identical contents.
func (b Bytes) Equal(other Value) bool {
	o, ok := other.(Bytes)
	return ok && bytes.Equal(b, o)
}

func (Null) String() string     { return "null" }
func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }
func (s String) String() string { return strconv.Quote(string(s)) }
func (i Int) String() string    { return strconv.FormatInt(int64(i), 10) }

func (d Double) String() string {
	rendered := strconv.FormatFloat(float64(d), 'g', -1, 64)
	// Keep the variant visible in diagnostics: an integral Double
	// renders with a trailing ".0" so it cannot be mistaken for an Int.
	if !strings.ContainsAny(rendered, ".eE") && !strings.Contains(rendered, "Inf") && rendered != "NaN" {
		rendered += ".0"
	}
	return rendered
}

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, element := range a {
		parts[i] = element.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (obj Object) String() string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%q: %s", key, obj[key])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (b Bytes) String() string {
	return "bytes(" + base64.URLEncoding.EncodeToString(b) + ")"
}

// TypeName returns the variant name of v ("Null", "Bool", "Int", …)
// for use in error messages. It never returns an empty string for a
// value constructed through this package.
func TypeName(v Value) string {
	switch v.(type) {
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case String:
		return "String"
	case Int:
		return "Int"
	case Double:
		return "Double"
	case Array:
		return "Array"
	case Object:
		return "Object"
	case Bytes:
		return "Bytes"
	case Ref:
		return "Ref"
	case SetRef:
		return "SetRef"
	case Query:
		return "Query"
	case Time:
		return "Time"
	case Date:
		return "Date"
	default:
		return fmt.Sprintf("%T", v)
	}
}
