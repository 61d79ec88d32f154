// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

// Package query builds Strand query expressions. Every function is a
// pure tree constructor: it coerces its arguments into values
// (lib/value), assembles the operation object, and returns an opaque
// [Expr]. Nothing here performs I/O, decoding, or validation beyond
// argument arity — malformed queries are reported by the server.
//
// # Literal coercion
//
// Arguments typed `any` accept Go literals (nil, bool, string, the
// common int and float widths, time.Time, []byte), previously built
// [Expr] values, raw lib/value values, and the composite literal
// types [Obj], [Arr], and [Path]. Any other type panics: expression
// arguments are written by driver code, never taken from remote data,
// so an unsupported literal is a programming error.
//
// # Object literals
//
// An [Obj] literal is emitted as {"object": {...}} on the wire, never
// as a bare object. Bare objects are operation descriptors to the
// server; the wrapper is what keeps user data from colliding with
// reserved "@" tags.
//
// # Varargs normalization
//
// Every variadic builder follows one rule: called with exactly one
// argument it emits that argument's value directly; called with zero
// or more than one it wraps them all in an Array. This affects wire
// shape, not just ergonomics, and is applied uniformly.
package query

import (
	"fmt"
	"math"
	"time"

	"github.com/strand-data/strand/lib/value"
)

// Expr is an opaque handle on a constructed query fragment: a
// single-field wrapper over the underlying value with no behavior of
// its own.
type Expr struct {
	v value.Value
}

// Value returns the wrapped value tree for serialization by the
// transport layer (lib/wire).
func (e Expr) Value() value.Value {
	return e.v
}

// expr wraps an already-built operation value. Internal constructors
// use it directly; user data goes through wrap.
func expr(v value.Value) Expr {
	return Expr{v: v}
}

// Obj is an object literal. It wraps as {"object": {...}} so its keys
// can never collide with reserved wire tags.
type Obj map[string]any

// Arr is an array literal.
type Arr []any

// Path is an ordered sequence of path segments (strings and ints)
// for Select, Contains, and friends. Two paths concatenate with
// append:
//
//	base := query.Path{"data", "address"}
//	city := append(base, "city")
//
// A builder argument accepting a path flattens it with the varargs
// rule: a single-segment path emits the bare segment.
type Path []any

// Action names the write action of Insert and Remove.
type Action string

const (
	// ActionCreate inserts a create event.
	ActionCreate Action = "create"
	// ActionUpdate inserts an update event.
	ActionUpdate Action = "update"
	// ActionDelete inserts a delete event.
	ActionDelete Action = "delete"
)

// TimeUnit names the epoch offset unit accepted by Epoch.
type TimeUnit string

const (
	UnitSecond      TimeUnit = "second"
	UnitMillisecond TimeUnit = "millisecond"
	UnitMicrosecond TimeUnit = "microsecond"
	UnitNanosecond  TimeUnit = "nanosecond"
)

// wrap coerces a Go literal into a value. The accepted set is
// documented on the package; anything else panics.
func wrap(x any) value.Value {
	switch arg := x.(type) {
	case nil:
		return value.Null{}
	case Expr:
		return arg.v
	case value.Value:
		return arg
	case bool:
		return value.Bool(arg)
	case string:
		return value.String(arg)
	case int:
		return value.Int(arg)
	case int32:
		return value.Int(arg)
	case int64:
		return value.Int(arg)
	case uint:
		if uint64(arg) > math.MaxInt64 {
			panic(fmt.Sprintf("query: %d overflows the wire integer range", arg))
		}
		return value.Int(arg)
	case uint32:
		return value.Int(arg)
	case uint64:
		if arg > math.MaxInt64 {
			panic(fmt.Sprintf("query: %d overflows the wire integer range", arg))
		}
		return value.Int(arg)
	case float32:
		return value.Double(arg)
	case float64:
		return value.Double(arg)
	case time.Time:
		return value.TimeOf(arg)
	case []byte:
		return value.Bytes(arg)
	case Action:
		return value.String(arg)
	case TimeUnit:
		return value.String(arg)
	case Obj:
		return wrapObj(arg)
	case map[string]any:
		return wrapObj(arg)
	case Arr:
		return wrapArr(arg)
	case []any:
		return wrapArr(arg)
	case Path:
		return varargs(arg)
	default:
		panic(fmt.Sprintf("query: cannot use %T as an expression literal", x))
	}
}

// wrapObj builds the disambiguated {"object": {...}} form of a user
// object literal.
func wrapObj(entries map[string]any) value.Value {
	inner := make(value.Object, len(entries))
	for key, entry := range entries {
		inner[key] = wrap(entry)
	}
	return value.Object{"object": inner}
}

func wrapArr(elements []any) value.Value {
	arr := make(value.Array, len(elements))
	for i, element := range elements {
		arr[i] = wrap(element)
	}
	return arr
}

// varargs applies the normalization rule: exactly one argument emits
// that argument's value unwrapped; zero or several wrap as an Array.
func varargs(args []any) value.Value {
	if len(args) == 1 {
		return wrap(args[0])
	}
	return wrapArr(args)
}
