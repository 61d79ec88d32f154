// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/strand-data/strand/lib/value"
)

// tsLayout renders all nine fractional digits so nanosecond precision
// is never truncated on the wire.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// dateLayout is the ISO-8601 calendar date form.
const dateLayout = "2006-01-02"

// Marshal serializes a value tree to wire JSON. The only values that
// cannot be represented are non-finite Doubles (NaN, ±Inf), which
// JSON has no literal for.
func Marshal(v value.Value) ([]byte, error) {
	form, err := tagged(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(form)
}

// tagged converts a value into the JSON-ready tagged form: Go
// primitives, []any, map[string]any, and json.Number leaves (which
// encoding/json emits verbatim, preserving the Int/Double
// distinction).
func tagged(v value.Value) (any, error) {
	switch t := v.(type) {
	case value.Null:
		return nil, nil
	case value.Bool:
		return bool(t), nil
	case value.String:
		return string(t), nil
	case value.Int:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case value.Double:
		return doubleLiteral(float64(t))
	case value.Array:
		form := make([]any, len(t))
		for i, element := range t {
			elementForm, err := tagged(element)
			if err != nil {
				return nil, err
			}
			form[i] = elementForm
		}
		return form, nil
	case value.Object:
		// Objects emit their entries verbatim. The {"object": ...}
		// disambiguation wrapper is part of the tree itself: the query
		// builder wraps user object literals at construction and leaves
		// operation descriptors bare, so exactly one layer wraps.
		return taggedEntries(t)
	case value.Bytes:
		return map[string]any{"@bytes": base64.URLEncoding.EncodeToString(t)}, nil
	case value.Ref:
		return taggedRef(t), nil
	case value.SetRef:
		params, err := taggedEntries(t.Parameters)
		if err != nil {
			return nil, err
		}
		return map[string]any{"@set": params}, nil
	case value.Query:
		lambda, err := taggedEntries(t.Lambda)
		if err != nil {
			return nil, err
		}
		return map[string]any{"@query": lambda}, nil
	case value.Time:
		return map[string]any{"@ts": t.Instant.UTC().Format(tsLayout)}, nil
	case value.Date:
		return map[string]any{"@date": t.String()}, nil
	case nil:
		return nil, fmt.Errorf("wire: cannot marshal a nil value")
	default:
		return nil, fmt.Errorf("wire: cannot marshal %T", v)
	}
}

// taggedEntries converts an Object's entries one by one, adding no
// wrapper of its own. Used for Objects themselves and for the opaque
// payloads of SetRef and Query.
func taggedEntries(obj value.Object) (map[string]any, error) {
	form := make(map[string]any, len(obj))
	for key, entry := range obj {
		entryForm, err := tagged(entry)
		if err != nil {
			return nil, err
		}
		form[key] = entryForm
	}
	return form, nil
}

// taggedRef renders a Ref chain. The parent's key is "database" when
// its chain terminates in the native "databases" ref, "collection"
// otherwise.
func taggedRef(r value.Ref) map[string]any {
	inner := map[string]any{"id": r.ID}
	if r.Parent != nil {
		key := "collection"
		if r.Parent.InDatabaseTree() {
			key = "database"
		}
		inner[key] = taggedRef(*r.Parent)
	}
	return map[string]any{"@ref": inner}
}

// doubleLiteral renders a Double so it can never be confused with an
// Int: the literal always contains a decimal point or an exponent.
func doubleLiteral(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("wire: %v has no JSON representation", f)
	}
	literal := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(literal, ".eE") {
		literal += ".0"
	}
	return json.Number(literal), nil
}

// MarshalExpr serializes anything exposing a value tree, such as a
// query.Expr. It exists so the transport layer can serialize an
// expression without importing lib/query.
func MarshalExpr(e interface{ Value() value.Value }) ([]byte, error) {
	return Marshal(e.Value())
}
