// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"math"
	"time"

	"github.com/strand-data/strand/lib/value"
)

// fromCanonical rebuilds a value tree from decoded CBOR. The CBOR
// decoder hands back nil, bool, string, uint64/int64, float64,
// []byte, []any, and map[string]any; everything else is a corrupt
// snapshot.
func fromCanonical(raw any) (value.Value, error) {
	switch r := raw.(type) {
	case nil:
		return value.Null{}, nil
	case bool:
		return value.Bool(r), nil
	case string:
		return value.String(r), nil
	case int64:
		return value.Int(r), nil
	case uint64:
		if r > math.MaxInt64 {
			return nil, fmt.Errorf("snapshot: integer %d outside the 64-bit signed range", r)
		}
		return value.Int(r), nil
	case float64:
		return value.Double(r), nil
	case []any:
		arr := make(value.Array, len(r))
		for i, element := range r {
			parsed, err := fromCanonical(element)
			if err != nil {
				return nil, err
			}
			arr[i] = parsed
		}
		return arr, nil
	case map[string]any:
		return fromCanonicalObject(r)
	default:
		return nil, fmt.Errorf("snapshot: unsupported CBOR shape %T", raw)
	}
}

func fromCanonicalObject(m map[string]any) (value.Value, error) {
	if len(m) != 1 {
		return nil, fmt.Errorf("snapshot: corrupt object form with %d keys", len(m))
	}
	for key, inner := range m {
		switch key {
		case "object":
			return canonicalObjectEntries(inner, "object")
		case "@ref":
			return fromCanonicalRef(inner)
		case "@set":
			params, err := canonicalObjectEntries(inner, "@set")
			if err != nil {
				return nil, err
			}
			return value.SetRef{Parameters: params}, nil
		case "@query":
			lambda, err := canonicalObjectEntries(inner, "@query")
			if err != nil {
				return nil, err
			}
			return value.Query{Lambda: lambda}, nil
		case "@bytes":
			b, ok := inner.([]byte)
			if !ok {
				return nil, fmt.Errorf("snapshot: @bytes payload must be a byte string, got %T", inner)
			}
			return value.Bytes(b), nil
		case "@ts":
			literal, ok := inner.(string)
			if !ok {
				return nil, fmt.Errorf("snapshot: @ts payload must be a string, got %T", inner)
			}
			instant, err := time.Parse(time.RFC3339Nano, literal)
			if err != nil {
				return nil, fmt.Errorf("snapshot: malformed timestamp %q: %w", literal, err)
			}
			return value.TimeOf(instant), nil
		case "@date":
			literal, ok := inner.(string)
			if !ok {
				return nil, fmt.Errorf("snapshot: @date payload must be a string, got %T", inner)
			}
			day, err := time.Parse("2006-01-02", literal)
			if err != nil {
				return nil, fmt.Errorf("snapshot: malformed date %q: %w", literal, err)
			}
			return value.DateOf(day.Year(), day.Month(), day.Day()), nil
		default:
			return nil, fmt.Errorf("snapshot: unrecognized tag %q", key)
		}
	}
	return nil, fmt.Errorf("snapshot: empty object form")
}

// canonicalObjectEntries parses a map's entries as plain data. Keys
// at this level (set parameters, lambda bodies, user keys) are not
// tag-checked; nested tagged values still parse through
// fromCanonical.
func canonicalObjectEntries(inner any, context string) (value.Object, error) {
	m, ok := inner.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("snapshot: %s payload must be a map, got %T", context, inner)
	}
	obj := make(value.Object, len(m))
	for key, entry := range m {
		parsed, err := fromCanonical(entry)
		if err != nil {
			return nil, err
		}
		obj[key] = parsed
	}
	return obj, nil
}

func fromCanonicalRef(inner any) (value.Value, error) {
	m, ok := inner.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("snapshot: @ref payload must be a map, got %T", inner)
	}
	ref := value.Ref{}
	for key, entry := range m {
		switch key {
		case "id":
			id, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("snapshot: @ref id must be a string, got %T", entry)
			}
			ref.ID = id
		case "collection", "database":
			parsed, err := fromCanonical(entry)
			if err != nil {
				return nil, err
			}
			parent, ok := parsed.(value.Ref)
			if !ok {
				return nil, fmt.Errorf("snapshot: @ref %s must be a reference, got %s", key, value.TypeName(parsed))
			}
			ref.Parent = &parent
		default:
			return nil, fmt.Errorf("snapshot: unexpected key %q in @ref", key)
		}
	}
	if ref.ID == "" {
		return nil, fmt.Errorf("snapshot: @ref is missing its id")
	}
	return ref, nil
}
