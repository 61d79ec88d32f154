// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/jsonc"

	"github.com/strand-data/strand/lib/value"
)

// ParseError reports that wire input could not be turned into a value
// tree: malformed JSON, an unrecognized reserved tag, or a number the
// value model cannot hold. It is terminal — unlike decode failures it
// does not accumulate, because nothing past the syntax error can be
// trusted.
type ParseError struct {
	// Detail describes what was wrong with the input.
	Detail string

	// Err is the underlying error, if any.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "wire: " + e.Detail + ": " + e.Err.Error()
	}
	return "wire: " + e.Detail
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse turns wire JSON into a value tree. The error, when non-nil,
// is always a *ParseError.
func Parse(data []byte) (value.Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, &ParseError{Detail: "malformed JSON", Err: err}
	}
	if decoder.More() {
		return nil, &ParseError{Detail: "trailing data after JSON value"}
	}
	return fromRaw(raw)
}

// ParseDocument is Parse for the JSONC dialect used by documents
// authored on disk: JSON extended with // line comments, /* block
// comments */, and trailing commas.
func ParseDocument(data []byte) (value.Value, error) {
	return Parse(jsonc.ToJSON(data))
}

// ReadDocumentFile reads a JSONC document file from disk and parses
// it into a value tree.
func ReadDocumentFile(path string) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	parsed, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}

func fromRaw(raw any) (value.Value, error) {
	switch r := raw.(type) {
	case nil:
		return value.Null{}, nil
	case bool:
		return value.Bool(r), nil
	case string:
		return value.String(r), nil
	case json.Number:
		return fromNumber(r)
	case []any:
		arr := make(value.Array, len(r))
		for i, element := range r {
			parsed, err := fromRaw(element)
			if err != nil {
				return nil, err
			}
			arr[i] = parsed
		}
		return arr, nil
	case map[string]any:
		return fromObject(r)
	default:
		return nil, &ParseError{Detail: fmt.Sprintf("unsupported JSON shape %T", raw)}
	}
}

// fromNumber preserves the Int/Double distinction: a literal with a
// decimal point or exponent is a Double, anything else is an Int. An
// integer literal outside the 64-bit range is rejected rather than
// silently widened.
func fromNumber(n json.Number) (value.Value, error) {
	literal := string(n)
	if strings.ContainsAny(literal, ".eE") {
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return nil, &ParseError{Detail: "malformed number " + literal, Err: err}
		}
		return value.Double(f), nil
	}
	i, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return nil, &ParseError{Detail: "integer " + literal + " outside the 64-bit range", Err: err}
	}
	return value.Int(i), nil
}

// fromObject dispatches on the reserved tags. A single-key object
// under a recognized tag parses as the corresponding variant; an
// unrecognized "@" key anywhere is a parse error; everything else is
// a plain Object.
func fromObject(m map[string]any) (value.Value, error) {
	if len(m) == 1 {
		for key, inner := range m {
			switch key {
			case "@ref":
				return fromRef(inner)
			case "@set":
				params, err := entries(inner, "@set")
				if err != nil {
					return nil, err
				}
				return value.SetRef{Parameters: params}, nil
			case "@query":
				lambda, err := entries(inner, "@query")
				if err != nil {
					return nil, err
				}
				return value.Query{Lambda: lambda}, nil
			case "@ts":
				return fromTimestamp(inner)
			case "@date":
				return fromDate(inner)
			case "@bytes":
				return fromBytes(inner)
			case "object":
				return entries(inner, "object")
			}
		}
	}
	for key := range m {
		if strings.HasPrefix(key, "@") {
			return nil, &ParseError{Detail: fmt.Sprintf("unrecognized reserved tag %q", key)}
		}
	}
	return entries(m, "object")
}

// entries parses a JSON object's entries into a plain Object. The
// keys at this level are data (set parameters, lambda bodies, user
// keys), so they are not tag-checked; tagged values nested below
// still parse through fromRaw.
func entries(inner any, context string) (value.Object, error) {
	m, ok := inner.(map[string]any)
	if !ok {
		return nil, &ParseError{Detail: fmt.Sprintf("%s payload must be an object, got %T", context, inner)}
	}
	obj := make(value.Object, len(m))
	for key, entry := range m {
		parsed, err := fromRaw(entry)
		if err != nil {
			return nil, err
		}
		obj[key] = parsed
	}
	return obj, nil
}

func fromRef(inner any) (value.Value, error) {
	m, ok := inner.(map[string]any)
	if !ok {
		return nil, &ParseError{Detail: fmt.Sprintf("@ref payload must be an object, got %T", inner)}
	}

	ref := value.Ref{}
	for key, entry := range m {
		switch key {
		case "id":
			id, ok := entry.(string)
			if !ok {
				return nil, &ParseError{Detail: fmt.Sprintf("@ref id must be a string, got %T", entry)}
			}
			ref.ID = id
		case "collection", "database":
			parsed, err := fromRaw(entry)
			if err != nil {
				return nil, err
			}
			parent, ok := parsed.(value.Ref)
			if !ok {
				return nil, &ParseError{Detail: fmt.Sprintf("@ref %s must be a reference, got %s", key, value.TypeName(parsed))}
			}
			ref.Parent = &parent
		default:
			return nil, &ParseError{Detail: fmt.Sprintf("unexpected key %q in @ref", key)}
		}
	}
	if ref.ID == "" {
		return nil, &ParseError{Detail: "@ref is missing its id"}
	}
	return ref, nil
}

func fromTimestamp(inner any) (value.Value, error) {
	literal, ok := inner.(string)
	if !ok {
		return nil, &ParseError{Detail: fmt.Sprintf("@ts payload must be a string, got %T", inner)}
	}
	instant, err := time.Parse(time.RFC3339Nano, literal)
	if err != nil {
		return nil, &ParseError{Detail: "malformed timestamp " + strconv.Quote(literal), Err: err}
	}
	return value.TimeOf(instant), nil
}

func fromDate(inner any) (value.Value, error) {
	literal, ok := inner.(string)
	if !ok {
		return nil, &ParseError{Detail: fmt.Sprintf("@date payload must be a string, got %T", inner)}
	}
	day, err := time.Parse(dateLayout, literal)
	if err != nil {
		return nil, &ParseError{Detail: "malformed date " + strconv.Quote(literal), Err: err}
	}
	return value.DateOf(day.Year(), day.Month(), day.Day()), nil
}

func fromBytes(inner any) (value.Value, error) {
	literal, ok := inner.(string)
	if !ok {
		return nil, &ParseError{Detail: fmt.Sprintf("@bytes payload must be a string, got %T", inner)}
	}
	decoded, err := base64.URLEncoding.DecodeString(literal)
	if err != nil {
		return nil, &ParseError{Detail: "malformed base64 in @bytes", Err: err}
	}
	return value.Bytes(decoded), nil
}
