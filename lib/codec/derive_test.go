// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/strand-data/strand/lib/result"
	"github.com/strand-data/strand/lib/value"
)

type spell struct {
	Name     string   `strand:"name"`
	Cost     int64    `strand:"cost"`
	Elements []string `strand:"elements"`
	Notes    *string  `strand:"notes"`

	// internal bookkeeping, never on the wire
	Revision int `strand:"-"`
}

var spellCodec = MustStruct[spell]()

func TestStructRoundTrip(t *testing.T) {
	t.Parallel()

	notes := "single target"
	original := spell{
		Name:     "fireball",
		Cost:     10,
		Elements: []string{"fire", "air"},
		Notes:    &notes,
	}

	decoded := spellCodec.Decode(spellCodec.Encode(original), nil).MustGet()
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStructDecode(t *testing.T) {
	t.Parallel()

	doc := value.Object{
		"name":     value.String("fireball"),
		"cost":     value.Int(10),
		"elements": value.Array{value.String("fire")},
		"notes":    value.Null{},
	}

	decoded := spellCodec.Decode(doc, result.PathOf("data")).MustGet()
	want := spell{Name: "fireball", Cost: 10, Elements: []string{"fire"}}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Errorf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestStructOptionalAsymmetry(t *testing.T) {
	t.Parallel()

	t.Run("missing key decodes to nil", func(t *testing.T) {
		t.Parallel()

		doc := value.Object{
			"name":     value.String("x"),
			"cost":     value.Int(1),
			"elements": value.Array{},
		}
		decoded := spellCodec.Decode(doc, nil).MustGet()
		if decoded.Notes != nil {
			t.Errorf("Notes = %v, want nil", *decoded.Notes)
		}
	})

	t.Run("explicit null decodes to nil", func(t *testing.T) {
		t.Parallel()

		doc := value.Object{
			"name":     value.String("x"),
			"cost":     value.Int(1),
			"elements": value.Array{},
			"notes":    value.Null{},
		}
		decoded := spellCodec.Decode(doc, nil).MustGet()
		if decoded.Notes != nil {
			t.Errorf("Notes = %v, want nil", *decoded.Notes)
		}
	})

	t.Run("nil encodes as an explicit Null key", func(t *testing.T) {
		t.Parallel()

		encoded := spellCodec.Encode(spell{Name: "x"}).(value.Object)
		notes, present := encoded["notes"]
		if !present {
			t.Fatal("encoded object omits the notes key")
		}
		if !notes.Equal(value.Null{}) {
			t.Errorf("notes = %v, want Null", notes)
		}
	})

	t.Run("skipped fields never encode", func(t *testing.T) {
		t.Parallel()

		encoded := spellCodec.Encode(spell{Revision: 7}).(value.Object)
		if _, present := encoded["Revision"]; present {
			t.Error("encoded object contains a field tagged \"-\"")
		}
	})
}

func TestStructAccumulatesFieldFailures(t *testing.T) {
	t.Parallel()

	doc := value.Object{
		"cost":     value.String("ten"),
		"elements": value.Array{},
	}

	_, err := spellCodec.Decode(doc, result.PathOf("data")).Get()
	if err == nil {
		t.Fatal("decoding a document missing name with a mistyped cost should fail")
	}
	failures := err.(*result.DecodeError).Failures
	if len(failures) != 2 {
		t.Fatalf("failure count = %d, want 2: %v", len(failures), failures)
	}
	rendered := err.Error()
	for _, want := range []string{
		"/data/name: value not found",
		"/data/cost: expected Int, got String",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("error %q does not contain %q", rendered, want)
		}
	}
}

func TestStructNestedTypes(t *testing.T) {
	t.Parallel()

	type page struct {
		Rows []spell           `strand:"rows"`
		Tags map[string]string `strand:"tags"`
	}
	pageCodec := MustStruct[page]()

	original := page{
		Rows: []spell{
			{Name: "a", Cost: 1, Elements: []string{}},
			{Name: "b", Cost: 2, Elements: []string{"x"}},
		},
		Tags: map[string]string{"tier": "low"},
	}
	decoded := pageCodec.Decode(pageCodec.Encode(original), nil).MustGet()
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	t.Run("nested failures carry full paths", func(t *testing.T) {
		t.Parallel()

		doc := value.Object{
			"rows": value.Array{value.Object{
				"name":     value.Int(1),
				"cost":     value.Int(1),
				"elements": value.Array{},
			}},
			"tags": value.Object{},
		}
		_, err := pageCodec.Decode(doc, nil).Get()
		if err == nil {
			t.Fatal("decode should fail")
		}
		if want := "/rows/0/name: expected String, got Int"; !strings.Contains(err.Error(), want) {
			t.Errorf("error = %q, want it to contain %q", err, want)
		}
	})
}

func TestStructRecursiveType(t *testing.T) {
	t.Parallel()

	type node struct {
		Label string `strand:"label"`
		Next  *node  `strand:"next"`
	}
	nodeCodec := MustStruct[node]()

	original := node{Label: "a", Next: &node{Label: "b"}}
	decoded := nodeCodec.Decode(nodeCodec.Encode(original), nil).MustGet()
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStructVariantAndTimeFields(t *testing.T) {
	t.Parallel()

	type event struct {
		Ref  value.Ref   `strand:"ref"`
		At   time.Time   `strand:"at"`
		Data value.Value `strand:"data"`
	}
	eventCodec := MustStruct[event]()

	original := event{
		Ref:  value.Ref{ID: "42", Parent: &value.Ref{ID: "spells", Parent: &value.Ref{ID: "classes"}}},
		At:   time.Date(2026, 5, 6, 7, 8, 9, 10, time.UTC),
		Data: value.Object{"n": value.Int(1)},
	}
	decoded := eventCodec.Decode(eventCodec.Encode(original), nil).MustGet()

	if !decoded.Ref.Equal(original.Ref) {
		t.Errorf("Ref = %v, want %v", decoded.Ref, original.Ref)
	}
	if !decoded.At.Equal(original.At) {
		t.Errorf("At = %v, want %v", decoded.At, original.At)
	}
	if !decoded.Data.Equal(original.Data) {
		t.Errorf("Data = %v, want %v", decoded.Data, original.Data)
	}

	t.Run("variant field rejects other variants", func(t *testing.T) {
		t.Parallel()

		doc := value.Object{
			"ref":  value.String("not a ref"),
			"at":   value.TimeOf(time.Now()),
			"data": value.Null{},
		}
		_, err := eventCodec.Decode(doc, nil).Get()
		if err == nil {
			t.Fatal("decode should fail")
		}
		if want := "/ref: expected Ref, got String"; !strings.Contains(err.Error(), want) {
			t.Errorf("error = %q, want it to contain %q", err, want)
		}
	})
}

func TestStructRejectsNonStructTypes(t *testing.T) {
	t.Parallel()

	_, err := Struct[int]()
	var derivationErr *DerivationError
	if !errors.As(err, &derivationErr) {
		t.Fatalf("Struct[int]() error = %v, want *DerivationError", err)
	}
}

func TestStructRejectsUnsupportedFieldTypes(t *testing.T) {
	t.Parallel()

	type bad struct {
		C chan int `strand:"c"`
	}
	_, err := Struct[bad]()
	var derivationErr *DerivationError
	if !errors.As(err, &derivationErr) {
		t.Fatalf("Struct[bad]() error = %v, want *DerivationError", err)
	}
}

func TestStructRejectsNonObject(t *testing.T) {
	t.Parallel()

	_, err := spellCodec.Decode(value.Array{}, result.PathOf("data")).Get()
	if err == nil {
		t.Fatal("decoding an Array as a struct should fail")
	}
	if want := "/data: expected Object, got Array"; !strings.Contains(err.Error(), want) {
		t.Errorf("error = %q, want it to contain %q", err, want)
	}
}
