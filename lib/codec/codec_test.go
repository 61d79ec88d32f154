// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"testing"
	"time"

	"github.com/strand-data/strand/lib/result"
	"github.com/strand-data/strand/lib/value"
)

func TestPrimitiveRoundTrips(t *testing.T) {
	t.Parallel()

	instant := time.Date(2026, 5, 6, 7, 8, 9, 123456789, time.UTC)

	t.Run("bool", func(t *testing.T) {
		t.Parallel()
		if got := Bool.Decode(Bool.Encode(true), nil).MustGet(); got != true {
			t.Errorf("round trip = %v", got)
		}
	})
	t.Run("string", func(t *testing.T) {
		t.Parallel()
		if got := String.Decode(String.Encode("abc"), nil).MustGet(); got != "abc" {
			t.Errorf("round trip = %q", got)
		}
	})
	t.Run("int", func(t *testing.T) {
		t.Parallel()
		if got := Int.Decode(Int.Encode(42), nil).MustGet(); got != 42 {
			t.Errorf("round trip = %d", got)
		}
	})
	t.Run("double", func(t *testing.T) {
		t.Parallel()
		if got := Double.Decode(Double.Encode(2.5), nil).MustGet(); got != 2.5 {
			t.Errorf("round trip = %v", got)
		}
	})
	t.Run("bytes", func(t *testing.T) {
		t.Parallel()
		got := Bytes.Decode(Bytes.Encode([]byte{1, 2, 3}), nil).MustGet()
		if len(got) != 3 || got[0] != 1 || got[2] != 3 {
			t.Errorf("round trip = %v", got)
		}
	})
	t.Run("time keeps nanoseconds", func(t *testing.T) {
		t.Parallel()
		got := Time.Decode(Time.Encode(instant), nil).MustGet()
		if !got.Equal(instant) {
			t.Errorf("round trip = %v, want %v", got, instant)
		}
		if got.Nanosecond() != 123456789 {
			t.Errorf("nanoseconds = %d, want 123456789", got.Nanosecond())
		}
	})
	t.Run("ref", func(t *testing.T) {
		t.Parallel()
		ref := value.Ref{ID: "42", Parent: &value.Ref{ID: "spells", Parent: &value.Ref{ID: "classes"}}}
		got := Ref.Decode(Ref.Encode(ref), nil).MustGet()
		if !got.Equal(ref) {
			t.Errorf("round trip = %v, want %v", got, ref)
		}
	})
	t.Run("date", func(t *testing.T) {
		t.Parallel()
		day := value.DateOf(2026, time.May, 6)
		if got := Date.Decode(Date.Encode(day), nil).MustGet(); got != day {
			t.Errorf("round trip = %v, want %v", got, day)
		}
	})
}

func TestNumericStrictness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		decode  func(v value.Value) error
		v       value.Value
		wantErr bool
	}{
		{"int accepts Int", func(v value.Value) error { _, err := Int.Decode(v, nil).Get(); return err }, value.Int(1), false},
		{"int rejects Double", func(v value.Value) error { _, err := Int.Decode(v, nil).Get(); return err }, value.Double(1), true},
		{"double accepts Double", func(v value.Value) error { _, err := Double.Decode(v, nil).Get(); return err }, value.Double(1), false},
		{"double rejects Int", func(v value.Value) error { _, err := Double.Decode(v, nil).Get(); return err }, value.Int(1), true},
		{"number widens Int", func(v value.Value) error { _, err := Number.Decode(v, nil).Get(); return err }, value.Int(1), false},
		{"number accepts Double", func(v value.Value) error { _, err := Number.Decode(v, nil).Get(); return err }, value.Double(1), false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := test.decode(test.v)
			if (err != nil) != test.wantErr {
				t.Errorf("error = %v, wantErr %v", err, test.wantErr)
			}
		})
	}
}

func TestInt32Overflow(t *testing.T) {
	t.Parallel()

	if _, err := Int32.Decode(value.Int(1<<31), result.PathOf("n")).Get(); err == nil {
		t.Error("decoding 2^31 into int32 should fail")
	}
	if got := Int32.Decode(value.Int(7), nil).MustGet(); got != 7 {
		t.Errorf("Int32 decode = %d, want 7", got)
	}
}

func TestOptional(t *testing.T) {
	t.Parallel()

	optional := Optional(String)

	t.Run("null decodes to nil", func(t *testing.T) {
		t.Parallel()
		if got := optional.Decode(value.Null{}, nil).MustGet(); got != nil {
			t.Errorf("decode(Null) = %v, want nil", got)
		}
	})
	t.Run("present decodes to pointer", func(t *testing.T) {
		t.Parallel()
		got := optional.Decode(value.String("x"), nil).MustGet()
		if got == nil || *got != "x" {
			t.Errorf("decode(String) = %v, want pointer to \"x\"", got)
		}
	})
	t.Run("wrong type still fails", func(t *testing.T) {
		t.Parallel()
		if _, err := optional.Decode(value.Int(1), nil).Get(); err == nil {
			t.Error("decoding Int through Optional(String) should fail")
		}
	})
	t.Run("nil encodes to explicit Null", func(t *testing.T) {
		t.Parallel()
		if got := optional.Encode(nil); !got.Equal(value.Null{}) {
			t.Errorf("encode(nil) = %v, want Null", got)
		}
	})
}

func TestSliceAccumulatesElementFailures(t *testing.T) {
	t.Parallel()

	arr := value.Array{value.Int(1), value.String("x"), value.Bool(true)}
	_, err := Slice(Int).Decode(arr, result.PathOf("data")).Get()
	if err == nil {
		t.Fatal("decoding a mixed array as []int64 should fail")
	}
	failures := err.(*result.DecodeError).Failures
	if len(failures) != 2 {
		t.Fatalf("failure count = %d, want 2", len(failures))
	}
	if got := failures[0].Path.String(); got != "/data/1" {
		t.Errorf("first failure path = %q, want /data/1", got)
	}
	if got := failures[1].Path.String(); got != "/data/2" {
		t.Errorf("second failure path = %q, want /data/2", got)
	}
}

func TestSliceRejectsNonArray(t *testing.T) {
	t.Parallel()

	_, err := Slice(Int).Decode(value.Object{}, nil).Get()
	if err == nil {
		t.Error("decoding an Object as a slice should fail")
	}
}
