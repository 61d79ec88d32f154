// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"math"
	"time"

	"github.com/strand-data/strand/lib/result"
	"github.com/strand-data/strand/lib/value"
)

// Codec converts between a Value and a specific Go type. Decode
// reports failures through the Result machinery, tagged with the path
// at which the value was found; Encode is total.
//
// Codecs are pure and stateless: a single Codec may be used from any
// number of goroutines concurrently.
type Codec[T any] interface {
	// Decode converts v, found at path `at`, into a T. Failures are
	// recovered into the Result, never raised.
	Decode(v value.Value, at result.Path) result.Result[T]

	// Encode converts t into its Value representation.
	Encode(t T) value.Value
}

// funcs is the standard Codec implementation: a decode and an encode
// function.
type funcs[T any] struct {
	decode func(v value.Value, at result.Path) result.Result[T]
	encode func(t T) value.Value
}

func (c funcs[T]) Decode(v value.Value, at result.Path) result.Result[T] {
	return c.decode(v, at)
}

func (c funcs[T]) Encode(t T) value.Value {
	return c.encode(t)
}

// From builds a Codec from a decode and an encode function.
func From[T any](
	decode func(v value.Value, at result.Path) result.Result[T],
	encode func(t T) value.Value,
) Codec[T] {
	return funcs[T]{decode: decode, encode: encode}
}

func mismatch[T any](expected string, actual value.Value, at result.Path) result.Result[T] {
	return result.FailAt[T](at, result.UnexpectedType{
		Expected: expected,
		Actual:   value.TypeName(actual),
	})
}

// Unit decodes Null to struct{} and encodes struct{} to Null.
var Unit Codec[struct{}] = funcs[struct{}]{
	decode: func(v value.Value, at result.Path) result.Result[struct{}] {
		if _, ok := v.(value.Null); ok {
			return result.Ok(struct{}{})
		}
		return mismatch[struct{}]("Null", v, at)
	},
	encode: func(struct{}) value.Value { return value.Null{} },
}

// Bool converts Bool values.
var Bool Codec[bool] = funcs[bool]{
	decode: func(v value.Value, at result.Path) result.Result[bool] {
		if b, ok := v.(value.Bool); ok {
			return result.Ok(bool(b))
		}
		return mismatch[bool]("Bool", v, at)
	},
	encode: func(b bool) value.Value { return value.Bool(b) },
}

// String converts String values.
var String Codec[string] = funcs[string]{
	decode: func(v value.Value, at result.Path) result.Result[string] {
		if s, ok := v.(value.String); ok {
			return result.Ok(string(s))
		}
		return mismatch[string]("String", v, at)
	},
	encode: func(s string) value.Value { return value.String(s) },
}

// Int converts Int values to int64. A Double is rejected: there is no
// implicit narrowing. Use Number for explicit widening to float64.
var Int Codec[int64] = funcs[int64]{
	decode: func(v value.Value, at result.Path) result.Result[int64] {
		if i, ok := v.(value.Int); ok {
			return result.Ok(int64(i))
		}
		return mismatch[int64]("Int", v, at)
	},
	encode: func(i int64) value.Value { return value.Int(i) },
}

// Int32 converts Int values to int32 with overflow detection.
var Int32 Codec[int32] = funcs[int32]{
	decode: func(v value.Value, at result.Path) result.Result[int32] {
		i, ok := v.(value.Int)
		if !ok {
			return mismatch[int32]("Int", v, at)
		}
		if i < math.MinInt32 || i > math.MaxInt32 {
			return result.FailAt[int32](at, result.InvalidValue{
				Detail: fmt.Sprintf("%d overflows int32", int64(i)),
			})
		}
		return result.Ok(int32(i))
	},
	encode: func(i int32) value.Value { return value.Int(i) },
}

// Double converts Double values to float64. An Int is rejected: the
// variants are distinct and widening must be requested explicitly via
// Number.
var Double Codec[float64] = funcs[float64]{
	decode: func(v value.Value, at result.Path) result.Result[float64] {
		if d, ok := v.(value.Double); ok {
			return result.Ok(float64(d))
		}
		return mismatch[float64]("Double", v, at)
	},
	encode: func(d float64) value.Value { return value.Double(d) },
}

// Number converts either numeric variant to float64, explicitly
// allowing Int→float64 widening. Encoding always produces a Double.
var Number Codec[float64] = funcs[float64]{
	decode: func(v value.Value, at result.Path) result.Result[float64] {
		switch n := v.(type) {
		case value.Double:
			return result.Ok(float64(n))
		case value.Int:
			return result.Ok(float64(n))
		default:
			return mismatch[float64]("Int or Double", v, at)
		}
	},
	encode: func(d float64) value.Value { return value.Double(d) },
}

// Bytes converts Bytes values.
var Bytes Codec[[]byte] = funcs[[]byte]{
	decode: func(v value.Value, at result.Path) result.Result[[]byte] {
		if b, ok := v.(value.Bytes); ok {
			return result.Ok([]byte(b))
		}
		return mismatch[[]byte]("Bytes", v, at)
	},
	encode: func(b []byte) value.Value { return value.Bytes(b) },
}

// Ref converts Ref values.
var Ref Codec[value.Ref] = funcs[value.Ref]{
	decode: func(v value.Value, at result.Path) result.Result[value.Ref] {
		if r, ok := v.(value.Ref); ok {
			return result.Ok(r)
		}
		return mismatch[value.Ref]("Ref", v, at)
	},
	encode: func(r value.Ref) value.Value { return r },
}

// SetRef converts SetRef values. The parameter object is structural
// passthrough, never interpreted.
var SetRef Codec[value.SetRef] = funcs[value.SetRef]{
	decode: func(v value.Value, at result.Path) result.Result[value.SetRef] {
		if s, ok := v.(value.SetRef); ok {
			return result.Ok(s)
		}
		return mismatch[value.SetRef]("SetRef", v, at)
	},
	encode: func(s value.SetRef) value.Value { return s },
}

// Time converts Time values to time.Time, preserving nanosecond
// precision.
var Time Codec[time.Time] = funcs[time.Time]{
	decode: func(v value.Value, at result.Path) result.Result[time.Time] {
		if t, ok := v.(value.Time); ok {
			return result.Ok(t.Instant)
		}
		return mismatch[time.Time]("Time", v, at)
	},
	encode: func(t time.Time) value.Value { return value.TimeOf(t) },
}

// Date converts Date values.
var Date Codec[value.Date] = funcs[value.Date]{
	decode: func(v value.Value, at result.Path) result.Result[value.Date] {
		if d, ok := v.(value.Date); ok {
			return result.Ok(d)
		}
		return mismatch[value.Date]("Date", v, at)
	},
	encode: func(d value.Date) value.Value { return d },
}

// Raw passes any Value through unconverted. This is the default
// terminal codec of a Field.
var Raw Codec[value.Value] = funcs[value.Value]{
	decode: func(v value.Value, at result.Path) result.Result[value.Value] {
		return result.Ok(v)
	},
	encode: func(v value.Value) value.Value { return v },
}

// Object passes Object values through unconverted.
var Object Codec[value.Object] = funcs[value.Object]{
	decode: func(v value.Value, at result.Path) result.Result[value.Object] {
		if o, ok := v.(value.Object); ok {
			return result.Ok(o)
		}
		return mismatch[value.Object]("Object", v, at)
	},
	encode: func(o value.Object) value.Value { return o },
}

// Slice converts a homogeneous Array with the given element codec.
// Every element is decoded regardless of earlier failures, and all
// per-element failures are reported together, each tagged with its
// index.
func Slice[T any](element Codec[T]) Codec[[]T] {
	return funcs[[]T]{
		decode: func(v value.Value, at result.Path) result.Result[[]T] {
			arr, ok := v.(value.Array)
			if !ok {
				return mismatch[[]T]("Array", v, at)
			}
			results := make([]result.Result[T], len(arr))
			for i, elem := range arr {
				results[i] = element.Decode(elem, at.WithIndex(i))
			}
			return result.Collect(results)
		},
		encode: func(ts []T) value.Value {
			arr := make(value.Array, len(ts))
			for i, t := range ts {
				arr[i] = element.Encode(t)
			}
			return arr
		},
	}
}

// Optional wraps a codec so that Null decodes to nil instead of
// failing, and nil encodes to an explicit Null. Field absence is
// handled one level up (in Field navigation and struct derivation):
// absent decodes to nil, but encoding nil always writes a Null key,
// never omits it.
func Optional[T any](inner Codec[T]) Codec[*T] {
	return funcs[*T]{
		decode: func(v value.Value, at result.Path) result.Result[*T] {
			if _, ok := v.(value.Null); ok {
				return result.Ok[*T](nil)
			}
			return result.Map(inner.Decode(v, at), func(t T) *T { return &t })
		},
		encode: func(t *T) value.Value {
			if t == nil {
				return value.Null{}
			}
			return inner.Encode(*t)
		},
	}
}
