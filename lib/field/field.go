// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

// Package field provides composable, path-aware accessors into a
// value tree. A [Field] selects a sub-value by a sequence of path
// segments and decodes it through a codec (raw passthrough by
// default), producing a result whose failures carry the exact path at
// which resolution or decoding failed.
//
// Fields combine in two ways. [Zip2] through [Zip4] apply several
// fields to the same root independently and union their failures, so
// one application reports every problem. [Collect] applies an element
// field to every element of a selected Array, tagging each element's
// failures with its index. [Optional] forgives absence, decoding a
// missing or Null target to nil.
//
//	name := field.At("data", "name")
//	cost := field.To(field.At("data", "cost"), codec.Int)
//	spell := field.Zip2(field.To(name, codec.String), cost, makeSpell)
package field

import (
	"github.com/strand-data/strand/lib/codec"
	"github.com/strand-data/strand/lib/result"
	"github.com/strand-data/strand/lib/value"
)

// Field selects and decodes a sub-value of type T from a value tree.
// Fields are immutable and safe for concurrent use; every combinator
// returns a new Field.
type Field[T any] struct {
	segments []result.Segment
	decode   func(v value.Value, at result.Path) result.Result[T]
}

// At builds a Field selecting the sub-value at the given path
// segments (strings key into Objects, ints index into Arrays) with
// the raw passthrough codec as its terminal decode. No segments
// selects the root itself. Segments of any other type panic: paths
// are written by driver code, never built from remote data.
func At(segments ...any) Field[value.Value] {
	return Field[value.Value]{
		segments: result.PathOf(segments...),
		decode:   codec.Raw.Decode,
	}
}

// Root is the Field selecting the root value itself.
func Root() Field[value.Value] {
	return At()
}

// At returns a copy of the field with additional path segments
// appended ahead of the terminal decode.
func (f Field[T]) At(segments ...any) Field[T] {
	appended := result.Path(f.segments).Concat(result.PathOf(segments...))
	return Field[T]{segments: appended, decode: f.decode}
}

// Apply resolves the field against root: navigate the path, then run
// the terminal decode. All failures are tagged with the full path at
// which they occurred.
func (f Field[T]) Apply(root value.Value) result.Result[T] {
	return f.applyAt(root, nil)
}

// applyAt resolves the field against v, with base as the path prefix
// already consumed by an enclosing field (used by Collect).
func (f Field[T]) applyAt(v value.Value, base result.Path) result.Result[T] {
	target, at, failure := navigate(v, f.segments, base)
	if failure != nil {
		return result.Fail[T](*failure)
	}
	return f.decode(target, at)
}

// navigate walks the segments from v. At each step the current value
// must be an Object (for a Key) or an Array (for an Index); a wrong
// variant fails with UnexpectedType at the prefix walked so far, and
// a missing key or out-of-range index fails with NotFound at the
// segment itself.
func navigate(v value.Value, segments []result.Segment, base result.Path) (value.Value, result.Path, *result.Failure) {
	at := base
	current := v
	for _, segment := range segments {
		switch s := segment.(type) {
		case result.Key:
			obj, ok := current.(value.Object)
			if !ok {
				return nil, nil, &result.Failure{
					Path:   at,
					Reason: result.UnexpectedType{Expected: "Object", Actual: value.TypeName(current)},
				}
			}
			at = at.With(segment)
			next, present := obj[string(s)]
			if !present {
				return nil, nil, &result.Failure{Path: at, Reason: result.NotFound{}}
			}
			current = next
		case result.Index:
			arr, ok := current.(value.Array)
			if !ok {
				return nil, nil, &result.Failure{
					Path:   at,
					Reason: result.UnexpectedType{Expected: "Array", Actual: value.TypeName(current)},
				}
			}
			at = at.With(segment)
			if int(s) < 0 || int(s) >= len(arr) {
				return nil, nil, &result.Failure{Path: at, Reason: result.NotFound{}}
			}
			current = arr[int(s)]
		}
	}
	return current, at, nil
}

// To re-decodes the field's target value with a different codec,
// keeping the path.
func To[U, T any](f Field[T], c codec.Codec[U]) Field[U] {
	return Field[U]{segments: f.segments, decode: c.Decode}
}

// Optional tolerates absence of the field's target: a path that fails
// to resolve (a missing key or index anywhere along it) or a Null
// target decodes to nil instead of failing. A present target of the
// wrong type still fails normally through f's decode, and navigating
// through a wrong variant (a Key into an Array, say) is still an
// error: only absence is forgiven.
func Optional[T any](f Field[T]) Field[*T] {
	return Field[*T]{
		decode: func(v value.Value, at result.Path) result.Result[*T] {
			target, targetPath, failure := navigate(v, f.segments, at)
			if failure != nil {
				if _, missing := failure.Reason.(result.NotFound); missing {
					return result.Ok[*T](nil)
				}
				return result.Fail[*T](*failure)
			}
			if _, isNull := target.(value.Null); isNull {
				return result.Ok[*T](nil)
			}
			return result.Map(f.decode(target, targetPath), func(t T) *T { return &t })
		},
	}
}

// Map post-processes a successfully decoded value with a pure
// function; failures propagate unchanged.
func Map[T, U any](f Field[T], fn func(T) U) Field[U] {
	return Field[U]{
		segments: f.segments,
		decode: func(v value.Value, at result.Path) result.Result[U] {
			return result.Map(f.decode(v, at), fn)
		},
	}
}

// Zip2 builds a Field applying two fields independently to the same
// root and combining their values. Both fields are always applied;
// failures are unioned per the independent-combination rule, so a
// single application surfaces every problem.
func Zip2[A, B, T any](fa Field[A], fb Field[B], combine func(A, B) T) Field[T] {
	return Field[T]{
		decode: func(v value.Value, at result.Path) result.Result[T] {
			return result.Zip2(fa.applyAt(v, at), fb.applyAt(v, at), combine)
		},
	}
}

// Zip3 applies three fields independently to the same root with
// failure union.
func Zip3[A, B, C, T any](fa Field[A], fb Field[B], fc Field[C], combine func(A, B, C) T) Field[T] {
	return Field[T]{
		decode: func(v value.Value, at result.Path) result.Result[T] {
			return result.Zip3(fa.applyAt(v, at), fb.applyAt(v, at), fc.applyAt(v, at), combine)
		},
	}
}

// Zip4 applies four fields independently to the same root with
// failure union.
func Zip4[A, B, C, D, T any](fa Field[A], fb Field[B], fc Field[C], fd Field[D], combine func(A, B, C, D) T) Field[T] {
	return Field[T]{
		decode: func(v value.Value, at result.Path) result.Result[T] {
			return result.Zip4(fa.applyAt(v, at), fb.applyAt(v, at), fc.applyAt(v, at), fd.applyAt(v, at), combine)
		},
	}
}

// Collect requires outer to select an Array and applies element to
// each of its elements, treating each element's path as the outer
// path extended with its index. Every element is decoded regardless
// of earlier failures and all per-element failures are reported
// together.
func Collect[T any](outer Field[value.Value], element Field[T]) Field[[]T] {
	return Field[[]T]{
		segments: outer.segments,
		decode: func(v value.Value, at result.Path) result.Result[[]T] {
			arr, ok := v.(value.Array)
			if !ok {
				return result.FailAt[[]T](at, result.UnexpectedType{
					Expected: "Array",
					Actual:   value.TypeName(v),
				})
			}
			results := make([]result.Result[T], len(arr))
			for i, elem := range arr {
				results[i] = element.applyAt(elem, at.WithIndex(i))
			}
			return result.Collect(results)
		},
	}
}
