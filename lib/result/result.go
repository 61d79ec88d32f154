// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package result

// Result is either a success carrying a value of type T or a failure
// carrying one or more path-tagged [Failure] entries. The zero Result
// is a success carrying T's zero value; construct through [Ok],
// [Fail], or [FailAt] for clarity.
type Result[T any] struct {
	value    T
	failures []Failure
}

// Ok returns a successful Result carrying v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns a failed Result carrying the given entries. At least
// one entry is required; calling Fail with none is a programming
// error and panics.
func Fail[T any](failures ...Failure) Result[T] {
	if len(failures) == 0 {
		panic("result: Fail requires at least one failure")
	}
	return Result[T]{failures: failures}
}

// FailAt returns a failed Result with a single entry at the given
// path.
func FailAt[T any](at Path, reason Reason) Result[T] {
	return Result[T]{failures: []Failure{{Path: at, Reason: reason}}}
}

// IsOk reports whether the Result is a success.
func (r Result[T]) IsOk() bool {
	return len(r.failures) == 0
}

// Failures returns the accumulated failure entries, or nil for a
// success. The returned slice must not be modified.
func (r Result[T]) Failures() []Failure {
	return r.failures
}

// Get returns the contained value, or a *DecodeError carrying every
// accumulated failure entry.
func (r Result[T]) Get() (T, error) {
	if len(r.failures) != 0 {
		var zero T
		return zero, &DecodeError{Failures: r.failures}
	}
	return r.value, nil
}

// MustGet returns the contained value and panics on failure. Intended
// for tests and program initialization, mirroring MustStruct in
// lib/codec.
func (r Result[T]) MustGet() T {
	v, err := r.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// Map applies a pure function to a success; a failure passes through
// unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.IsOk() {
		return Result[U]{failures: r.failures}
	}
	return Ok(fn(r.value))
}

// AndThen chains a dependent decode: fn runs only on success, and a
// failure short-circuits. Use the Zip functions instead when the
// operands are independent, so their failures accumulate.
func AndThen[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if !r.IsOk() {
		return Result[U]{failures: r.failures}
	}
	return fn(r.value)
}

// Zip2 combines two independent results. Both operands are always
// evaluated; if either fails, the combined failure carries the union
// of both operands' entries, in operand order.
func Zip2[A, B, T any](a Result[A], b Result[B], combine func(A, B) T) Result[T] {
	if failures := union(a.failures, b.failures); failures != nil {
		return Result[T]{failures: failures}
	}
	return Ok(combine(a.value, b.value))
}

// Zip3 combines three independent results with failure union.
func Zip3[A, B, C, T any](a Result[A], b Result[B], c Result[C], combine func(A, B, C) T) Result[T] {
	if failures := union(a.failures, b.failures, c.failures); failures != nil {
		return Result[T]{failures: failures}
	}
	return Ok(combine(a.value, b.value, c.value))
}

// Zip4 combines four independent results with failure union.
func Zip4[A, B, C, D, T any](a Result[A], b Result[B], c Result[C], d Result[D], combine func(A, B, C, D) T) Result[T] {
	if failures := union(a.failures, b.failures, c.failures, d.failures); failures != nil {
		return Result[T]{failures: failures}
	}
	return Ok(combine(a.value, b.value, c.value, d.value))
}

// Zip5 combines five independent results with failure union.
func Zip5[A, B, C, D, E, T any](a Result[A], b Result[B], c Result[C], d Result[D], e Result[E], combine func(A, B, C, D, E) T) Result[T] {
	if failures := union(a.failures, b.failures, c.failures, d.failures, e.failures); failures != nil {
		return Result[T]{failures: failures}
	}
	return Ok(combine(a.value, b.value, c.value, d.value, e.value))
}

// Collect combines a slice of independent results into a result of a
// slice. All operands are evaluated; any failures are unioned in
// operand order.
func Collect[T any](results []Result[T]) Result[[]T] {
	var failures []Failure
	for _, r := range results {
		failures = append(failures, r.failures...)
	}
	if failures != nil {
		return Result[[]T]{failures: failures}
	}
	collected := make([]T, len(results))
	for i, r := range results {
		collected[i] = r.value
	}
	return Ok(collected)
}

// union concatenates failure lists, returning nil when every operand
// succeeded.
func union(failureLists ...[]Failure) []Failure {
	var combined []Failure
	for _, failures := range failureLists {
		combined = append(combined, failures...)
	}
	return combined
}
