// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package query

import "github.com/strand-data/strand/lib/value"

// Concat joins an array of strings. Accepts [Separator].
func Concat(terms any, opts ...Opt) Expr {
	return applyOpts(value.Object{"concat": wrap(terms)}, opts)
}

// Casefold normalizes a string for case-insensitive comparison.
func Casefold(str any) Expr {
	return expr(value.Object{"casefold": wrap(str)})
}

// Time parses an ISO-8601 string into a timestamp. The special
// string "now" resolves to the current transaction time.
func Time(str any) Expr {
	return expr(value.Object{"time": wrap(str)})
}

// Epoch builds the timestamp at the given offset from the Unix epoch,
// in the given unit.
func Epoch(num any, unit TimeUnit) Expr {
	return expr(value.Object{"epoch": wrap(num), "unit": wrap(unit)})
}

// Date parses an ISO-8601 "YYYY-MM-DD" string into a date.
func Date(str any) Expr {
	return expr(value.Object{"date": wrap(str)})
}

// Equals reports whether all arguments are structurally equal.
func Equals(args ...any) Expr {
	return expr(value.Object{"equals": varargs(args)})
}

// Contains reports whether the value at path exists within in. The
// path flattens with the varargs rule: a single segment emits bare.
func Contains(path Path, in any) Expr {
	return expr(value.Object{"contains": varargs(path), "in": wrap(in)})
}

// Select extracts the value at path from from. Accepts [Default] for
// a fallback when the path does not resolve; without it an
// unresolvable path is an error.
func Select(path Path, from any, opts ...Opt) Expr {
	return applyOpts(value.Object{"select": varargs(path), "from": wrap(from)}, opts)
}

// Add sums its arguments.
func Add(args ...any) Expr {
	return expr(value.Object{"add": varargs(args)})
}

// Multiply multiplies its arguments.
func Multiply(args ...any) Expr {
	return expr(value.Object{"multiply": varargs(args)})
}

// Subtract subtracts the rest of its arguments from the first.
func Subtract(args ...any) Expr {
	return expr(value.Object{"subtract": varargs(args)})
}

// Divide divides the first argument by the rest.
func Divide(args ...any) Expr {
	return expr(value.Object{"divide": varargs(args)})
}

// Modulo yields the remainder of dividing the first argument by the
// rest.
func Modulo(args ...any) Expr {
	return expr(value.Object{"modulo": varargs(args)})
}

// LT reports whether its arguments are strictly increasing.
func LT(args ...any) Expr {
	return expr(value.Object{"lt": varargs(args)})
}

// LTE reports whether its arguments are non-decreasing.
func LTE(args ...any) Expr {
	return expr(value.Object{"lte": varargs(args)})
}

// GT reports whether its arguments are strictly decreasing.
func GT(args ...any) Expr {
	return expr(value.Object{"gt": varargs(args)})
}

// GTE reports whether its arguments are non-increasing.
func GTE(args ...any) Expr {
	return expr(value.Object{"gte": varargs(args)})
}

// And is the conjunction of its arguments.
func And(args ...any) Expr {
	return expr(value.Object{"and": varargs(args)})
}

// Or is the disjunction of its arguments.
func Or(args ...any) Expr {
	return expr(value.Object{"or": varargs(args)})
}

// Not negates a boolean.
func Not(b any) Expr {
	return expr(value.Object{"not": wrap(b)})
}
