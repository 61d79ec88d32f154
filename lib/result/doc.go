// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

// Package result provides the validated-result type used throughout
// the decoding pipeline: a [Result] carries either a value or a
// non-empty list of path-tagged failures.
//
// The combinators split into two families with different failure
// semantics:
//
//   - Sequential ([AndThen]): the second step depends on the first
//     step's value, so a failure short-circuits.
//   - Independent ([Zip2] through [Zip5], [Collect]): every operand is
//     evaluated and a combined failure carries the union of all
//     operands' failure entries. A single decode attempt therefore
//     surfaces every missing or mistyped field in one report instead
//     of one per round-trip.
//
// Failures are never raised; they travel inside the Result until the
// caller converts them with [Result.Get], which renders every
// accumulated entry into one [DecodeError].
package result
