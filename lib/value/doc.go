// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

// Package value defines the dynamic value tree exchanged with a Strand
// database. Every datum that crosses the wire — query arguments,
// documents, index terms, responses — is a [Value]: a closed tagged
// union of Null, Bool, String, Int, Double, Array, Object, Bytes, Ref,
// SetRef, Query, Time, and Date.
//
// Values are pure data. They carry no behavior beyond structural
// equality ([Value.Equal]) and diagnostic rendering (String). Encoding
// to and from the JSON wire format lives in lib/wire; typed conversion
// lives in lib/codec.
//
// # Immutability
//
// A Value is immutable once constructed. Array, Object, and Bytes are
// backed by Go slices and maps, which the type system cannot freeze;
// the contract is by discipline: never mutate a Value after handing it
// to another component. Construction sites (the query builder, the
// wire parser) always build fresh backing storage, so sharing a Value
// across goroutines and across composite values is safe without
// synchronization.
//
// # Numeric identity
//
// Int and Double are distinct variants with no implicit conversion in
// either direction. An Int never compares equal to a Double, and the
// wire codec preserves the distinction (a Double always renders with a
// decimal point or exponent). Code that wants widening must opt in
// explicitly via codec.Number.
package value
