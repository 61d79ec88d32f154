// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec converts between the dynamic value tree (lib/value)
// and statically typed Go data. A [Codec] is bidirectional: Decode
// turns a Value into a T (reporting every failure through
// lib/result), Encode turns a T back into a Value.
//
// Primitive codecs cover each Value variant ([Bool], [String], [Int],
// [Double], [Bytes], [Ref], [SetRef], [Time], [Date], the raw
// passthroughs [Raw] and [Object]); [Slice] and [Optional] build
// composite codecs; [Struct] derives a codec for a plain record type
// by reflection.
//
// # Numeric strictness
//
// [Int] and [Double] decode only their own variant. [Number] is the
// explicit opt-in for widening: it accepts either variant and yields
// float64. [Int32] detects overflow against the narrower width.
//
// # Struct Tag Rules
//
// Derived codecs map struct fields to Object keys via the `strand`
// tag, falling back to the Go field name:
//
//	type Spell struct {
//		Name     string  `strand:"name"`
//		Level    int64   `strand:"level"`
//		Nickname *string `strand:"nickname"`
//	}
//
// A tag of "-" skips the field. Pointer fields are optional: a missing
// key decodes to nil rather than failing, and a nil pointer encodes as
// an explicit Null key, never as key omission. The asymmetry is
// deliberate — absence is only meaningful on decode, and the server
// treats a Null write as clearing the field.
//
// Derivation is a pure function of the type definition. It runs once
// per type (cached) and fails at construction time, never during a
// decode of remote data.
package codec
