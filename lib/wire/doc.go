// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire serializes value trees to Strand's JSON wire format
// and parses responses back. This is the narrow contract the
// transport layer consumes: [Marshal] on the way out, [Parse] on the
// way in.
//
// The format maps plain variants to their JSON counterparts and the
// tagged variants to single-key objects under reserved "@" tags:
//
//	Bytes   {"@bytes": <url-safe base64>}
//	Time    {"@ts": <ISO-8601, nine fractional digits, UTC>}
//	Date    {"@date": "YYYY-MM-DD"}
//	Ref     {"@ref": {"id": ..., "collection"/"database": <parent>}}
//	SetRef  {"@set": <parameter object>}
//	Query   {"@query": <lambda object>}
//	Object  {...}
//
// A Double always renders with a decimal point or exponent, so the
// Int/Double distinction survives JSON's single number type.
//
// Objects serialize bare. The {"object": {...}} wrapper seen on the
// wire is the query builder's literal-disambiguation form, already
// present in the tree it hands over; operation descriptors stay bare
// objects. Parse unwraps a single-key {"object": ...} back to a plain
// Object and decodes any other bare JSON object as a plain Object.
//
// Parse failures ([ParseError]) are terminal and distinct from decode
// failures (result.DecodeError): malformed JSON, an unrecognized "@"
// tag, or an integer outside the 64-bit range fail the parse as a
// whole rather than accumulating.
//
// Documents authored on disk (fixtures, seed data) may use JSONC —
// JSON extended with comments and trailing commas; [ParseDocument]
// and [ReadDocumentFile] handle that dialect.
package wire
