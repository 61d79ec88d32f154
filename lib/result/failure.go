// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package result

import "strings"

// Reason classifies why a decode step failed. The union is closed:
// NotFound, UnexpectedType, and InvalidValue. Derivation errors
// (building a codec for an unsupported Go type) are a construction
// time error in lib/codec, not a Reason — they can never be triggered
// by remote data.
type Reason interface {
	// String renders the reason for failure messages.
	String() string

	isReason()
}

// NotFound means the path segment was absent: a missing Object key or
// an out-of-range Array index.
type NotFound struct{}

// UnexpectedType means navigation or decoding hit a value of the
// wrong variant.
type UnexpectedType struct {
	// Expected is the variant the decoder required ("Object",
	// "String", …).
	Expected string

	// Actual is the variant that was found.
	Actual string
}

// InvalidValue means the value was present and correctly typed but
// semantically malformed, such as an int32 decode of an out-of-range
// Int.
type InvalidValue struct {
	// Detail describes what was wrong with the value.
	Detail string
}

func (NotFound) isReason()       {}
func (UnexpectedType) isReason() {}
func (InvalidValue) isReason()   {}

func (NotFound) String() string { return "value not found" }

func (u UnexpectedType) String() string {
	return "expected " + u.Expected + ", got " + u.Actual
}

func (i InvalidValue) String() string { return "invalid value: " + i.Detail }

// Failure is one path-tagged decode failure.
type Failure struct {
	// Path locates the failing sub-value relative to the decode root.
	Path Path

	// Reason classifies the failure.
	Reason Reason
}

// String renders the failure as "<path>: <reason>".
func (f Failure) String() string {
	return f.Path.String() + ": " + f.Reason.String()
}

// DecodeError is the error form of a failed Result. It preserves
// every accumulated failure entry so a single decode attempt reports
// all problems at once.
type DecodeError struct {
	// Failures is the non-empty list of accumulated entries, in the
	// order the failing operands were combined.
	Failures []Failure
}

// Error renders every failure entry, separated by "; ".
func (e *DecodeError) Error() string {
	rendered := make([]string, len(e.Failures))
	for i, failure := range e.Failures {
		rendered[i] = failure.String()
	}
	return "decode failed: " + strings.Join(rendered, "; ")
}
