// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"time"
)

// tsLayout always renders nine fractional digits so that nanosecond
// precision is visible on the wire even when trailing digits are zero.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// Time is an instant with nanosecond precision. Strand timestamps are
// never truncated to microseconds or milliseconds anywhere in the
// pipeline; the wire form carries all nine fractional digits.
type Time struct {
	// Instant is the wrapped instant. The location is not part of the
	// value's identity; the wire form is always UTC.
	Instant time.Time
}

// TimeOf wraps an instant as a Time value.
func TimeOf(t time.Time) Time {
	return Time{Instant: t}
}

// Date is a calendar date with no time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf builds a Date from its components.
func DateOf(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func (Time) isValue() {}
func (Date) isValue() {}

// Equal reports whether other is a Time denoting the same instant.
// Comparison ignores location, matching time.Time.Equal.
func (t Time) Equal(other Value) bool {
	o, ok := other.(Time)
	return ok && t.Instant.Equal(o.Instant)
}

// Equal reports whether other is a Date with the same components.
func (d Date) Equal(other Value) bool {
	o, ok := other.(Date)
	return ok && d == o
}

func (t Time) String() string {
	return t.Instant.UTC().Format(tsLayout)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
