// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package query

import "github.com/strand-data/strand/lib/value"

// Opt is an optional trailing parameter of a builder function
// (Paginate, Get, Select, …). Each option carries a wire key and a
// value; the key is added to the operation object only when the value
// is not structurally equal to the absent sentinel, Null.
//
// Known limitation: the sentinel test is value equality, not true
// presence. A caller who wants to send a literal Null as real data
// for an optional parameter cannot — it is indistinguishable from
// "not provided" and the key is omitted. This ambiguity is part of
// the wire contract and is preserved deliberately.
type Opt func(operation value.Object)

// sentinel is the canonical absent value for optional parameters.
var sentinel value.Value = value.Null{}

func sentinelOpt(key string, x any) Opt {
	v := wrap(x)
	return func(operation value.Object) {
		if !v.Equal(sentinel) {
			operation[key] = v
		}
	}
}

// TS restricts a read (Get, Exists, Paginate) to the given
// transaction timestamp.
func TS(x any) Opt { return sentinelOpt("ts", x) }

// Size limits the page size of a Paginate.
func Size(x any) Opt { return sentinelOpt("size", x) }

// Events makes Paginate or Count operate on the event stream rather
// than current data.
func Events(x any) Opt { return sentinelOpt("events", x) }

// Sources makes Paginate annotate each element with its source sets.
func Sources(x any) Opt { return sentinelOpt("sources", x) }

// Separator sets the separator string of a Concat.
func Separator(x any) Opt { return sentinelOpt("separator", x) }

// Default sets the fallback value of a Select when the path does not
// resolve.
func Default(x any) Opt { return sentinelOpt("default", x) }

// Cursor positions a Paginate within a set. The union is closed:
// [Before], [After], or [NoCursor]. A cursor contributes exactly one
// key ("before" or "after") to the operation object; NoCursor
// contributes nothing.
type Cursor interface {
	isCursor()
	contribute(operation value.Object)
}

type beforeCursor struct{ v value.Value }
type afterCursor struct{ v value.Value }
type noCursor struct{}

func (beforeCursor) isCursor() {}
func (afterCursor) isCursor()  {}
func (noCursor) isCursor()     {}

func (c beforeCursor) contribute(operation value.Object) { operation["before"] = c.v }
func (c afterCursor) contribute(operation value.Object)  { operation["after"] = c.v }
func (noCursor) contribute(value.Object)                 {}

// Before positions the page strictly before the given value.
func Before(x any) Cursor { return beforeCursor{v: wrap(x)} }

// After positions the page at or after the given value.
func After(x any) Cursor { return afterCursor{v: wrap(x)} }

// NoCursor requests the first page.
var NoCursor Cursor = noCursor{}

// WithCursor applies a Cursor to a Paginate.
func WithCursor(c Cursor) Opt {
	return func(operation value.Object) {
		c.contribute(operation)
	}
}

// applyOpts folds options into an operation object and wraps it.
func applyOpts(operation value.Object, opts []Opt) Expr {
	for _, opt := range opts {
		opt(operation)
	}
	return expr(operation)
}
