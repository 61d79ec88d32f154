// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package value

// Ref is a named reference to a database resource: a document, a
// class, an index, a key, or one of the native top-level collections
// ("classes", "databases", "indexes", "keys"). A Ref carries an
// identifier and an optional owning Ref, forming a finite parent
// chain. Cycles are impossible by construction: a parent is always a
// previously constructed Ref.
//
// The zero Parent (nil) marks a root reference such as the native
// "classes" ref. Two Refs are equal iff their identifiers and their
// entire parent chains match, structurally.
type Ref struct {
	// ID is the reference identifier, unique within its parent.
	ID string

	// Parent is the owning reference, or nil for a root reference.
	Parent *Ref
}

// SetRef is an opaque set descriptor: a server-side set definition
// (a match, a union, a join, …) represented by its parameter object.
// The parameters are application data forwarded verbatim — never
// interpreted locally, and not enumerable without a query.
type SetRef struct {
	// Parameters is the set definition, forwarded untouched.
	Parameters Object
}

// Query is an opaque stored-query payload: a lambda expression held
// under the reserved "@query" wire tag. Like SetRef, its body is
// structural passthrough — the driver never evaluates it.
type Query struct {
	// Lambda is the lambda expression object, forwarded untouched.
	Lambda Object
}

func (Ref) isValue()    {}
func (SetRef) isValue() {}
func (Query) isValue()  {}

// Equal reports whether other is a Ref with the same identifier and
// the same parent chain, compared recursively.
func (r Ref) Equal(other Value) bool {
	o, ok := other.(Ref)
	if !ok || r.ID != o.ID {
		return false
	}
	switch {
	case r.Parent == nil && o.Parent == nil:
		return true
	case r.Parent == nil || o.Parent == nil:
		return false
	default:
		return r.Parent.Equal(*o.Parent)
	}
}

// Equal reports whether other is a SetRef with an equal parameter
// object.
func (s SetRef) Equal(other Value) bool {
	o, ok := other.(SetRef)
	return ok && s.Parameters.Equal(o.Parameters)
}

// Equal reports whether other is a Query with an equal lambda object.
func (q Query) Equal(other Value) bool {
	o, ok := other.(Query)
	return ok && q.Lambda.Equal(o.Lambda)
}

func (r Ref) String() string {
	if r.Parent == nil {
		return "ref(" + r.ID + ")"
	}
	return "ref(" + r.ID + " in " + r.Parent.String() + ")"
}

func (s SetRef) String() string {
	return "set(" + s.Parameters.String() + ")"
}

func (q Query) String() string {
	return "query(" + q.Lambda.String() + ")"
}

// InDatabaseTree reports whether the reference's parent chain
// terminates in the native "databases" ref. The wire format keys a
// Ref's parent as "database" for such references and "collection" for
// everything else.
func (r Ref) InDatabaseTree() bool {
	root := r
	for root.Parent != nil {
		root = *root.Parent
	}
	return root.ID == "databases"
}
