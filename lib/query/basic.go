// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package query

import "github.com/strand-data/strand/lib/value"

// Literal coerces a Go literal into an expression without attaching
// any operation. This is the explicit entry point for the coercion
// that `any`-typed builder parameters perform implicitly.
func Literal(x any) Expr {
	return expr(wrap(x))
}

// Null is the null expression.
func Null() Expr {
	return expr(value.Null{})
}

// Ref builds a literal reference with the given identifier and no
// parent.
func Ref(id string) Expr {
	return expr(value.Ref{ID: id})
}

// RefIn builds a literal reference owned by parent.
func RefIn(id string, parent value.Ref) Expr {
	return expr(value.Ref{ID: id, Parent: &parent})
}

// RefClass builds the reference to the document with the given id in
// the given class. Unlike Ref, this is an operation the server
// resolves, so the class may itself be any expression.
func RefClass(class any, id any) Expr {
	return expr(value.Object{"ref": wrap(class), "id": wrap(id)})
}

// Database builds the reference to the database with the given name.
func Database(name any) Expr {
	return expr(value.Object{"database": wrap(name)})
}

// Class builds the reference to the class with the given name.
func Class(name any) Expr {
	return expr(value.Object{"class": wrap(name)})
}

// Index builds the reference to the index with the given name.
func Index(name any) Expr {
	return expr(value.Object{"index": wrap(name)})
}

// NextID asks the server for a new unique identifier.
func NextID() Expr {
	return expr(value.Object{"next_id": value.Null{}})
}

// Let binds names to values for the scope of the in expression.
// Bindings are evaluated in the enclosing scope; refer to them inside
// in with Var.
func Let(bindings Obj, in any) Expr {
	bound := make(value.Object, len(bindings))
	for name, binding := range bindings {
		bound[name] = wrap(binding)
	}
	return expr(value.Object{"let": bound, "in": wrap(in)})
}

// Var references a Let binding or Lambda parameter by name.
func Var(name string) Expr {
	return expr(value.Object{"var": value.String(name)})
}

// If evaluates then or otherwise depending on condition.
func If(condition, then, otherwise any) Expr {
	return expr(value.Object{
		"if":   wrap(condition),
		"then": wrap(then),
		"else": wrap(otherwise),
	})
}

// Do evaluates its arguments in order and yields the last one.
func Do(exprs ...any) Expr {
	return expr(value.Object{"do": varargs(exprs)})
}

// Lambda builds an anonymous function. Params is either a single
// parameter name or an array of names destructuring the argument.
func Lambda(params, body any) Expr {
	return expr(value.Object{"lambda": wrap(params), "expr": wrap(body)})
}

// Call invokes a stored function by reference.
func Call(ref any, args ...any) Expr {
	return expr(value.Object{"call": wrap(ref), "arguments": varargs(args)})
}

// Query quotes a lambda for storage, producing a @query value on the
// server.
func Query(lambda any) Expr {
	return expr(value.Object{"query": wrap(lambda)})
}

// At evaluates an expression against the database state at the given
// transaction timestamp.
func At(timestamp, ex any) Expr {
	return expr(value.Object{"at": wrap(timestamp), "expr": wrap(ex)})
}

// Map applies a lambda to every element of a collection, yielding
// the collection of results.
func Map(collection, lambda any) Expr {
	return expr(value.Object{"map": wrap(lambda), "collection": wrap(collection)})
}

// Foreach applies a lambda to every element of a collection for its
// effects, yielding the original collection.
func Foreach(collection, lambda any) Expr {
	return expr(value.Object{"foreach": wrap(lambda), "collection": wrap(collection)})
}

// Filter keeps the elements of a collection for which the lambda
// yields true.
func Filter(collection, lambda any) Expr {
	return expr(value.Object{"filter": wrap(lambda), "collection": wrap(collection)})
}

// Take yields the first num elements of a collection.
func Take(num, collection any) Expr {
	return expr(value.Object{"take": wrap(num), "collection": wrap(collection)})
}

// Drop yields the collection without its first num elements.
func Drop(num, collection any) Expr {
	return expr(value.Object{"drop": wrap(num), "collection": wrap(collection)})
}

// Prepend concatenates elements before a collection.
func Prepend(elements, collection any) Expr {
	return expr(value.Object{"prepend": wrap(elements), "collection": wrap(collection)})
}

// Append concatenates elements after a collection.
func Append(elements, collection any) Expr {
	return expr(value.Object{"append": wrap(elements), "collection": wrap(collection)})
}

// IsEmpty reports whether a collection has no elements.
func IsEmpty(collection any) Expr {
	return expr(value.Object{"is_empty": wrap(collection)})
}

// IsNonEmpty reports whether a collection has at least one element.
func IsNonEmpty(collection any) Expr {
	return expr(value.Object{"is_nonempty": wrap(collection)})
}
