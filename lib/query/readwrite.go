// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package query

import "github.com/strand-data/strand/lib/value"

// Get retrieves the document at a reference. Accepts [TS] to read at
// a past transaction timestamp.
func Get(ref any, opts ...Opt) Expr {
	return applyOpts(value.Object{"get": wrap(ref)}, opts)
}

// KeyFromSecret retrieves the key document for a key's secret.
func KeyFromSecret(secret any) Expr {
	return expr(value.Object{"key_from_secret": wrap(secret)})
}

// Exists reports whether the document at a reference exists. Accepts
// [TS].
func Exists(ref any, opts ...Opt) Expr {
	return applyOpts(value.Object{"exists": wrap(ref)}, opts)
}

// Count counts the elements of a set. Accepts [Events] to count the
// event stream instead of current data.
func Count(set any, opts ...Opt) Expr {
	return applyOpts(value.Object{"count": wrap(set)}, opts)
}

// Paginate pages through a set. Accepts [TS], [Size], [Events],
// [Sources], and [WithCursor] ([Before]/[After]/[NoCursor]).
func Paginate(set any, opts ...Opt) Expr {
	return applyOpts(value.Object{"paginate": wrap(set)}, opts)
}

// Create creates a document in the class at ref with the given
// params.
func Create(ref, params any) Expr {
	return expr(value.Object{"create": wrap(ref), "params": wrap(params)})
}

// CreateClass creates a class from a parameter object.
func CreateClass(params any) Expr {
	return expr(value.Object{"create_class": wrap(params)})
}

// CreateDatabase creates a database from a parameter object.
func CreateDatabase(params any) Expr {
	return expr(value.Object{"create_database": wrap(params)})
}

// CreateIndex creates an index from a parameter object.
func CreateIndex(params any) Expr {
	return expr(value.Object{"create_index": wrap(params)})
}

// CreateKey creates an access key from a parameter object.
func CreateKey(params any) Expr {
	return expr(value.Object{"create_key": wrap(params)})
}

// Update merges params into the document at ref.
func Update(ref, params any) Expr {
	return expr(value.Object{"update": wrap(ref), "params": wrap(params)})
}

// Replace overwrites the document at ref with params.
func Replace(ref, params any) Expr {
	return expr(value.Object{"replace": wrap(ref), "params": wrap(params)})
}

// Delete removes the document at ref.
func Delete(ref any) Expr {
	return expr(value.Object{"delete": wrap(ref)})
}

// Insert adds an event to the history of the document at ref.
func Insert(ref, ts any, action Action, params any) Expr {
	return expr(value.Object{
		"insert": wrap(ref),
		"ts":     wrap(ts),
		"action": wrap(action),
		"params": wrap(params),
	})
}

// Remove deletes an event from the history of the document at ref.
func Remove(ref, ts any, action Action) Expr {
	return expr(value.Object{
		"remove": wrap(ref),
		"ts":     wrap(ts),
		"action": wrap(action),
	})
}

// Match builds the set of entries of an index with no terms.
func Match(index any) Expr {
	return expr(value.Object{"match": wrap(index)})
}

// MatchTerm builds the set of index entries matching terms.
func MatchTerm(index, terms any) Expr {
	return expr(value.Object{"match": wrap(index), "terms": wrap(terms)})
}

// Union builds the set union of its arguments.
func Union(sets ...any) Expr {
	return expr(value.Object{"union": varargs(sets)})
}

// Intersection builds the set intersection of its arguments.
func Intersection(sets ...any) Expr {
	return expr(value.Object{"intersection": varargs(sets)})
}

// Difference builds the set of elements in the first argument missing
// from the rest.
func Difference(sets ...any) Expr {
	return expr(value.Object{"difference": varargs(sets)})
}

// Distinct builds the set of distinct elements of a set.
func Distinct(set any) Expr {
	return expr(value.Object{"distinct": wrap(set)})
}

// Join maps each element of source through target (an index reference
// or a lambda producing a set) and unions the results.
func Join(source, target any) Expr {
	return expr(value.Object{"join": wrap(source), "with": wrap(target)})
}

// Login creates an authentication token for the document at ref,
// given params carrying the password.
func Login(ref, params any) Expr {
	return expr(value.Object{"login": wrap(ref), "params": wrap(params)})
}

// Logout invalidates the current token, and every token of the
// current identity when all is true.
func Logout(all any) Expr {
	return expr(value.Object{"logout": wrap(all)})
}

// Identify checks a password against the credentials of the document
// at ref without creating a token.
func Identify(ref, password any) Expr {
	return expr(value.Object{"identify": wrap(ref), "password": wrap(password)})
}
