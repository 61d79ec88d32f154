// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package result

import (
	"strings"
	"testing"
)

func TestPathString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path Path
		want string
	}{
		{"root", nil, "/"},
		{"single key", Path{Key("data")}, "/data"},
		{"mixed segments", Path{Key("data"), Index(0), Key("name")}, "/data/0/name"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got := test.path.String(); got != test.want {
				t.Errorf("String() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestPathWithDoesNotAliasPrefix(t *testing.T) {
	t.Parallel()

	prefix := PathOf("data")
	left := prefix.WithKey("a")
	right := prefix.WithKey("b")

	if got := left.String(); got != "/data/a" {
		t.Errorf("left = %q, want %q", got, "/data/a")
	}
	if got := right.String(); got != "/data/b" {
		t.Errorf("right = %q, want %q", got, "/data/b")
	}
}

func TestMap(t *testing.T) {
	t.Parallel()

	doubled := Map(Ok(21), func(i int) int { return i * 2 })
	if got := doubled.MustGet(); got != 42 {
		t.Errorf("Map(Ok(21), *2) = %d, want 42", got)
	}

	failed := Map(FailAt[int](PathOf("x"), NotFound{}), func(i int) int { return i * 2 })
	if failed.IsOk() {
		t.Fatal("mapping a failure should stay a failure")
	}
	if len(failed.Failures()) != 1 {
		t.Errorf("failure count = %d, want 1", len(failed.Failures()))
	}
}

func TestAndThenShortCircuits(t *testing.T) {
	t.Parallel()

	called := false
	chained := AndThen(FailAt[int](PathOf("x"), NotFound{}), func(int) Result[string] {
		called = true
		return Ok("unreachable")
	})

	if called {
		t.Error("AndThen evaluated the dependent step after a failure")
	}
	if chained.IsOk() {
		t.Error("chained result should be a failure")
	}
}

func TestZipAccumulatesAllFailures(t *testing.T) {
	t.Parallel()

	missingA := FailAt[int](PathOf("a"), NotFound{})
	missingB := FailAt[int](PathOf("b"), NotFound{})
	okC := Ok(3)

	combined := Zip3(missingA, missingB, okC, func(a, b, c int) int { return a + b + c })
	failures := combined.Failures()
	if len(failures) != 2 {
		t.Fatalf("failure count = %d, want 2", len(failures))
	}
	if got := failures[0].Path.String(); got != "/a" {
		t.Errorf("first failure path = %q, want %q", got, "/a")
	}
	if got := failures[1].Path.String(); got != "/b" {
		t.Errorf("second failure path = %q, want %q", got, "/b")
	}
}

func TestZipSuccess(t *testing.T) {
	t.Parallel()

	combined := Zip2(Ok(40), Ok(2), func(a, b int) int { return a + b })
	if got := combined.MustGet(); got != 42 {
		t.Errorf("Zip2(40, 2, +) = %d, want 42", got)
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	t.Run("all succeed", func(t *testing.T) {
		t.Parallel()

		collected := Collect([]Result[int]{Ok(1), Ok(2), Ok(3)})
		got := collected.MustGet()
		if len(got) != 3 || got[0] != 1 || got[2] != 3 {
			t.Errorf("Collect = %v, want [1 2 3]", got)
		}
	})

	t.Run("failures union in operand order", func(t *testing.T) {
		t.Parallel()

		collected := Collect([]Result[int]{
			Ok(1),
			FailAt[int](PathOf(0), NotFound{}),
			FailAt[int](PathOf(2), UnexpectedType{Expected: "Int", Actual: "String"}),
		})
		failures := collected.Failures()
		if len(failures) != 2 {
			t.Fatalf("failure count = %d, want 2", len(failures))
		}
		if got := failures[1].Reason.String(); got != "expected Int, got String" {
			t.Errorf("second reason = %q", got)
		}
	})
}

func TestGetRendersEveryFailure(t *testing.T) {
	t.Parallel()

	r := Fail[int](
		Failure{Path: PathOf("data", "name"), Reason: NotFound{}},
		Failure{Path: PathOf("data", "cost"), Reason: UnexpectedType{Expected: "Int", Actual: "String"}},
	)

	_, err := r.Get()
	if err == nil {
		t.Fatal("Get on a failure should return an error")
	}
	message := err.Error()
	for _, want := range []string{
		"/data/name: value not found",
		"/data/cost: expected Int, got String",
	} {
		if !strings.Contains(message, want) {
			t.Errorf("error %q does not contain %q", message, want)
		}
	}
}

func TestGetSuccess(t *testing.T) {
	t.Parallel()

	got, err := Ok("hello").Get()
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "hello" {
		t.Errorf("Get() = %q, want %q", got, "hello")
	}
}
