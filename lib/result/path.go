// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package result

import (
	"strconv"
	"strings"
)

// Segment is one step of a path into a value tree: either a string
// [Key] into an Object or an integer [Index] into an Array. The union
// is closed.
type Segment interface {
	// String renders the segment for failure messages.
	String() string

	isSegment()
}

// Key is an Object key segment.
type Key string

// Index is an Array index segment.
type Index int

func (Key) isSegment()   {}
func (Index) isSegment() {}

func (k Key) String() string   { return string(k) }
func (i Index) String() string { return strconv.Itoa(int(i)) }

// Path is an ordered sequence of segments locating a sub-value. The
// zero Path denotes the document root.
type Path []Segment

// PathOf builds a Path from string and int segments. Any other
// segment type panics: paths are built by driver code, never from
// remote data, so a bad segment is a programming error.
func PathOf(segments ...any) Path {
	path := make(Path, len(segments))
	for i, segment := range segments {
		switch s := segment.(type) {
		case string:
			path[i] = Key(s)
		case int:
			path[i] = Index(s)
		case Segment:
			path[i] = s
		default:
			panic("result: path segments must be strings or ints")
		}
	}
	return path
}

// With returns a new Path extended by one segment. The receiver is
// never modified and the result never aliases its backing array, so
// extending the same prefix down two branches is safe.
func (p Path) With(segment Segment) Path {
	extended := make(Path, len(p)+1)
	copy(extended, p)
	extended[len(p)] = segment
	return extended
}

// WithKey returns a new Path extended by an Object key segment.
func (p Path) WithKey(key string) Path { return p.With(Key(key)) }

// WithIndex returns a new Path extended by an Array index segment.
func (p Path) WithIndex(index int) Path { return p.With(Index(index)) }

// Concat returns the concatenation of two paths.
func (p Path) Concat(other Path) Path {
	joined := make(Path, 0, len(p)+len(other))
	joined = append(joined, p...)
	return append(joined, other...)
}

// String renders the path as "/a/0/b". The root path renders as "/".
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, segment := range p {
		b.WriteByte('/')
		b.WriteString(segment.String())
	}
	return b.String()
}
