package dom

import (
	"github.com/brunoga/dom/internal/core"
)

// Path addresses a location in a value tree. It renders as a JSON Pointer.
type Path = core.Path

// PathEntry is one step of a Path: an array index, an object key or the
// end-of-array position "-".
type PathEntry = core.PathEntry

// Index returns an entry addressing the i-th element of an array.
func Index(i int) PathEntry { return core.Index(i) }

// Key returns an entry addressing the member k of an object.
func Key(k string) PathEntry { return core.Key(k) }

// EndOfArray returns the entry addressing the position after the last
// element of an array.
func EndOfArray() PathEntry { return core.EndOfArray() }

// NewPath returns a path made of entries.
func NewPath(entries ...PathEntry) Path { return core.NewPath(entries...) }

// ParsePath parses a JSON Pointer. Canonical decimal tokens become indexes,
// "-" becomes the end-of-array entry and anything else is a key.
func ParsePath(s string) (Path, error) {
	return core.ParsePath(s)
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(s string) Path {
	return core.MustParsePath(s)
}

// CommonAncestor returns the longest path that is a prefix of both a and b.
func CommonAncestor(a, b Path) Path {
	return core.CommonAncestor(a, b)
}
