package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedPath is returned when a path string or a Path value does not
// have a valid shape.
var ErrMalformedPath = fmt.Errorf("malformed path")

type entryKind uint8

const (
	indexEntry entryKind = iota
	keyEntry
	endOfArrayEntry
)

// PathEntry is a single step of a Path: an array index, an object key or the
// end-of-array sentinel. Exactly one of them is active.
type PathEntry struct {
	kind  entryKind
	index int
	key   string
}

// Index returns a PathEntry addressing the element at position i.
func Index(i int) PathEntry {
	return PathEntry{kind: indexEntry, index: i}
}

// Key returns a PathEntry addressing the member named k.
func Key(k string) PathEntry {
	return PathEntry{kind: keyEntry, key: k}
}

// EndOfArray returns the sentinel entry that addresses the position one past
// the last element of an array.
func EndOfArray() PathEntry {
	return PathEntry{kind: endOfArrayEntry}
}

func (e PathEntry) IsIndex() bool      { return e.kind == indexEntry }
func (e PathEntry) IsKey() bool        { return e.kind == keyEntry }
func (e PathEntry) IsEndOfArray() bool { return e.kind == endOfArrayEntry }

// Index returns the array index. It is only meaningful when IsIndex is true.
func (e PathEntry) Index() int { return e.index }

// Key returns the member key. It is only meaningful when IsKey is true.
func (e PathEntry) Key() string { return e.key }

func (e PathEntry) Equal(other PathEntry) bool {
	if e.kind != other.kind {
		return false
	}
	switch e.kind {
	case indexEntry:
		return e.index == other.index
	case keyEntry:
		return e.key == other.key
	}
	return true
}

// String returns the escaped JSON Pointer token for the entry.
func (e PathEntry) String() string {
	switch e.kind {
	case indexEntry:
		return strconv.Itoa(e.index)
	case endOfArrayEntry:
		return "-"
	}
	return EscapeKey(e.key)
}

// Path addresses a location inside a Value tree. The empty Path is the root.
type Path []PathEntry

// NewPath builds a Path from the given entries.
func NewPath(entries ...PathEntry) Path {
	if len(entries) == 0 {
		return Path{}
	}
	p := make(Path, len(entries))
	copy(p, entries)
	return p
}

// ParsePath parses a JSON Pointer (RFC 6901). The empty string is the root.
// "-" parses as the end-of-array sentinel and a canonical non-negative
// decimal token parses as an index. Every other token is a key.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	if s[0] != '/' {
		return nil, fmt.Errorf("%w: %q does not start with '/'", ErrMalformedPath, s)
	}

	tokens := strings.Split(s[1:], "/")
	p := make(Path, len(tokens))
	for i, token := range tokens {
		if strings.Contains(token, "~") {
			unescaped, err := unescapeToken(token)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrMalformedPath, s, err)
			}
			p[i] = Key(unescaped)
			continue
		}
		if token == "-" {
			p[i] = EndOfArray()
			continue
		}
		if idx, ok := parseIndexToken(token); ok {
			p[i] = Index(idx)
			continue
		}
		p[i] = Key(token)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseIndexToken(token string) (int, bool) {
	if token == "" || (len(token) > 1 && token[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return idx, true
}

func unescapeToken(token string) (string, error) {
	var b strings.Builder
	b.Grow(len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(token) {
			return "", fmt.Errorf("dangling '~' in token %q", token)
		}
		switch token[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("invalid escape '~%c' in token %q", token[i+1], token)
		}
		i++
	}
	return b.String(), nil
}

// EscapeKey escapes a key for use as a JSON Pointer token.
func EscapeKey(key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	key = strings.ReplaceAll(key, "/", "~1")
	return key
}

// String renders the path as a JSON Pointer.
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range p {
		b.WriteByte('/')
		b.WriteString(e.String())
	}
	return b.String()
}

// Validate reports an error if the end-of-array sentinel appears anywhere
// but in the last position.
func (p Path) Validate() error {
	for i := 0; i < len(p)-1; i++ {
		if p[i].IsEndOfArray() {
			return fmt.Errorf("%w: %q: '-' is only valid as the last token", ErrMalformedPath, p.String())
		}
	}
	return nil
}

// Append returns a new Path with the given entries added. The receiver is
// never modified.
func (p Path) Append(entries ...PathEntry) Path {
	res := make(Path, len(p), len(p)+len(entries))
	copy(res, p)
	return append(res, entries...)
}

// AppendKey is a shorthand for p.Append(Key(k)).
func (p Path) AppendKey(k string) Path {
	return p.Append(Key(k))
}

// AppendIndex is a shorthand for p.Append(Index(i)).
func (p Path) AppendIndex(i int) Path {
	return p.Append(Index(i))
}

// Join returns the concatenation of p and other.
func (p Path) Join(other Path) Path {
	return p.Append(other...)
}

// Parent returns the path with its last entry removed. The parent of the
// root is the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	return NewPath(p[:len(p)-1]...)
}

// Last returns the last entry and whether there is one.
func (p Path) Last() (PathEntry, bool) {
	if len(p) == 0 {
		return PathEntry{}, false
	}
	return p[len(p)-1], true
}

func (p Path) IsRoot() bool { return len(p) == 0 }

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !p[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix addresses p or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// CommonAncestor returns the longest path that is a prefix of both a and b.
func CommonAncestor(a, b Path) Path {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i].Equal(b[i]) {
		i++
	}
	return NewPath(a[:i]...)
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}
