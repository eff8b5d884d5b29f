package engine

import (
	"fmt"
	"strconv"

	"github.com/brunoga/dom/internal/core"
)

// ExistenceCheckFlags control how strictly LookupPath validates a path.
type ExistenceCheckFlags uint8

const (
	// ExistenceCheckNone only requires the parent of the target to exist.
	ExistenceCheckNone ExistenceCheckFlags = 0
	// VerifyFullPath also requires a keyed target to exist.
	VerifyFullPath ExistenceCheckFlags = 1 << 0
	// AllowEndOfArray accepts the end-of-array entry as the last entry.
	AllowEndOfArray ExistenceCheckFlags = 1 << 1
)

// PathContext is a resolved path: the container holding the target slot
// and the entry naming the slot inside it. It is only valid until the tree
// is next modified by someone else.
type PathContext struct {
	parent *core.Value
	entry  core.PathEntry

	// root is set when the path was empty. parent is then a synthetic
	// single-element array wrapping root.
	root *core.Value
}

// LookupPath resolves p against root and returns the parent container of
// the target together with the terminal entry. The empty path resolves to
// index 0 of a synthetic array holding root, so that replacing the root is
// handled like replacing any other element.
//
// Index and end-of-array entries addressing a plain object are resolved as
// the keys "0", "1", ... and "-".
func LookupPath(root *core.Value, p core.Path, flags ExistenceCheckFlags) (PathContext, error) {
	if len(p) == 0 {
		return PathContext{
			parent: core.NewArray(root),
			entry:  core.Index(0),
			root:   root,
		}, nil
	}

	if err := p.Validate(); err != nil {
		return PathContext{}, err
	}

	target, entry := p[:len(p)-1], p[len(p)-1]
	parent := root.FindMutablePath(target)
	if parent == nil {
		return PathContext{}, fmt.Errorf("%w: %q", ErrPathNotFound, target.String())
	}

	if parent.Kind() == core.ObjectKind {
		switch {
		case entry.IsIndex():
			entry = core.Key(strconv.Itoa(entry.Index()))
		case entry.IsEndOfArray():
			entry = core.Key("-")
		}
	}
	if entry.IsEndOfArray() && flags&AllowEndOfArray == 0 {
		return PathContext{}, fmt.Errorf("%w: %q: '-' is not allowed here", ErrMalformedPath, p.String())
	}

	if entry.IsKey() {
		if !parent.IsObjectLike() {
			return PathContext{}, fmt.Errorf("%w: %q: key %q addressed on %s", ErrTypeMismatch, p.String(), entry.Key(), parent.Kind())
		}
		if flags&VerifyFullPath != 0 {
			if _, ok := parent.FindMember(entry.Key()); !ok {
				return PathContext{}, fmt.Errorf("%w: %q", ErrKeyNotFound, p.String())
			}
		}
		return PathContext{parent: parent, entry: entry}, nil
	}

	if !parent.IsArrayLike() {
		return PathContext{}, fmt.Errorf("%w: %q: index addressed on %s", ErrTypeMismatch, p.String(), parent.Kind())
	}
	if entry.IsIndex() && entry.Index() >= parent.ArraySize() {
		return PathContext{}, fmt.Errorf("%w: %q: index %d, size %d", ErrIndexOutOfBounds, p.String(), entry.Index(), parent.ArraySize())
	}
	return PathContext{parent: parent, entry: entry}, nil
}

// Parent returns the container holding the target slot.
func (c PathContext) Parent() *core.Value { return c.parent }

// Entry returns the entry naming the target slot inside Parent.
func (c PathContext) Entry() core.PathEntry { return c.entry }

// IsRoot reports whether the context addresses the root itself.
func (c PathContext) IsRoot() bool { return c.root != nil }

// Value returns the value in the target slot, or nil when the slot is
// empty. The end-of-array slot is always empty.
func (c PathContext) Value() *core.Value {
	switch {
	case c.entry.IsIndex():
		return c.parent.ArrayAt(c.entry.Index())
	case c.entry.IsKey():
		v, _ := c.parent.FindMember(c.entry.Key())
		return v
	}
	return nil
}

// concrete returns p, the path c was looked up with, with a trailing "-"
// replaced by the entry it resolved to: the index of the last element, or
// the "-" key of an object.
func (c PathContext) concrete(p core.Path) core.Path {
	last, ok := p.Last()
	if !ok || !last.IsEndOfArray() {
		return p
	}
	if c.entry.IsEndOfArray() {
		return p.Parent().Append(core.Index(c.parent.ArraySize() - 1))
	}
	return p.Parent().Append(c.entry)
}

// last returns the value erase would remove: the last element for the
// end-of-array slot and the slot value otherwise.
func (c PathContext) last() *core.Value {
	if c.entry.IsEndOfArray() {
		return c.parent.ArrayAt(c.parent.ArraySize() - 1)
	}
	return c.Value()
}

// insert writes v into the slot. Arrays grow by one (appending for the
// end-of-array slot) and keys are inserted or overwritten.
func (c PathContext) insert(v *core.Value) error {
	var err error
	switch {
	case c.entry.IsEndOfArray():
		c.parent.ArrayPushBack(v)
	case c.entry.IsIndex():
		err = c.parent.ArrayInsert(c.entry.Index(), v)
	default:
		c.parent.SetMember(c.entry.Key(), v)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexOutOfBounds, err)
	}
	c.commit()
	return nil
}

// replace overwrites the value in an existing slot.
func (c PathContext) replace(v *core.Value) error {
	switch {
	case c.entry.IsEndOfArray():
		return fmt.Errorf("%w: cannot replace the end of an array", ErrMalformedPath)
	case c.entry.IsIndex():
		if err := c.parent.ArraySet(c.entry.Index(), v); err != nil {
			return fmt.Errorf("%w: %v", ErrIndexOutOfBounds, err)
		}
	default:
		if _, ok := c.parent.FindMember(c.entry.Key()); !ok {
			return fmt.Errorf("%w: %q", ErrKeyNotFound, c.entry.Key())
		}
		c.parent.SetMember(c.entry.Key(), v)
	}
	c.commit()
	return nil
}

// erase removes the value in the slot and returns it. The end-of-array
// slot erases the last element.
func (c PathContext) erase() (*core.Value, error) {
	var old *core.Value
	switch {
	case c.entry.IsEndOfArray():
		if old = c.parent.ArrayPopBack(); old == nil {
			return nil, fmt.Errorf("%w: cannot remove from an empty array", ErrIndexOutOfBounds)
		}
	case c.entry.IsIndex():
		var err error
		if old, err = c.parent.ArrayErase(c.entry.Index()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIndexOutOfBounds, err)
		}
	default:
		var ok bool
		if old, ok = c.parent.EraseMember(c.entry.Key()); !ok {
			return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, c.entry.Key())
		}
	}
	c.commit()
	return old, nil
}

// commit rebinds the root after the synthetic wrapper was modified. An
// emptied wrapper leaves a null root.
func (c PathContext) commit() {
	if c.root == nil {
		return
	}
	first := c.parent.ArrayAt(0)
	if first == c.root {
		return
	}
	c.root.Set(first)
}
