package core

import "math"

// EqualOption allows configuring the behavior of the Equal function.
type EqualOption interface {
	applyEqual(*equalConfig)
}

type equalConfig struct {
	ignoredPaths map[string]bool
}

type equalOptionFunc func(*equalConfig)

func (f equalOptionFunc) applyEqual(c *equalConfig) {
	f(c)
}

// EqualIgnorePath returns an option that tells Equal to ignore the value at
// the specified path in both operands.
func EqualIgnorePath(p Path) EqualOption {
	return equalOptionFunc(func(c *equalConfig) {
		if c.ignoredPaths == nil {
			c.ignoredPaths = make(map[string]bool)
		}
		c.ignoredPaths[p.String()] = true
	})
}

// Equal reports whether a and b are deeply equal. Object members are
// compared by key regardless of their order; array elements and node
// children are compared in order. Int and Uint values are equal when they
// hold the same integer; doubles never equal integers, so Int(1) and
// Double(1) differ.
func Equal(a, b *Value, opts ...EqualOption) bool {
	if len(opts) == 0 {
		return valueEqual(a, b, nil, nil)
	}
	config := &equalConfig{}
	for _, opt := range opts {
		opt.applyEqual(config)
	}
	if len(config.ignoredPaths) == 0 {
		return valueEqual(a, b, nil, nil)
	}
	return valueEqual(a, b, Path{}, config)
}

// Equal reports whether v and other are deeply equal.
func (v *Value) Equal(other *Value) bool {
	return valueEqual(v, other, nil, nil)
}

// valueEqual tracks the current path only when config carries ignored
// paths.
func valueEqual(a, b *Value, path Path, config *equalConfig) bool {
	if config != nil && config.ignoredPaths[path.String()] {
		return true
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return integersEqual(a, b)
	}

	switch a.Kind() {
	case NullKind:
		return true
	case BoolKind:
		return a.b == b.b
	case IntKind:
		return a.i == b.i
	case UintKind:
		return a.u == b.u
	case DoubleKind:
		return a.f == b.f || (math.IsNaN(a.f) && math.IsNaN(b.f))
	case StringKind:
		return a.s == b.s
	case ObjectKind:
		return membersEqual(a, b, path, config)
	case ArrayKind:
		return elementsEqual(a, b, path, config)
	case NodeKind:
		return a.s == b.s && membersEqual(a, b, path, config) && elementsEqual(a, b, path, config)
	}
	return false
}

func integersEqual(a, b *Value) bool {
	switch {
	case a.Kind() == IntKind && b.Kind() == UintKind:
		return a.i >= 0 && uint64(a.i) == b.u
	case a.Kind() == UintKind && b.Kind() == IntKind:
		return b.i >= 0 && uint64(b.i) == a.u
	}
	return false
}

func membersEqual(a, b *Value, path Path, config *equalConfig) bool {
	if len(a.members) != len(b.members) {
		return false
	}
	for i, m := range a.members {
		var other *Value
		// Members of equal objects are usually in the same order.
		if b.members[i].Key == m.Key {
			other = b.members[i].Value
		} else {
			var ok bool
			if other, ok = b.FindMember(m.Key); !ok {
				return false
			}
		}
		var childPath Path
		if config != nil {
			childPath = path.AppendKey(m.Key)
		}
		if !valueEqual(m.Value, other, childPath, config) {
			return false
		}
	}
	return true
}

func elementsEqual(a, b *Value, path Path, config *equalConfig) bool {
	if len(a.elems) != len(b.elems) {
		return false
	}
	for i := range a.elems {
		var childPath Path
		if config != nil {
			childPath = path.AppendIndex(i)
		}
		if !valueEqual(a.elems[i], b.elems[i], childPath, config) {
			return false
		}
	}
	return true
}
