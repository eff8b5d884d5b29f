// Package dom diffs and patches hierarchical value trees.
//
// A Value is a dynamically typed tree of scalars, objects, arrays and nodes
// (a named object that also holds ordered children). Differences between
// two trees are expressed as a Patch of JSON Patch style operations
// addressed by JSON Pointer paths. Diff produces both the forward patch and
// the inverse patch undoing it, which makes undo stacks and change
// replication straightforward:
//
//	before := dom.MustParseJSON(`{"x":1,"y":2}`)
//	after := dom.MustParseJSON(`{"y":3,"z":4}`)
//
//	info := dom.Diff(before, after)
//	state, _ := info.Forward.Apply(before, dom.HaltOnFailure)
//	state, _ = info.Inverse.Apply(state, dom.HaltOnFailure)
package dom

import (
	"github.com/brunoga/dom/internal/core"
)

// Value is a node of a value tree.
type Value = core.Value

// Member is a key and value pair of an object or node.
type Member = core.Member

// Kind is the dynamic type of a Value.
type Kind = core.Kind

const (
	NullKind   = core.NullKind
	BoolKind   = core.BoolKind
	IntKind    = core.IntKind
	UintKind   = core.UintKind
	DoubleKind = core.DoubleKind
	StringKind = core.StringKind
	ObjectKind = core.ObjectKind
	ArrayKind  = core.ArrayKind
	NodeKind   = core.NodeKind
)

// Keys holding the name and the children of a node in its JSON, YAML and
// plain Go forms.
const (
	NodeNameKey     = core.NodeNameKey
	NodeChildrenKey = core.NodeChildrenKey
)

// WireKey returns the name a member key is written under in the JSON, YAML
// and Go forms. Keys that would read as NodeNameKey or NodeChildrenKey gain
// a leading "$".
func WireKey(key string) string { return core.WireKey(key) }

// Null returns a new null value.
func Null() *Value { return core.Null() }

// Bool returns a new boolean value.
func Bool(b bool) *Value { return core.Bool(b) }

// Int returns a new signed integer value.
func Int(i int64) *Value { return core.Int(i) }

// Uint returns a new unsigned integer value.
func Uint(u uint64) *Value { return core.Uint(u) }

// Double returns a new floating point value.
func Double(f float64) *Value { return core.Double(f) }

// String returns a new string value.
func String(s string) *Value { return core.String(s) }

// NewObject returns a new object holding members in order.
func NewObject(members ...Member) *Value { return core.NewObject(members...) }

// NewArray returns a new array holding elems in order.
func NewArray(elems ...*Value) *Value { return core.NewArray(elems...) }

// NewNode returns a new node with the given name and no properties or
// children.
func NewNode(name string) *Value { return core.NewNode(name) }

// M builds a Member for NewObject.
func M(key string, v *Value) Member { return core.M(key, v) }

// ParseJSON decodes a JSON document into a Value. Object member order is
// preserved and objects carrying a "$node" key become nodes.
func ParseJSON(data []byte) (*Value, error) {
	return core.ParseJSON(data)
}

// MustParseJSON is like ParseJSON but panics on error.
func MustParseJSON(s string) *Value {
	return core.MustParseJSON(s)
}

// ParseYAML decodes a YAML document into a Value, preserving mapping order.
func ParseYAML(data []byte) (*Value, error) {
	return core.ParseYAML(data)
}

// ToYAML encodes v as a YAML document.
func ToYAML(v *Value) ([]byte, error) {
	return core.ToYAML(v)
}

// FromGo converts a Go value into a Value. Structs use their json tags and
// may be turned into nodes with the dom tag.
func FromGo(v any) (*Value, error) {
	return core.FromGo(v)
}

// MustFromGo is like FromGo but panics on error.
func MustFromGo(v any) *Value {
	return core.MustFromGo(v)
}
