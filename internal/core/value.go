package core

import (
	"fmt"
	"strconv"
)

// Kind identifies the type of a Value.
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	UintKind
	DoubleKind
	StringKind
	ObjectKind
	ArrayKind
	NodeKind
)

var kindNames = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	IntKind:    "int",
	UintKind:   "uint",
	DoubleKind: "double",
	StringKind: "string",
	ObjectKind: "object",
	ArrayKind:  "array",
	NodeKind:   "node",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Member is a key/value pair of an object-like Value.
type Member struct {
	Key   string
	Value *Value
}

// Value is a hierarchical document value. Objects keep their members in
// insertion order. A Node is a named value carrying both keyed properties and
// ordered children, so it is object-like and array-like at the same time.
//
// Containers hold their children by pointer: a child reference stays valid
// while its siblings are inserted or erased.
//
// The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	u       uint64
	f       float64
	s       string
	members []Member
	elems   []*Value
}

func Null() *Value { return &Value{} }

func Bool(b bool) *Value { return &Value{kind: BoolKind, b: b} }

func Int(i int64) *Value { return &Value{kind: IntKind, i: i} }

func Uint(u uint64) *Value { return &Value{kind: UintKind, u: u} }

func Double(f float64) *Value { return &Value{kind: DoubleKind, f: f} }

func String(s string) *Value { return &Value{kind: StringKind, s: s} }

// NewObject returns an object holding the given members in order. Later
// duplicates overwrite earlier ones.
func NewObject(members ...Member) *Value {
	v := &Value{kind: ObjectKind}
	for _, m := range members {
		v.SetMember(m.Key, m.Value)
	}
	return v
}

// NewArray returns an array holding the given elements.
func NewArray(elems ...*Value) *Value {
	v := &Value{kind: ArrayKind, elems: make([]*Value, 0, len(elems))}
	for _, e := range elems {
		v.elems = append(v.elems, orNull(e))
	}
	return v
}

// NewNode returns an empty node with the given name.
func NewNode(name string) *Value {
	return &Value{kind: NodeKind, s: name}
}

// M is a shorthand for building a Member.
func M(key string, v *Value) Member {
	return Member{Key: key, Value: v}
}

// With sets a member and returns the receiver, for building literals.
func (v *Value) With(key string, val *Value) *Value {
	v.SetMember(key, val)
	return v
}

// WithChildren appends children to an array or node and returns the
// receiver.
func (v *Value) WithChildren(children ...*Value) *Value {
	for _, c := range children {
		v.ArrayPushBack(c)
	}
	return v
}

func orNull(v *Value) *Value {
	if v == nil {
		return Null()
	}
	return v
}

// Kind returns the kind of v. A nil Value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return NullKind
	}
	return v.kind
}

func (v *Value) IsNull() bool { return v.Kind() == NullKind }

func (v *Value) IsNode() bool { return v.Kind() == NodeKind }

// IsObjectLike reports whether v has keyed members (objects and nodes).
func (v *Value) IsObjectLike() bool {
	k := v.Kind()
	return k == ObjectKind || k == NodeKind
}

// IsArrayLike reports whether v has ordered elements (arrays and nodes).
func (v *Value) IsArrayLike() bool {
	k := v.Kind()
	return k == ArrayKind || k == NodeKind
}

// IsContainer reports whether v is an object, an array or a node.
func (v *Value) IsContainer() bool {
	return v.IsObjectLike() || v.IsArrayLike()
}

func (v *Value) Bool() bool {
	if v.Kind() != BoolKind {
		return false
	}
	return v.b
}

func (v *Value) Int() int64 {
	if v.Kind() != IntKind {
		return 0
	}
	return v.i
}

func (v *Value) Uint() uint64 {
	if v.Kind() != UintKind {
		return 0
	}
	return v.u
}

func (v *Value) Double() float64 {
	if v.Kind() != DoubleKind {
		return 0
	}
	return v.f
}

// Str returns the string payload of a string value.
func (v *Value) Str() string {
	if v.Kind() != StringKind {
		return ""
	}
	return v.s
}

// NodeName returns the name of a node, or "" for other kinds.
func (v *Value) NodeName() string {
	if v.Kind() != NodeKind {
		return ""
	}
	return v.s
}

func (v *Value) SetNodeName(name string) {
	if v.Kind() == NodeKind {
		v.s = name
	}
}

// ArraySize returns the number of elements of an array-like value.
func (v *Value) ArraySize() int {
	if !v.IsArrayLike() {
		return 0
	}
	return len(v.elems)
}

// ArrayAt returns the element at i, or nil if i is out of range.
func (v *Value) ArrayAt(i int) *Value {
	if !v.IsArrayLike() || i < 0 || i >= len(v.elems) {
		return nil
	}
	return v.elems[i]
}

// Elements returns the elements of an array-like value. The returned slice
// must not be modified.
func (v *Value) Elements() []*Value {
	if !v.IsArrayLike() {
		return nil
	}
	return v.elems
}

// ArrayInsert inserts elem before position i, shifting later elements
// right. i may be equal to the size, which appends.
func (v *Value) ArrayInsert(i int, elem *Value) error {
	if !v.IsArrayLike() {
		return fmt.Errorf("cannot insert into %s", v.Kind())
	}
	if i < 0 || i > len(v.elems) {
		return fmt.Errorf("index %d out of range [0, %d]", i, len(v.elems))
	}
	v.elems = append(v.elems, nil)
	copy(v.elems[i+1:], v.elems[i:])
	v.elems[i] = orNull(elem)
	return nil
}

// ArrayErase removes and returns the element at i, shifting later elements
// left.
func (v *Value) ArrayErase(i int) (*Value, error) {
	if !v.IsArrayLike() {
		return nil, fmt.Errorf("cannot erase from %s", v.Kind())
	}
	if i < 0 || i >= len(v.elems) {
		return nil, fmt.Errorf("index %d out of range [0, %d)", i, len(v.elems))
	}
	old := v.elems[i]
	copy(v.elems[i:], v.elems[i+1:])
	v.elems[len(v.elems)-1] = nil
	v.elems = v.elems[:len(v.elems)-1]
	return old, nil
}

// ArraySet overwrites the element at i.
func (v *Value) ArraySet(i int, elem *Value) error {
	if !v.IsArrayLike() {
		return fmt.Errorf("cannot set element of %s", v.Kind())
	}
	if i < 0 || i >= len(v.elems) {
		return fmt.Errorf("index %d out of range [0, %d)", i, len(v.elems))
	}
	v.elems[i] = orNull(elem)
	return nil
}

// ArrayPushBack appends elem. It is a no-op on values that are not
// array-like.
func (v *Value) ArrayPushBack(elem *Value) {
	if !v.IsArrayLike() {
		return
	}
	v.elems = append(v.elems, orNull(elem))
}

// ArrayPopBack removes and returns the last element, or nil when there is
// none.
func (v *Value) ArrayPopBack() *Value {
	if !v.IsArrayLike() || len(v.elems) == 0 {
		return nil
	}
	last := v.elems[len(v.elems)-1]
	v.elems[len(v.elems)-1] = nil
	v.elems = v.elems[:len(v.elems)-1]
	return last
}

// MemberCount returns the number of members of an object-like value.
func (v *Value) MemberCount() int {
	if !v.IsObjectLike() {
		return 0
	}
	return len(v.members)
}

// Members returns the members in insertion order. The returned slice must
// not be modified.
func (v *Value) Members() []Member {
	if !v.IsObjectLike() {
		return nil
	}
	return v.members
}

func (v *Value) memberIndex(key string) int {
	for i := range v.members {
		if v.members[i].Key == key {
			return i
		}
	}
	return -1
}

// FindMember returns the member named key.
func (v *Value) FindMember(key string) (*Value, bool) {
	if !v.IsObjectLike() {
		return nil, false
	}
	if i := v.memberIndex(key); i >= 0 {
		return v.members[i].Value, true
	}
	return nil, false
}

// SetMember inserts the member or overwrites it in place when the key is
// already present. It is a no-op on values that are not object-like.
func (v *Value) SetMember(key string, val *Value) {
	if !v.IsObjectLike() {
		return
	}
	val = orNull(val)
	if i := v.memberIndex(key); i >= 0 {
		v.members[i].Value = val
		return
	}
	v.members = append(v.members, Member{Key: key, Value: val})
}

// EraseMember removes the member named key and returns its value.
func (v *Value) EraseMember(key string) (*Value, bool) {
	if !v.IsObjectLike() {
		return nil, false
	}
	i := v.memberIndex(key)
	if i < 0 {
		return nil, false
	}
	old := v.members[i].Value
	copy(v.members[i:], v.members[i+1:])
	v.members[len(v.members)-1] = Member{}
	v.members = v.members[:len(v.members)-1]
	return old, true
}

// FindChild returns the direct child addressed by e, or nil. An index entry
// addressing a plain object is looked up as the matching decimal key.
func (v *Value) FindChild(e PathEntry) *Value {
	switch {
	case e.IsIndex():
		if v.IsArrayLike() {
			return v.ArrayAt(e.Index())
		}
		if v.Kind() == ObjectKind {
			child, _ := v.FindMember(strconv.Itoa(e.Index()))
			return child
		}
	case e.IsKey():
		child, _ := v.FindMember(e.Key())
		return child
	}
	return nil
}

// FindPath returns the value at p, or nil if p does not resolve.
func (v *Value) FindPath(p Path) *Value {
	cur := v
	for _, e := range p {
		if cur = cur.FindChild(e); cur == nil {
			return nil
		}
	}
	return cur
}

// FindMutablePath is FindPath for callers that intend to modify the result.
// Values are held by pointer so the result aliases the tree.
func (v *Value) FindMutablePath(p Path) *Value {
	return v.FindPath(p)
}

// Set overwrites v with a shallow copy of other. Children are shared but the
// member and element lists are not.
func (v *Value) Set(other *Value) {
	if other == nil {
		*v = Value{}
		return
	}
	*v = *other
	if other.members != nil {
		v.members = append([]Member(nil), other.members...)
	}
	if other.elems != nil {
		v.elems = append([]*Value(nil), other.elems...)
	}
}

func (v *Value) String() string {
	if v == nil {
		return "null"
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s: %v>", v.kind, err)
	}
	return string(b)
}
