package core

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Keys reserved for representing a node as a plain object in JSON, YAML and
// Go values.
const (
	NodeNameKey     = "$node"
	NodeChildrenKey = "$children"
)

// WireKey returns the name a member is written under in the JSON, YAML and
// Go forms. Names that read as a reserved node key, "$node" or "$children"
// behind any number of "$", get one more "$" so that a plain object is
// never read back as a node.
func WireKey(key string) string {
	if isReservedKey(key) {
		return "$" + key
	}
	return key
}

// memberKey undoes WireKey.
func memberKey(wire string) string {
	if strings.HasPrefix(wire, "$") && isReservedKey(wire[1:]) {
		return wire[1:]
	}
	return wire
}

func isReservedKey(key string) bool {
	name := strings.TrimLeft(key, "$")
	return len(name) < len(key) && (name == "node" || name == "children")
}

// FromGo converts a Go value into a Value. Structs become objects (or nodes
// when a field is tagged `dom:"name"` or `dom:"children"`), maps become
// objects with their keys sorted, slices and arrays become arrays. Member
// names follow the json tag of each field.
func FromGo(v any) (*Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Value:
		return x.Clone(), nil
	case Value:
		return x.Clone(), nil
	case json.Number:
		return numberFromString(string(x))
	case yaml.MapSlice:
		return fromMapSlice(x)
	}
	return fromReflect(reflect.ValueOf(v))
}

// MustFromGo is like FromGo but panics on error.
func MustFromGo(v any) *Value {
	res, err := FromGo(v)
	if err != nil {
		panic(err)
	}
	return res
}

var valueType = reflect.TypeOf(Value{})

func fromReflect(rv reflect.Value) (*Value, error) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null(), nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return Null(), nil
	}
	if rv.CanInterface() {
		switch x := rv.Interface().(type) {
		case json.Number:
			return numberFromString(string(x))
		case yaml.MapSlice:
			return fromMapSlice(x)
		}
	}
	if rv.Type() == valueType {
		if rv.CanAddr() {
			return rv.Addr().Interface().(*Value).Clone(), nil
		}
		v := rv.Interface().(Value)
		return v.Clone(), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Double(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		return fromList(rv, NewArray())
	case reflect.Array:
		return fromList(rv, NewArray())
	case reflect.Map:
		return fromMap(rv)
	case reflect.Struct:
		return fromStruct(rv)
	}
	return nil, fmt.Errorf("unsupported type: %s", rv.Type())
}

func fromList(rv reflect.Value, dst *Value) (*Value, error) {
	for i := 0; i < rv.Len(); i++ {
		elem, err := fromReflect(rv.Index(i))
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		dst.ArrayPushBack(elem)
	}
	return dst, nil
}

func fromMap(rv reflect.Value) (*Value, error) {
	if rv.IsNil() {
		return Null(), nil
	}
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: mapKeyString(iter.Key()), val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	obj := NewObject()
	for _, e := range entries {
		val, err := fromReflect(e.val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.key, err)
		}
		obj.SetMember(e.key, val)
	}
	return nodeFromObject(obj), nil
}

func mapKeyString(k reflect.Value) string {
	for k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10)
	}
	return fmt.Sprint(k.Interface())
}

func fromStruct(rv reflect.Value) (*Value, error) {
	info := GetTypeInfo(rv.Type())

	var res *Value
	if info.IsNode() {
		name := ""
		if info.NameFieldIndex >= 0 {
			name = rv.Field(info.NameFieldIndex).String()
		}
		res = NewNode(name)
		if info.ChildrenFieldIndex >= 0 {
			if _, err := fromList(rv.Field(info.ChildrenFieldIndex), res); err != nil {
				return nil, fmt.Errorf("%s: %w", rv.Type().Field(info.ChildrenFieldIndex).Name, err)
			}
		}
	} else {
		res = NewObject()
	}

	for _, f := range info.Fields {
		fv := rv.Field(f.Index)
		if f.Tag.OmitEmpty && fv.IsZero() {
			continue
		}
		val, err := fromReflect(fv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Tag.Name, err)
		}
		res.SetMember(f.Tag.Name, val)
	}
	return res, nil
}

func fromMapSlice(ms yaml.MapSlice) (*Value, error) {
	obj := NewObject()
	for _, item := range ms {
		key := fmt.Sprint(item.Key)
		val, err := FromGo(item.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		obj.SetMember(key, val)
	}
	return nodeFromObject(obj), nil
}

// nodeFromObject turns an object using the reserved node keys back into a
// node and restores member names written with WireKey. Other objects are
// returned unchanged.
func nodeFromObject(obj *Value) *Value {
	nameVal, ok := obj.FindMember(NodeNameKey)
	children, hasChildren := obj.FindMember(NodeChildrenKey)
	isNode := ok && nameVal.Kind() == StringKind && (!hasChildren || children.Kind() == ArrayKind)
	if !isNode && !hasWireKeys(obj) {
		return obj
	}

	res := NewObject()
	if isNode {
		res = NewNode(nameVal.Str())
		if hasChildren {
			res.elems = children.elems
		}
	}
	for _, m := range obj.members {
		if isNode && (m.Key == NodeNameKey || m.Key == NodeChildrenKey) {
			continue
		}
		res.SetMember(memberKey(m.Key), m.Value)
	}
	return res
}

func hasWireKeys(obj *Value) bool {
	for _, m := range obj.members {
		if memberKey(m.Key) != m.Key {
			return true
		}
	}
	return false
}

func numberFromString(s string) (*Value, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint(u), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Double(f), nil
}

// Interface converts v to plain Go values: nil, bool, int64, uint64,
// float64, string, []any and map[string]any. Nodes become maps carrying
// the reserved node keys.
func (v *Value) Interface() any {
	switch v.Kind() {
	case BoolKind:
		return v.b
	case IntKind:
		return v.i
	case UintKind:
		return v.u
	case DoubleKind:
		return v.f
	case StringKind:
		return v.s
	case ObjectKind:
		m := make(map[string]any, len(v.members))
		for _, member := range v.members {
			m[WireKey(member.Key)] = member.Value.Interface()
		}
		return m
	case ArrayKind:
		return elementsInterface(v.elems)
	case NodeKind:
		m := make(map[string]any, len(v.members)+2)
		for _, member := range v.members {
			m[WireKey(member.Key)] = member.Value.Interface()
		}
		m[NodeNameKey] = v.s
		m[NodeChildrenKey] = elementsInterface(v.elems)
		return m
	}
	return nil
}

func elementsInterface(elems []*Value) []any {
	s := make([]any, len(elems))
	for i, e := range elems {
		s[i] = e.Interface()
	}
	return s
}
