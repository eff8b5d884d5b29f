package core

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
)

// ParseYAML decodes a YAML document keeping the order of mapping keys.
// Integers that fit an int64 decode as Int so that a YAML document and its
// JSON equivalent produce equal values.
func ParseYAML(data []byte) (*Value, error) {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return fromYAML(raw)
}

func fromYAML(raw any) (*Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case uint64:
		if x <= math.MaxInt64 {
			return Int(int64(x)), nil
		}
		return Uint(x), nil
	case yaml.MapSlice:
		obj := NewObject()
		for _, item := range x {
			key := fmt.Sprint(item.Key)
			val, err := fromYAML(item.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			obj.SetMember(key, val)
		}
		return nodeFromObject(obj), nil
	case []any:
		arr := NewArray()
		for i, e := range x {
			val, err := fromYAML(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr.ArrayPushBack(val)
		}
		return arr, nil
	}
	return FromGo(raw)
}

// ToYAML encodes v as a YAML document keeping member order.
func ToYAML(v *Value) ([]byte, error) {
	return yaml.Marshal(v.yamlValue())
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (v *Value) MarshalYAML() (any, error) {
	return v.yamlValue(), nil
}

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (v *Value) UnmarshalYAML(data []byte) error {
	parsed, err := ParseYAML(data)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

func (v *Value) yamlValue() any {
	switch v.Kind() {
	case ObjectKind:
		return yamlMembers(v.members, make(yaml.MapSlice, 0, len(v.members)))
	case ArrayKind:
		return yamlElements(v.elems)
	case NodeKind:
		ms := make(yaml.MapSlice, 0, len(v.members)+2)
		ms = append(ms, yaml.MapItem{Key: NodeNameKey, Value: v.s})
		ms = yamlMembers(v.members, ms)
		return append(ms, yaml.MapItem{Key: NodeChildrenKey, Value: yamlElements(v.elems)})
	}
	return v.Interface()
}

func yamlMembers(members []Member, ms yaml.MapSlice) yaml.MapSlice {
	for _, m := range members {
		ms = append(ms, yaml.MapItem{Key: WireKey(m.Key), Value: m.Value.yamlValue()})
	}
	return ms
}

func yamlElements(elems []*Value) []any {
	s := make([]any, len(elems))
	for i, e := range elems {
		s[i] = e.yamlValue()
	}
	return s
}
