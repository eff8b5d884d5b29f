package core

import (
	"reflect"
	"sync"
)

type FieldInfo struct {
	Index int
	Tag   StructTag
}

type TypeInfo struct {
	Fields             []FieldInfo
	NameFieldIndex     int
	ChildrenFieldIndex int
}

// IsNode reports whether values of the type convert to a node.
func (t *TypeInfo) IsNode() bool {
	return t.NameFieldIndex >= 0 || t.ChildrenFieldIndex >= 0
}

var (
	typeCache sync.Map // map[reflect.Type]*TypeInfo
)

// GetTypeInfo returns the cached conversion table for a struct type.
// Unexported and ignored fields are left out.
func GetTypeInfo(typ reflect.Type) *TypeInfo {
	if info, ok := typeCache.Load(typ); ok {
		return info.(*TypeInfo)
	}

	info := &TypeInfo{
		NameFieldIndex:     -1,
		ChildrenFieldIndex: -1,
	}
	if typ.Kind() == reflect.Struct {
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			tag := ParseTag(field)
			if tag.Ignore {
				continue
			}
			switch {
			case tag.NodeName && field.Type.Kind() == reflect.String:
				info.NameFieldIndex = i
			case tag.Children && (field.Type.Kind() == reflect.Slice || field.Type.Kind() == reflect.Array):
				info.ChildrenFieldIndex = i
			default:
				info.Fields = append(info.Fields, FieldInfo{Index: i, Tag: tag})
			}
		}
	}

	actual, _ := typeCache.LoadOrStore(typ, info)
	return actual.(*TypeInfo)
}
