package core

import (
	"reflect"
	"strings"
)

// StructTag holds the options of a struct field read from its `dom` and
// `json` tags.
type StructTag struct {
	Name      string
	Ignore    bool
	OmitEmpty bool
	NodeName  bool
	Children  bool
}

// ParseTag reads the field's tags. The member name comes from the json tag
// when present. The dom tag accepts "-", "name" (the field holds the node
// name) and "children" (the field holds the node children); either of the
// last two turns the struct into a node.
func ParseTag(field reflect.StructField) StructTag {
	st := StructTag{Name: field.Name}

	if jsonTag, ok := field.Tag.Lookup("json"); ok {
		parts := strings.Split(jsonTag, ",")
		if parts[0] == "-" && len(parts) == 1 {
			st.Ignore = true
		} else if parts[0] != "" {
			st.Name = parts[0]
		}
		for _, opt := range parts[1:] {
			if strings.TrimSpace(opt) == "omitempty" {
				st.OmitEmpty = true
			}
		}
	}

	tag := field.Tag.Get("dom")
	if tag == "" {
		return st
	}
	for _, part := range strings.Split(tag, ",") {
		switch strings.TrimSpace(part) {
		case "-":
			st.Ignore = true
		case "name":
			st.NodeName = true
		case "children":
			st.Children = true
		case "omitempty":
			st.OmitEmpty = true
		}
	}
	return st
}
