package core

import (
	"github.com/huandu/go-clone"
)

// Clone returns a deep copy of v. The copy shares no memory with v.
func (v *Value) Clone() *Value {
	if v == nil {
		return Null()
	}
	return clone.Clone(v).(*Value)
}

// Clone is the function form of Value.Clone. A nil input clones to null.
func Clone(v *Value) *Value {
	return v.Clone()
}
