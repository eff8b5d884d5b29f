package dom

import (
	"github.com/brunoga/dom/internal/core"
)

// Copy returns a deep copy of v sharing no memory with it. A nil v copies
// to a null value.
func Copy(v *Value) *Value {
	return core.Clone(v)
}
