package dom

import (
	"github.com/brunoga/dom/internal/engine"
)

// Equal performs a deep equality check between a and b. Object members are
// compared regardless of their order and numbers of different kinds are
// never equal. You can customize behavior using EqualOption (e.g.,
// IgnorePath).
func Equal(a, b *Value, opts ...EqualOption) bool {
	return engine.Equal(a, b, opts...)
}
