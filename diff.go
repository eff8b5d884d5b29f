package dom

import (
	"github.com/brunoga/dom/internal/engine"
)

// Differ computes patches between two value trees. A Differ is safe for
// concurrent use.
type Differ = engine.Differ

// NewDiffer creates a Differ with the given options.
func NewDiffer(opts ...DiffOption) *Differ {
	return engine.NewDiffer(opts...)
}

// Diff compares before and after and returns the patch turning before into
// after together with its inverse. Neither input is modified.
//
// Objects are compared key by key, arrays index by index. Arrays in which
// too many aligned elements differ are replaced as a whole, see
// DiffReplaceThreshold.
func Diff(before, after *Value, opts ...DiffOption) PatchInfo {
	return engine.GenerateHierarchicalDeltaPatch(before, after, opts...)
}

// GenerateHierarchicalDeltaPatch is Diff under the name used by the wire
// protocol documentation.
func GenerateHierarchicalDeltaPatch(before, after *Value, opts ...DiffOption) PatchInfo {
	return engine.GenerateHierarchicalDeltaPatch(before, after, opts...)
}
