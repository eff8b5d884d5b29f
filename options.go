package dom

import (
	"log/slog"

	"github.com/brunoga/dom/internal/engine"
)

// DiffOption allows configuring the behavior of Diff.
type DiffOption = engine.DiffOption

// EqualOption allows configuring the behavior of Equal.
type EqualOption = engine.EqualOption

// ApplyOption allows configuring patch application.
type ApplyOption = engine.ApplyOption

const (
	// NoReplace always diffs arrays element by element.
	NoReplace = engine.NoReplace
	// AlwaysFullReplace replaces every changed array as a whole.
	AlwaysFullReplace = engine.AlwaysFullReplace
	// DefaultReplaceThreshold is the threshold Diff uses by default.
	DefaultReplaceThreshold = engine.DefaultReplaceThreshold
)

// DiffReplaceThreshold sets how many index-aligned elements of an array must
// differ before Diff replaces the array as a whole.
func DiffReplaceThreshold(n int) DiffOption {
	return engine.DiffReplaceThreshold(n)
}

// DiffLogger sets the logger receiving debug records about the diff.
func DiffLogger(logger *slog.Logger) DiffOption {
	return engine.DiffLogger(logger)
}

// ApplyLogger sets the logger receiving debug records about failed
// operations.
func ApplyLogger(logger *slog.Logger) ApplyOption {
	return engine.ApplyLogger(logger)
}

// IgnorePath returns an option that tells both Diff and Equal to ignore
// changes at the specified path and below it. Arrays holding an ignored path
// are never replaced as a whole. A change that adds, removes or replaces an
// ancestor of the path as a whole, such as removing its parent key, still
// carries the value below it.
func IgnorePath(p Path) interface {
	DiffOption
	EqualOption
} {
	return engine.IgnorePath(p)
}
