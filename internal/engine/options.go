package engine

import (
	"log/slog"
	"strings"

	"github.com/brunoga/dom/internal/core"
)

// Array replace thresholds for DiffReplaceThreshold.
const (
	// NoReplace always diffs arrays element by element.
	NoReplace = -1
	// AlwaysFullReplace replaces any array that changed as a whole.
	AlwaysFullReplace = 0
	// DefaultReplaceThreshold is the number of differing aligned elements at
	// which an array is replaced as a whole.
	DefaultReplaceThreshold = 3
)

// DiffOption allows configuring the behavior of the Differ.
type DiffOption interface {
	applyDiffOption(*diffConfig)
}

// EqualOption allows configuring the behavior of the Equal function.
type EqualOption interface {
	asCoreEqualOption() core.EqualOption
}

// ApplyOption allows configuring patch application.
type ApplyOption interface {
	applyApplyOption(*applyConfig)
}

type diffConfig struct {
	ignoredPaths     map[string]bool
	replaceThreshold int
	logger           *slog.Logger
}

func newDiffConfig(opts []DiffOption) *diffConfig {
	config := &diffConfig{
		replaceThreshold: DefaultReplaceThreshold,
	}
	for _, opt := range opts {
		opt.applyDiffOption(config)
	}
	return config
}

func (c *diffConfig) ignored(p core.Path) bool {
	return len(c.ignoredPaths) > 0 && c.ignoredPaths[p.String()]
}

// ignoresBelow reports whether an ignored path lies strictly below p.
func (c *diffConfig) ignoresBelow(p core.Path) bool {
	if len(c.ignoredPaths) == 0 {
		return false
	}
	prefix := p.String() + "/"
	for ignored := range c.ignoredPaths {
		if strings.HasPrefix(ignored, prefix) {
			return true
		}
	}
	return false
}

func (c *diffConfig) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

type diffOptionFunc func(*diffConfig)

func (f diffOptionFunc) applyDiffOption(c *diffConfig) {
	f(c)
}

// DiffReplaceThreshold sets how many index-aligned elements of an array
// must differ before the array is replaced as a whole. NoReplace disables
// whole-array replacement and AlwaysFullReplace replaces every changed
// array.
func DiffReplaceThreshold(n int) DiffOption {
	return diffOptionFunc(func(c *diffConfig) {
		if n < 0 {
			n = NoReplace
		}
		c.replaceThreshold = n
	})
}

// DiffLogger sets the logger receiving debug records about the diff.
func DiffLogger(logger *slog.Logger) DiffOption {
	return diffOptionFunc(func(c *diffConfig) {
		c.logger = logger
	})
}

type applyConfig struct {
	logger *slog.Logger
}

func newApplyConfig(opts []ApplyOption) *applyConfig {
	config := &applyConfig{}
	for _, opt := range opts {
		opt.applyApplyOption(config)
	}
	return config
}

func (c *applyConfig) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

type applyOptionFunc func(*applyConfig)

func (f applyOptionFunc) applyApplyOption(c *applyConfig) {
	f(c)
}

// ApplyLogger sets the logger receiving debug records about failed
// operations.
func ApplyLogger(logger *slog.Logger) ApplyOption {
	return applyOptionFunc(func(c *applyConfig) {
		c.logger = logger
	})
}

type unifiedOption struct {
	path core.Path
}

func (u unifiedOption) asCoreEqualOption() core.EqualOption {
	return core.EqualIgnorePath(u.path)
}

func (u unifiedOption) applyDiffOption(c *diffConfig) {
	if c.ignoredPaths == nil {
		c.ignoredPaths = make(map[string]bool)
	}
	c.ignoredPaths[u.path.String()] = true
}

// IgnorePath returns an option that tells Diff and Equal to ignore changes
// at the specified path and below it. Arrays holding an ignored path are
// always diffed element by element. A change that adds, removes or replaces
// an ancestor of the path as a whole still carries the value below it.
func IgnorePath(p core.Path) interface {
	DiffOption
	EqualOption
} {
	return unifiedOption{path: core.NewPath(p...)}
}

// Equal reports whether a and b are deeply equal.
func Equal(a, b *core.Value, opts ...EqualOption) bool {
	coreOpts := make([]core.EqualOption, 0, len(opts))
	for _, opt := range opts {
		coreOpts = append(coreOpts, opt.asCoreEqualOption())
	}
	return core.Equal(a, b, coreOpts...)
}
