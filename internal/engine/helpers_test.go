package engine

import "github.com/brunoga/dom/internal/core"

func doc(s string) *core.Value {
	return core.MustParseJSON(s)
}

func path(s string) core.Path {
	return core.MustParsePath(s)
}
