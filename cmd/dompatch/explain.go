package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/brunoga/dom"
)

func explain(cfg *ExplainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Explain.Parse(cc, args)
	if err != nil {
		cfg.Explain.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: explain requires a patch and optionally the document it applies to", cli.ErrUsage)
	}
	p, err := getPatch(cc, args[0])
	if err != nil {
		return err
	}
	var doc *dom.Value
	if len(args) == 2 {
		if doc, err = getDoc(cc, args[1]); err != nil {
			return fmt.Errorf("error decoding %s: %w", args[1], err)
		}
	}
	return explainPatch(cc.Out, p, doc, newPalette(cfg.colors(cc.Out)))
}

type palette struct {
	add, remove, replace, relocate, test func(a ...any) string
}

func newPalette(enabled bool) *palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &palette{
		add:      mk(color.FgGreen),
		remove:   mk(color.FgRed),
		replace:  mk(color.FgYellow),
		relocate: mk(color.FgCyan),
		test:     mk(color.Faint),
	}
}

func (pal *palette) op(t dom.OpType) func(a ...any) string {
	switch t {
	case dom.OpAdd:
		return pal.add
	case dom.OpRemove:
		return pal.remove
	case dom.OpReplace:
		return pal.replace
	case dom.OpCopy, dom.OpMove:
		return pal.relocate
	}
	return pal.test
}

// explainPatch writes the summary of every operation of p. With a document,
// replaced strings are followed by an inline diff of the old and new text.
func explainPatch(w io.Writer, p dom.Patch, doc *dom.Value, pal *palette) error {
	var state *dom.Value
	if doc != nil {
		state = dom.Copy(doc)
	}
	for i, op := range p.Operations() {
		fmt.Fprintln(w, pal.op(op.Type())(op.Summary()))
		if state == nil {
			continue
		}
		if op.Type() == dom.OpReplace {
			old := state.FindPath(op.Path())
			if old != nil && old.Kind() == dom.StringKind && op.Value().Kind() == dom.StringKind {
				fmt.Fprintf(w, "    %s\n", pal.stringDiff(old.Str(), op.Value().Str()))
			}
		}
		if err := op.ApplyInPlace(state); err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
	}
	return nil
}

func (pal *palette) stringDiff(from, to string) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, false))
	b := &strings.Builder{}
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			b.WriteString(pal.remove("[-" + d.Text + "-]"))
		case diffpatch.DiffInsert:
			b.WriteString(pal.add("{+" + d.Text + "+}"))
		case diffpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
