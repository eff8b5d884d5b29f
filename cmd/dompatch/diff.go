package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/brunoga/dom"
	"github.com/brunoga/dom/patch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	before, err := getDoc(cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	after, err := getDoc(cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	differs, err := diffDocs(cfg, cc.Out, before, after)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffDocs writes the patch between before and after to w and reports
// whether it has any operation.
func diffDocs(cfg *DiffConfig, w io.Writer, before, after *dom.Value) (bool, error) {
	opts := []dom.DiffOption{
		dom.DiffReplaceThreshold(cfg.Threshold),
		dom.DiffLogger(cfg.logger()),
	}
	for _, p := range cfg.Ignore {
		opts = append(opts, dom.IgnorePath(p))
	}
	info := dom.Diff(before, after, opts...)

	p, base := info.Forward, before
	if cfg.Reverse {
		p, base = info.Inverse, after
	}
	if cfg.RFC {
		var err error
		p, err = patch.Portable(p, base)
		if err != nil {
			return false, fmt.Errorf("error rewriting patch: %w", err)
		}
	}
	if err := cfg.writePatch(w, p); err != nil {
		return false, err
	}
	return !p.IsEmpty(), nil
}
