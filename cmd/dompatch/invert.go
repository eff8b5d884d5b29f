package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/brunoga/dom"
	"github.com/brunoga/dom/patch"
)

func invert(cfg *InvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Invert.Parse(cc, args)
	if err != nil {
		cfg.Invert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: invert requires 2 arguments, a patch and the document it applies to", cli.ErrUsage)
	}
	p, err := getPatch(cc, args[0])
	if err != nil {
		return err
	}
	doc, err := getDoc(cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	return invertPatch(cfg, cc.Out, p, doc)
}

func invertPatch(cfg *InvertConfig, w io.Writer, p dom.Patch, doc *dom.Value) error {
	inv, err := p.Inverse(doc)
	if err != nil {
		return fmt.Errorf("error inverting patch: %w", err)
	}
	if cfg.RFC {
		after, err := p.Apply(doc, dom.HaltOnFailure)
		if err != nil {
			return fmt.Errorf("error applying patch: %w", err)
		}
		if inv, err = patch.Portable(inv, after); err != nil {
			return fmt.Errorf("error rewriting patch: %w", err)
		}
	}
	return cfg.writePatch(w, inv)
}
