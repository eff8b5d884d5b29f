package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/brunoga/dom"
	"github.com/brunoga/dom/patch"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		cfg.Apply.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: apply requires 2 arguments, a patch and a document to which to apply it", cli.ErrUsage)
	}
	p, err := getPatch(cc, args[0])
	if err != nil {
		return err
	}
	doc, err := getDoc(cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	return applyPatch(cfg, cc.Out, p, doc)
}

func applyPatch(cfg *ApplyConfig, w io.Writer, p dom.Patch, doc *dom.Value) error {
	var (
		res *dom.Value
		err error
	)
	switch {
	case cfg.RFC:
		res, err = applyRFC(p, doc)
	case cfg.K:
		// Failed operations only show up in the log.
		res, err = p.Apply(doc, dom.IgnoreFailureAndContinue, dom.ApplyLogger(cfg.logger()))
		if err != nil {
			cfg.logger().Warn("last operation failed", "error", err)
			err = nil
		}
	default:
		res, err = p.Apply(doc, dom.HaltOnFailure, dom.ApplyLogger(cfg.logger()))
	}
	if err != nil {
		return fmt.Errorf("error applying patch: %w", err)
	}
	return cfg.writeValue(w, res)
}

func applyRFC(p dom.Patch, doc *dom.Value) (*dom.Value, error) {
	in, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out, err := patch.ApplyJSON(in, p)
	if err != nil {
		return nil, err
	}
	return dom.ParseJSON(out)
}
