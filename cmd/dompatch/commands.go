package main

import (
	"github.com/scott-cotton/cli"

	"github.com/brunoga/dom"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "dompatch").
		WithSynopsis("dompatch [opts] command [opts]").
		WithDescription("dompatch diffs JSON and YAML documents and applies, inverts and explains the resulting patches.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dompatchMain(cfg, cc, args)
		}).
		WithSubs(
			DiffCommand(cfg),
			ApplyCommand(cfg),
			InvertCommand(cfg),
			ExplainCommand(cfg))
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Threshold: dom.DefaultReplaceThreshold}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "i",
		Aliases:     []string{"ignore"},
		Description: "ignore changes at and below a path (repeatable)",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.ignoreOpt), "(pointer)"),
	})
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [opts] <before> <after>").
		WithDescription("print the patch turning before into after, exiting 1 if they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Apply, "apply").
		WithAliases("a", "p").
		WithSynopsis("apply [opts] <patch> <doc>").
		WithDescription("apply a patch to a document and print the result").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
}

func InvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InvertConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Invert, "invert").
		WithAliases("inv").
		WithSynopsis("invert [opts] <patch> <doc>").
		WithDescription("print the patch undoing <patch> when applied to <doc>").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return invert(cfg, cc, args)
		})
}

func ExplainCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExplainConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Explain, "explain").
		WithAliases("x").
		WithSynopsis("explain [opts] <patch> [doc]").
		WithDescription("describe a patch one operation per line, showing string edits when <doc> is given").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return explain(cfg, cc, args)
		})
}
