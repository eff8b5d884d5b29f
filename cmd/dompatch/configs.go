package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/brunoga/dom"
)

type MainConfig struct {
	V     bool `cli:"name=v aliases=verbose desc='log diff and apply details to stderr'"`
	Y     bool `cli:"name=y aliases=yaml desc='print documents and patches in yaml'"`
	Color bool `cli:"name=color desc='colorize explain output'"`

	Main *cli.Command
}

// logger returns the logger handed to the diff and apply engines. Without
// -v only warnings reach stderr.
func (cfg *MainConfig) logger() *slog.Logger {
	return newLogger(os.Stderr, cfg.V)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// colors reports whether output written to w should be colorized: always
// with -color, otherwise only on a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) writeValue(w io.Writer, v *dom.Value) error {
	if cfg.Y {
		d, err := dom.ToYAML(v)
		if err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		_, err = w.Write(d)
		return err
	}
	d, err := v.MarshalJSON()
	if err != nil {
		return fmt.Errorf("error encoding json: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := json.Indent(buf, d, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

func (cfg *MainConfig) writePatch(w io.Writer, p dom.Patch) error {
	return cfg.writeValue(w, p.DomRepresentation())
}

type DiffConfig struct {
	*MainConfig
	Threshold int  `cli:"name=t aliases=threshold desc='replace an array once this many aligned elements differ (-1 never, 0 always)'"`
	Reverse   bool `cli:"name=r desc='print the inverse patch, turning after into before'"`
	RFC       bool `cli:"name=rfc desc='print a patch any RFC 6902 implementation can apply to the json form'"`
	Ignore    []dom.Path

	Diff *cli.Command
}

func (cfg *DiffConfig) ignoreOpt(_ *cli.Context, v string) (any, error) {
	p, err := dom.ParsePath(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Ignore = append(cfg.Ignore, p)
	return p, nil
}

type ApplyConfig struct {
	*MainConfig
	K   bool `cli:"name=k aliases=keep-going desc='skip operations that fail instead of stopping'"`
	RFC bool `cli:"name=rfc desc='apply with the RFC 6902 json-patch engine'"`

	Apply *cli.Command
}

type InvertConfig struct {
	*MainConfig
	RFC bool `cli:"name=rfc desc='print a patch any RFC 6902 implementation can apply to the json form'"`

	Invert *cli.Command
}

type ExplainConfig struct {
	*MainConfig

	Explain *cli.Command
}
