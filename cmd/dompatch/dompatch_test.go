package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/brunoga/dom"
)

func readPatch(t *testing.T, yaml bool, out []byte) dom.Patch {
	t.Helper()
	var (
		v   *dom.Value
		err error
	)
	if yaml {
		v, err = dom.ParseYAML(out)
	} else {
		v, err = dom.ParseJSON(out)
	}
	if err != nil {
		t.Fatalf("cannot decode output %q: %v", out, err)
	}
	p, err := dom.PatchFromValue(v)
	if err != nil {
		t.Fatalf("output %q is not a patch: %v", out, err)
	}
	return p
}

func TestDecodeDoc(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		want    string
		wantErr bool
	}{
		{"yaml extension", "config.yaml", "a: 1\nb: [x]\n", `{"a":1,"b":["x"]}`, false},
		{"yml extension", "config.YML", "a: true\n", `{"a":true}`, false},
		{"json extension", "doc.json", `{"a":[1,2]}`, `{"a":[1,2]}`, false},
		{"stdin json", "-", `{"a":null}`, `{"a":null}`, false},
		{"stdin yaml", "-", "a: x\n", `{"a":"x"}`, false},
		{"yaml in json file", "doc.json", "a: 1\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeDoc(tt.file, []byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Errorf("decodeDoc succeeded with %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeDoc failed: %v", err)
			}
			if want := dom.MustParseJSON(tt.want); !dom.Equal(got, want) {
				t.Errorf("got %s, want %s", got, want)
			}
		})
	}
}

func TestDiffDocs(t *testing.T) {
	tests := []struct {
		name        string
		cfg         DiffConfig
		before      string
		after       string
		want        dom.Patch
		wantDiffers bool
	}{
		{
			name:   "forward",
			before: `{"x":1,"y":2}`,
			after:  `{"y":3,"z":4}`,
			want: dom.NewPatch(
				dom.RemoveOperation(dom.MustParsePath("/x")),
				dom.ReplaceOperation(dom.MustParsePath("/y"), dom.Int(3)),
				dom.AddOperation(dom.MustParsePath("/z"), dom.Int(4)),
			),
			wantDiffers: true,
		},
		{
			name:        "reverse",
			cfg:         DiffConfig{Reverse: true},
			before:      `{"a":1}`,
			after:       `{"a":2}`,
			want:        dom.NewPatch(dom.ReplaceOperation(dom.MustParsePath("/a"), dom.Int(1))),
			wantDiffers: true,
		},
		{
			name:   "rfc",
			cfg:    DiffConfig{RFC: true},
			before: `{"a":[1,2,3]}`,
			after:  `{"a":[1]}`,
			want: dom.NewPatch(
				dom.RemoveOperation(dom.MustParsePath("/a/2")),
				dom.RemoveOperation(dom.MustParsePath("/a/1")),
			),
			wantDiffers: true,
		},
		{
			name:        "ignored path",
			cfg:         DiffConfig{Ignore: []dom.Path{dom.MustParsePath("/b")}},
			before:      `{"a":1,"b":1}`,
			after:       `{"a":2,"b":2}`,
			want:        dom.NewPatch(dom.ReplaceOperation(dom.MustParsePath("/a"), dom.Int(2))),
			wantDiffers: true,
		},
		{
			name:   "equal documents",
			before: `{"a":[1,{"b":null}]}`,
			after:  `{"a":[1,{"b":null}]}`,
			want:   dom.NewPatch(),
		},
		{
			name:        "yaml output",
			cfg:         DiffConfig{MainConfig: &MainConfig{Y: true}},
			before:      `{"s":"a"}`,
			after:       `{"s":"b"}`,
			want:        dom.NewPatch(dom.ReplaceOperation(dom.MustParsePath("/s"), dom.String("b"))),
			wantDiffers: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if cfg.MainConfig == nil {
				cfg.MainConfig = &MainConfig{}
			}
			cfg.Threshold = dom.DefaultReplaceThreshold

			out := &bytes.Buffer{}
			differs, err := diffDocs(&cfg, out, dom.MustParseJSON(tt.before), dom.MustParseJSON(tt.after))
			if err != nil {
				t.Fatalf("diffDocs failed: %v", err)
			}
			if differs != tt.wantDiffers {
				t.Errorf("differs = %v, want %v", differs, tt.wantDiffers)
			}
			if got := readPatch(t, cfg.Y, out.Bytes()); !got.Equal(tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestApplyPatch(t *testing.T) {
	failing := dom.NewPatch(
		dom.RemoveOperation(dom.MustParsePath("/missing")),
		dom.AddOperation(dom.MustParsePath("/b"), dom.Int(1)),
	)

	t.Run("halt", func(t *testing.T) {
		cfg := &ApplyConfig{MainConfig: &MainConfig{}}
		out := &bytes.Buffer{}
		err := applyPatch(cfg, out, failing, dom.MustParseJSON(`{"a":1}`))
		if !errors.Is(err, dom.ErrKeyNotFound) {
			t.Errorf("error = %v, want ErrKeyNotFound", err)
		}
		if out.Len() != 0 {
			t.Errorf("unexpected output %q", out)
		}
	})

	tests := []struct {
		name  string
		cfg   *ApplyConfig
		patch dom.Patch
		doc   string
		want  string
	}{
		{"keep going", &ApplyConfig{MainConfig: &MainConfig{}, K: true}, failing, `{"a":1}`, `{"a":1,"b":1}`},
		{
			"rfc engine",
			&ApplyConfig{MainConfig: &MainConfig{}, RFC: true},
			dom.NewPatch(dom.RemoveOperation(dom.MustParsePath("/a/-"))),
			`{"a":[1,2]}`,
			`{"a":[1]}`,
		},
		{
			"yaml output",
			&ApplyConfig{MainConfig: &MainConfig{Y: true}},
			dom.NewPatch(dom.ReplaceOperation(dom.MustParsePath("/a"), dom.String("x"))),
			`{"a":1}`,
			`{"a":"x"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			if err := applyPatch(tt.cfg, out, tt.patch, dom.MustParseJSON(tt.doc)); err != nil {
				t.Fatalf("applyPatch failed: %v", err)
			}
			got, err := decodeDoc("-", out.Bytes())
			if err != nil {
				t.Fatalf("cannot decode output %q: %v", out, err)
			}
			if want := dom.MustParseJSON(tt.want); !dom.Equal(got, want) {
				t.Errorf("got %s, want %s", got, want)
			}
		})
	}
}

func TestInvertPatch(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		cfg := &InvertConfig{MainConfig: &MainConfig{}}
		out := &bytes.Buffer{}
		p := dom.NewPatch(dom.AddOperation(dom.MustParsePath("/b"), dom.Int(2)))
		if err := invertPatch(cfg, out, p, dom.MustParseJSON(`{"a":1}`)); err != nil {
			t.Fatal(err)
		}
		want := dom.NewPatch(dom.RemoveOperation(dom.MustParsePath("/b")))
		if got := readPatch(t, false, out.Bytes()); !got.Equal(want) {
			t.Errorf("got %s, want %s", got, want)
		}
	})

	t.Run("rfc node children", func(t *testing.T) {
		cfg := &InvertConfig{MainConfig: &MainConfig{}, RFC: true}
		out := &bytes.Buffer{}
		p := dom.NewPatch(dom.AddOperation(dom.MustParsePath("/-"), dom.Int(2)))
		if err := invertPatch(cfg, out, p, dom.MustParseJSON(`{"$node":"N","$children":[1]}`)); err != nil {
			t.Fatal(err)
		}
		want := dom.NewPatch(dom.RemoveOperation(dom.MustParsePath("/$children/1")))
		if got := readPatch(t, false, out.Bytes()); !got.Equal(want) {
			t.Errorf("got %s, want %s", got, want)
		}
	})

	t.Run("not applicable", func(t *testing.T) {
		cfg := &InvertConfig{MainConfig: &MainConfig{}}
		p := dom.NewPatch(dom.RemoveOperation(dom.MustParsePath("/b")))
		err := invertPatch(cfg, &bytes.Buffer{}, p, dom.MustParseJSON(`{"a":1}`))
		if !errors.Is(err, dom.ErrInversionImpossible) {
			t.Errorf("error = %v, want ErrInversionImpossible", err)
		}
	})
}

func TestExplainPatch(t *testing.T) {
	p := dom.NewPatch(
		dom.ReplaceOperation(dom.MustParsePath("/s"), dom.String("color")),
		dom.RemoveOperation(dom.MustParsePath("/n")),
		dom.AddOperation(dom.MustParsePath("/t"), dom.MustParseJSON(`[1]`)),
	)
	doc := dom.MustParseJSON(`{"s":"colour","n":1}`)

	tests := []struct {
		name string
		doc  *dom.Value
		want string
	}{
		{"without document", nil, `Replaced /s with "color"
Removed /n
Added /t: [1]
`},
		{"with document", doc, `Replaced /s with "color"
    colo[-u-]r
Removed /n
Added /t: [1]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			if err := explainPatch(out, p, tt.doc, newPalette(false)); err != nil {
				t.Fatal(err)
			}
			if out.String() != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", out, tt.want)
			}
		})
	}

	if doc.String() != `{"s":"colour","n":1}` {
		t.Errorf("explainPatch modified the document: %s", doc)
	}
}

func TestExplainPatchFails(t *testing.T) {
	p := dom.NewPatch(dom.RemoveOperation(dom.MustParsePath("/x")))
	err := explainPatch(&bytes.Buffer{}, p, dom.MustParseJSON(`{}`), newPalette(false))
	if !errors.Is(err, dom.ErrKeyNotFound) {
		t.Errorf("error = %v, want ErrKeyNotFound", err)
	}
}

func TestStringDiff(t *testing.T) {
	plain := newPalette(false)
	if got := plain.stringDiff("abc", "abXc"); got != "ab{+X+}c" {
		t.Errorf("got %q", got)
	}

	colored := newPalette(true)
	if got := colored.stringDiff("abc", "abXc"); !strings.Contains(got, "\x1b[32m{+X+}") {
		t.Errorf("insertion is not green: %q", got)
	}
}

func TestNewLogger(t *testing.T) {
	out := &bytes.Buffer{}
	quiet := newLogger(out, false)
	quiet.Debug("hidden")
	quiet.Warn("shown", "k", 1)
	if out.String() != "level=WARN msg=shown k=1\n" {
		t.Errorf("quiet logger wrote %q", out)
	}

	out.Reset()
	newLogger(out, true).Debug("diff", "path", "/a")
	if out.String() != "level=DEBUG msg=diff path=/a\n" {
		t.Errorf("verbose logger wrote %q", out)
	}
}
