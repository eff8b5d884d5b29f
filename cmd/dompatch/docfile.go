package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/brunoga/dom"
)

// getDoc reads a document from path, or from stdin when path is "-".
func getDoc(cc *cli.Context, path string) (*dom.Value, error) {
	var r io.Reader
	if path == "-" {
		r = cc.In
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeDoc(path, d)
}

// decodeDoc picks the decoder from the extension of name. Other names are
// tried as json, then as yaml.
func decodeDoc(name string, d []byte) (*dom.Value, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return dom.ParseYAML(d)
	case ".json":
		return dom.ParseJSON(d)
	}
	if v, err := dom.ParseJSON(d); err == nil {
		return v, nil
	}
	return dom.ParseYAML(d)
}

func getPatch(cc *cli.Context, path string) (dom.Patch, error) {
	v, err := getDoc(cc, path)
	if err != nil {
		return dom.Patch{}, fmt.Errorf("error decoding %s: %w", path, err)
	}
	p, err := dom.PatchFromValue(v)
	if err != nil {
		return dom.Patch{}, fmt.Errorf("%s is not a patch: %w", path, err)
	}
	return p, nil
}
