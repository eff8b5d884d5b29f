package engine

import (
	"errors"
	"testing"

	"github.com/brunoga/dom/internal/core"
)

func TestLookupPath(t *testing.T) {
	root := doc(`{"a":{"b":[1,2,3]},"o":{"1":"one"},"n":{"$node":"N","p":true,"$children":[4]}}`)

	tests := []struct {
		name    string
		path    core.Path
		flags   ExistenceCheckFlags
		parent  string
		entry   core.PathEntry
		value   string
		wantErr error
	}{
		{"key", path("/a"), ExistenceCheckNone, "", core.Key("a"), `{"b":[1,2,3]}`, nil},
		{"missing key allowed", path("/a/x"), ExistenceCheckNone, "/a", core.Key("x"), "", nil},
		{"missing key verified", path("/a/x"), VerifyFullPath, "", core.PathEntry{}, "", ErrKeyNotFound},
		{"index", path("/a/b/2"), VerifyFullPath, "/a/b", core.Index(2), "3", nil},
		{"index out of bounds", path("/a/b/3"), ExistenceCheckNone, "", core.PathEntry{}, "", ErrIndexOutOfBounds},
		{"end of array allowed", path("/a/b/-"), AllowEndOfArray, "/a/b", core.EndOfArray(), "", nil},
		{"end of array rejected", path("/a/b/-"), VerifyFullPath, "", core.PathEntry{}, "", ErrMalformedPath},
		{"end of array in the middle", core.NewPath(core.Key("a"), core.EndOfArray(), core.Index(0)), AllowEndOfArray, "", core.PathEntry{}, "", ErrMalformedPath},
		{"missing parent", path("/x/y"), ExistenceCheckNone, "", core.PathEntry{}, "", ErrPathNotFound},
		{"key on array", path("/a/b/x"), ExistenceCheckNone, "", core.PathEntry{}, "", ErrTypeMismatch},
		{"index on scalar", path("/a/b/0/0"), ExistenceCheckNone, "", core.PathEntry{}, "", ErrTypeMismatch},
		{"index on object is a key", path("/o/1"), VerifyFullPath, "/o", core.Key("1"), `"one"`, nil},
		{"node property", path("/n/p"), VerifyFullPath, "/n", core.Key("p"), "true", nil},
		{"node child", path("/n/0"), VerifyFullPath, "/n", core.Index(0), "4", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := LookupPath(root, tt.path, tt.flags)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LookupPath(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupPath(%q) failed: %v", tt.path, err)
			}
			if ctx.Parent() != root.FindPath(path(tt.parent)) {
				t.Errorf("parent = %s, want value at %q", ctx.Parent(), tt.parent)
			}
			if !ctx.Entry().Equal(tt.entry) {
				t.Errorf("entry = %v, want %v", ctx.Entry(), tt.entry)
			}
			got := ""
			if v := ctx.Value(); v != nil {
				got = v.String()
			}
			if got != tt.value {
				t.Errorf("value = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestLookupPathRoot(t *testing.T) {
	root := doc(`[1]`)
	ctx, err := LookupPath(root, core.Path{}, VerifyFullPath)
	if err != nil {
		t.Fatalf("LookupPath(root) failed: %v", err)
	}
	if !ctx.IsRoot() {
		t.Errorf("context should address the root")
	}
	if ctx.Value() != root {
		t.Errorf("root slot should hold the root")
	}
	if !ctx.Entry().Equal(core.Index(0)) || ctx.Parent().ArraySize() != 1 {
		t.Errorf("root should be wrapped in a single element array")
	}
}
