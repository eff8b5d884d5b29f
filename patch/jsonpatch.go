// Package patch converts patches to and from RFC 6902 JSON Patch documents
// as understood by github.com/evanphx/json-patch/v5.
//
// The dom engine extends JSON Patch in two ways: "-" may address the last
// element of an array in remove, copy and move sources, and the children of
// a node are addressed by index directly on the node. Portable rewrites a
// patch so that neither extension is used, which makes it acceptable to any
// RFC 6902 implementation working on the JSON form of the document.
package patch

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/brunoga/dom"
)

// ToJSONPatch converts p into a json-patch Patch. p is converted as is; use
// Portable first if it may rely on dom extensions.
func ToJSONPatch(p dom.Patch) (jsonpatch.Patch, error) {
	data, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}
	jp, err := jsonpatch.DecodePatch(data)
	if err != nil {
		return nil, fmt.Errorf("patch: cannot decode json patch: %w", err)
	}
	return jp, nil
}

// FromJSONPatch converts a json-patch Patch into a dom patch.
func FromJSONPatch(jp jsonpatch.Patch) (dom.Patch, error) {
	data, err := json.Marshal(jp)
	if err != nil {
		return dom.Patch{}, fmt.Errorf("patch: cannot marshal json patch: %w", err)
	}
	return dom.ParsePatch(data)
}

// ApplyJSON applies p to a JSON document with the json-patch engine. The
// patch is made portable against the parsed document first.
func ApplyJSON(doc []byte, p dom.Patch) ([]byte, error) {
	root, err := dom.ParseJSON(doc)
	if err != nil {
		return nil, err
	}
	portable, err := Portable(p, root)
	if err != nil {
		return nil, err
	}
	jp, err := ToJSONPatch(portable)
	if err != nil {
		return nil, err
	}
	return jp.Apply(doc)
}

// Portable returns p rewritten for the JSON form of doc, the state p is
// applied to:
//   - "-" in a remove path or in a copy or move source becomes the index of
//     the last element,
//   - index and "-" entries addressing the children of a node go through
//     the node's "$children" member,
//   - member keys are written as dom.WireKey writes them.
//
// p is applied to a copy of doc to track the state each operation sees, so
// the rewrite fails with the error of the first operation that does not
// apply. doc is not modified.
func Portable(p dom.Patch, doc *dom.Value) (dom.Patch, error) {
	state := dom.Copy(doc)
	res := dom.NewPatch()
	for i, op := range p.Operations() {
		portable, err := portableOperation(op, state)
		if err != nil {
			return dom.Patch{}, fmt.Errorf("operation %d: %w", i, err)
		}
		if err := op.ApplyInPlace(state); err != nil {
			return dom.Patch{}, fmt.Errorf("operation %d: %w", i, err)
		}
		res.PushBack(portable)
	}
	return res, nil
}

func portableOperation(op dom.PatchOperation, state *dom.Value) (dom.PatchOperation, error) {
	switch op.Type() {
	case dom.OpAdd:
		return dom.AddOperation(jsonPath(state, op.Path(), false), op.Value()), nil
	case dom.OpReplace:
		return dom.ReplaceOperation(jsonPath(state, op.Path(), false), op.Value()), nil
	case dom.OpTest:
		return dom.TestOperation(jsonPath(state, op.Path(), false), op.Value()), nil
	case dom.OpRemove:
		return dom.RemoveOperation(jsonPath(state, op.Path(), true)), nil
	case dom.OpCopy:
		return dom.CopyOperation(jsonPath(state, op.Path(), false), jsonPath(state, op.SourcePath(), true)), nil
	case dom.OpMove:
		return dom.MoveOperation(jsonPath(state, op.Path(), false), jsonPath(state, op.SourcePath(), true)), nil
	}
	return dom.PatchOperation{}, fmt.Errorf("%w: %s", dom.ErrInvalidOperation, op.Type())
}

// jsonPath translates p into a path over the JSON form of state. When
// resolveEnd is set a trailing "-" is replaced by the index of the last
// element. Entries that do not resolve are copied unchanged and left for the
// operation to reject.
func jsonPath(state *dom.Value, p dom.Path, resolveEnd bool) dom.Path {
	res := make(dom.Path, 0, len(p)+1)
	cur := state
	for i, e := range p {
		if cur.IsNode() && (e.IsIndex() || e.IsEndOfArray()) {
			res = append(res, dom.Key(dom.NodeChildrenKey))
		}
		if e.IsEndOfArray() && resolveEnd && i == len(p)-1 && cur.IsArrayLike() && cur.ArraySize() > 0 {
			e = dom.Index(cur.ArraySize() - 1)
		}
		wire := e
		if e.IsKey() && cur.IsObjectLike() {
			wire = dom.Key(dom.WireKey(e.Key()))
		}
		res = append(res, wire)
		if cur != nil {
			cur = cur.FindChild(e)
		}
	}
	return res
}
