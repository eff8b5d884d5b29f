package patch

import (
	"fmt"

	"github.com/brunoga/dom"
)

// OperationType defines the allowed JSON Patch operation types.
type OperationType string

const (
	OperationTypeAdd     OperationType = "add"
	OperationTypeRemove  OperationType = "remove"
	OperationTypeReplace OperationType = "replace"
	OperationTypeMove    OperationType = "move"
	OperationTypeCopy    OperationType = "copy"
	OperationTypeTest    OperationType = "test"
)

// Operation is the plain Go form of a JSON Patch operation, for callers that
// build or inspect patches with encoding/json.
type Operation struct {
	Op    OperationType `json:"op"`
	Path  string        `json:"path"`
	Value any           `json:"value"`          // Used for "add", "replace", "test"
	From  string        `json:"from,omitempty"` // Used for "move", "copy"
}

// ToOperations converts p into plain operations. Values become the plain Go
// values returned by Value.Interface.
func ToOperations(p dom.Patch) []Operation {
	ops := make([]Operation, 0, p.Size())
	for _, op := range p.Operations() {
		o := Operation{
			Op:   OperationType(op.Type().String()),
			Path: op.Path().String(),
		}
		switch op.Type() {
		case dom.OpAdd, dom.OpReplace, dom.OpTest:
			o.Value = op.Value().Interface()
		case dom.OpCopy, dom.OpMove:
			o.From = op.SourcePath().String()
		}
		ops = append(ops, o)
	}
	return ops
}

// FromOperations builds a patch from plain operations.
func FromOperations(ops []Operation) (dom.Patch, error) {
	p := dom.NewPatch()
	for i, o := range ops {
		op, err := fromOperation(o)
		if err != nil {
			return dom.Patch{}, fmt.Errorf("operation %d: %w", i, err)
		}
		p.PushBack(op)
	}
	return p, nil
}

func fromOperation(o Operation) (dom.PatchOperation, error) {
	path, err := dom.ParsePath(o.Path)
	if err != nil {
		return dom.PatchOperation{}, err
	}

	switch o.Op {
	case OperationTypeRemove:
		return dom.RemoveOperation(path), nil
	case OperationTypeCopy, OperationTypeMove:
		from, err := dom.ParsePath(o.From)
		if err != nil {
			return dom.PatchOperation{}, fmt.Errorf("from: %w", err)
		}
		if o.Op == OperationTypeCopy {
			return dom.CopyOperation(path, from), nil
		}
		return dom.MoveOperation(path, from), nil
	case OperationTypeAdd, OperationTypeReplace, OperationTypeTest:
		value, err := dom.FromGo(o.Value)
		if err != nil {
			return dom.PatchOperation{}, fmt.Errorf("%w: value: %v", dom.ErrInvalidOperation, err)
		}
		switch o.Op {
		case OperationTypeAdd:
			return dom.AddOperation(path, value), nil
		case OperationTypeReplace:
			return dom.ReplaceOperation(path, value), nil
		}
		return dom.TestOperation(path, value), nil
	}
	return dom.PatchOperation{}, fmt.Errorf("%w: unknown op %q", dom.ErrInvalidOperation, o.Op)
}
