package engine

import (
	"fmt"

	"github.com/brunoga/dom/internal/core"
)

// Field names of the serialized operation.
const (
	fieldOp    = "op"
	fieldPath  = "path"
	fieldValue = "value"
	fieldFrom  = "from"
)

// DomRepresentation returns the operation as an object with the "op",
// "path", "value" and "from" fields of a JSON Patch operation.
func (op PatchOperation) DomRepresentation() *core.Value {
	obj := core.NewObject(
		core.M(fieldOp, core.String(op.typ.String())),
		core.M(fieldPath, core.String(op.path.String())),
	)
	switch p := op.payload.(type) {
	case valuePayload:
		obj.SetMember(fieldValue, p.value.Clone())
	case sourcePayload:
		obj.SetMember(fieldFrom, core.String(p.from.String()))
	}
	return obj
}

// CreateOperationFromDomRepresentation builds an operation from its object
// form.
func CreateOperationFromDomRepresentation(v *core.Value) (PatchOperation, error) {
	if v.Kind() != core.ObjectKind {
		return PatchOperation{}, fmt.Errorf("%w: expected an object, got %s", ErrInvalidOperation, v.Kind())
	}

	opName, err := stringField(v, fieldOp)
	if err != nil {
		return PatchOperation{}, err
	}
	typ, ok := ParseOpType(opName)
	if !ok {
		return PatchOperation{}, fmt.Errorf("%w: unknown op %q", ErrInvalidOperation, opName)
	}
	path, err := pathField(v, fieldPath)
	if err != nil {
		return PatchOperation{}, err
	}

	switch typ {
	case OpAdd, OpReplace, OpTest:
		value, ok := v.FindMember(fieldValue)
		if !ok {
			return PatchOperation{}, fmt.Errorf("%w: %s: missing %q", ErrInvalidOperation, opName, fieldValue)
		}
		return newValueOperation(typ, path, value), nil
	case OpCopy, OpMove:
		from, err := pathField(v, fieldFrom)
		if err != nil {
			return PatchOperation{}, err
		}
		return newSourceOperation(typ, path, from), nil
	}
	return RemoveOperation(path), nil
}

func stringField(v *core.Value, name string) (string, error) {
	f, ok := v.FindMember(name)
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrInvalidOperation, name)
	}
	if f.Kind() != core.StringKind {
		return "", fmt.Errorf("%w: %q must be a string, got %s", ErrInvalidOperation, name, f.Kind())
	}
	return f.Str(), nil
}

func pathField(v *core.Value, name string) (core.Path, error) {
	s, err := stringField(v, name)
	if err != nil {
		return nil, err
	}
	p, err := core.ParsePath(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidOperation, name, err)
	}
	return p, nil
}

// DomRepresentation returns the patch as an array of operation objects.
func (p Patch) DomRepresentation() *core.Value {
	arr := core.NewArray()
	for _, op := range p.ops {
		arr.ArrayPushBack(op.DomRepresentation())
	}
	return arr
}

// CreatePatchFromDomRepresentation builds a patch from its array form.
func CreatePatchFromDomRepresentation(v *core.Value) (Patch, error) {
	if v.Kind() != core.ArrayKind {
		return Patch{}, fmt.Errorf("%w: expected an array, got %s", ErrInvalidOperation, v.Kind())
	}
	p := Patch{ops: make([]PatchOperation, 0, v.ArraySize())}
	for i, e := range v.Elements() {
		op, err := CreateOperationFromDomRepresentation(e)
		if err != nil {
			return Patch{}, fmt.Errorf("operation %d: %w", i, err)
		}
		p.ops = append(p.ops, op)
	}
	return p, nil
}

// MarshalJSON implements json.Marshaler.
func (op PatchOperation) MarshalJSON() ([]byte, error) {
	return op.DomRepresentation().MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (op *PatchOperation) UnmarshalJSON(data []byte) error {
	v, err := core.ParseJSON(data)
	if err != nil {
		return err
	}
	res, err := CreateOperationFromDomRepresentation(v)
	if err != nil {
		return err
	}
	*op = res
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Patch) MarshalJSON() ([]byte, error) {
	return p.DomRepresentation().MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Patch) UnmarshalJSON(data []byte) error {
	v, err := core.ParseJSON(data)
	if err != nil {
		return err
	}
	res, err := CreatePatchFromDomRepresentation(v)
	if err != nil {
		return err
	}
	*p = res
	return nil
}

// GobEncode implements gob.GobEncoder using the JSON form.
func (p Patch) GobEncode() ([]byte, error) {
	return p.MarshalJSON()
}

// GobDecode implements gob.GobDecoder.
func (p *Patch) GobDecode(data []byte) error {
	return p.UnmarshalJSON(data)
}
