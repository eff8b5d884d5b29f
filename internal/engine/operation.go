package engine

import (
	"fmt"

	"github.com/brunoga/dom/internal/core"
)

// OpType is the kind of a PatchOperation.
type OpType uint8

const (
	OpAdd OpType = iota + 1
	OpRemove
	OpReplace
	OpCopy
	OpMove
	OpTest
)

var opNames = map[OpType]string{
	OpAdd:     "add",
	OpRemove:  "remove",
	OpReplace: "replace",
	OpCopy:    "copy",
	OpMove:    "move",
	OpTest:    "test",
}

// String returns the wire name of the operation type.
func (t OpType) String() string {
	if name, ok := opNames[t]; ok {
		return name
	}
	return fmt.Sprintf("OpType(%d)", uint8(t))
}

// ParseOpType maps a wire name back to its type.
func ParseOpType(s string) (OpType, bool) {
	for t, name := range opNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// payload is either a value (add, replace, test), a source path (copy,
// move) or absent (remove).
type payload interface {
	isPayload()
}

type valuePayload struct {
	value *core.Value
}

type sourcePayload struct {
	from core.Path
}

func (valuePayload) isPayload()  {}
func (sourcePayload) isPayload() {}

// PatchOperation is one atomic edit of a value tree. Operations are built
// with the factory functions and are immutable afterwards.
type PatchOperation struct {
	typ     OpType
	path    core.Path
	payload payload
}

// AddOperation inserts value at path. A key is inserted or overwritten, an
// index inserts before the current element and the end-of-array entry
// appends.
func AddOperation(path core.Path, value *core.Value) PatchOperation {
	return newValueOperation(OpAdd, path, value)
}

// RemoveOperation removes the value at path. The end-of-array entry removes
// the last element.
func RemoveOperation(path core.Path) PatchOperation {
	return PatchOperation{typ: OpRemove, path: core.NewPath(path...)}
}

// ReplaceOperation overwrites the existing value at path.
func ReplaceOperation(path core.Path, value *core.Value) PatchOperation {
	return newValueOperation(OpReplace, path, value)
}

// CopyOperation writes a copy of the value at from into path.
func CopyOperation(path, from core.Path) PatchOperation {
	return newSourceOperation(OpCopy, path, from)
}

// MoveOperation relocates the value at from to path.
func MoveOperation(path, from core.Path) PatchOperation {
	return newSourceOperation(OpMove, path, from)
}

// TestOperation checks that the value at path equals value.
func TestOperation(path core.Path, value *core.Value) PatchOperation {
	return newValueOperation(OpTest, path, value)
}

func newValueOperation(typ OpType, path core.Path, value *core.Value) PatchOperation {
	return PatchOperation{
		typ:     typ,
		path:    core.NewPath(path...),
		payload: valuePayload{value: value.Clone()},
	}
}

func newSourceOperation(typ OpType, path, from core.Path) PatchOperation {
	return PatchOperation{
		typ:     typ,
		path:    core.NewPath(path...),
		payload: sourcePayload{from: core.NewPath(from...)},
	}
}

func (op PatchOperation) Type() OpType { return op.typ }

// Path returns the destination path.
func (op PatchOperation) Path() core.Path { return op.path }

// Value returns the payload of add, replace and test operations, and nil
// for the other types. The returned value must not be modified.
func (op PatchOperation) Value() *core.Value {
	if p, ok := op.payload.(valuePayload); ok {
		return p.value
	}
	return nil
}

// SourcePath returns the source of copy and move operations, and nil for
// the other types.
func (op PatchOperation) SourcePath() core.Path {
	if p, ok := op.payload.(sourcePayload); ok {
		return p.from
	}
	return nil
}

// Equal reports whether both operations have the same type, path and
// payload.
func (op PatchOperation) Equal(other PatchOperation) bool {
	if op.typ != other.typ || !op.path.Equal(other.path) {
		return false
	}
	switch p := op.payload.(type) {
	case valuePayload:
		o, ok := other.payload.(valuePayload)
		return ok && core.Equal(p.value, o.value)
	case sourcePayload:
		o, ok := other.payload.(sourcePayload)
		return ok && p.from.Equal(o.from)
	}
	return other.payload == nil
}

func (op PatchOperation) String() string {
	return op.DomRepresentation().String()
}

// Apply applies the operation to a copy of root and returns the copy.
func (op PatchOperation) Apply(root *core.Value) (*core.Value, error) {
	res := root.Clone()
	if err := op.ApplyInPlace(res); err != nil {
		return nil, err
	}
	return res, nil
}

// ApplyInPlace applies the operation to root. On failure root is left
// untouched.
func (op PatchOperation) ApplyInPlace(root *core.Value) error {
	var err error
	switch op.typ {
	case OpAdd:
		err = op.applyAdd(root)
	case OpRemove:
		err = op.applyRemove(root)
	case OpReplace:
		err = op.applyReplace(root)
	case OpCopy:
		err = op.applyCopy(root)
	case OpMove:
		err = op.applyMove(root)
	case OpTest:
		err = op.applyTest(root)
	default:
		err = fmt.Errorf("%w: %s", ErrInvalidOperation, op.typ)
	}
	if err != nil {
		return fmt.Errorf("%s %q: %w", op.typ, op.path.String(), err)
	}
	return nil
}

func (op PatchOperation) applyAdd(root *core.Value) error {
	ctx, err := LookupPath(root, op.path, AllowEndOfArray)
	if err != nil {
		return err
	}
	return ctx.insert(op.Value().Clone())
}

func (op PatchOperation) applyRemove(root *core.Value) error {
	ctx, err := LookupPath(root, op.path, VerifyFullPath|AllowEndOfArray)
	if err != nil {
		return err
	}
	_, err = ctx.erase()
	return err
}

func (op PatchOperation) applyReplace(root *core.Value) error {
	ctx, err := LookupPath(root, op.path, VerifyFullPath)
	if err != nil {
		return err
	}
	return ctx.replace(op.Value().Clone())
}

func (op PatchOperation) applyTest(root *core.Value) error {
	ctx, err := LookupPath(root, op.path, VerifyFullPath)
	if err != nil {
		return err
	}
	if !core.Equal(ctx.Value(), op.Value()) {
		return fmt.Errorf("%w: got %s, want %s", ErrValueMismatch, ctx.Value(), op.Value())
	}
	return nil
}

func (op PatchOperation) applyCopy(root *core.Value) error {
	from := op.SourcePath()
	src, err := LookupPath(root, from, VerifyFullPath|AllowEndOfArray)
	if err != nil {
		return fmt.Errorf("from %q: %w", from.String(), err)
	}
	dst, err := LookupPath(root, op.path, AllowEndOfArray)
	if err != nil {
		return err
	}
	v := src.last()
	if v == nil {
		return fmt.Errorf("from %q: %w: empty array", from.String(), ErrIndexOutOfBounds)
	}
	return dst.insert(v.Clone())
}

// applyMove resolves both paths before mutating anything. A trailing "-" in
// the source is resolved to the last index first, so the checks below see
// the element actually moved. The destination index is checked against the
// array as it was before the source was removed, and the value is inserted
// at that index or at the new end when the array shrank past it.
func (op PatchOperation) applyMove(root *core.Value) error {
	from := op.SourcePath()
	src, err := LookupPath(root, from, VerifyFullPath|AllowEndOfArray)
	if err != nil {
		return fmt.Errorf("from %q: %w", from.String(), err)
	}
	if src.last() == nil {
		return fmt.Errorf("from %q: %w: empty array", from.String(), ErrIndexOutOfBounds)
	}
	from = src.concrete(from)
	if from.Equal(op.path) {
		return nil
	}
	if op.path.HasPrefix(from) {
		return fmt.Errorf("%w: cannot move %q into itself", ErrInvalidOperation, from.String())
	}

	dst, err := LookupPath(root, op.path, AllowEndOfArray)
	if err != nil {
		return err
	}
	v, err := src.erase()
	if err != nil {
		return fmt.Errorf("from %q: %w", from.String(), err)
	}
	if dst.entry.IsIndex() && dst.entry.Index() > dst.parent.ArraySize() {
		dst.entry = core.EndOfArray()
	}
	return dst.insert(v)
}

// Inverse returns the operation that undoes op when applied right after it.
// before is the state op is applied to; it is not modified.
func (op PatchOperation) Inverse(before *core.Value) (PatchOperation, error) {
	switch op.typ {
	case OpAdd:
		return inverseOfInsert(op.path, before)
	case OpRemove:
		ctx, err := LookupPath(before, op.path, VerifyFullPath|AllowEndOfArray)
		if err != nil {
			return PatchOperation{}, inversionError(op, err)
		}
		old := ctx.last()
		if old == nil {
			return PatchOperation{}, inversionError(op, fmt.Errorf("nothing to remove"))
		}
		return AddOperation(reinsertPath(op.path, ctx), old), nil
	case OpReplace:
		old := before.FindPath(op.path)
		if old == nil {
			return PatchOperation{}, inversionError(op, fmt.Errorf("no value at %q", op.path.String()))
		}
		return ReplaceOperation(op.path, old), nil
	case OpCopy:
		return inverseOfInsert(op.path, before)
	case OpMove:
		ancestor := core.CommonAncestor(op.SourcePath(), op.path)
		if last, ok := ancestor.Last(); ok && last.IsEndOfArray() {
			ancestor = ancestor.Parent()
		}
		old := before.FindPath(ancestor)
		if old == nil {
			return PatchOperation{}, inversionError(op, fmt.Errorf("no value at %q", ancestor.String()))
		}
		return ReplaceOperation(ancestor, old), nil
	case OpTest:
		return op, nil
	}
	return PatchOperation{}, fmt.Errorf("%w: %s", ErrInvalidOperation, op.typ)
}

// inverseOfInsert undoes a write made with insert semantics: an overwritten
// key is restored and anything else is removed again.
func inverseOfInsert(path core.Path, before *core.Value) (PatchOperation, error) {
	if len(path) == 0 {
		return ReplaceOperation(path, before), nil
	}
	ctx, err := LookupPath(before, path, AllowEndOfArray)
	if err != nil {
		return PatchOperation{}, fmt.Errorf("%w: %q: %w", ErrInversionImpossible, path.String(), err)
	}
	if ctx.entry.IsKey() {
		if old := ctx.Value(); old != nil {
			return ReplaceOperation(path, old), nil
		}
	}
	return RemoveOperation(path), nil
}

// reinsertPath returns the path an add must use to put a removed value
// back. Removing the last element by index needs the end-of-array entry
// since an add index must address an existing element.
func reinsertPath(path core.Path, ctx PathContext) core.Path {
	if ctx.entry.IsIndex() && ctx.parent.IsArrayLike() && ctx.entry.Index() == ctx.parent.ArraySize()-1 && !ctx.IsRoot() {
		return path.Parent().Append(core.EndOfArray())
	}
	return path
}

func inversionError(op PatchOperation, err error) error {
	return fmt.Errorf("%w: %s %q: %w", ErrInversionImpossible, op.typ, op.path.String(), err)
}

// Summary returns a one-line human readable description of the operation.
func (op PatchOperation) Summary() string {
	path := displayPath(op.path)
	switch op.typ {
	case OpAdd:
		return fmt.Sprintf("Added %s: %s", path, op.Value())
	case OpRemove:
		return fmt.Sprintf("Removed %s", path)
	case OpReplace:
		return fmt.Sprintf("Replaced %s with %s", path, op.Value())
	case OpCopy:
		return fmt.Sprintf("Copied %s to %s", displayPath(op.SourcePath()), path)
	case OpMove:
		return fmt.Sprintf("Moved %s to %s", displayPath(op.SourcePath()), path)
	case OpTest:
		return fmt.Sprintf("Tested %s == %s", path, op.Value())
	}
	return op.typ.String()
}

func displayPath(p core.Path) string {
	if p.IsRoot() {
		return "(root)"
	}
	return p.String()
}
