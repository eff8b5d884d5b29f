package dom

import (
	"github.com/brunoga/dom/internal/core"
	"github.com/brunoga/dom/internal/engine"
)

var (
	// ErrMalformedPath is returned for paths that cannot be parsed or that
	// use "-" anywhere but in the last position.
	ErrMalformedPath = engine.ErrMalformedPath
	// ErrPathNotFound is returned when an intermediate path entry is missing.
	ErrPathNotFound = engine.ErrPathNotFound
	// ErrTypeMismatch is returned when a key addresses an array or an index
	// addresses a scalar.
	ErrTypeMismatch = engine.ErrTypeMismatch
	// ErrIndexOutOfBounds is returned for indexes past the end of an array
	// and for removals from an empty array.
	ErrIndexOutOfBounds = engine.ErrIndexOutOfBounds
	// ErrKeyNotFound is returned when an operation needs a key that is
	// missing.
	ErrKeyNotFound = engine.ErrKeyNotFound
	// ErrValueMismatch is returned by failed test operations.
	ErrValueMismatch = engine.ErrValueMismatch
	// ErrInvalidOperation is returned for unknown or malformed operations.
	ErrInvalidOperation = engine.ErrInvalidOperation
	// ErrInversionImpossible is returned when an operation cannot be
	// inverted against the given state.
	ErrInversionImpossible = engine.ErrInversionImpossible
)

// OpType is the kind of a PatchOperation.
type OpType = engine.OpType

const (
	OpAdd     = engine.OpAdd
	OpRemove  = engine.OpRemove
	OpReplace = engine.OpReplace
	OpCopy    = engine.OpCopy
	OpMove    = engine.OpMove
	OpTest    = engine.OpTest
)

// PatchOperation is one atomic edit of a value tree.
type PatchOperation = engine.PatchOperation

// Patch is an ordered sequence of operations.
type Patch = engine.Patch

// PatchInfo holds a forward patch and the inverse patch undoing it.
type PatchInfo = engine.PatchInfo

// ApplyState is handed to a Strategy after each operation of a patch.
type ApplyState = engine.ApplyState

// Strategy decides whether patch application goes on after an operation.
type Strategy = engine.Strategy

var (
	// HaltOnFailure stops at the first failed operation.
	HaltOnFailure Strategy = engine.HaltOnFailure
	// IgnoreFailureAndContinue applies every operation regardless of
	// failures.
	IgnoreFailureAndContinue Strategy = engine.IgnoreFailureAndContinue
)

// ExistenceCheckFlags control how strictly LookupPath validates a path.
type ExistenceCheckFlags = engine.ExistenceCheckFlags

const (
	ExistenceCheckNone = engine.ExistenceCheckNone
	VerifyFullPath     = engine.VerifyFullPath
	AllowEndOfArray    = engine.AllowEndOfArray
)

// PathContext is a resolved path: the container holding the target slot and
// the entry naming the slot.
type PathContext = engine.PathContext

// LookupPath resolves p against root. See PathContext.
func LookupPath(root *Value, p Path, flags ExistenceCheckFlags) (PathContext, error) {
	return engine.LookupPath(root, p, flags)
}

// AddOperation inserts a copy of value at path. A key is inserted or
// overwritten, an index inserts before the current element and the
// end-of-array entry appends.
func AddOperation(path Path, value *Value) PatchOperation {
	return engine.AddOperation(path, value)
}

// RemoveOperation removes the value at path.
func RemoveOperation(path Path) PatchOperation {
	return engine.RemoveOperation(path)
}

// ReplaceOperation overwrites the existing value at path.
func ReplaceOperation(path Path, value *Value) PatchOperation {
	return engine.ReplaceOperation(path, value)
}

// CopyOperation writes a copy of the value at from into path.
func CopyOperation(path, from Path) PatchOperation {
	return engine.CopyOperation(path, from)
}

// MoveOperation relocates the value at from to path.
func MoveOperation(path, from Path) PatchOperation {
	return engine.MoveOperation(path, from)
}

// TestOperation checks that the value at path equals value.
func TestOperation(path Path, value *Value) PatchOperation {
	return engine.TestOperation(path, value)
}

// NewPatch returns a patch holding ops in order.
func NewPatch(ops ...PatchOperation) Patch {
	return engine.NewPatch(ops...)
}

// ParsePatch decodes the JSON form of a patch: an array of objects with the
// "op", "path", "value" and "from" fields of RFC 6902.
func ParsePatch(data []byte) (Patch, error) {
	v, err := core.ParseJSON(data)
	if err != nil {
		return Patch{}, err
	}
	return engine.CreatePatchFromDomRepresentation(v)
}

// PatchFromValue builds a patch from its Value representation.
func PatchFromValue(v *Value) (Patch, error) {
	return engine.CreatePatchFromDomRepresentation(v)
}

// OperationFromValue builds an operation from its Value representation.
func OperationFromValue(v *Value) (PatchOperation, error) {
	return engine.CreateOperationFromDomRepresentation(v)
}
