package engine

import (
	"strings"

	"github.com/brunoga/dom/internal/core"
)

// ApplyState is handed to a Strategy after each operation of a patch.
type ApplyState struct {
	// Index of the operation just applied.
	Index int
	// Operation just applied.
	Operation PatchOperation
	// Err is the outcome of the operation.
	Err error
	// Continue is set by the strategy to apply the next operation.
	Continue bool
}

// Strategy decides whether patch application goes on after an operation.
type Strategy func(state *ApplyState)

// HaltOnFailure stops at the first failed operation. Operations applied
// before it stay applied.
func HaltOnFailure(state *ApplyState) {
	state.Continue = state.Err == nil
}

// IgnoreFailureAndContinue applies every operation regardless of failures.
func IgnoreFailureAndContinue(state *ApplyState) {
	state.Continue = true
}

// Patch is an ordered sequence of operations applied left to right.
// Duplicates and operations cancelling each other are allowed.
type Patch struct {
	ops []PatchOperation
}

// NewPatch returns a patch holding ops in order.
func NewPatch(ops ...PatchOperation) Patch {
	p := Patch{}
	if len(ops) > 0 {
		p.ops = append(make([]PatchOperation, 0, len(ops)), ops...)
	}
	return p
}

func (p *Patch) PushBack(op PatchOperation) {
	p.ops = append(p.ops, op)
}

func (p *Patch) PushFront(op PatchOperation) {
	p.ops = append(p.ops, PatchOperation{})
	copy(p.ops[1:], p.ops)
	p.ops[0] = op
}

// PopBack removes and returns the last operation.
func (p *Patch) PopBack() (PatchOperation, bool) {
	if len(p.ops) == 0 {
		return PatchOperation{}, false
	}
	op := p.ops[len(p.ops)-1]
	p.ops[len(p.ops)-1] = PatchOperation{}
	p.ops = p.ops[:len(p.ops)-1]
	return op, true
}

func (p *Patch) Clear() {
	p.ops = nil
}

// At returns the operation at i. It panics if i is out of range.
func (p Patch) At(i int) PatchOperation {
	return p.ops[i]
}

func (p Patch) Size() int {
	return len(p.ops)
}

func (p Patch) IsEmpty() bool {
	return len(p.ops) == 0
}

// Operations returns the operations in order. The returned slice must not
// be modified.
func (p Patch) Operations() []PatchOperation {
	return p.ops
}

// Append adds all operations of other at the end of p.
func (p *Patch) Append(other Patch) {
	p.ops = append(p.ops, other.ops...)
}

func (p Patch) Equal(other Patch) bool {
	if len(p.ops) != len(other.ops) {
		return false
	}
	for i := range p.ops {
		if !p.ops[i].Equal(other.ops[i]) {
			return false
		}
	}
	return true
}

func (p Patch) String() string {
	return p.DomRepresentation().String()
}

// Summary returns one human readable line per operation.
func (p Patch) Summary() string {
	var b strings.Builder
	for i, op := range p.ops {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(op.Summary())
	}
	return b.String()
}

// ApplyInPlace applies the operations to root in order, consulting strategy
// after each one. A nil strategy is HaltOnFailure. It returns the outcome of
// the last operation applied.
func (p Patch) ApplyInPlace(root *core.Value, strategy Strategy, opts ...ApplyOption) error {
	config := newApplyConfig(opts)
	if strategy == nil {
		strategy = HaltOnFailure
	}

	var last error
	for i, op := range p.ops {
		err := op.ApplyInPlace(root)
		if err != nil {
			config.debug("patch operation failed", "index", i, "op", op.typ.String(), "path", op.path.String(), "error", err)
		}
		state := ApplyState{Index: i, Operation: op, Err: err, Continue: true}
		strategy(&state)
		last = state.Err
		if !state.Continue {
			config.debug("patch application stopped", "index", i, "remaining", len(p.ops)-i-1)
			break
		}
	}
	return last
}

// Apply applies the patch to a copy of root and returns the copy, which
// reflects every operation applied before the strategy stopped.
func (p Patch) Apply(root *core.Value, strategy Strategy, opts ...ApplyOption) (*core.Value, error) {
	res := root.Clone()
	err := p.ApplyInPlace(res, strategy, opts...)
	return res, err
}

// Inverse computes the patch undoing p against before, the state p is
// applied to. before is not modified.
func (p Patch) Inverse(before *core.Value) (Patch, error) {
	state := before.Clone()
	inverse := Patch{}
	for _, op := range p.ops {
		inv, err := op.Inverse(state)
		if err != nil {
			return Patch{}, err
		}
		if err := op.ApplyInPlace(state); err != nil {
			return Patch{}, err
		}
		inverse.PushFront(inv)
	}
	return inverse, nil
}
