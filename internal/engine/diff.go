package engine

import (
	"sync"

	"github.com/brunoga/dom/internal/core"
)

// PatchInfo holds a forward patch and the inverse patch undoing it. The
// inverse is already in application order.
type PatchInfo struct {
	Forward Patch
	Inverse Patch
}

// Differ computes patches between two value trees.
type Differ struct {
	config *diffConfig
}

// NewDiffer creates a new Differ with the given options.
func NewDiffer(opts ...DiffOption) *Differ {
	return &Differ{config: newDiffConfig(opts)}
}

var defaultDiffer = NewDiffer()

// GenerateHierarchicalDeltaPatch returns the patches turning before into
// after and back. Neither input is modified and the patches share no memory
// with them.
func GenerateHierarchicalDeltaPatch(before, after *core.Value, opts ...DiffOption) PatchInfo {
	d := defaultDiffer
	if len(opts) > 0 {
		d = NewDiffer(opts...)
	}
	return d.Diff(before, after)
}

// diffItem is a pending comparison of two subtrees at path.
type diffItem struct {
	path   core.Path
	before *core.Value
	after  *core.Value
}

// diffContext holds transient state for a single Diff execution.
type diffContext struct {
	queue []diffItem
	head  int
	info  PatchInfo
}

var diffContextPool = sync.Pool{
	New: func() any {
		return &diffContext{
			queue: make([]diffItem, 0, 32),
		}
	},
}

func getDiffContext() *diffContext {
	return diffContextPool.Get().(*diffContext)
}

func releaseDiffContext(ctx *diffContext) {
	for i := range ctx.queue {
		ctx.queue[i] = diffItem{}
	}
	ctx.queue = ctx.queue[:0]
	ctx.head = 0
	ctx.info = PatchInfo{}
	diffContextPool.Put(ctx)
}

func (ctx *diffContext) push(item diffItem) {
	ctx.queue = append(ctx.queue, item)
}

func (ctx *diffContext) pop() (diffItem, bool) {
	if ctx.head == len(ctx.queue) {
		return diffItem{}, false
	}
	item := ctx.queue[ctx.head]
	ctx.queue[ctx.head] = diffItem{}
	ctx.head++
	return item, true
}

// emit records a forward operation and its inverse. Inverses are collected
// in discovery order and reversed once the walk is done, which is the same
// as prepending each of them.
func (ctx *diffContext) emit(forward, inverse PatchOperation) {
	ctx.info.Forward.PushBack(forward)
	ctx.info.Inverse.ops = append(ctx.info.Inverse.ops, inverse)
}

// Diff compares before and after breadth first, using an explicit queue
// rather than recursion so that deep trees cannot exhaust the stack.
func (d *Differ) Diff(before, after *core.Value) PatchInfo {
	ctx := getDiffContext()
	defer releaseDiffContext(ctx)

	ctx.push(diffItem{path: core.Path{}, before: before, after: after})
	visited := 0
	for {
		item, ok := ctx.pop()
		if !ok {
			break
		}
		visited++
		d.compare(ctx, item)
	}

	// Inverses were collected in discovery order.
	inv := ctx.info.Inverse.ops
	for i, j := 0, len(inv)-1; i < j; i, j = i+1, j-1 {
		inv[i], inv[j] = inv[j], inv[i]
	}

	d.config.debug("diff generated",
		"visited", visited,
		"operations", ctx.info.Forward.Size())
	return ctx.info
}

func (d *Differ) replace(ctx *diffContext, path core.Path, before, after *core.Value) {
	ctx.emit(ReplaceOperation(path, after), ReplaceOperation(path, before))
}

func (d *Differ) compare(ctx *diffContext, item diffItem) {
	before, after := item.before, item.after
	if d.config.ignored(item.path) {
		return
	}

	if before == after || core.Equal(before, after) {
		return
	}
	if before.Kind() != after.Kind() {
		d.replace(ctx, item.path, before, after)
		return
	}

	switch before.Kind() {
	case core.NodeKind:
		if before.NodeName() != after.NodeName() {
			d.replace(ctx, item.path, before, after)
			return
		}
		if d.collapseArray(item.path, before, after) {
			d.replace(ctx, item.path, before, after)
			return
		}
		d.diffMembers(ctx, item.path, before, after)
		d.diffElements(ctx, item.path, before, after)
	case core.ObjectKind:
		d.diffMembers(ctx, item.path, before, after)
	case core.ArrayKind:
		if d.collapseArray(item.path, before, after) {
			d.replace(ctx, item.path, before, after)
			return
		}
		d.diffElements(ctx, item.path, before, after)
	default:
		// Unequal values of the same scalar kind.
		d.replace(ctx, item.path, before, after)
	}
}

// settle handles a pair of children right away when no descent is needed
// and queues it otherwise.
func (d *Differ) settle(ctx *diffContext, path core.Path, before, after *core.Value) {
	if d.config.ignored(path) || before == after {
		return
	}
	if before.Kind() != after.Kind() || !before.IsContainer() {
		if !core.Equal(before, after) {
			d.replace(ctx, path, before, after)
		}
		return
	}
	ctx.push(diffItem{path: path, before: before, after: after})
}

// diffMembers walks before's members in order, removing the keys missing from
// after and comparing the shared ones, then adds the new keys in after's
// order. Shared keys holding scalars are settled in place, so their replaces
// come before every addition.
func (d *Differ) diffMembers(ctx *diffContext, path core.Path, before, after *core.Value) {
	afterMembers := memberIndex(after)
	for _, m := range before.Members() {
		childPath := path.AppendKey(m.Key)
		av, ok := afterMembers.find(after, m.Key)
		if !ok {
			if !d.config.ignored(childPath) {
				ctx.emit(RemoveOperation(childPath), AddOperation(childPath, m.Value))
			}
			continue
		}
		d.settle(ctx, childPath, m.Value, av)
	}

	beforeMembers := memberIndex(before)
	for _, m := range after.Members() {
		if _, ok := beforeMembers.find(before, m.Key); ok {
			continue
		}
		childPath := path.AppendKey(m.Key)
		if !d.config.ignored(childPath) {
			ctx.emit(AddOperation(childPath, m.Value), RemoveOperation(childPath))
		}
	}
}

// diffElements compares the aligned elements, appends the new trailing
// elements in ascending order and removes the dropped trailing elements
// from the end backwards. All appends and removals use the end-of-array
// entry.
func (d *Differ) diffElements(ctx *diffContext, path core.Path, before, after *core.Value) {
	b, a := before.Elements(), after.Elements()
	n := len(b)
	if len(a) < n {
		n = len(a)
	}
	for i := 0; i < n; i++ {
		d.settle(ctx, path.AppendIndex(i), b[i], a[i])
	}

	end := path.Append(core.EndOfArray())
	for i := n; i < len(a); i++ {
		ctx.emit(AddOperation(end, a[i]), RemoveOperation(end))
	}
	for i := len(b) - 1; i >= n; i-- {
		ctx.emit(RemoveOperation(end), AddOperation(end, b[i]))
	}
}

// collapseArray reports whether enough index-aligned elements differ for
// the array to be replaced as a whole. Arrays holding an ignored path are
// never collapsed.
func (d *Differ) collapseArray(path core.Path, before, after *core.Value) bool {
	threshold := d.config.replaceThreshold
	if threshold < 0 || d.config.ignoresBelow(path) {
		return false
	}
	if threshold == 0 {
		return !elementsEqual(before, after)
	}

	b, a := before.Elements(), after.Elements()
	n := len(b)
	if len(a) < n {
		n = len(a)
	}
	differing := 0
	for i := 0; i < n; i++ {
		if b[i] == a[i] || core.Equal(b[i], a[i]) {
			continue
		}
		differing++
		if differing >= threshold {
			d.config.debug("replacing array as a whole",
				"path", path.String(),
				"threshold", threshold)
			return true
		}
	}
	return false
}

func elementsEqual(before, after *core.Value) bool {
	b, a := before.Elements(), after.Elements()
	if len(b) != len(a) {
		return false
	}
	for i := range b {
		if !core.Equal(b[i], a[i]) {
			return false
		}
	}
	return true
}

// memberLookup speeds up key lookups on large objects.
type memberLookup map[string]*core.Value

const memberIndexThreshold = 16

func memberIndex(v *core.Value) memberLookup {
	members := v.Members()
	if len(members) < memberIndexThreshold {
		return nil
	}
	idx := make(memberLookup, len(members))
	for _, m := range members {
		idx[m.Key] = m.Value
	}
	return idx
}

func (l memberLookup) find(v *core.Value, key string) (*core.Value, bool) {
	if l == nil {
		return v.FindMember(key)
	}
	val, ok := l[key]
	return val, ok
}
