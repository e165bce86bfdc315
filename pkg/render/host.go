package render

import (
	"reflect"
	"time"
)

// Props carries the values a parent passes to a child component. Memoizing
// wrappers compare Props shallowly, so a reference-stable value (same
// pointer, mutated internals) compares equal across renders.
type Props map[string]any

// Component renders a node tree from the current state reachable through
// its context and props.
type Component func(rc *Ctx, props Props) Node

// instance is the persistent identity of one mounted component, keyed by
// its position in the tree. Hook slots and memo caches live here.
type instance struct {
	path     string
	parent   *instance
	hooks    []any
	cursor   int
	dirty    bool
	provided map[string]any
	cleanups []func()

	memoProps Props
	memoNode  Node
	hasMemo   bool
}

type task struct {
	due time.Time
	fn  func()
}

// Host owns the mounted component tree. All methods must be called from a
// single goroutine; the scheduling model is cooperative, so no locking is
// needed or wanted here.
type Host struct {
	rootComp   Component
	rootProps  Props
	rootInst   *instance
	instances  map[string]*instance
	tree       Node
	mounted    bool
	needsFlush bool
	visited    map[string]bool
	tasks      []task
}

// NewHost constructs an empty Host.
func NewHost() *Host {
	return &Host{instances: map[string]*instance{}}
}

// Mount installs the root component and renders the initial tree.
func (h *Host) Mount(root Component, props Props) {
	h.rootComp = root
	h.rootProps = props
	h.rootInst = &instance{path: "root"}
	h.instances = map[string]*instance{"root": h.rootInst}
	h.mounted = true
	h.needsFlush = true
	h.Flush()
}

// Tree returns the most recently rendered node tree.
func (h *Host) Tree() Node { return h.tree }

// Flush re-renders the tree if any instance was marked dirty since the
// last render. Dirtiness propagates from state setters and subscription
// notifications.
func (h *Host) Flush() {
	if !h.mounted || !h.needsFlush {
		return
	}

	h.needsFlush = false
	h.visited = map[string]bool{}
	h.tree = h.renderInstance(h.rootInst, h.rootComp, h.rootProps)
	h.pruneUnmounted()
}

// After schedules fn to run once d has elapsed, the next time due tasks
// are pumped. It is the only deferred-execution mechanism the host offers,
// so every wait stays bounded by the caller's settle timeout.
func (h *Host) After(d time.Duration, fn func()) {
	h.tasks = append(h.tasks, task{due: time.Now().Add(d), fn: fn})
}

// RunDueTasks executes every task whose time has come and reports whether
// any ran.
func (h *Host) RunDueTasks() bool {
	now := time.Now()
	ran := false
	remaining := h.tasks[:0]

	for _, t := range h.tasks {
		if t.due.After(now) {
			remaining = append(remaining, t)
			continue
		}

		t.fn()

		ran = true
	}

	h.tasks = remaining

	return ran
}

func (h *Host) markDirty(inst *instance) {
	inst.dirty = true
	h.needsFlush = true
}

func (h *Host) renderInstance(inst *instance, comp Component, props Props) Node {
	h.visited[inst.path] = true
	inst.cursor = 0
	inst.provided = nil

	rc := &Ctx{host: h, inst: inst}
	node := comp(rc, props)
	inst.dirty = false

	return node
}

// subtreeDirty reports whether the instance or any mounted descendant has
// been marked dirty. A memo cache must not serve a subtree holding a
// pending state or subscription update; the update's owner re-renders
// even when the incoming props are unchanged.
func (h *Host) subtreeDirty(root *instance) bool {
	for _, inst := range h.instances {
		if !inst.dirty {
			continue
		}

		for p := inst; p != nil; p = p.parent {
			if p == root {
				return true
			}
		}
	}

	return false
}

// markSubtreeVisited keeps a memo-skipped instance and its descendants
// mounted even though none of them rendered this flush.
func (h *Host) markSubtreeVisited(root *instance) {
	for path, inst := range h.instances {
		for p := inst; p != nil; p = p.parent {
			if p == root {
				h.visited[path] = true
				break
			}
		}
	}
}

// pruneUnmounted drops instances that were neither rendered nor retained
// through a memo cache, running their subscription cleanups.
func (h *Host) pruneUnmounted() {
	for path, inst := range h.instances {
		if h.visited[path] {
			continue
		}

		for _, cleanup := range inst.cleanups {
			cleanup()
		}

		delete(h.instances, path)
	}
}

// Ctx is the per-render handle a component uses to reach its instance and
// the host. It is only valid for the duration of one render call.
type Ctx struct {
	host *Host
	inst *instance
}

// Path identifies the component instance, e.g. "root/panel/display".
func (rc *Ctx) Path() string { return rc.inst.path }

// Child mounts a nested component under a stable key and returns its
// rendered subtree. The key anchors the child's hook state across renders.
func (rc *Ctx) Child(key string, comp Component, props Props) Node {
	h := rc.host
	path := rc.inst.path + "/" + key

	inst, ok := h.instances[path]
	if !ok {
		inst = &instance{path: path, parent: rc.inst}
		h.instances[path] = inst
	}

	return h.renderInstance(inst, comp, props)
}

// Provide makes a value visible to descendants for this render pass.
func (rc *Ctx) Provide(key string, value any) {
	if rc.inst.provided == nil {
		rc.inst.provided = map[string]any{}
	}

	rc.inst.provided[key] = value
}

// Lookup resolves a provided value by walking toward the root.
func (rc *Ctx) Lookup(key string) (any, bool) {
	for p := rc.inst; p != nil; p = p.parent {
		if v, ok := p.provided[key]; ok {
			return v, true
		}
	}

	return nil, false
}

// After exposes the host task queue to hooks that resolve asynchronously,
// such as deferred validators.
func (rc *Ctx) After(d time.Duration, fn func()) {
	rc.host.After(d, fn)
}

// MemoHit returns the cached subtree when nothing in the instance's
// subtree has been marked dirty and the incoming props are shallow-equal
// to the cached ones. Used by memoizing component wrappers; regular
// components never call it.
func (rc *Ctx) MemoHit(props Props) (Node, bool) {
	inst := rc.inst
	if !inst.hasMemo || rc.host.subtreeDirty(inst) {
		return nil, false
	}

	if !shallowEqual(inst.memoProps, props) {
		return nil, false
	}

	rc.host.markSubtreeVisited(inst)

	return inst.memoNode, true
}

// MemoStore records the rendered subtree and a snapshot of the props that
// produced it.
func (rc *Ctx) MemoStore(props Props, node Node) {
	inst := rc.inst
	inst.hasMemo = true
	inst.memoProps = cloneProps(props)
	inst.memoNode = node
}

func cloneProps(props Props) Props {
	if props == nil {
		return nil
	}

	out := make(Props, len(props))
	for k, v := range props {
		out[k] = v
	}

	return out
}

func shallowEqual(a, b Props) bool {
	if len(a) != len(b) {
		return false
	}

	for k, va := range a {
		vb, ok := b[k]
		if !ok || !valueEqual(va, vb) {
			return false
		}
	}

	return true
}

// valueEqual compares prop values the way a memoizing runtime does:
// reference types by identity, comparable values by equality.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)

	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	default:
		if !va.Type().Comparable() {
			return false
		}

		return a == b
	}
}
