package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost_MountRendersTree(t *testing.T) {
	h := NewHost()

	h.Mount(func(rc *Ctx, props Props) Node {
		return Box("root", Text("greeting", "hi"))
	}, nil)

	node := findNode(h.Tree(), "greeting")
	require.NotNil(t, node)
	assert.Equal(t, "hi", node.(*TextNode).Value)
}

func TestHost_UseStateSurvivesRenders(t *testing.T) {
	h := NewHost()

	var set func(any)

	h.Mount(func(rc *Ctx, props Props) Node {
		v, s := UseState(rc, 1)
		set = s

		return Text("value", string(rune('0'+v.(int))))
	}, nil)

	assert.Equal(t, "1", h.Tree().(*TextNode).Value)

	set(7)
	h.Flush()

	assert.Equal(t, "7", h.Tree().(*TextNode).Value)
}

func TestHost_UseLazyKeepsIdentity(t *testing.T) {
	h := NewHost()

	created := 0

	var first, second any

	comp := func(rc *Ctx, props Props) Node {
		v := UseLazy(rc, func() any {
			created++
			return &struct{ n int }{n: created}
		})

		if first == nil {
			first = v
		} else {
			second = v
		}

		return Text("t", "x")
	}

	h.Mount(comp, nil)

	// Force a second render.
	h.needsFlush = true
	h.Flush()

	assert.Equal(t, 1, created)
	assert.Same(t, first, second)
}

func TestHost_UseSubscriptionMarksDirty(t *testing.T) {
	h := NewHost()

	var notify func()
	value := "a"

	h.Mount(func(rc *Ctx, props Props) Node {
		v := UseSubscription(rc, func(n func()) func() {
			notify = n
			return func() {}
		}, func() any { return value })

		return Text("value", v.(string))
	}, nil)

	assert.Equal(t, "a", h.Tree().(*TextNode).Value)

	value = "b"
	notify()
	h.Flush()

	assert.Equal(t, "b", h.Tree().(*TextNode).Value)
}

func TestHost_ChildInstancePersists(t *testing.T) {
	h := NewHost()

	childRenders := 0

	child := func(rc *Ctx, props Props) Node {
		childRenders++

		v, _ := UseState(rc, 42)

		return Text("child", string(rune('0'+v.(int)%10)))
	}

	h.Mount(func(rc *Ctx, props Props) Node {
		return Box("root", rc.Child("c", child, nil))
	}, nil)

	h.needsFlush = true
	h.Flush()

	assert.Equal(t, 2, childRenders)
	assert.Len(t, h.instances, 2)
}

func TestHost_ProvideLookup(t *testing.T) {
	h := NewHost()

	var got any
	var found bool

	child := func(rc *Ctx, props Props) Node {
		got, found = rc.Lookup("key")
		return Text("c", "x")
	}

	h.Mount(func(rc *Ctx, props Props) Node {
		rc.Provide("key", "payload")
		return rc.Child("c", child, nil)
	}, nil)

	require.True(t, found)
	assert.Equal(t, "payload", got)
}

func TestHost_LookupMissing(t *testing.T) {
	h := NewHost()

	var found bool

	h.Mount(func(rc *Ctx, props Props) Node {
		_, found = rc.Lookup("absent")
		return Text("t", "x")
	}, nil)

	assert.False(t, found)
}

func TestHost_PruneRunsCleanups(t *testing.T) {
	h := NewHost()

	cleaned := false
	showChild := true

	child := func(rc *Ctx, props Props) Node {
		UseSubscription(rc, func(n func()) func() {
			return func() { cleaned = true }
		}, func() any { return nil })

		return Text("c", "x")
	}

	h.Mount(func(rc *Ctx, props Props) Node {
		if showChild {
			return Box("root", rc.Child("c", child, nil))
		}

		return Box("root")
	}, nil)

	showChild = false
	h.needsFlush = true
	h.Flush()

	assert.True(t, cleaned)
	assert.Len(t, h.instances, 1)
}

func TestCtx_MemoHitRequiresCleanSubtree(t *testing.T) {
	h := NewHost()
	h.Mount(func(rc *Ctx, props Props) Node { return Text("t", "x") }, nil)

	inst := h.rootInst
	rc := &Ctx{host: h, inst: inst}

	props := Props{"n": 1}
	rc.MemoStore(props, Text("cached", "v"))

	node, ok := rc.MemoHit(Props{"n": 1})
	require.True(t, ok)
	assert.Equal(t, "cached", node.NodeID())

	// A dirty instance in the subtree defeats the cache.
	h.markDirty(inst)

	_, ok = rc.MemoHit(Props{"n": 1})
	assert.False(t, ok)
}

func TestCtx_MemoHitRequiresShallowEqualProps(t *testing.T) {
	h := NewHost()
	h.Mount(func(rc *Ctx, props Props) Node { return Text("t", "x") }, nil)

	rc := &Ctx{host: h, inst: h.rootInst}
	rc.MemoStore(Props{"n": 1}, Text("cached", "v"))

	_, ok := rc.MemoHit(Props{"n": 2})
	assert.False(t, ok)
}

func TestShallowEqual_ReferenceKinds(t *testing.T) {
	type controller struct{ n int }

	a := &controller{n: 1}
	b := &controller{n: 1}

	assert.True(t, shallowEqual(Props{"c": a}, Props{"c": a}))
	assert.False(t, shallowEqual(Props{"c": a}, Props{"c": b}))

	fn := func() {}
	assert.True(t, shallowEqual(Props{"f": fn}, Props{"f": fn}))

	assert.True(t, shallowEqual(Props{"s": "x"}, Props{"s": "x"}))
	assert.False(t, shallowEqual(Props{"s": "x"}, Props{"s": "y"}))
	assert.False(t, shallowEqual(Props{"s": "x"}, Props{"s": "x", "t": "y"}))
}
