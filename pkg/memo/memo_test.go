package memo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formprobe.dev/pkg/formprobe/pkg/memo"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

type model struct {
	value string
}

// TestWrap_CachesWhilePropsStable shows the staleness the harness exists
// to detect: a wrapped child rendering through a stable pointer keeps
// serving its cached output after the pointee changes.
func TestWrap_CachesWhilePropsStable(t *testing.T) {
	mdl := &model{value: "v1"}
	childRenders := 0

	child := memo.Wrap(func(rc *render.Ctx, props render.Props) render.Node {
		childRenders++

		m := props["model"].(*model)

		return render.Text("display", m.value)
	})

	var rerender func()

	s := render.NewSession()
	s.Mount(func(rc *render.Ctx, props render.Props) render.Node {
		_, set := render.UseState(rc, 0)
		rerender = func() { set(childRenders) }

		return render.Box("root", rc.Child("display", child, render.Props{"model": mdl}))
	})

	require.Equal(t, 1, childRenders)

	mdl.value = "v2"
	rerender()
	s.Flush()

	assert.Equal(t, 1, childRenders, "cached render should have been served")

	got, err := s.Text("display")
	require.NoError(t, err)
	assert.Equal(t, "v1", got, "stale output is the expected memoized behavior")
}

// TestWrap_MissesOnChangedProps verifies a fresh pointer defeats the
// cache.
func TestWrap_MissesOnChangedProps(t *testing.T) {
	childRenders := 0

	child := memo.Wrap(func(rc *render.Ctx, props render.Props) render.Node {
		childRenders++

		m := props["model"].(*model)

		return render.Text("display", m.value)
	})

	current := &model{value: "v1"}

	var rerender func()

	s := render.NewSession()
	s.Mount(func(rc *render.Ctx, props render.Props) render.Node {
		_, set := render.UseState(rc, 0)
		rerender = func() { set(childRenders) }

		return render.Box("root", rc.Child("display", child, render.Props{"model": current}))
	})

	current = &model{value: "v2"}
	rerender()
	s.Flush()

	assert.Equal(t, 2, childRenders)

	got, err := s.Text("display")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
}

// TestWrap_MissesOnSubscription verifies a subscription inside the
// wrapped component forces a fresh render even with stable props.
func TestWrap_MissesOnSubscription(t *testing.T) {
	mdl := &model{value: "v1"}

	var notify func()

	child := memo.Wrap(func(rc *render.Ctx, props render.Props) render.Node {
		m := props["model"].(*model)

		render.UseSubscription(rc, func(n func()) func() {
			notify = n
			return func() {}
		}, func() any { return m.value })

		return render.Text("display", m.value)
	})

	s := render.NewSession()
	s.Mount(func(rc *render.Ctx, props render.Props) render.Node {
		return render.Box("root", rc.Child("display", child, render.Props{"model": mdl}))
	})

	mdl.value = "v2"
	notify()
	s.Flush()

	got, err := s.Text("display")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
}
