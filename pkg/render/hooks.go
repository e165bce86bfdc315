package render

// slot returns the hook cell at the instance's current cursor position,
// creating it on first render. Hooks must be called in the same order on
// every render of a component; a reordered call fails the type assertion
// and surfaces as a scenario crash.
func slot[T any](rc *Ctx, create func() T) T {
	inst := rc.inst

	if inst.cursor < len(inst.hooks) {
		cell := inst.hooks[inst.cursor].(T)
		inst.cursor++

		return cell
	}

	cell := create()
	inst.hooks = append(inst.hooks, cell)
	inst.cursor++

	return cell
}

type stateCell struct {
	value any
}

// UseState keeps a value on the component instance across renders. The
// setter marks the owning instance dirty, which schedules a re-render on
// the next flush.
func UseState(rc *Ctx, initial any) (any, func(any)) {
	cell := slot(rc, func() *stateCell { return &stateCell{value: initial} })

	host := rc.host
	inst := rc.inst

	set := func(v any) {
		cell.value = v
		host.markDirty(inst)
	}

	return cell.value, set
}

type lazyCell struct {
	value any
}

// UseLazy creates a value on first render and hands back the same value on
// every subsequent one. It is how a hook keeps an identity-stable object,
// like a form controller, alive across renders.
func UseLazy(rc *Ctx, create func() any) any {
	cell := slot(rc, func() *lazyCell { return &lazyCell{value: create()} })

	return cell.value
}

type subscriptionCell struct {
	read  func() any
	unsub func()
}

// UseSubscription subscribes the component instance to an external source.
// On first render it installs the subscription; whenever the source
// notifies, the instance is marked dirty so the next flush re-renders it
// even through a memoizing wrapper. The current value is re-read on every
// render.
func UseSubscription(rc *Ctx, subscribe func(notify func()) (unsubscribe func()), read func() any) any {
	host := rc.host
	inst := rc.inst

	cell := slot(rc, func() *subscriptionCell {
		c := &subscriptionCell{}
		c.unsub = subscribe(func() { host.markDirty(inst) })
		inst.cleanups = append(inst.cleanups, func() {
			if c.unsub != nil {
				c.unsub()
			}
		})

		return c
	})

	cell.read = read

	return cell.read()
}
