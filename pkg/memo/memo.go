// Package memo is the runtime the memoizing transform links into emitted
// scenario code. Wrap is what every rewritten component literal goes
// through; nothing in the harness itself imports this package except the
// transformer's emitted output and its tests.
package memo

import "formprobe.dev/pkg/formprobe/pkg/render"

// Wrap memoizes a component. While the component's own subscriptions stay
// quiet and the incoming props compare shallow-equal to the previous
// render, the cached subtree is returned without invoking the component.
// A reference-stable controller prop therefore pins the output to whatever
// was rendered when the cache was filled. That interference is what the
// harness measures.
func Wrap(c render.Component) render.Component {
	return func(rc *render.Ctx, props render.Props) render.Node {
		if cached, ok := rc.MemoHit(props); ok {
			return cached
		}

		node := c(rc, props)
		rc.MemoStore(props, node)

		return node
	}
}
