//go:build fixtures

package scenarios

import (
	"fmt"

	"formprobe.dev/pkg/formprobe/pkg/formlib"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Scenarios probes a summary over the whole value set read through the
// controller's CurrentValues. The copy is fresh on every call, but the
// component holding it never re-renders under memoization.
func Scenarios() []probe.Scenario {
	return []probe.Scenario{
		{
			ID:   "stable-values-summary",
			Name: "reference-stable whole-value summary goes stale",
			Run: func(s *render.Session) error {
				summary := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					values := f.CurrentValues()

					return render.Text("summary", fmt.Sprintf("%s %s", values["first"], values["last"]))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{
						Defaults: formlib.Values{"first": "", "last": ""},
					})

					return render.Box("root",
						formlib.Field(rc, f, "first", "first-input"),
						formlib.Field(rc, f, "last", "last-input"),
						rc.Child("summary", summary, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.Type("first-input", "Ada"); err != nil {
					return err
				}

				if err := s.Type("last-input", "Lovelace"); err != nil {
					return err
				}

				return s.WaitForText("summary", "Ada Lovelace")
			},
		},
		{
			ID:         "stable-values-summary-workaround",
			Name:       "whole-value summary with memoization opt-out",
			Workaround: true,
			PairID:     "stable-values-summary",
			Run: func(s *render.Session) error {
				summary := func(rc *render.Ctx, props render.Props) render.Node {
					// memo:skip
					f := props["form"].(*formlib.Form)
					values := f.CurrentValues()

					return render.Text("summary", fmt.Sprintf("%s %s", values["first"], values["last"]))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{
						Defaults: formlib.Values{"first": "", "last": ""},
					})

					return render.Box("root",
						formlib.Field(rc, f, "first", "first-input"),
						formlib.Field(rc, f, "last", "last-input"),
						rc.Child("summary", summary, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.Type("first-input", "Ada"); err != nil {
					return err
				}

				if err := s.Type("last-input", "Lovelace"); err != nil {
					return err
				}

				return s.WaitForText("summary", "Ada Lovelace")
			},
		},
		{
			ID:   "local-state-counter",
			Name: "component-local state always re-renders its owner",
			Run: func(s *render.Session) error {
				counter := func(rc *render.Ctx, props render.Props) render.Node {
					value, set := render.UseState(rc, 0)
					n := value.(int)

					return render.Box("counter",
						render.Text("count", fmt.Sprintf("%d", n)),
						render.Button("increment", "+1", func() { set(n + 1) }),
					)
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					return render.Box("root", rc.Child("counter", counter, nil))
				}

				s.Mount(root)

				if err := s.Click("increment"); err != nil {
					return err
				}

				if err := s.WaitForText("count", "1"); err != nil {
					return err
				}

				if err := s.Click("increment"); err != nil {
					return err
				}

				return s.WaitForText("count", "2")
			},
		},
	}
}
