//go:build fixtures

package scenarios

import (
	"formprobe.dev/pkg/formprobe/pkg/formlib"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Scenarios probes Reset against inputs bound through the controller
// alone: after filling two fields and resetting, both rendered input
// values must return to empty.
func Scenarios() []probe.Scenario {
	return []probe.Scenario{
		{
			ID:   "reset-bound-inputs",
			Name: "reset leaves controller-bound inputs stale",
			Run: func(s *render.Session) error {
				fields := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)

					return render.Box("fields",
						formlib.BindInput(f, "first", "first-input"),
						formlib.BindInput(f, "last", "last-input"),
					)
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{
						Defaults: formlib.Values{"first": "", "last": ""},
					})

					return render.Box("root",
						rc.Child("fields", fields, render.Props{"form": f}),
						render.Button("reset-button", "Reset", f.Reset),
					)
				}

				s.Mount(root)

				if err := s.Type("first-input", "Ada"); err != nil {
					return err
				}

				if err := s.Type("last-input", "Lovelace"); err != nil {
					return err
				}

				if err := s.WaitForInputValue("first-input", "Ada"); err != nil {
					return err
				}

				if err := s.WaitForInputValue("last-input", "Lovelace"); err != nil {
					return err
				}

				if err := s.Click("reset-button"); err != nil {
					return err
				}

				if err := s.WaitForInputValue("first-input", ""); err != nil {
					return err
				}

				return s.WaitForInputValue("last-input", "")
			},
		},
		{
			ID:         "reset-bound-inputs-workaround",
			Name:       "reset with memoization opt-out",
			Workaround: true,
			PairID:     "reset-bound-inputs",
			Run: func(s *render.Session) error {
				fields := func(rc *render.Ctx, props render.Props) render.Node {
					// memo:skip
					f := props["form"].(*formlib.Form)

					return render.Box("fields",
						formlib.BindInput(f, "first", "first-input"),
						formlib.BindInput(f, "last", "last-input"),
					)
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{
						Defaults: formlib.Values{"first": "", "last": ""},
					})

					return render.Box("root",
						rc.Child("fields", fields, render.Props{"form": f}),
						render.Button("reset-button", "Reset", f.Reset),
					)
				}

				s.Mount(root)

				if err := s.Type("first-input", "Ada"); err != nil {
					return err
				}

				if err := s.Type("last-input", "Lovelace"); err != nil {
					return err
				}

				if err := s.WaitForInputValue("first-input", "Ada"); err != nil {
					return err
				}

				if err := s.WaitForInputValue("last-input", "Lovelace"); err != nil {
					return err
				}

				if err := s.Click("reset-button"); err != nil {
					return err
				}

				if err := s.WaitForInputValue("first-input", ""); err != nil {
					return err
				}

				return s.WaitForInputValue("last-input", "")
			},
		},
	}
}
