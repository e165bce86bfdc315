//go:build fixtures

package scenarios

import (
	"formprobe.dev/pkg/formprobe/pkg/formlib"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Scenarios classifies the selector bindings: the subscription-based
// FieldSelect wrapper against the controller-only BindSelect.
func Scenarios() []probe.Scenario {
	options := []string{"red", "green", "blue"}

	return []probe.Scenario{
		{
			ID:   "field-select",
			Name: "controlled selector wrapper stays fresh",
			Run: func(s *render.Session) error {
				picker := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					return render.Box("picker",
						formlib.FieldSelect(rc, f, "color", "color-select", options),
						render.Text("chosen", formlib.UseValue(rc, f, "color")),
					)
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{Defaults: formlib.Values{"color": "red"}})
					return rc.Child("picker", picker, render.Props{"form": f})
				}

				s.Mount(root)

				if err := s.SelectOption("color-select", "blue"); err != nil {
					return err
				}

				return s.WaitForText("chosen", "blue")
			},
		},
		{
			ID:   "bind-select",
			Name: "controller-bound selector goes stale",
			Run: func(s *render.Session) error {
				picker := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					return render.Box("picker",
						formlib.BindSelect(f, "color", "color-select", options),
						render.Text("chosen", f.Value("color")),
					)
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{Defaults: formlib.Values{"color": "red"}})
					return render.Box("root",
						rc.Child("picker", picker, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.SelectOption("color-select", "blue"); err != nil {
					return err
				}

				return s.WaitForText("chosen", "blue")
			},
		},
		{
			ID:         "bind-select-workaround",
			Name:       "controller-bound selector with memoization opt-out",
			Workaround: true,
			PairID:     "bind-select",
			Run: func(s *render.Session) error {
				picker := func(rc *render.Ctx, props render.Props) render.Node {
					// memo:skip
					f := props["form"].(*formlib.Form)
					return render.Box("picker",
						formlib.BindSelect(f, "color", "color-select", options),
						render.Text("chosen", f.Value("color")),
					)
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{Defaults: formlib.Values{"color": "red"}})
					return render.Box("root",
						rc.Child("picker", picker, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.SelectOption("color-select", "blue"); err != nil {
					return err
				}

				return s.WaitForText("chosen", "blue")
			},
		},
	}
}
