//go:build fixtures

package scenarios

import (
	"formprobe.dev/pkg/formprobe/pkg/formlib"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Scenarios probes a section whose visibility is decided inside a child
// from a reference-stable read: a selector switches the field to "text",
// and only then should the section render.
func Scenarios() []probe.Scenario {
	return []probe.Scenario{
		{
			ID:   "conditional-section",
			Name: "conditional section gated on a reference-stable read never appears",
			Run: func(s *render.Session) error {
				section := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					if f.Value("kind") != "text" {
						return render.Box("section-host")
					}

					return render.Box("section-host", render.Text("text-options", "text options"))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{Defaults: formlib.Values{"kind": "number"}})

					return render.Box("root",
						formlib.FieldSelect(rc, f, "kind", "kind-select", []string{"number", "text"}),
						rc.Child("section", section, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.SelectOption("kind-select", "text"); err != nil {
					return err
				}

				return s.WaitForPresent("text-options")
			},
		},
		{
			ID:         "conditional-section-workaround",
			Name:       "conditional section with memoization opt-out",
			Workaround: true,
			PairID:     "conditional-section",
			Run: func(s *render.Session) error {
				section := func(rc *render.Ctx, props render.Props) render.Node {
					// memo:skip
					f := props["form"].(*formlib.Form)
					if f.Value("kind") != "text" {
						return render.Box("section-host")
					}

					return render.Box("section-host", render.Text("text-options", "text options"))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{Defaults: formlib.Values{"kind": "number"}})

					return render.Box("root",
						formlib.FieldSelect(rc, f, "kind", "kind-select", []string{"number", "text"}),
						rc.Child("section", section, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.SelectOption("kind-select", "text"); err != nil {
					return err
				}

				return s.WaitForPresent("text-options")
			},
		},
	}
}
