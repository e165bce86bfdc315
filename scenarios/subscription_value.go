//go:build fixtures

package scenarios

import (
	"fmt"

	"formprobe.dev/pkg/formprobe/pkg/formlib"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Scenarios classifies the subscription-based value reads: UseValue and
// UseValues dirty the subscribing component on every change, which
// defeats the memo cache, so these stay fresh in both modes.
func Scenarios() []probe.Scenario {
	return []probe.Scenario{
		{
			ID:   "subscription-value",
			Name: "subscription-based value read stays fresh",
			Run: func(s *render.Session) error {
				display := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					return render.Text("display", formlib.UseValue(rc, f, "name"))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{Defaults: formlib.Values{"name": ""}})
					return render.Box("root",
						formlib.Field(rc, f, "name", "name-input"),
						rc.Child("display", display, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.Type("name-input", "hello"); err != nil {
					return err
				}

				return s.WaitForText("display", "hello")
			},
		},
		{
			ID:   "subscription-values-watch",
			Name: "whole-value-set subscription stays fresh",
			Run: func(s *render.Session) error {
				summary := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					values := formlib.UseValues(rc, f)

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
	}
}
