//go:build fixtures

// Package scenarios holds the fixture files the harness loads through its
// interpreter. Each file is self-contained and exports a Scenarios
// function; files never share helpers because every file is evaluated in
// its own interpreter.
package scenarios

import (
	"formprobe.dev/pkg/formprobe/pkg/formlib"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Scenarios classifies the reference-stable value read: a child component
// renders f.Value through the controller alone, so nothing re-renders it
// when the field changes under a memoizing wrapper.
func Scenarios() []probe.Scenario {
	return []probe.Scenario{
		{
			ID:   "stable-value",
			Name: "reference-stable value read goes stale under memoization",
			Run: func(s *render.Session) error {
				display := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					return render.Text("display", f.Value("name"))
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
			ID:         "stable-value-workaround",
			Name:       "reference-stable value read with memoization opt-out",
			Workaround: true,
			PairID:     "stable-value",
			Run: func(s *render.Session) error {
				display := func(rc *render.Ctx, props render.Props) render.Node {
					// memo:skip
					f := props["form"].(*formlib.Form)
					return render.Text("display", f.Value("name"))
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
	}
}
