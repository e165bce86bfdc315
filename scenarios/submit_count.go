//go:build fixtures

package scenarios

import (
	"strconv"

	"formprobe.dev/pkg/formprobe/pkg/formlib"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Scenarios classifies the submission counter reads: the reference-stable
// f.SubmitCount against the subscription-based UseSubmitCount.
func Scenarios() []probe.Scenario {
	return []probe.Scenario{
		{
			ID:   "stable-submit-count",
			Name: "reference-stable submit counter stays at zero",
			Run: func(s *render.Session) error {
				counter := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					return render.Text("attempts", strconv.Itoa(f.SubmitCount()))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{Defaults: formlib.Values{"name": "x"}})

					return render.Box("root",
						render.Button("submit-button", "Submit", f.Submit),
						rc.Child("counter", counter, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.Click("submit-button"); err != nil {
					return err
				}

				if err := s.Click("submit-button"); err != nil {
					return err
				}

				return s.WaitForText("attempts", "2")
			},
		},
		{
			ID:         "stable-submit-count-workaround",
			Name:       "reference-stable submit counter with memoization opt-out",
			Workaround: true,
			PairID:     "stable-submit-count",
			Run: func(s *render.Session) error {
				counter := func(rc *render.Ctx, props render.Props) render.Node {
					// memo:skip
					f := props["form"].(*formlib.Form)
					return render.Text("attempts", strconv.Itoa(f.SubmitCount()))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{Defaults: formlib.Values{"name": "x"}})

					return render.Box("root",
						render.Button("submit-button", "Submit", f.Submit),
						rc.Child("counter", counter, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.Click("submit-button"); err != nil {
					return err
				}

				if err := s.Click("submit-button"); err != nil {
					return err
				}

				return s.WaitForText("attempts", "2")
			},
		},
		{
			ID:   "subscription-submit-count",
			Name: "subscription-based submit counter stays fresh",
			Run: func(s *render.Session) error {
				counter := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					return render.Text("attempts", strconv.Itoa(formlib.UseSubmitCount(rc, f)))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{Defaults: formlib.Values{"name": "x"}})

					return render.Box("root",
						render.Button("submit-button", "Submit", f.Submit),
						rc.Child("counter", counter, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.Click("submit-button"); err != nil {
					return err
				}

				if err := s.Click("submit-button"); err != nil {
					return err
				}

				return s.WaitForText("attempts", "2")
			},
		},
	}
}
