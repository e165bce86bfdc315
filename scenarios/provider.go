//go:build fixtures

package scenarios

import (
	"formprobe.dev/pkg/formprobe/pkg/formlib"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Scenarios probes implicit controller propagation through the
// provider/consumer pair. The consumer takes no props at all, so a
// memoizing wrapper always sees equal props; only a subscription inside
// the consumer can force it fresh.
func Scenarios() []probe.Scenario {
	return []probe.Scenario{
		{
			ID:   "provider-consumer-stable",
			Name: "context consumer with reference-stable read goes stale",
			Run: func(s *render.Session) error {
				consumer := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseFormController(rc)
					return render.Text("display", f.Value("name"))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{Defaults: formlib.Values{"name": ""}})
					formlib.Provide(rc, f)

					return render.Box("root",
						formlib.Field(rc, f, "name", "name-input"),
						rc.Child("consumer", consumer, nil),
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
			ID:         "provider-consumer-stable-workaround",
			Name:       "context consumer with memoization opt-out",
			Workaround: true,
			PairID:     "provider-consumer-stable",
			Run: func(s *render.Session) error {
				consumer := func(rc *render.Ctx, props render.Props) render.Node {
					// memo:skip
					f := formlib.UseFormController(rc)
					return render.Text("display", f.Value("name"))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{Defaults: formlib.Values{"name": ""}})
					formlib.Provide(rc, f)

					return render.Box("root",
						formlib.Field(rc, f, "name", "name-input"),
						rc.Child("consumer", consumer, nil),
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
			ID:   "provider-consumer-subscription",
			Name: "context consumer with subscription read stays fresh",
			Run: func(s *render.Session) error {
				consumer := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseFormController(rc)
					return render.Text("display", formlib.UseValue(rc, f, "name"))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{Defaults: formlib.Values{"name": ""}})
					formlib.Provide(rc, f)

					return render.Box("root",
						formlib.Field(rc, f, "name", "name-input"),
						rc.Child("consumer", consumer, nil),
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
