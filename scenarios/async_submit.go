//go:build fixtures

package scenarios

import (
	"errors"
	"fmt"
	"time"

	"formprobe.dev/pkg/formprobe/pkg/formlib"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Scenarios probes the submission lifecycle: the asynchronous in-flight
// flag observed through its subscription hook, and a failing validator
// blocking delivery entirely.
func Scenarios() []probe.Scenario {
	return []probe.Scenario{
		{
			ID:   "submitting-lifecycle",
			Name: "async submit raises and clears the in-flight flag",
			Run: func(s *render.Session) error {
				var delivered formlib.Values

				status := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					if formlib.UseSubmitting(rc, f) {
						return render.Text("status", "saving")
					}

					return render.Text("status", "idle")
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{
						Defaults:    formlib.Values{"name": "Ada"},
						SubmitDelay: 50 * time.Millisecond,
						OnSubmit:    func(values formlib.Values) { delivered = values },
					})

					return render.Box("root",
						render.Button("submit-button", "Submit", f.Submit),
						rc.Child("status", status, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.WaitForText("status", "idle"); err != nil {
					return err
				}

				if err := s.Click("submit-button"); err != nil {
					return err
				}

				if err := s.WaitForText("status", "saving"); err != nil {
					return err
				}

				if err := s.WaitForText("status", "idle"); err != nil {
					return err
				}

				if delivered["name"] != "Ada" {
					return fmt.Errorf("submit delivered %v", delivered)
				}

				return nil
			},
		},
		{
			ID:   "submit-invalid-blocks-delivery",
			Name: "failing validator blocks submit delivery",
			Run: func(s *render.Session) error {
				submitted := false

				errorLine := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					return render.Text("error-line", formlib.UseError(rc, f, "name"))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{
						Defaults: formlib.Values{"name": ""},
						Validators: map[string]formlib.Validator{
							"name": func(value string) error {
								if value == "" {
									return errors.New("required")
								}

								return nil
							},
						},
						OnSubmit: func(values formlib.Values) { submitted = true },
					})

					return render.Box("root",
						render.Button("submit-button", "Submit", f.Submit),
						rc.Child("error", errorLine, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.Click("submit-button"); err != nil {
					return err
				}

				if err := s.WaitForText("error-line", "required"); err != nil {
					return err
				}

				if submitted {
					return errors.New("submit delivered despite invalid field")
				}

				return nil
			},
		},
	}
}
