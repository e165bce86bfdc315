//go:build fixtures

package scenarios

import (
	"errors"

	"formprobe.dev/pkg/formprobe/pkg/formlib"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Scenarios classifies both error-read patterns against a synchronous
// validator: the reference-stable f.Error read versus the
// subscription-based UseError hook.
func Scenarios() []probe.Scenario {
	requireAtSign := func(value string) error {
		for _, r := range value {
			if r == '@' {
				return nil
			}
		}

		return errors.New("must contain @")
	}

	return []probe.Scenario{
		{
			ID:   "stable-error",
			Name: "reference-stable error read never shows the validation message",
			Run: func(s *render.Session) error {
				errorLine := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					return render.Text("error-line", f.Error("email"))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{
						Defaults:   formlib.Values{"email": ""},
						Validators: map[string]formlib.Validator{"email": requireAtSign},
					})

					return render.Box("root",
						formlib.Field(rc, f, "email", "email-input"),
						rc.Child("error", errorLine, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.Type("email-input", "nope"); err != nil {
					return err
				}

				return s.WaitForText("error-line", "must contain @")
			},
		},
		{
			ID:         "stable-error-workaround",
			Name:       "reference-stable error read with memoization opt-out",
			Workaround: true,
			PairID:     "stable-error",
			Run: func(s *render.Session) error {
				errorLine := func(rc *render.Ctx, props render.Props) render.Node {
					// memo:skip
					f := props["form"].(*formlib.Form)
					return render.Text("error-line", f.Error("email"))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{
						Defaults:   formlib.Values{"email": ""},
						Validators: map[string]formlib.Validator{"email": requireAtSign},
					})

					return render.Box("root",
						formlib.Field(rc, f, "email", "email-input"),
						rc.Child("error", errorLine, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.Type("email-input", "nope"); err != nil {
					return err
				}

				return s.WaitForText("error-line", "must contain @")
			},
		},
		{
			ID:   "subscription-error",
			Name: "subscription-based error read stays fresh",
			Run: func(s *render.Session) error {
				errorLine := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					return render.Text("error-line", formlib.UseError(rc, f, "email"))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{
						Defaults:   formlib.Values{"email": ""},
						Validators: map[string]formlib.Validator{"email": requireAtSign},
					})

					return render.Box("root",
						formlib.Field(rc, f, "email", "email-input"),
						rc.Child("error", errorLine, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.Type("email-input", "nope"); err != nil {
					return err
				}

				if err := s.WaitForText("error-line", "must contain @"); err != nil {
					return err
				}

				if err := s.Type("email-input", "@x"); err != nil {
					return err
				}

				return s.WaitForText("error-line", "")
			},
		},
	}
}
