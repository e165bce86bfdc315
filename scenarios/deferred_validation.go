//go:build fixtures

package scenarios

import (
	"errors"
	"time"

	"formprobe.dev/pkg/formprobe/pkg/formlib"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Scenarios probes deferred validation resolving through the task queue,
// read through the subscription-based hook. The settle-and-check wait has
// to pump the queue for the error to ever arrive.
func Scenarios() []probe.Scenario {
	return []probe.Scenario{
		{
			ID:   "deferred-error",
			Name: "deferred validator error arrives after the delay",
			Run: func(s *render.Session) error {
				taken := func(value string) error {
					if value == "admin" {
						return errors.New("name is taken")
					}

					return nil
				}

				errorLine := func(rc *render.Ctx, props render.Props) render.Node {
					f := props["form"].(*formlib.Form)
					return render.Text("error-line", formlib.UseError(rc, f, "username"))
				}

				root := func(rc *render.Ctx, props render.Props) render.Node {
					f := formlib.UseForm(rc, formlib.Config{
						Defaults:           formlib.Values{"username": ""},
						DeferredValidators: map[string]formlib.Validator{"username": taken},
						DeferredDelay:      20 * time.Millisecond,
					})

					return render.Box("root",
						formlib.Field(rc, f, "username", "username-input"),
						rc.Child("error", errorLine, render.Props{"form": f}),
					)
				}

				s.Mount(root)

				if err := s.Type("username-input", "admin"); err != nil {
					return err
				}

				return s.WaitForText("error-line", "name is taken")
			},
		},
	}
}
