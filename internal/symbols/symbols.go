// Package symbols exposes the harness packages to interpreted scenario
// files. The maps follow the interpreter's "import path/package name"
// keying convention; anything a fixture references has to be listed here.
package symbols

import (
	"reflect"

	"formprobe.dev/pkg/formprobe/pkg/formlib"
	"formprobe.dev/pkg/formprobe/pkg/memo"
	"formprobe.dev/pkg/formprobe/pkg/probe"
	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Exports returns the symbol maps for every package a scenario file may
// import: the scenario model, the render harness, the form library and
// the memo runtime the transform injects.
func Exports() map[string]map[string]reflect.Value {
	return map[string]map[string]reflect.Value{
		"formprobe.dev/pkg/formprobe/pkg/probe/probe": {
			"Scenario": reflect.ValueOf((*probe.Scenario)(nil)),
		},
		"formprobe.dev/pkg/formprobe/pkg/render/render": {
			"Node":       reflect.ValueOf((*render.Node)(nil)),
			"TextNode":   reflect.ValueOf((*render.TextNode)(nil)),
			"InputNode":  reflect.ValueOf((*render.InputNode)(nil)),
			"ButtonNode": reflect.ValueOf((*render.ButtonNode)(nil)),
			"SelectNode": reflect.ValueOf((*render.SelectNode)(nil)),
			"BoxNode":    reflect.ValueOf((*render.BoxNode)(nil)),
			"Props":      reflect.ValueOf((*render.Props)(nil)),
			"Component":  reflect.ValueOf((*render.Component)(nil)),
			"Ctx":        reflect.ValueOf((*render.Ctx)(nil)),
			"Session":    reflect.ValueOf((*render.Session)(nil)),

			"Text":            reflect.ValueOf(render.Text),
			"Input":           reflect.ValueOf(render.Input),
			"Button":          reflect.ValueOf(render.Button),
			"Select":          reflect.ValueOf(render.Select),
			"Box":             reflect.ValueOf(render.Box),
			"UseState":        reflect.ValueOf(render.UseState),
			"UseLazy":         reflect.ValueOf(render.UseLazy),
			"UseSubscription": reflect.ValueOf(render.UseSubscription),
		},
		"formprobe.dev/pkg/formprobe/pkg/formlib/formlib": {
			"Values":    reflect.ValueOf((*formlib.Values)(nil)),
			"Validator": reflect.ValueOf((*formlib.Validator)(nil)),
			"Config":    reflect.ValueOf((*formlib.Config)(nil)),
			"Form":      reflect.ValueOf((*formlib.Form)(nil)),

			"UseForm":           reflect.ValueOf(formlib.UseForm),
			"UseValue":          reflect.ValueOf(formlib.UseValue),
			"UseValues":         reflect.ValueOf(formlib.UseValues),
			"UseError":          reflect.ValueOf(formlib.UseError),
			"UseSubmitCount":    reflect.ValueOf(formlib.UseSubmitCount),
			"UseSubmitting":     reflect.ValueOf(formlib.UseSubmitting),
			"Provide":           reflect.ValueOf(formlib.Provide),
			"UseFormController": reflect.ValueOf(formlib.UseFormController),
			"Field":             reflect.ValueOf(formlib.Field),
			"FieldSelect":       reflect.ValueOf(formlib.FieldSelect),
			"BindInput":         reflect.ValueOf(formlib.BindInput),
			"BindSelect":        reflect.ValueOf(formlib.BindSelect),
		},
		"formprobe.dev/pkg/formprobe/pkg/memo/memo": {
			"Wrap": reflect.ValueOf(memo.Wrap),
		},
	}
}
