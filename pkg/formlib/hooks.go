package formlib

import "formprobe.dev/pkg/formprobe/pkg/render"

// controllerKey is the context key Provide/UseFormController share.
const controllerKey = "formlib.controller"

// UseValue subscribes the calling component to one field and returns its
// current value. Each change re-renders the subscriber, even through a
// memoizing wrapper.
func UseValue(rc *render.Ctx, f *Form, name string) string {
	v := render.UseSubscription(rc, f.store.subscribe, func() any {
		return f.store.values[name]
	})

	return v.(string)
}

// UseValues subscribes the calling component to the whole value set.
func UseValues(rc *render.Ctx, f *Form) Values {
	v := render.UseSubscription(rc, f.store.subscribe, func() any {
		return f.CurrentValues()
	})

	return v.(Values)
}

// UseError subscribes the calling component to one field's validation
// error.
func UseError(rc *render.Ctx, f *Form, name string) string {
	v := render.UseSubscription(rc, f.store.subscribe, func() any {
		return f.store.errors[name]
	})

	return v.(string)
}

// UseSubmitCount subscribes the calling component to the submission
// attempt counter.
func UseSubmitCount(rc *render.Ctx, f *Form) int {
	v := render.UseSubscription(rc, f.store.subscribe, func() any {
		return f.store.submitCount
	})

	return v.(int)
}

// UseSubmitting subscribes the calling component to the in-flight
// submission flag.
func UseSubmitting(rc *render.Ctx, f *Form) bool {
	v := render.UseSubscription(rc, f.store.subscribe, func() any {
		return f.store.submitting
	})

	return v.(bool)
}

// Provide makes the controller available to descendant components for
// this render pass.
func Provide(rc *render.Ctx, f *Form) {
	rc.Provide(controllerKey, f)
}

// UseFormController resolves the controller installed by the nearest
// ancestor Provide. Calling it without a provider is a programming error
// and panics, which the harness records as a scenario crash.
func UseFormController(rc *render.Ctx) *Form {
	v, ok := rc.Lookup(controllerKey)
	if !ok {
		panic("formlib: UseFormController called without a Provide ancestor")
	}

	return v.(*Form)
}

// Field renders a controlled input bound to a form field. It is
// subscription-based: the calling component re-renders whenever the field
// changes, so the displayed value is always fresh.
func Field(rc *render.Ctx, f *Form, name, id string) render.Node {
	value := UseValue(rc, f, name)

	return render.Input(id, value, func(v string) { f.SetValue(name, v) })
}

// FieldSelect is the selector counterpart of Field.
func FieldSelect(rc *render.Ctx, f *Form, name, id string, options []string) render.Node {
	value := UseValue(rc, f, name)

	return render.Select(id, value, options, func(v string) { f.SetValue(name, v) })
}

// BindInput renders an input bound through the reference-stable
// controller alone. No subscription is installed: the displayed value is
// whatever the controller held when the calling component last rendered.
func BindInput(f *Form, name, id string) render.Node {
	return render.Input(id, f.Value(name), func(v string) { f.SetValue(name, v) })
}

// BindSelect is the selector counterpart of BindInput.
func BindSelect(f *Form, name, id string, options []string) render.Node {
	return render.Select(id, f.Value(name), options, func(v string) { f.SetValue(name, v) })
}
