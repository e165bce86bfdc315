// Package formlib is the form-state library whose public surface the
// compatibility scenarios classify. Its defining property is the split the
// harness measures: the controller returned by UseForm is reference-stable
// (one object, internally mutated), while the Use* hooks are
// subscription-based (each change is delivered through a fresh render of
// the subscribing component).
package formlib

import (
	"time"

	"formprobe.dev/pkg/formprobe/pkg/render"
)

// Values maps field names to their current string values.
type Values map[string]string

// Validator checks a single field value. A nil return clears the field's
// error.
type Validator func(value string) error

// Config configures a form created by UseForm.
type Config struct {
	// Defaults seeds the field values and is what Reset restores.
	Defaults Values

	// Validators run synchronously on every SetValue and on Submit.
	Validators map[string]Validator

	// DeferredValidators run after DeferredDelay, resolving through the
	// host task queue the way a remote validation would.
	DeferredValidators map[string]Validator

	// DeferredDelay is how long deferred validators take to resolve.
	// Zero means resolve on the next task pump.
	DeferredDelay time.Duration

	// OnSubmit receives a copy of the values when Submit finds every
	// field valid.
	OnSubmit func(values Values)

	// SubmitDelay, when non-zero, makes Submit resolve asynchronously:
	// Submitting reports true until the deferred completion runs.
	SubmitDelay time.Duration
}

// Form is the mutable controller. Its identity never changes for the
// lifetime of the component that created it; all state lives in the
// internal store. Reading through Form methods during render is the
// reference-stable access pattern.
type Form struct {
	cfg      Config
	store    *store
	schedule func(time.Duration, func())
}

// UseForm creates the form on first render and returns the same controller
// on every subsequent one. The owning component is subscribed to all form
// state changes, so baseline renders always see fresh values.
func UseForm(rc *render.Ctx, cfg Config) *Form {
	form := render.UseLazy(rc, func() any {
		return &Form{cfg: cfg, store: newStore(cfg.Defaults)}
	}).(*Form)

	form.schedule = rc.After

	render.UseSubscription(rc, form.store.subscribe, func() any {
		return form.store.version
	})

	return form
}

// Value returns the current value of a field. Reference-stable read.
func (f *Form) Value(name string) string {
	return f.store.values[name]
}

// CurrentValues returns a copy of all field values. Reference-stable read.
func (f *Form) CurrentValues() Values {
	out := make(Values, len(f.store.values))
	for k, v := range f.store.values {
		out[k] = v
	}

	return out
}

// Error returns the current validation error text for a field, empty when
// the field is valid. Reference-stable read.
func (f *Form) Error(name string) string {
	return f.store.errors[name]
}

// SubmitCount returns how many submissions have been attempted.
// Reference-stable read.
func (f *Form) SubmitCount() int {
	return f.store.submitCount
}

// Submitting reports whether an asynchronous submission is in flight.
// Reference-stable read.
func (f *Form) Submitting() bool {
	return f.store.submitting
}

// SetValue updates a field, runs its validators and notifies subscribers.
func (f *Form) SetValue(name, value string) {
	f.store.values[name] = value

	if v, ok := f.cfg.Validators[name]; ok {
		f.applyValidation(name, v(value))
	}

	if v, ok := f.cfg.DeferredValidators[name]; ok {
		f.deferWork(f.cfg.DeferredDelay, func() {
			f.applyValidation(name, v(f.store.values[name]))
			f.store.broadcast()
		})
	}

	f.store.broadcast()
}

// Reset restores the defaults, clears all errors and notifies subscribers.
func (f *Form) Reset() {
	f.store.values = make(map[string]string, len(f.cfg.Defaults))
	for k, v := range f.cfg.Defaults {
		f.store.values[k] = v
	}

	f.store.errors = map[string]string{}
	f.store.broadcast()
}

// Submit counts the attempt, runs every synchronous validator and, when
// all fields are valid, delivers the values to OnSubmit, immediately or
// after SubmitDelay when one is configured.
func (f *Form) Submit() {
	f.store.submitCount++

	valid := true

	for name, v := range f.cfg.Validators {
		err := v(f.store.values[name])
		f.applyValidation(name, err)

		if err != nil {
			valid = false
		}
	}

	if !valid {
		f.store.broadcast()
		return
	}

	if f.cfg.SubmitDelay > 0 {
		f.store.submitting = true
		f.deferWork(f.cfg.SubmitDelay, func() {
			f.store.submitting = false
			f.deliverSubmit()
			f.store.broadcast()
		})
		f.store.broadcast()

		return
	}

	f.deliverSubmit()
	f.store.broadcast()
}

func (f *Form) deliverSubmit() {
	if f.cfg.OnSubmit != nil {
		f.cfg.OnSubmit(f.CurrentValues())
	}
}

func (f *Form) applyValidation(name string, err error) {
	if err != nil {
		f.store.errors[name] = err.Error()
		return
	}

	delete(f.store.errors, name)
}

func (f *Form) deferWork(d time.Duration, fn func()) {
	if f.schedule == nil {
		fn()
		return
	}

	f.schedule(d, fn)
}
