// Package probe defines the scenario model shared by the harness and the
// fixture files it loads.
package probe

import "formprobe.dev/pkg/formprobe/pkg/render"

// Scenario is one independent render → interact → assert unit. Scenarios
// share no fixtures and no ordering: each one gets a fresh Session, so a
// failure is attributable to exactly one scenario under exactly one mode.
type Scenario struct {
	// ID is the stable identifier results and comparisons are keyed by.
	ID string

	// Name is the human-readable description shown in reports.
	Name string

	// Workaround marks the control twin of a breaking scenario: same
	// interactions and assertions, but its components opt out of the
	// memoization pass. It must pass in both modes.
	Workaround bool

	// PairID links a workaround to the breaking scenario it neutralizes.
	PairID string

	// Run mounts the scenario tree, simulates the interactions and runs
	// the settle-and-check assertions. A returned error is an assertion
	// failure; a panic is recorded as a crash.
	Run func(s *render.Session) error
}
