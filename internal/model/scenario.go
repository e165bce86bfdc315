package model

// ScenarioInfo is the display view of a registered scenario, detached
// from its executable body so presentation layers need no knowledge of
// the render harness.
type ScenarioInfo struct {
	ID         string
	Name       string
	Workaround bool
	PairID     string
}
