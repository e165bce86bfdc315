package model

import "time"

// Mode identifies which code-transformation regime a run executed under.
type Mode string

const (
	// ModeBaseline is execution with no source transform applied.
	ModeBaseline Mode = "baseline"
	// ModeTransformed is execution with the memoizing transform applied
	// to in-project scenario files.
	ModeTransformed Mode = "transformed"
)

// Outcome is the pass/fail result of one scenario in one mode.
type Outcome string

const (
	// OutcomePass indicates every assertion in the scenario settled.
	OutcomePass Outcome = "pass"
	// OutcomeFail indicates an assertion timed out or the scenario crashed.
	OutcomeFail Outcome = "fail"
)

// FailureKind distinguishes a staleness failure from a broken scenario.
type FailureKind string

const (
	// FailureNone is the zero kind for passing results.
	FailureNone FailureKind = ""
	// FailureAssertion means an expected value never arrived within the
	// settle timeout.
	FailureAssertion FailureKind = "assertion"
	// FailureCrash means the scenario body panicked or misused a
	// collaborator API.
	FailureCrash FailureKind = "crash"
)

// ScenarioResult records the outcome of one scenario under one mode.
// Results are immutable once recorded.
type ScenarioResult struct {
	ScenarioID  string      `yaml:"scenario_id"`
	Name        string      `yaml:"name"`
	Mode        Mode        `yaml:"mode"`
	Outcome     Outcome     `yaml:"outcome"`
	FailureKind FailureKind `yaml:"failure_kind,omitempty"`
	Detail      string      `yaml:"detail,omitempty"`
	Workaround  bool        `yaml:"workaround,omitempty"`
	PairID      string      `yaml:"pair_id,omitempty"`
}

// RunReport is the ordered sequence of scenario results for one mode.
type RunReport struct {
	RunID      string           `yaml:"run_id"`
	Mode       Mode             `yaml:"mode"`
	StartedAt  time.Time        `yaml:"started_at"`
	FinishedAt time.Time        `yaml:"finished_at"`

	// RegistryHash fingerprints the scenario sources the run loaded.
	// Two reports can only be compared when their hashes match: a fixture
	// edited between the two mode runs invalidates the comparison.
	RegistryHash string `yaml:"registry_hash,omitempty"`

	Results []ScenarioResult `yaml:"results"`
}

// PassCount returns the number of passing results.
func (r RunReport) PassCount() int {
	count := 0

	for _, res := range r.Results {
		if res.Outcome == OutcomePass {
			count++
		}
	}

	return count
}

// FailCount returns the number of failing results.
func (r RunReport) FailCount() int {
	return len(r.Results) - r.PassCount()
}

// ScenarioIDs returns the scenario ids in execution order.
func (r RunReport) ScenarioIDs() []string {
	ids := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		ids = append(ids, res.ScenarioID)
	}

	return ids
}

// ByID indexes the results by scenario id.
func (r RunReport) ByID() map[string]ScenarioResult {
	index := make(map[string]ScenarioResult, len(r.Results))
	for _, res := range r.Results {
		index[res.ScenarioID] = res
	}

	return index
}
