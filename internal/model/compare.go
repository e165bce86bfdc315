package model

// Delta is one scenario whose outcome differs between the two modes. This
// is the actionable compatibility signal: an API that works untransformed
// but breaks under the memoizing transform, or the (unexpected) reverse.
type Delta struct {
	ScenarioID  string  `yaml:"scenario_id"`
	Name        string  `yaml:"name"`
	Baseline    Outcome `yaml:"baseline"`
	Transformed Outcome `yaml:"transformed"`
}

// ComparisonReport is the read-only reduction of two RunReports sharing the
// same scenario-id space. It is constructed once, after both reports exist.
type ComparisonReport struct {
	BaselineRunID    string `yaml:"baseline_run_id"`
	TransformedRunID string `yaml:"transformed_run_id"`

	TotalScenarios  int `yaml:"total_scenarios"`
	BaselinePass    int `yaml:"baseline_pass"`
	BaselineFail    int `yaml:"baseline_fail"`
	TransformedPass int `yaml:"transformed_pass"`
	TransformedFail int `yaml:"transformed_fail"`

	// Divergent lists scenarios whose outcome differs between modes, in
	// baseline execution order.
	Divergent []Delta `yaml:"divergent,omitempty"`

	// BrokenInBoth lists scenarios failing in both modes. Those indicate a
	// defective scenario, not a compiler incompatibility, and are rendered
	// distinctly from divergences.
	BrokenInBoth []string `yaml:"broken_in_both,omitempty"`
}
