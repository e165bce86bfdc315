package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "formprobe.dev/pkg/formprobe/internal/model"
)

func report(mode m.Mode, hash string, outcomes map[string]m.Outcome, order ...string) m.RunReport {
	r := m.RunReport{RunID: "run-" + string(mode), Mode: mode, RegistryHash: hash}

	for _, id := range order {
		result := m.ScenarioResult{ScenarioID: id, Name: id, Mode: mode, Outcome: outcomes[id]}
		if result.Outcome == m.OutcomeFail {
			result.FailureKind = m.FailureAssertion
		}

		r.Results = append(r.Results, result)
	}

	return r
}

func TestCompare_FindsDivergentScenarios(t *testing.T) {
	baseline := report(m.ModeBaseline, "h", map[string]m.Outcome{
		"stable-value":       m.OutcomePass,
		"subscription-value": m.OutcomePass,
		"broken-everywhere":  m.OutcomeFail,
	}, "stable-value", "subscription-value", "broken-everywhere")

	transformed := report(m.ModeTransformed, "h", map[string]m.Outcome{
		"stable-value":       m.OutcomeFail,
		"subscription-value": m.OutcomePass,
		"broken-everywhere":  m.OutcomeFail,
	}, "stable-value", "subscription-value", "broken-everywhere")

	got, err := Compare(baseline, transformed)
	require.NoError(t, err)

	want := m.ComparisonReport{
		BaselineRunID:    "run-baseline",
		TransformedRunID: "run-transformed",
		TotalScenarios:   3,
		BaselinePass:     2,
		BaselineFail:     1,
		TransformedPass:  1,
		TransformedFail:  2,
		Divergent: []m.Delta{
			{ScenarioID: "stable-value", Name: "stable-value", Baseline: m.OutcomePass, Transformed: m.OutcomeFail},
		},
		BrokenInBoth: []string{"broken-everywhere"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("comparison mismatch (-want +got):\n%s", diff)
	}
}

func TestCompare_ReportsPassOnlyTransformedAsDivergent(t *testing.T) {
	baseline := report(m.ModeBaseline, "h", map[string]m.Outcome{"s": m.OutcomeFail}, "s")
	transformed := report(m.ModeTransformed, "h", map[string]m.Outcome{"s": m.OutcomePass}, "s")

	got, err := Compare(baseline, transformed)
	require.NoError(t, err)

	require.Len(t, got.Divergent, 1)
	assert.Equal(t, m.OutcomeFail, got.Divergent[0].Baseline)
	assert.Equal(t, m.OutcomePass, got.Divergent[0].Transformed)
	assert.Empty(t, got.BrokenInBoth)
}

func TestCompare_RejectsWrongModes(t *testing.T) {
	baseline := report(m.ModeBaseline, "h", map[string]m.Outcome{"s": m.OutcomePass}, "s")

	_, err := Compare(baseline, baseline)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a transformed report")
}

func TestCompare_RejectsRegistryHashMismatch(t *testing.T) {
	baseline := report(m.ModeBaseline, "h1", map[string]m.Outcome{"s": m.OutcomePass}, "s")
	transformed := report(m.ModeTransformed, "h2", map[string]m.Outcome{"s": m.OutcomePass}, "s")

	_, err := Compare(baseline, transformed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry mismatch")
}

func TestCompare_RejectsDifferingIDSets(t *testing.T) {
	baseline := report(m.ModeBaseline, "h", map[string]m.Outcome{
		"only-base": m.OutcomePass,
		"shared":    m.OutcomePass,
	}, "only-base", "shared")

	transformed := report(m.ModeTransformed, "h", map[string]m.Outcome{
		"only-trans": m.OutcomePass,
		"shared":     m.OutcomePass,
	}, "only-trans", "shared")

	_, err := Compare(baseline, transformed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only in baseline: only-base")
	assert.Contains(t, err.Error(), "only in transformed: only-trans")
}

func TestCompare_DivergentKeepsBaselineOrder(t *testing.T) {
	outcomesBase := map[string]m.Outcome{"a": m.OutcomePass, "b": m.OutcomePass, "c": m.OutcomePass}
	outcomesTrans := map[string]m.Outcome{"a": m.OutcomeFail, "b": m.OutcomePass, "c": m.OutcomeFail}

	baseline := report(m.ModeBaseline, "h", outcomesBase, "c", "b", "a")
	transformed := report(m.ModeTransformed, "h", outcomesTrans, "a", "b", "c")

	got, err := Compare(baseline, transformed)
	require.NoError(t, err)

	require.Len(t, got.Divergent, 2)
	assert.Equal(t, "c", got.Divergent[0].ScenarioID)
	assert.Equal(t, "a", got.Divergent[1].ScenarioID)
}
