package domain

import (
	"fmt"
	"sort"
	"strings"

	m "formprobe.dev/pkg/formprobe/internal/model"
)

// Compare joins a baseline and a transformed RunReport into a
// ComparisonReport. The two runs must describe the same suite: matching
// registry hashes and identical scenario id sets. Anything less and the
// per-scenario join would silently compare different code, so a mismatch
// is a fatal error rather than a partial result.
func Compare(baseline, transformed m.RunReport) (m.ComparisonReport, error) {
	if baseline.Mode != m.ModeBaseline {
		return m.ComparisonReport{}, fmt.Errorf("expected a %s report, got %s", m.ModeBaseline, baseline.Mode)
	}

	if transformed.Mode != m.ModeTransformed {
		return m.ComparisonReport{}, fmt.Errorf("expected a %s report, got %s", m.ModeTransformed, transformed.Mode)
	}

	if baseline.RegistryHash != transformed.RegistryHash {
		return m.ComparisonReport{}, fmt.Errorf(
			"registry mismatch: baseline loaded %s, transformed loaded %s; scenario sources changed between runs",
			baseline.RegistryHash, transformed.RegistryHash)
	}

	if err := checkSameIDs(baseline, transformed); err != nil {
		return m.ComparisonReport{}, err
	}

	transformedByID := transformed.ByID()

	report := m.ComparisonReport{
		BaselineRunID:    baseline.RunID,
		TransformedRunID: transformed.RunID,
		TotalScenarios:   len(baseline.Results),
		BaselinePass:     baseline.PassCount(),
		BaselineFail:     baseline.FailCount(),
		TransformedPass:  transformed.PassCount(),
		TransformedFail:  transformed.FailCount(),
	}

	// Join in baseline execution order so the comparison reads the same
	// way run after run.
	for _, base := range baseline.Results {
		trans := transformedByID[base.ScenarioID]

		switch {
		case base.Outcome == m.OutcomePass && trans.Outcome == m.OutcomeFail:
			report.Divergent = append(report.Divergent, m.Delta{
				ScenarioID:  base.ScenarioID,
				Name:        base.Name,
				Baseline:    base.Outcome,
				Transformed: trans.Outcome,
			})

		case base.Outcome == m.OutcomeFail && trans.Outcome == m.OutcomeFail:
			report.BrokenInBoth = append(report.BrokenInBoth, base.ScenarioID)

		case base.Outcome == m.OutcomeFail && trans.Outcome == m.OutcomePass:
			// Passing only under the transform is as much a finding as
			// breaking under it.
			report.Divergent = append(report.Divergent, m.Delta{
				ScenarioID:  base.ScenarioID,
				Name:        base.Name,
				Baseline:    base.Outcome,
				Transformed: trans.Outcome,
			})
		}
	}

	return report, nil
}

// checkSameIDs verifies the two reports cover exactly the same scenario
// ids, naming every id present on only one side.
func checkSameIDs(baseline, transformed m.RunReport) error {
	baseIDs := baseline.ByID()
	transIDs := transformed.ByID()

	var onlyBase, onlyTrans []string

	for id := range baseIDs {
		if _, ok := transIDs[id]; !ok {
			onlyBase = append(onlyBase, id)
		}
	}

	for id := range transIDs {
		if _, ok := baseIDs[id]; !ok {
			onlyTrans = append(onlyTrans, id)
		}
	}

	if len(onlyBase) == 0 && len(onlyTrans) == 0 {
		return nil
	}

	sort.Strings(onlyBase)
	sort.Strings(onlyTrans)

	var parts []string
	if len(onlyBase) > 0 {
		parts = append(parts, fmt.Sprintf("only in baseline: %s", strings.Join(onlyBase, ", ")))
	}

	if len(onlyTrans) > 0 {
		parts = append(parts, fmt.Sprintf("only in transformed: %s", strings.Join(onlyTrans, ", ")))
	}

	return fmt.Errorf("scenario sets differ: %s", strings.Join(parts, "; "))
}
