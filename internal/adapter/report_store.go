package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "formprobe.dev/pkg/formprobe/internal/model"
)

// ReportStore persists RunReports between the child mode processes and
// the comparing parent.
type ReportStore interface {
	SaveReport(path m.Path, report m.RunReport) error
	LoadReport(path m.Path) (m.RunReport, error)
	SaveComparison(path m.Path, report m.ComparisonReport) error
}

// YAMLReportStore stores reports as YAML files.
type YAMLReportStore struct{}

// NewReportStore constructs a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReport writes a RunReport to path.
func (s *YAMLReportStore) SaveReport(path m.Path, report m.RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal %s report: %w", report.Mode, err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write %s report: %w", report.Mode, err)
	}

	return nil
}

// LoadReport reads a RunReport from path.
func (s *YAMLReportStore) LoadReport(path m.Path) (m.RunReport, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read report %s: %w", path, err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("parse report %s: %w", path, err)
	}

	return report, nil
}

// SaveComparison writes a ComparisonReport to path.
func (s *YAMLReportStore) SaveComparison(path m.Path, report m.ComparisonReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal comparison: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write comparison: %w", err)
	}

	return nil
}
