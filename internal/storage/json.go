package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"regress/internal/domain"
	"regress/suite"
)

// Save converts result into a run record and writes it to the configured JSON output file.
func (s *JSONStorage) Save(result *suite.Result, modules int) (*domain.TestResultsOutput, error) {
	output := NewOutput(result, modules, s.cfg.GetTestDir(), time.Now())
	if err := s.SaveOutput(output); err != nil {
		return nil, err
	}
	return output, nil
}

// NewOutput builds the run record for result.
func NewOutput(result *suite.Result, modules int, testDir string, now time.Time) *domain.TestResultsOutput {
	details := []domain.TestFailure{}
	for _, o := range result.Outcomes {
		if o.Status != suite.StatusFail && o.Status != suite.StatusError {
			continue
		}
		details = append(details, domain.TestFailure{
			TestName: o.Case,
			Module:   o.Module,
			Status:   string(o.Status),
			Message:  o.Message,
			Duration: o.Duration.String(),
		})
	}

	return &domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			RunID:           result.RunID,
			TestDir:         testDir,
			Modules:         modules,
			TestsRun:        result.TestsRun(),
			Passed:          result.Passed(),
			Failures:        len(result.Failures()),
			Errors:          len(result.Errors()),
			Skipped:         len(result.Skipped()),
			Duration:        result.Duration.String(),
			DurationSeconds: result.Duration.Seconds(),
			Timestamp:       now.Format(time.RFC3339),
		},
		Details: details,
	}
}

// Load reads the last run record from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.TestResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.TestResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full record to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.TestResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
