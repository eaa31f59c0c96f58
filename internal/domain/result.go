package domain

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	RunID           string  `json:"run_id"`
	TestDir         string  `json:"test_dir"`
	Modules         int     `json:"modules"`
	TestsRun        int     `json:"tests_run"`
	Passed          int     `json:"passed"`
	Failures        int     `json:"failures"`
	Errors          int     `json:"errors"`
	Skipped         int     `json:"skipped"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete record of the last run
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}
