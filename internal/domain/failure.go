package domain

// TestFailure represents a failed or errored case
type TestFailure struct {
	TestName string `json:"test_name"`
	Module   string `json:"module"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Duration string `json:"duration"`
	Resolved bool   `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}
