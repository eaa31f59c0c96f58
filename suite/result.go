package suite

import (
	"fmt"
	"time"
)

// Status is the outcome of a single case.
type Status string

const (
	StatusPass  Status = "ok"
	StatusFail  Status = "FAIL"
	StatusError Status = "ERROR"
	StatusSkip  Status = "skipped"
)

// Outcome records how one case ended.
type Outcome struct {
	Module   string
	Case     string
	Status   Status
	Message  string
	Duration time.Duration
}

// ID names the case the way the text runner prints it.
func (o Outcome) ID() string {
	if o.Module == "" {
		return o.Case
	}
	return fmt.Sprintf("%s (%s)", o.Case, o.Module)
}

// Result collects the outcomes of one run.
type Result struct {
	RunID    string
	Outcomes []Outcome
	Duration time.Duration
}

// Add appends an outcome.
func (r *Result) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// TestsRun returns the number of cases executed, skipped ones included.
func (r *Result) TestsRun() int {
	return len(r.Outcomes)
}

// Failures returns the failed cases.
func (r *Result) Failures() []Outcome { return r.filter(StatusFail) }

// Errors returns the cases that raised errors.
func (r *Result) Errors() []Outcome { return r.filter(StatusError) }

// Skipped returns the skipped cases.
func (r *Result) Skipped() []Outcome { return r.filter(StatusSkip) }

// Passed returns the number of passing cases.
func (r *Result) Passed() int { return len(r.filter(StatusPass)) }

// WasSuccessful reports whether the run had neither failures nor errors.
func (r *Result) WasSuccessful() bool {
	return len(r.Failures()) == 0 && len(r.Errors()) == 0
}

func (r *Result) filter(status Status) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}
