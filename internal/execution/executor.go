package execution

import (
	"context"

	"regress/internal/workspace"
	"regress/suite"
)

// Executor runs the named modules and returns the aggregate result
type Executor interface {
	Execute(ctx context.Context, ws *workspace.Workspace, names []string) (*suite.Result, error)
}

// Reporter receives progress from the runner
type Reporter interface {
	// Start is called once with the number of cases about to run.
	Start(total int)
	// StartCase is called before a case runs.
	StartCase(module string, c suite.Case)
	// EndCase is called with the outcome of the case.
	EndCase(o suite.Outcome)
	// Finish is called once with the complete result.
	Finish(result *suite.Result)
}

type nopReporter struct{}

func (nopReporter) Start(int) {}
func (nopReporter) StartCase(string, suite.Case) {}
func (nopReporter) EndCase(suite.Outcome) {}
func (nopReporter) Finish(*suite.Result) {}
