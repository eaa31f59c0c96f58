package execution

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"regress/suite"
)

// Runner executes the cases of a suite one after another
type Runner struct{}

// NewRunner creates a new Runner
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes every case in s. A failing case never stops the run.
func (r *Runner) Run(ctx context.Context, s *suite.Suite, base suite.Env, reporter Reporter) *suite.Result {
	result := &suite.Result{RunID: uuid.New().String()}
	startTime := time.Now()

	reporter.Start(s.CountCases())
	s.Walk(func(owner string, c suite.Case) {
		env := base
		env.Context = ctx
		env.Module = owner
		if base.Log != nil {
			env.Log = base.Log.WithField("module", owner)
		}

		reporter.StartCase(owner, c)
		o := runCase(&env, c)
		result.Add(o)
		reporter.EndCase(o)
	})
	result.Duration = time.Since(startTime)
	reporter.Finish(result)

	return result
}

// runCase runs c and classifies how it ended. Panics become errors.
func runCase(env *suite.Env, c suite.Case) (o suite.Outcome) {
	o = suite.Outcome{Module: env.Module, Case: c.Name(), Status: suite.StatusPass}
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			o.Status = suite.StatusError
			o.Message = fmt.Sprintf("panic: %v\n%s", p, debug.Stack())
		}
		o.Duration = time.Since(start)
	}()

	err := c.Run(env)
	switch {
	case err == nil:
	case suite.IsSkip(err):
		o.Status = suite.StatusSkip
		var se *suite.SkipError
		if errors.As(err, &se) {
			o.Message = se.Reason
		}
	case suite.IsFailure(err):
		o.Status = suite.StatusFail
		o.Message = err.Error()
	default:
		o.Status = suite.StatusError
		o.Message = err.Error()
	}
	return o
}
