package execution

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"regress/internal/config"
	"regress/internal/workspace"
	"regress/suite"
)

// warnVerbosity is the verbosity from which skipped modules are reported
const warnVerbosity = 2

// SuiteExecutor loads modules, merges their suites and runs them in order
type SuiteExecutor struct {
	config   *config.Config
	loader   *Loader
	runner   *Runner
	log      logrus.FieldLogger
	reporter Reporter
}

// NewSuiteExecutor creates a new SuiteExecutor
func NewSuiteExecutor(cfg *config.Config, loader *Loader, runner *Runner, log logrus.FieldLogger) *SuiteExecutor {
	return &SuiteExecutor{
		config: cfg,
		loader: loader,
		runner: runner,
		log:    log,
	}
}

// SetReporter sets the reporter used by the next Execute
func (e *SuiteExecutor) SetReporter(r Reporter) {
	e.reporter = r
}

// Aggregate builds one suite from the suites of the named modules. Modules
// without a suite builder are skipped; a module that fails to load aborts.
func (e *SuiteExecutor) Aggregate(names []string) (*suite.Suite, error) {
	all := suite.New("")
	for _, name := range names {
		m, ref, err := e.loader.Resolve(name)
		if err != nil {
			return nil, err
		}

		b, ok := m.(suite.SuiteBuilder)
		if !ok {
			if e.config.Verbosity >= warnVerbosity {
				e.log.Warnf("module '%s' did not have a suite builder", name)
			}
			continue
		}

		s := b.Suite()
		if s == nil {
			return nil, fmt.Errorf("module %s returned a nil suite", name)
		}
		e.log.Debugf("loaded %s module %s with %d case(s)", ref.Kind, name, s.CountCases())
		all.AddSuite(suite.New(name).AddSuite(s))
	}
	return all, nil
}

// Execute aggregates names and runs the result in ws
func (e *SuiteExecutor) Execute(ctx context.Context, ws *workspace.Workspace, names []string) (*suite.Result, error) {
	all, err := e.Aggregate(names)
	if err != nil {
		return nil, err
	}

	reporter := e.reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	return e.runner.Run(ctx, all, ws.Env(ctx), reporter), nil
}
