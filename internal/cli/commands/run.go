package commands

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"regress/internal/config"
	"regress/internal/execution"
	"regress/internal/storage"
	"regress/internal/ui"
	"regress/internal/workspace"
	"regress/suite"
)

// ErrTestsFailed is returned when the run had failures or errors
var ErrTestsFailed = errors.New("tests failed")

// stderrIsTerminal decides whether verbosity 1 draws a progress bar
var stderrIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// RunCommand sets up the workspace, runs the selected modules and tears down
type RunCommand struct {
	config   *config.Config
	selector *moduleSelector
	executor *execution.SuiteExecutor
	storage  storage.Storage
	viewer   ui.Viewer
	log      logrus.FieldLogger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	selector *moduleSelector,
	executor *execution.SuiteExecutor,
	st storage.Storage,
	viewer ui.Viewer,
	log logrus.FieldLogger,
) *RunCommand {
	return &RunCommand{
		config:   cfg,
		selector: selector,
		executor: executor,
		storage:  st,
		viewer:   viewer,
		log:      log,
	}
}

// Execute runs the command. Teardown happens even when the run fails,
// unless --no-clean was given.
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ws := workspace.New(rc.config.GetWorkspaceDir(), rc.config.GetDevDir(), rc.log)

	result, err := rc.setupAndRun(ctx, cmd.OutOrStdout(), ws, args)

	if !rc.config.Flags.NoClean {
		if terr := ws.Teardown(); terr != nil {
			if err != nil {
				rc.log.Errorf("teardown: %v", terr)
			} else {
				err = terr
			}
		}
	}
	if err != nil {
		return err
	}

	// --clean only
	if result == nil {
		return nil
	}

	if result.WasSuccessful() {
		return nil
	}
	if rc.config.Flags.ViewFailures {
		if output, lerr := rc.storage.Load(); lerr == nil {
			if verr := rc.viewer.View(output); verr != nil {
				rc.log.Warnf("failures viewer: %v", verr)
			}
		}
	}
	return ErrTestsFailed
}

func (rc *RunCommand) setupAndRun(ctx context.Context, out io.Writer, ws *workspace.Workspace, args []string) (*suite.Result, error) {
	if rc.config.Flags.Clean {
		return nil, nil
	}

	if err := ws.Setup(ctx, out, rc.config.Target, rc.config.VersionFlag); err != nil {
		return nil, err
	}

	names, err := rc.selector.Select(args)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		rc.log.Warnf("no tests to execute in %s", rc.config.GetTestDir())
	}

	useProgress := rc.config.Verbosity == 1 && stderrIsTerminal()
	rc.executor.SetReporter(ui.NewTextReporter(out, rc.config.Verbosity, useProgress))

	result, err := rc.executor.Execute(ctx, ws, names)
	if err != nil {
		return nil, err
	}

	if _, err := rc.storage.Save(result, len(names)); err != nil {
		rc.log.Warnf("failed to save test results: %v", err)
	}
	return result, nil
}
