package commands

import (
	"errors"
	"fmt"
	"io"

	commonserrors "github.com/gruntwork-io/go-commons/errors"
	"github.com/gruntwork-io/go-commons/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"regress/internal/cli"
	"regress/internal/config"
	"regress/internal/exitcodes"
	"regress/suite"
)

const programName = "regress"

const longUsage = `Regression test harness.

Finds all modules whose name is "test_*" in the test directory and runs them:
test_*.yaml case files, test_*/ directories holding a suite.yaml, and Go
modules registered with the suite package. If test names are given, only
those are run.

Test setup options:
  -c, --clean      don't set up, just clean up the test workspace
  -n, --no-clean   don't clean up after setting up and running the tests

The subcommand names "list" and "failures" take precedence over test names.
To run modules with those names, give them after "--":
  regress -- list`

// NewRootCommand builds the regress command tree
func NewRootCommand(cfg *config.Config, flags *cli.Flags, registry *suite.Registry, log *logrus.Entry, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           programName + " [flags] [tests...]",
		Short:         "Regression test harness",
		Long:          longUsage,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.NewUsageError(err, cmd.UsageString())
	})

	cmds := NewCommands(cfg, registry, log)
	cmds.Register(rootCmd, flags, cfg)
	return rootCmd
}

// Main runs regress with args and returns the process exit code
func Main(args []string, stdout, stderr io.Writer, registry *suite.Registry, version string) int {
	cfg := config.New()
	var flags cli.Flags

	rootCmd := NewRootCommand(cfg, &flags, registry, newLogger(stdout, version), version)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	return exitCode(err, stderr, cfg.Verbosity)
}

func exitCode(err error, stderr io.Writer, verbosity int) int {
	if err == nil {
		return exitcodes.Success
	}

	var usageErr *cli.UsageError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprint(stderr, usageErr.Message(programName))
		return exitcodes.RuntimeErr
	case errors.Is(err, ErrTestsFailed):
		return exitcodes.TestFailure
	}

	if verbosity >= 3 {
		fmt.Fprintln(stderr, commonserrors.PrintErrorWithStackTrace(err))
	} else {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitcodes.RuntimeErr
}

// newLogger returns the logger shared by all commands. Most of what it
// prints is informational, so it writes to stdout next to the report.
func newLogger(out io.Writer, version string) *logrus.Entry {
	logger := logging.GetLogger(programName, version)
	logger.Logger.Out = out
	return logger
}

func setLogLevel(log *logrus.Entry, verbosity int) {
	switch {
	case verbosity >= 3:
		log.Logger.SetLevel(logrus.DebugLevel)
	case verbosity <= 0:
		log.Logger.SetLevel(logrus.WarnLevel)
	default:
		log.Logger.SetLevel(logrus.InfoLevel)
	}
}
