package commands

import (
	"errors"

	commonserrors "github.com/gruntwork-io/go-commons/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"regress/internal/cli"
	"regress/internal/config"
	"regress/internal/discovery"
	"regress/internal/execution"
	"regress/internal/parser"
	"regress/internal/storage"
	"regress/internal/ui"
	"regress/suite"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand

	log *logrus.Entry
}

// NewCommands creates all commands with dependencies. Dependencies read cfg
// when they run, so flags applied later are honoured.
func NewCommands(cfg *config.Config, registry *suite.Registry, log *logrus.Entry) *Commands {
	selector := newModuleSelector(cfg, registry, discovery.NewFilter())
	loader := execution.NewLoader(cfg, registry, parser.NewCaseFileParser())
	executor := execution.NewSuiteExecutor(cfg, loader, execution.NewRunner(), log)
	jsonStorage := storage.NewJSONStorage(cfg)
	errorViewer := ui.NewErrorViewer(jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, selector, executor, jsonStorage, errorViewer, log),
		List:     NewListCommand(cfg, selector, loader, jsonStorage),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
		log:      log,
	}
}

// Register wires the commands into root and binds flags
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&flags.Verbose, "verbose", "v", "Run tests in verbose mode (repeatable)")
	pf.CountVarP(&flags.Quiet, "quiet", "q", "Print nothing except failures and the summary (repeatable)")
	pf.StringArrayVarP(&flags.Exclude, "exclude", "x", nil, "Exclude the named test (repeatable)")
	pf.StringVarP(&flags.TestDir, "test-dir", "d", "", "Directory holding the test_* modules (default: current directory)")
	pf.StringVarP(&flags.Filter, "filter", "f", "", "Filter modules by name pattern (supports wildcards, e.g. 'test_define*' or '*include*')")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := cfg.Apply(flags.ToConfigFlags()); err != nil {
			if errors.Is(err, config.ErrUnsafeWorkspace) {
				return cli.NewUsageError(err, cmd.UsageString())
			}
			return commonserrors.WithStackTrace(err)
		}
		setLogLevel(c.log, cfg.Verbosity)
		return nil
	}

	// The root command runs the tests
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return commonserrors.WithStackTrace(c.Run.Execute(cmd, args))
	}
	rf := rootCmd.Flags()
	rf.BoolVarP(&flags.Clean, "clean", "c", false, "Don't set up, just clean up the test workspace")
	rf.BoolVarP(&flags.NoClean, "no-clean", "n", false, "Don't clean up after setting up and running the tests")
	rf.StringVar(&flags.Target, "target", "", "Command probed during setup and run by cases without a command")
	rf.StringVar(&flags.Workspace, "workspace", "", "Workspace directory, relative to the test dir (default \"tmp\")")
	rf.BoolVar(&flags.ViewFailures, "view-failures", false, "Open the failures viewer when the run fails")

	listCmd := &cobra.Command{
		Use:   "list [tests...]",
		Short: "List discovered test modules",
		Long:  "Discover test modules and list them without running anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			return commonserrors.WithStackTrace(c.List.Execute(cmd, args))
		},
	}
	listCmd.Flags().BoolVar(&flags.Cases, "cases", false, "List the cases of every module")
	rootCmd.AddCommand(listCmd)

	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View the failures of the last run",
		Long:  "Display the failures recorded by the last run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commonserrors.WithStackTrace(c.Failures.Execute(cmd, args))
		},
	}
	failuresCmd.Flags().BoolVar(&flags.Summary, "summary", false, "Print statistics and a failure tree instead of the interactive viewer")
	rootCmd.AddCommand(failuresCmd)
}

// moduleSelector turns command-line names, or discovery, into the run set
type moduleSelector struct {
	config   *config.Config
	registry *suite.Registry
	filter   *discovery.Filter
}

func newModuleSelector(cfg *config.Config, registry *suite.Registry, filter *discovery.Filter) *moduleSelector {
	return &moduleSelector{config: cfg, registry: registry, filter: filter}
}

// Select returns the modules to run. Explicit names replace discovery
// entirely; exclusions and the name filter apply to both.
func (s *moduleSelector) Select(args []string) ([]string, error) {
	var names []string
	if len(args) > 0 {
		names = s.filter.Normalize(args, s.config.Suffix)
	} else {
		scanner := discovery.NewScanner(s.config.Prefix, s.config.Suffix, s.config.Marker)
		found, err := scanner.Scan(s.config.GetTestDir())
		if err != nil {
			return nil, err
		}
		names = found
		if s.registry != nil {
			names = s.filter.Merge(names, s.registry.Names(), s.config.Prefix)
		}
	}

	exclude := s.filter.Normalize(s.config.Flags.Exclude, s.config.Suffix)
	names = s.filter.Exclude(names, exclude)
	return s.filter.FilterByName(names, s.config.Flags.Filter), nil
}
