package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"regress/internal/config"
	"regress/internal/domain"
	"regress/internal/execution"
	"regress/internal/storage"
	"regress/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config   *config.Config
	selector *moduleSelector
	loader   *execution.Loader
	storage  storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	selector *moduleSelector,
	loader *execution.Loader,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:   cfg,
		selector: selector,
		loader:   loader,
		storage:  st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	names, err := lc.selector.Select(args)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		color.New(color.FgYellow).Fprintln(out, "No tests found")
		return nil
	}

	modules := make([]domain.ModuleInfo, 0, len(names))
	for _, name := range names {
		info, err := lc.loader.Describe(name)
		if err != nil {
			return err
		}
		modules = append(modules, info)
	}

	// Mark modules that failed last time; no record just means no marks.
	failed := make(map[string]bool)
	if last, err := lc.storage.Load(); err == nil {
		for _, f := range last.Details {
			if !f.Resolved {
				failed[f.Module] = true
			}
		}
	}

	ui.NewFormatter(out, lc.config.GetTestDir()).PrintModuleList(modules, lc.config.Flags.Cases, failed)
	return nil
}
