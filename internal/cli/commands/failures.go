package commands

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"regress/internal/config"
	"regress/internal/storage"
	"regress/internal/ui"
)

// stdoutIsTerminal decides whether the interactive viewer can be used
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, st storage.Storage, viewer ui.Viewer) *FailuresCommand {
	return &FailuresCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := fc.storage.Load()
	if err != nil {
		return err
	}

	if fc.config.Flags.Summary || !stdoutIsTerminal() {
		ui.NewFormatter(cmd.OutOrStdout(), fc.config.GetTestDir()).PrintRunStats(results)
		return nil
	}
	return fc.viewer.View(results)
}
