package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tse2e/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	deps *Deps
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(deps *Deps) *FailuresCommand {
	return &FailuresCommand{deps: deps}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	st, err := fc.deps.Storage(cmd.Context())
	if err != nil {
		return err
	}
	output, err := st.Load()
	if err != nil {
		return err
	}

	if len(output.Details) == 0 {
		color.New(color.FgGreen).Fprintln(fc.deps.Out, "✓ No test failures found!")
		return nil
	}

	// The TUI needs a terminal; otherwise print the tree.
	if !interactive(fc.deps.Out) {
		ui.NewFormatter(fc.deps.Out).PrintFailureTree(output.Details)
		return nil
	}
	return ui.NewErrorViewer(st, fc.deps.Logger).View(output)
}
