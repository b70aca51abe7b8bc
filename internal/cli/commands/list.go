package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tse2e/internal/discovery"
	"tse2e/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	deps   *Deps
	filter *discovery.Filter
}

// NewListCommand creates a new ListCommand
func NewListCommand(deps *Deps, filter *discovery.Filter) *ListCommand {
	return &ListCommand{deps: deps, filter: filter}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	names := lc.filter.FilterByName(lc.deps.Registry.Names(), lc.deps.Config.Flags.NameFilter)
	if len(names) == 0 {
		color.New(color.FgYellow).Fprintln(lc.deps.Out, "No test cases found")
		return nil
	}

	ui.NewFormatter(lc.deps.Out).PrintCaseList(names, lc.lastFailed(cmd))
	return nil
}

// lastFailed returns the names that failed in the last saved run, if any.
func (lc *ListCommand) lastFailed(cmd *cobra.Command) map[string]struct{} {
	st, err := lc.deps.Storage(cmd.Context())
	if err != nil {
		lc.deps.Logger.Debug("no storage for failure markers", zap.Error(err))
		return nil
	}
	output, err := st.Load()
	if err != nil {
		lc.deps.Logger.Debug("no previous run", zap.Error(err))
		return nil
	}
	failed := make(map[string]struct{}, len(output.Details))
	for _, f := range output.Details {
		failed[f.Name] = struct{}{}
	}
	return failed
}
