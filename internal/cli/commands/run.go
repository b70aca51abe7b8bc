package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tse2e/internal/discovery"
	"tse2e/internal/domain"
	"tse2e/internal/execution"
	"tse2e/internal/storage"
	"tse2e/internal/ui"
)

// ErrTestsFailed is returned when at least one case or check failed. The
// report already describes the failures, so main only sets the exit code.
var ErrTestsFailed = errors.New("tests failed")

// RunCommand handles the run command
type RunCommand struct {
	deps   *Deps
	filter *discovery.Filter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(deps *Deps, filter *discovery.Filter) *RunCommand {
	return &RunCommand{deps: deps, filter: filter}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := rc.deps.Config
	logger := rc.deps.Logger

	cases := rc.filter.FilterCases(rc.deps.Registry.All(), cfg.Flags.NameFilter)
	if len(cases) == 0 {
		color.New(color.FgYellow).Fprintln(rc.deps.Err, "No test cases to execute")
		return nil
	}

	backend, err := execution.NewConfig(cfg.Backend)
	if err != nil {
		return err
	}
	runner := execution.NewRunner(backend, cfg.Seed, logger)

	var executor interface {
		execution.Executor
		SetProgress(execution.Progress)
	}
	if cfg.Processors > 1 {
		executor = execution.NewWorkerPool(runner, execution.NewRoundRobinScheduler(), cfg.Processors, cfg.Flags.FailFast, logger)
	} else {
		executor = execution.NewSequential(runner, cfg.Flags.FailFast)
	}
	if interactive(rc.deps.Err) {
		executor.SetProgress(ui.NewProgressBar(rc.deps.Err, len(cases)))
	}

	logger.Info("running test cases",
		zap.Int("cases", len(cases)),
		zap.String("backend", cfg.Backend),
		zap.Int("processors", cfg.Processors))

	results, duration, err := executor.Execute(cmd.Context(), cases)
	if printErr := ui.NewFormatter(rc.deps.Out).PrintReport(results); printErr != nil {
		return fmt.Errorf("failed to print report: %w", printErr)
	}
	if err != nil {
		// interrupted runs are reported but never saved
		color.New(color.FgYellow).Fprintf(rc.deps.Err, "Run interrupted after %d of %d test case(s)\n", len(results), len(cases))
		return fmt.Errorf("run interrupted: %w", err)
	}

	output := storage.NewOutput(results, duration, storage.RunInfo{
		Workers: cfg.Processors,
		Seed:    cfg.Seed,
		Backend: execution.ConfigName(backend),
	})
	if !cfg.Flags.NoSave {
		if err := rc.save(cmd, output); err != nil {
			return err
		}
	}

	stats := ui.NewFormatter(rc.deps.Err)
	stats.PrintStats(output.Meta)
	stats.PrintFailureTree(output.Details)

	if output.Meta.FailedCases > 0 {
		return ErrTestsFailed
	}
	return nil
}

func (rc *RunCommand) save(cmd *cobra.Command, output *domain.RunOutput) error {
	st, err := rc.deps.Storage(cmd.Context())
	if err != nil {
		return err
	}
	if err := st.SaveOutput(output); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}
	rc.deps.Logger.Info("results saved",
		zap.String("run_id", output.Meta.RunID),
		zap.String("path", rc.deps.Config.GetOutputPath()))
	return nil
}
