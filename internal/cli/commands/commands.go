package commands

import (
	"github.com/spf13/cobra"

	"tse2e/internal/cli"
	"tse2e/internal/discovery"
)

// Commands holds all CLI commands
type Commands struct {
	Deps        *Deps
	Run         *RunCommand
	List        *ListCommand
	Check       *CheckCommand
	Annotations *AnnotationsCommand
	Failures    *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(deps *Deps) *Commands {
	scanner := discovery.NewScanner(discovery.DefaultSkipDirs)
	filter := discovery.NewFilter()

	return &Commands{
		Deps:        deps,
		Run:         NewRunCommand(deps, filter),
		List:        NewListCommand(deps, filter),
		Check:       NewCheckCommand(deps, scanner, filter),
		Annotations: NewAnnotationsCommand(deps),
		Failures:    NewFailuresCommand(deps),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to a YAML config file (default tse2e.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		if f := cmd.Flags().Lookup("seed"); f != nil {
			flags.SeedSet = f.Changed
		}
		return c.Deps.Setup(flags.ToConfigFlags())
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the end-to-end test cases",
		Long:  "Execute every registered test case against the configured backend and print one report line per case",
		Args:  cobra.NoArgs,
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of cases to run concurrently (default from config, 1)")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g., 'MmModule_*' or '*Tanh*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first case failure")
	runCmd.Flags().Int64Var(&flags.Seed, "seed", 0, "Seed for random test inputs")
	runCmd.Flags().BoolVar(&flags.NoSave, "no-save", false, "Do not persist the run results")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered test cases",
		Long:  "List the registered test cases grouped by module, marking the ones that failed in the last run",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g., 'MmModule_*' or '*Tanh*')")
	rootCmd.AddCommand(listCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:   "check [PATH...]",
		Short: "Verify golden check files",
		Long:  "Run the RUN line of each .check file and verify its output against the CHECK directives",
		RunE:  c.Check.Execute,
	}
	checkCmd.Flags().Int64Var(&flags.Seed, "seed", 0, "Seed for random test inputs")
	rootCmd.AddCommand(checkCmd)

	// Annotations command
	annotationsCmd := &cobra.Command{
		Use:   "annotations [FIXTURE]",
		Short: "Print the annotations of a fixture",
		Long:  "Build a class annotation fixture and print its repr",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Annotations.Execute,
	}
	rootCmd.AddCommand(annotationsCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View case failures interactively",
		Long:  "Display the failures of the last run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)
}
