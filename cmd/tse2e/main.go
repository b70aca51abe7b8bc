package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tse2e/internal/cli"
	"tse2e/internal/cli/commands"
	"tse2e/internal/suite"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "tse2e",
		Short:         "End-to-end test harness for compiled modules",
		Long:          `Runs registered end-to-end test cases against an execution backend and reports one SUCCESS or FAILURE line per case.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	registry, err := suite.NewRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	deps := commands.NewDeps(registry, os.Stdout, os.Stderr)
	cmds := commands.NewCommands(deps)

	// Register all commands
	cmds.Register(rootCmd, &flags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = rootCmd.ExecuteContext(ctx)
	stop()
	if closeErr := deps.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		if !errors.Is(err, commands.ErrTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
