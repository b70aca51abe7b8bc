package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tse2e/internal/discovery"
	"tse2e/internal/domain"
	"tse2e/internal/execution"
	"tse2e/internal/filecheck"
	"tse2e/internal/report"
	"tse2e/internal/suite"
)

// CheckCommand verifies golden check files against the output of their
// RUN line
type CheckCommand struct {
	deps    *Deps
	scanner *discovery.Scanner
	filter  *discovery.Filter
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(deps *Deps, scanner *discovery.Scanner, filter *discovery.Filter) *CheckCommand {
	return &CheckCommand{deps: deps, scanner: scanner, filter: filter}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{cc.deps.Config.ProjectPath}
	}
	files, err := cc.scanner.Resolve(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.New(color.FgYellow).Fprintln(cc.deps.Out, "No check files found")
		return nil
	}

	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	failed := 0
	for _, file := range files {
		if err := cc.CheckFile(file); err != nil {
			failed++
			fail.Fprintf(cc.deps.Out, "FAIL %s: %v\n", file, err)
			continue
		}
		pass.Fprintf(cc.deps.Out, "PASS %s\n", file)
	}

	cc.deps.Logger.Info("check files verified", zap.Int("files", len(files)), zap.Int("failed", failed))
	if failed > 0 {
		return ErrTestsFailed
	}
	return nil
}

// CheckFile verifies one check file.
func (cc *CheckCommand) CheckFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read check file: %w", err)
	}
	checkText := string(data)

	run, ok := filecheck.ParseRunLine(checkText)
	if !ok {
		return fmt.Errorf("missing RUN line")
	}
	output, err := cc.Evaluate(run)
	if err != nil {
		return fmt.Errorf("RUN %q: %w", run, err)
	}
	return filecheck.Verify(checkText, output)
}

// Evaluate produces the output of a RUN line. Supported forms are
// "report [PATTERN]" and "annotations [FIXTURE]".
func (cc *CheckCommand) Evaluate(run string) (string, error) {
	fields := strings.Fields(run)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty RUN line")
	}
	if len(fields) > 2 {
		return "", fmt.Errorf("too many arguments")
	}
	arg := ""
	if len(fields) == 2 {
		arg = fields[1]
	}

	switch fields[0] {
	case "report":
		backend, err := execution.NewConfig(cc.deps.Config.Backend)
		if err != nil {
			return "", err
		}
		cases := cc.filter.FilterCases(cc.deps.Registry.All(), arg)
		runner := execution.NewRunner(backend, cc.deps.Config.Seed, cc.deps.Logger)
		results := make([]domain.Result, 0, len(cases))
		for _, tc := range cases {
			results = append(results, runner.Run(tc))
		}
		return report.Report(results), nil
	case "annotations":
		if arg == "" {
			arg = suite.DefaultAnnotatorFixture
		}
		ca, err := suite.BuildAnnotator(arg)
		if err != nil {
			return "", err
		}
		return ca.String(), nil
	}
	return "", fmt.Errorf("unknown command %q", fields[0])
}
