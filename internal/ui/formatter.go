package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"tse2e/internal/domain"
	"tse2e/internal/report"
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// PrintReport prints one line per result. Without color the output is
// exactly the plain report.
func (f *Formatter) PrintReport(results []domain.Result) error {
	if color.NoColor {
		return report.Write(f.out, results)
	}
	for _, r := range results {
		if r.Success {
			green.Fprintln(f.out, report.Line(r))
		} else {
			red.Fprintln(f.out, report.Line(r))
		}
	}
	return nil
}

// PrintStats prints the run statistics table and a summary line
func (f *Formatter) PrintStats(meta domain.RunMeta) {
	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Test Execution Statistics                  ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Total Cases", fmt.Sprint(meta.TotalCases), white},
		{"Passed Cases", fmt.Sprint(meta.PassedCases), green},
		{"Failed Cases", fmt.Sprint(meta.FailedCases), red},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Workers", fmt.Sprint(meta.Workers), white},
		{"Seed", fmt.Sprint(meta.Seed), white},
		{"Backend", meta.Backend, white},
		{"Run ID", meta.RunID, white},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬──────────────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-36s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼──────────────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴──────────────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedCases == 0 {
		green.Fprintln(f.out, "✓ All tests passed!")
	} else {
		red.Fprintf(f.out, "✗ %d of %d test case(s) failed\n", meta.FailedCases, meta.TotalCases)
	}
}

// PrintFailureTree prints failed cases grouped by the module they exercise
func (f *Formatter) PrintFailureTree(failures []domain.CaseFailure) {
	if len(failures) == 0 {
		return
	}

	groups := make(map[string][]domain.CaseFailure)
	for _, failure := range failures {
		module, _ := SplitCaseName(failure.Name)
		groups[module] = append(groups[module], failure)
	}

	modules := make([]string, 0, len(groups))
	for m := range groups {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	for i, module := range modules {
		lastModule := i == len(modules)-1
		yellow.Fprintf(f.out, "%s%s\n", branch(lastModule), module)
		for j, failure := range groups[module] {
			_, variant := SplitCaseName(failure.Name)
			red.Fprintf(f.out, "%s%s%s: %s\n", indent(lastModule), branch(j == len(groups[module])-1), variant, failure.Error)
		}
	}
}

// PrintCaseList prints registered case names grouped by module. Names in
// failed are marked with [F].
func (f *Formatter) PrintCaseList(names []string, failed map[string]struct{}) {
	green.Fprintf(f.out, "Found %d test case(s):\n", len(names))

	var modules []string
	groups := make(map[string][]string)
	for _, name := range names {
		module, _ := SplitCaseName(name)
		if _, ok := groups[module]; !ok {
			modules = append(modules, module)
		}
		groups[module] = append(groups[module], name)
	}

	for i, module := range modules {
		lastModule := i == len(modules)-1
		cyan.Fprintf(f.out, "%s%s\n", branch(lastModule), module)
		for j, name := range groups[module] {
			marker := ""
			if _, ok := failed[name]; ok {
				marker = " " + red.Sprint("[F]")
			}
			fmt.Fprintf(f.out, "%s%s%s%s\n", indent(lastModule), branch(j == len(groups[module])-1), name, marker)
		}
	}
}

// SplitCaseName splits "MmModule_basic" into its module and variant parts.
// Names without an underscore are their own module.
func SplitCaseName(name string) (module, variant string) {
	if i := strings.Index(name, "_"); i > 0 {
		return name[:i], name[i+1:]
	}
	return name, name
}

func branch(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func indent(lastParent bool) string {
	if lastParent {
		return "    "
	}
	return "│   "
}
