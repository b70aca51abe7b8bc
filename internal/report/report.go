// Package report renders test results as one line per case.
package report

import (
	"fmt"
	"io"
	"strings"

	"tse2e/internal/domain"
)

// Line formats a single result as `SUCCESS "<name>"` or
// `FAILURE "<name>": <error>`. The name is written verbatim between the
// quotes.
func Line(r domain.Result) string {
	if r.Success {
		return fmt.Sprintf("SUCCESS \"%s\"", r.Name)
	}
	return fmt.Sprintf("FAILURE \"%s\": %s", r.Name, r.Error)
}

// Report renders every result on its own line, in input order.
func Report(results []domain.Result) string {
	var b strings.Builder
	for _, r := range results {
		b.WriteString(Line(r))
		b.WriteByte('\n')
	}
	return b.String()
}

// Write writes the report to w.
func Write(w io.Writer, results []domain.Result) error {
	_, err := io.WriteString(w, Report(results))
	return err
}

// Stats counts passed and failed results
type Stats struct {
	Total  int
	Passed int
	Failed int
}

// Summary computes Stats for results.
func Summary(results []domain.Result) Stats {
	stats := Stats{Total: len(results)}
	for _, r := range results {
		if r.Success {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}
