package domain

// CaseFailure represents a failed test case in a persisted run
type CaseFailure struct {
	Name     string `json:"name"`
	Error    string `json:"error"`
	Duration string `json:"duration"`
	Resolved bool   `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}

// Failures extracts the failed results in order.
func Failures(results []Result) []CaseFailure {
	var failures []CaseFailure
	for _, r := range results {
		if !r.Success {
			failures = append(failures, CaseFailure{
				Name:     r.Name,
				Error:    r.Error,
				Duration: r.Duration.String(),
			})
		}
	}
	return failures
}
