package domain

import "time"

// Result is the outcome of executing one test case
type Result struct {
	Name     string        // Name of the test case
	Success  bool          // Whether the case succeeded
	Error    string        // Error description when the case failed
	Duration time.Duration // Time taken to execute
}

// RunMeta contains metadata about a test run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Seed            int64   `json:"seed"`
	Backend         string  `json:"backend"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete persisted record of a test run
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []CaseFailure `json:"details"`
}
