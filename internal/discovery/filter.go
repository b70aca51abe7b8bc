package discovery

import (
	"path"
	"strings"

	"tse2e/internal/domain"
)

// Filter selects test cases by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterCases keeps the cases whose names match pattern, preserving order.
func (f *Filter) FilterCases(cases []domain.TestCase, pattern string) []domain.TestCase {
	if pattern == "" {
		return cases
	}
	var filtered []domain.TestCase
	for _, tc := range cases {
		if f.Match(tc.Name, pattern) {
			filtered = append(filtered, tc)
		}
	}
	return filtered
}

// FilterByName filters names by pattern using wildcard matching.
// Supports patterns like "MmModule_*" or "*Tanh*"
func (f *Filter) FilterByName(names []string, pattern string) []string {
	if pattern == "" {
		return names
	}
	var filtered []string
	for _, name := range names {
		if f.Match(name, pattern) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// Match reports whether name matches pattern. Patterns with wildcards match
// either as a glob or when every literal part occurs in the name; plain
// patterns match as substrings.
func (f *Filter) Match(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	if matched, err := path.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		hasNonEmptyPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
