package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tse2e/internal/domain"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()
	names := []string{"MmModule_basic", "MmModule_chained", "TanhModule_basic", "MmTanhModule_basic"}

	tests := []struct {
		name     string
		pattern  string
		expected []string
	}{
		{
			name:     "empty pattern returns all",
			pattern:  "",
			expected: names,
		},
		{
			name:     "wildcard pattern matches prefix",
			pattern:  "MmModule_*",
			expected: []string{"MmModule_basic", "MmModule_chained"},
		},
		{
			name:     "wildcard pattern matches substring",
			pattern:  "*Tanh*",
			expected: []string{"TanhModule_basic", "MmTanhModule_basic"},
		},
		{
			name:     "simple contains match",
			pattern:  "chained",
			expected: []string{"MmModule_chained"},
		},
		{
			name:     "single character wildcard",
			pattern:  "MmModule_basi?",
			expected: []string{"MmModule_basic"},
		},
		{
			name:     "no matches",
			pattern:  "*NonExistent*",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, filter.FilterByName(names, tt.pattern))
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty name list", func(t *testing.T) {
		assert.Empty(t, filter.FilterByName([]string{}, "*Module*"))
	})

	t.Run("pattern made only of wildcards matches as a glob", func(t *testing.T) {
		assert.Len(t, filter.FilterByName([]string{"a", "b"}, "*"), 2)
	})

	t.Run("malformed glob falls back to literal parts", func(t *testing.T) {
		assert.Len(t, filter.FilterByName([]string{"Mm[Module_basic"}, "Mm[*"), 1)
	})
}

func TestFilter_FilterCases(t *testing.T) {
	cases := []domain.TestCase{{Name: "MmModule_basic"}, {Name: "TanhModule_basic"}, {Name: "MmModule_chained"}}

	filtered := NewFilter().FilterCases(cases, "MmModule_*")
	assert.Equal(t, []domain.TestCase{{Name: "MmModule_basic"}, {Name: "MmModule_chained"}}, filtered)

	assert.Len(t, NewFilter().FilterCases(cases, ""), 3)
}
