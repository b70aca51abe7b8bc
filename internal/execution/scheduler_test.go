package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobinScheduler_Schedule(t *testing.T) {
	tests := []struct {
		name     string
		cases    int
		workers  int
		expected [][]int
	}{
		{
			name:     "even distribution",
			cases:    4,
			workers:  2,
			expected: [][]int{{0, 2}, {1, 3}},
		},
		{
			name:     "more workers than cases",
			cases:    1,
			workers:  3,
			expected: [][]int{{0}, {}, {}},
		},
		{
			name:     "non-positive worker count falls back to one",
			cases:    3,
			workers:  0,
			expected: [][]int{{0, 1, 2}},
		},
	}

	scheduler := NewRoundRobinScheduler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scheduler.Schedule(tt.cases, tt.workers))
		})
	}
}
