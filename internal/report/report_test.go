package report

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tse2e/internal/domain"
)

func TestReport(t *testing.T) {
	results := []domain.Result{
		{Name: "MmModule_basic", Success: true},
		{Name: "Foo", Error: "bad shape"},
		{Name: "TanhModule_basic", Success: true},
	}

	want := `SUCCESS "MmModule_basic"
FAILURE "Foo": bad shape
SUCCESS "TanhModule_basic"
`
	if diff := cmp.Diff(want, Report(results)); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestReport_Empty(t *testing.T) {
	assert.Empty(t, Report(nil))
}

func TestLine_NameWrittenVerbatim(t *testing.T) {
	tests := []struct {
		name   string
		result domain.Result
		want   string
	}{
		{
			name:   "embedded quote",
			result: domain.Result{Name: `Mm"Module`, Success: true},
			want:   `SUCCESS "Mm"Module"`,
		},
		{
			name:   "backslash",
			result: domain.Result{Name: `a\b`, Success: true},
			want:   `SUCCESS "a\b"`,
		},
		{
			name:   "non ascii",
			result: domain.Result{Name: "café", Error: "boom"},
			want:   `FAILURE "café": boom`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Line(tt.result))
		})
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []domain.Result{{Name: "MmModule_basic", Success: true}}))
	assert.Equal(t, "SUCCESS \"MmModule_basic\"\n", buf.String())
}

func TestSummary(t *testing.T) {
	stats := Summary([]domain.Result{
		{Name: "a", Success: true},
		{Name: "b"},
		{Name: "c", Success: true},
	})
	assert.Equal(t, Stats{Total: 3, Passed: 2, Failed: 1}, stats)
}
