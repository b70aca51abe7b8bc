package suite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tse2e/internal/execution"
	"tse2e/internal/filecheck"
	"tse2e/internal/framework"
	"tse2e/internal/report"
	"tse2e/internal/tensor"
)

func readCheck(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestSuite_RegistrationOrder(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	var names []string
	for _, tc := range r.All() {
		names = append(names, tc.Name)
	}
	assert.Equal(t, []string{"MmModule_basic", "MmModule_chained", "TanhModule_basic", "MmTanhModule_basic"}, names)
}

func TestSuite_RegisterTwiceFails(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	assert.Error(t, Register(r))
}

func TestSuite_DirectBackendPasses(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	results := execution.RunTests(r.All(), execution.NewDirectConfig())
	for _, res := range results {
		assert.True(t, res.Success, "%s failed: %s", res.Name, res.Error)
	}
	assert.NoError(t, filecheck.Verify(readCheck(t, "basic_report.check"), report.Report(results)))
}

func TestAnnotatorFixtures(t *testing.T) {
	tests := []struct {
		fixture string
		golden  string
	}{
		{fixture: "class-annotator-repr", golden: "class_annotator_repr.check"},
		{fixture: "shape-and-dtype", golden: "shape_and_dtype.check"},
	}

	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			checkText := readCheck(t, tt.golden)
			run, ok := filecheck.ParseRunLine(checkText)
			require.True(t, ok)
			assert.Equal(t, "annotations "+tt.fixture, run)

			ca, err := BuildAnnotator(tt.fixture)
			require.NoError(t, err)
			assert.NoError(t, filecheck.Verify(checkText, ca.String()))
		})
	}

	_, err := BuildAnnotator("missing")
	assert.ErrorContains(t, err, "unknown annotator fixture")
}

func TestMmTanhModule_Values(t *testing.T) {
	lhs, err := tensor.FromValues(tensor.Float32, []int{1, 2}, []float64{1, 2})
	require.NoError(t, err)
	rhs, err := tensor.FromValues(tensor.Float32, []int{2, 1}, []float64{0.25, -0.5})
	require.NoError(t, err)

	out, err := (&MmTanhModule{}).Forward(lhs, rhs)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, out.Shape())
	assert.InDelta(t, -0.6351490, out.At(0, 0), 1e-6)
}

func TestDirectBackend_RejectsAnnotatedShapeViolation(t *testing.T) {
	handle, err := execution.NewDirectConfig().CompileAndRun(newTanhModule)
	require.NoError(t, err)

	tu := framework.NewTestUtils(framework.DefaultSeed)
	_, err = handle.Forward(tu.Rand(2, 4, 1))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "forward: argument 1: expected shape [2, 3, -1]"), err.Error())
}

func TestModules_ArgumentCount(t *testing.T) {
	_, err := (&MmModule{}).Forward(tensor.New(tensor.Float32, 2, 2))
	assert.EqualError(t, err, "forward() takes 2 arguments but 1 were given")
}
