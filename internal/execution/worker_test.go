package execution

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tse2e/internal/domain"
	"tse2e/internal/framework"
	"tse2e/internal/registry"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func buildCases(t *testing.T, n int, failing map[int]bool) []domain.TestCase {
	t.Helper()
	r := registry.New()
	for i := 0; i < n; i++ {
		invocation := succeed
		if failing[i] {
			invocation = failWith(fmt.Sprintf("case %d failed", i))
		}
		r.MustRegister(fmt.Sprintf("case_%02d", i), newEcho, invocation)
	}
	return r.All()
}

func TestWorkerPool_MatchesSequential(t *testing.T) {
	cases := buildCases(t, 25, map[int]bool{3: true, 17: true})
	runner := NewRunner(NewDirectConfig(), 7, nil)

	sequential, _, err := NewSequential(runner, false).Execute(context.Background(), cases)
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 4, 8} {
		t.Run(fmt.Sprintf("%d workers", workers), func(t *testing.T) {
			pool := NewWorkerPool(runner, NewRoundRobinScheduler(), workers, false, nil)
			parallel, _, err := pool.Execute(context.Background(), cases)
			require.NoError(t, err)
			if diff := cmp.Diff(sequential, parallel, ignoreDuration); diff != "" {
				t.Errorf("parallel results differ from sequential (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWorkerPool_Empty(t *testing.T) {
	pool := NewWorkerPool(NewRunner(NewDirectConfig(), 0, nil), NewRoundRobinScheduler(), 4, false, nil)
	results, _, err := pool.Execute(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestWorkerPool_FailFast(t *testing.T) {
	var executed atomic.Int32
	r := registry.New()
	r.MustRegister("fails", newEcho, func(framework.Handle, *framework.TestUtils) error {
		executed.Add(1)
		return fmt.Errorf("first case failed")
	})
	for i := 0; i < 50; i++ {
		r.MustRegister(fmt.Sprintf("after_%02d", i), newEcho, func(m framework.Handle, tu *framework.TestUtils) error {
			executed.Add(1)
			return succeed(m, tu)
		})
	}

	pool := NewWorkerPool(NewRunner(NewDirectConfig(), 0, nil), NewRoundRobinScheduler(), 1, true, nil)
	results, _, err := pool.Execute(context.Background(), r.All())
	require.NoError(t, err)

	require.NotEmpty(t, results)
	assert.Equal(t, "fails", results[0].Name)
	assert.False(t, results[0].Success)
	assert.Less(t, len(results), r.Len(), "fail-fast should skip cases")
	assert.Equal(t, len(results), int(executed.Load()), "every executed case is reported")
}

func TestWorkerPool_Progress(t *testing.T) {
	cases := buildCases(t, 6, map[int]bool{0: true})
	progress := &lockedProgress{}

	pool := NewWorkerPool(NewRunner(NewDirectConfig(), 0, nil), NewRoundRobinScheduler(), 3, false, nil)
	pool.SetProgress(progress)
	_, _, err := pool.Execute(context.Background(), cases)
	require.NoError(t, err)

	assert.Equal(t, &lockedProgress{passed: 5, failed: 1, finished: true}, progress)
}

func TestWorkerPool_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewWorkerPool(NewRunner(NewDirectConfig(), 0, nil), NewRoundRobinScheduler(), 2, false, nil)
	results, _, err := pool.Execute(ctx, buildCases(t, 4, nil))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

// lockedProgress relies on the pool serializing Update calls.
type lockedProgress struct {
	passed, failed int
	finished       bool
}

func (p *lockedProgress) Update(passed, failed int) { p.passed, p.failed = passed, failed }
func (p *lockedProgress) Finish()                   { p.finished = true }
