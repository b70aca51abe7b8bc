package execution

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tse2e/internal/domain"
	"tse2e/internal/framework"
)

// Runner executes a single test case against an execution config
type Runner struct {
	config framework.Config
	seed   int64
	logger *zap.Logger
}

// NewRunner creates a new Runner. Every case gets a TestUtils seeded with seed.
func NewRunner(cfg framework.Config, seed int64, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{config: cfg, seed: seed, logger: logger}
}

// Run compiles the case's module through the config and calls its invocation.
// Errors and panics from any stage are captured in a failed Result.
func (r *Runner) Run(tc domain.TestCase) (result domain.Result) {
	start := time.Now()
	result = domain.Result{Name: tc.Name}

	defer func() {
		if rec := recover(); rec != nil {
			result.Success = false
			result.Error = fmt.Sprintf("panic: %v", rec)
		}
		result.Duration = time.Since(start)
		if result.Success {
			r.logger.Debug("test case passed", zap.String("case", tc.Name), zap.Duration("duration", result.Duration))
		} else {
			r.logger.Debug("test case failed", zap.String("case", tc.Name), zap.String("error", result.Error))
		}
	}()

	handle, err := r.config.CompileAndRun(tc.ModuleFactory)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if err := tc.Invocation(handle, framework.NewTestUtils(r.seed)); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	return result
}

// Sequential executes cases one at a time in registry order
type Sequential struct {
	runner   *Runner
	failFast bool
	progress Progress
}

// NewSequential creates a new Sequential executor
func NewSequential(runner *Runner, failFast bool) *Sequential {
	return &Sequential{runner: runner, failFast: failFast}
}

// SetProgress sets the progress reporter
func (s *Sequential) SetProgress(progress Progress) {
	s.progress = progress
}

// Execute runs every case in order. A failing case never stops the run
// unless fail-fast is enabled. Cancellation is honored between cases.
func (s *Sequential) Execute(ctx context.Context, cases []domain.TestCase) ([]domain.Result, time.Duration, error) {
	startTime := time.Now()
	results := make([]domain.Result, 0, len(cases))
	var passed, failed int

	for _, tc := range cases {
		if err := ctx.Err(); err != nil {
			return results, time.Since(startTime), err
		}

		result := s.runner.Run(tc)
		results = append(results, result)
		if result.Success {
			passed++
		} else {
			failed++
		}
		if s.progress != nil {
			s.progress.Update(passed, failed)
		}
		if s.failFast && !result.Success {
			break
		}
	}

	if s.progress != nil {
		s.progress.Finish()
	}
	return results, time.Since(startTime), nil
}

// RunTests executes cases sequentially against cfg with the default seed.
func RunTests(cases []domain.TestCase, cfg framework.Config) []domain.Result {
	results, _, _ := NewSequential(NewRunner(cfg, framework.DefaultSeed, nil), false).Execute(context.Background(), cases)
	return results
}
