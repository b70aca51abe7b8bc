package execution

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tse2e/internal/domain"
)

// WorkerPool executes cases in parallel. Every case builds its own module
// and TestUtils, so results are identical to a sequential run and are
// returned in registry order.
type WorkerPool struct {
	runner    *Runner
	scheduler Scheduler
	workers   int
	failFast  bool
	progress  Progress
	logger    *zap.Logger
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(runner *Runner, scheduler Scheduler, workers int, failFast bool, logger *zap.Logger) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerPool{
		runner:    runner,
		scheduler: scheduler,
		workers:   workers,
		failFast:  failFast,
		logger:    logger,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute executes cases in parallel.
func (wp *WorkerPool) Execute(ctx context.Context, cases []domain.TestCase) ([]domain.Result, time.Duration, error) {
	if len(cases) == 0 {
		return nil, 0, nil
	}
	wp.logger.Debug("starting worker pool",
		zap.Int("workers", wp.workers),
		zap.Int("cases", len(cases)),
		zap.Bool("fail_fast", wp.failFast))

	startTime := time.Now()
	var slots []*domain.Result
	if wp.failFast {
		slots = wp.executeFailFast(ctx, cases)
	} else {
		slots = wp.executeAll(ctx, cases)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}

	// Compact executed slots, keeping registry order
	results := make([]domain.Result, 0, len(cases))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	if err := ctx.Err(); err != nil {
		return results, time.Since(startTime), err
	}
	return results, time.Since(startTime), nil
}

// executeAll runs every case, each worker taking the indices the scheduler assigned it.
func (wp *WorkerPool) executeAll(ctx context.Context, cases []domain.TestCase) []*domain.Result {
	slots := make([]*domain.Result, len(cases))
	tracker := &completionTracker{progress: wp.progress}

	var wg sync.WaitGroup
	for workerID, indices := range wp.scheduler.Schedule(len(cases), wp.workers) {
		wg.Add(1)
		go func(workerID int, indices []int) {
			defer wg.Done()
			for _, i := range indices {
				if ctx.Err() != nil {
					return
				}
				result := wp.runner.Run(cases[i])
				slots[i] = &result
				tracker.record(result)
			}
			wp.logger.Debug("worker finished", zap.Int("worker", workerID), zap.Int("cases", len(indices)))
		}(workerID+1, indices)
	}
	wg.Wait()
	return slots
}

// executeFailFast stops handing out cases after the first failure. Cases
// already running are allowed to finish and their results are kept.
func (wp *WorkerPool) executeFailFast(ctx context.Context, cases []domain.TestCase) []*domain.Result {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan int)
	go func() {
		defer close(queue)
		for i := range cases {
			select {
			case <-ctx.Done():
				return
			case queue <- i:
			}
		}
	}()

	slots := make([]*domain.Result, len(cases))
	tracker := &completionTracker{progress: wp.progress}

	var wg sync.WaitGroup
	for i := 1; i <= wp.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range queue {
				result := wp.runner.Run(cases[index])
				slots[index] = &result
				tracker.record(result)
				if !result.Success {
					cancel()
				}
			}
		}()
	}
	wg.Wait()
	return slots
}

type completionTracker struct {
	mu       sync.Mutex
	passed   int
	failed   int
	progress Progress
}

func (t *completionTracker) record(result domain.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if result.Success {
		t.passed++
	} else {
		t.failed++
	}
	if t.progress != nil {
		t.progress.Update(t.passed, t.failed)
	}
}
