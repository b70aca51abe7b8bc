package execution

import (
	"context"
	"time"

	"tse2e/internal/domain"
)

// Executor executes test cases and returns one result per executed case,
// in registry order.
type Executor interface {
	Execute(ctx context.Context, cases []domain.TestCase) ([]domain.Result, time.Duration, error)
}

// Progress receives pass/fail counts as cases complete
type Progress interface {
	Update(passed, failed int)
	Finish()
}
