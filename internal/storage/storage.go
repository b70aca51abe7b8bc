package storage

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"tse2e/internal/config"
	"tse2e/internal/domain"
	"tse2e/internal/report"
)

// Storage persists and loads run records (e.g. for the failures viewer).
type Storage interface {
	Load() (*domain.RunOutput, error)
	// SaveOutput writes the full output (e.g. after marking failures resolved).
	SaveOutput(output *domain.RunOutput) error
}

// RunInfo describes how a run was executed.
type RunInfo struct {
	Workers int
	Seed    int64
	Backend string
}

// NewOutput builds the persisted record of a run with a fresh run ID.
func NewOutput(results []domain.Result, duration time.Duration, info RunInfo) *domain.RunOutput {
	stats := report.Summary(results)

	return &domain.RunOutput{
		Meta: domain.RunMeta{
			RunID:           uuid.NewString(),
			TotalCases:      stats.Total,
			PassedCases:     stats.Passed,
			FailedCases:     stats.Failed,
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Workers:         info.Workers,
			Seed:            info.Seed,
			Backend:         info.Backend,
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: domain.Failures(results),
	}
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// Mirrored reads from a primary storage and writes to it and every mirror.
type Mirrored struct {
	primary Storage
	mirrors []Storage
}

// NewMirrored returns primary when there are no mirrors.
func NewMirrored(primary Storage, mirrors ...Storage) Storage {
	if len(mirrors) == 0 {
		return primary
	}
	return &Mirrored{primary: primary, mirrors: mirrors}
}

// Load reads from the primary storage only.
func (m *Mirrored) Load() (*domain.RunOutput, error) {
	return m.primary.Load()
}

// SaveOutput writes to every storage, collecting all errors.
func (m *Mirrored) SaveOutput(output *domain.RunOutput) error {
	err := m.primary.SaveOutput(output)
	for _, mirror := range m.mirrors {
		err = multierr.Append(err, mirror.SaveOutput(output))
	}
	return err
}
