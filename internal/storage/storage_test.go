package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tse2e/internal/config"
	"tse2e/internal/domain"
)

func sampleResults() []domain.Result {
	return []domain.Result{
		{Name: "MmModule_basic", Success: true, Duration: time.Millisecond},
		{Name: "TanhModule_basic", Error: "bad shape", Duration: 2 * time.Millisecond},
		{Name: "MmTanhModule_basic", Success: true},
	}
}

func TestNewOutput(t *testing.T) {
	output := NewOutput(sampleResults(), 3*time.Second, RunInfo{Workers: 2, Seed: 7, Backend: "direct"})

	_, err := uuid.Parse(output.Meta.RunID)
	require.NoError(t, err)
	assert.Equal(t, 3, output.Meta.TotalCases)
	assert.Equal(t, 2, output.Meta.PassedCases)
	assert.Equal(t, 1, output.Meta.FailedCases)
	assert.Equal(t, "3s", output.Meta.Duration)
	assert.Equal(t, int64(7), output.Meta.Seed)
	assert.Equal(t, "direct", output.Meta.Backend)
	require.Len(t, output.Details, 1)
	assert.Equal(t, "TanhModule_basic", output.Details[0].Name)
	assert.Equal(t, "bad shape", output.Details[0].Error)

	other := NewOutput(nil, 0, RunInfo{})
	assert.NotEqual(t, output.Meta.RunID, other.Meta.RunID)
}

func TestJSONStorage_RoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	s := NewJSONStorage(cfg)

	output := NewOutput(sampleResults(), time.Second, RunInfo{Workers: 1, Backend: "direct"})
	require.NoError(t, s.SaveOutput(output))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, output, loaded)

	loaded.Details[0].Resolved = true
	require.NoError(t, s.SaveOutput(loaded))

	again, err := s.Load()
	require.NoError(t, err)
	assert.True(t, again.Details[0].Resolved)
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	_, err := NewJSONStorage(cfg).Load()
	assert.ErrorContains(t, err, "read results file")
}

type memoryStorage struct {
	saved *domain.RunOutput
	err   error
}

func (m *memoryStorage) Load() (*domain.RunOutput, error) { return m.saved, m.err }

func (m *memoryStorage) SaveOutput(output *domain.RunOutput) error {
	if m.err != nil {
		return m.err
	}
	m.saved = output
	return nil
}

func TestMirrored(t *testing.T) {
	primary := &memoryStorage{}
	assert.Same(t, primary, NewMirrored(primary))

	mirror := &memoryStorage{}
	broken := &memoryStorage{err: errors.New("connection refused")}
	s := NewMirrored(primary, mirror, broken)

	output := NewOutput(sampleResults(), time.Second, RunInfo{})
	err := s.SaveOutput(output)
	assert.ErrorContains(t, err, "connection refused")
	assert.Same(t, output, primary.saved)
	assert.Same(t, output, mirror.saved)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Same(t, output, loaded)
}

func TestIsValidDatabaseName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"tse2e_results", true},
		{"e2e-history", true},
		{"", false},
		{"results; DROP TABLE x", false},
		{"a`b", false},
		{"drop_me", false},
		{string(make([]byte, 65)), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, isValidDatabaseName(tt.name), "name %q", tt.name)
	}
}

func TestOpenMySQL_RejectsBadDSN(t *testing.T) {
	_, err := OpenMySQL(context.Background(), "not a dsn", nil)
	assert.ErrorContains(t, err, "invalid results DSN")

	_, err = OpenMySQL(context.Background(), "root@tcp(127.0.0.1:3306)/", nil)
	assert.ErrorContains(t, err, "invalid database name")
}
