package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultProjectPath, cfg.ProjectPath)
	assert.Equal(t, DefaultProcessors, cfg.Processors)
	assert.Equal(t, DefaultBackend, cfg.Backend)
	assert.NoError(t, cfg.Validate(), "defaults should be valid")
}

func TestConfig_GetOutputPath(t *testing.T) {
	cfg := &Config{
		ProjectPath:    "/project",
		OutputJSONDir:  "storage",
		OutputJSONFile: "test-results.json",
	}
	assert.Equal(t, filepath.Join("/project", "storage", "test-results.json"), cfg.GetOutputPath())
}

func TestConfig_ApplyFlags(t *testing.T) {
	tests := []struct {
		name           string
		flags          Flags
		wantProcessors int
		wantSeed       int64
		wantLogLevel   string
	}{
		{
			name:           "no overrides",
			flags:          Flags{},
			wantProcessors: 3,
			wantSeed:       11,
			wantLogLevel:   "info",
		},
		{
			name:           "processors and seed",
			flags:          Flags{Processors: 8, Seed: 0, SeedSet: true},
			wantProcessors: 8,
			wantSeed:       0,
			wantLogLevel:   "info",
		},
		{
			name:           "verbose",
			flags:          Flags{Verbose: true},
			wantProcessors: 3,
			wantSeed:       11,
			wantLogLevel:   "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.Processors = 3
			cfg.Seed = 11
			cfg.LogLevel = "info"

			cfg.ApplyFlags(tt.flags)

			assert.Equal(t, tt.wantProcessors, cfg.Processors)
			assert.Equal(t, tt.wantSeed, cfg.Seed)
			assert.Equal(t, tt.wantLogLevel, cfg.LogLevel)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := New()
	cfg.Processors = 0
	assert.Error(t, cfg.Validate(), "zero processors")

	cfg = New()
	cfg.Backend = "refbackend"
	assert.Error(t, cfg.Validate(), "unknown backend")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Layering(t *testing.T) {
	tmpDir := t.TempDir()

	configFile := filepath.Join(tmpDir, "tse2e.yaml")
	writeFile(t, configFile, `
project_path: `+tmpDir+`
seed: 5
processors: 2
output_dir: yaml-results
log_level: info
`)
	writeFile(t, filepath.Join(tmpDir, ".env"), `
TSE2E_SEED=9
TSE2E_OUTPUT_DIR=env-results
TSE2E_RESULTS_DSN=user:pass@tcp(127.0.0.1:3306)/e2e
`)
	t.Setenv(EnvOutputDir, "process-results")
	t.Setenv(EnvProcessors, "")

	cfg, err := Load(Flags{ConfigFile: configFile, Processors: 4})
	require.NoError(t, err)

	assert.Equal(t, int64(9), cfg.Seed, ".env seed")
	assert.Equal(t, "process-results", cfg.OutputJSONDir, "process environment wins over .env")
	assert.Equal(t, "user:pass@tcp(127.0.0.1:3306)/e2e", cfg.ResultsDSN)
	assert.Equal(t, 4, cfg.Processors, "flag processors")
	assert.Equal(t, "info", cfg.LogLevel, "yaml log level")
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	_, err := Load(Flags{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Setenv(EnvSeed, "not-a-number")
	configFile := filepath.Join(t.TempDir(), "tse2e.yaml")
	writeFile(t, configFile, "project_path: "+filepath.Dir(configFile)+"\n")

	_, err := Load(Flags{ConfigFile: configFile})
	assert.ErrorContains(t, err, EnvSeed)
}
