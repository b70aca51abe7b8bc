package config

import (
	"fmt"
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string `yaml:"project_path"`

	// Output settings
	OutputJSONFile string `yaml:"output_file"`
	OutputJSONDir  string `yaml:"output_dir"`
	ResultsDSN     string `yaml:"results_dsn"`

	// Execution settings
	Seed       int64  `yaml:"seed"`
	Processors int    `yaml:"processors"`
	Backend    string `yaml:"backend"`

	// Logging settings
	LogLevel string `yaml:"log_level"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile string
	Processors int
	Seed       int64
	SeedSet    bool
	NameFilter string
	FailFast   bool
	NoSave     bool
	Verbose    bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:    DefaultProjectPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		Backend:        DefaultBackend,
		LogLevel:       DefaultLogLevel,
	}
}

// ApplyFlags stores flags and applies the ones that override settings
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.SeedSet {
		c.Seed = flags.Seed
	}
	if flags.Verbose {
		c.LogLevel = "debug"
	}
}

// Validate checks settings that cannot be corrected silently
func (c *Config) Validate() error {
	if c.Processors < 1 {
		return fmt.Errorf("processors must be at least 1, got %d", c.Processors)
	}
	if c.Backend != DefaultBackend {
		return fmt.Errorf("unknown backend %q (available: %s)", c.Backend, DefaultBackend)
	}
	if c.OutputJSONFile == "" {
		return fmt.Errorf("output file name must not be empty")
	}
	return nil
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
