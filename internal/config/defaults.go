package config

const (
	// DefaultProjectPath is the directory results and .env files are resolved against
	DefaultProjectPath = "."
	// DefaultConfigFile is the YAML config file read when present
	DefaultConfigFile = "tse2e.yaml"
	// DefaultEnvFile is the dotenv file read when present
	DefaultEnvFile = ".env"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultProcessors runs cases one at a time
	DefaultProcessors = 1
	// DefaultBackend is the execution config used when none is configured
	DefaultBackend = "direct"
	// DefaultLogLevel is the default zap log level
	DefaultLogLevel = "warn"
)

// Environment variables read after the .env file is loaded
const (
	EnvSeed       = "TSE2E_SEED"
	EnvProcessors = "TSE2E_PROCESSORS"
	EnvBackend    = "TSE2E_BACKEND"
	EnvOutputDir  = "TSE2E_OUTPUT_DIR"
	EnvResultsDSN = "TSE2E_RESULTS_DSN"
	EnvLogLevel   = "TSE2E_LOG_LEVEL"
)
