package config

import (
	"time"

	"github.com/spf13/viper"
)

// Environment variable names follow the conventions of the orchestration
// runtime, which injects them into every job container.
const (
	EnvModelDir     = "SM_MODEL_DIR"
	EnvTrainChannel = "SM_CHANNEL_TRAIN"
	EnvTestChannel  = "SM_CHANNEL_TEST"
	EnvOutputDir    = "SM_OUTPUT_DATA_DIR"
)

// Default paths match the layout the orchestration runtime mounts channels
// and artifact directories at; they also serve local runs.
const (
	DefaultModelDir  = "/opt/ml/model"
	DefaultTrainData = "/opt/ml/input/data/train"
	DefaultTestData  = "/opt/ml/input/data/test"
	DefaultOutputDir = "/opt/ml/output"
)

type Config struct {
	Paths        PathConfig
	Logger       LoggerConfig
	Orchestrator OrchestratorConfig
}

type PathConfig struct {
	ModelDir  string
	TrainData string
	TestData  string
	OutputDir string
}

type LoggerConfig struct {
	Level  string
	Format string
}

type OrchestratorConfig struct {
	URL     string
	Timeout time.Duration
}

// FlagOverrides carries the path flags the user explicitly set on the
// command line. Only flags cobra reports as changed belong here, so that the
// environment still applies to untouched ones.
type FlagOverrides struct {
	ModelDir  string
	TrainData string
	TestData  string
	OutputDir string
}

// Load resolves effective paths with the precedence: explicitly set CLI flag,
// then environment variable, then built-in default.
func Load(flags FlagOverrides) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault(EnvModelDir, DefaultModelDir)
	v.SetDefault(EnvTrainChannel, DefaultTrainData)
	v.SetDefault(EnvTestChannel, DefaultTestData)
	v.SetDefault(EnvOutputDir, DefaultOutputDir)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "text")
	v.SetDefault("ORCHESTRATOR_URL", "")
	v.SetDefault("ORCHESTRATOR_TIMEOUT", "30s")

	// Env
	v.AutomaticEnv()

	timeout, err := time.ParseDuration(v.GetString("ORCHESTRATOR_TIMEOUT"))
	if err != nil {
		timeout = 30 * time.Second
	}

	cfg := &Config{
		Paths: PathConfig{
			ModelDir:  pick(flags.ModelDir, v.GetString(EnvModelDir)),
			TrainData: pick(flags.TrainData, v.GetString(EnvTrainChannel)),
			TestData:  pick(flags.TestData, v.GetString(EnvTestChannel)),
			OutputDir: pick(flags.OutputDir, v.GetString(EnvOutputDir)),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Orchestrator: OrchestratorConfig{
			URL:     v.GetString("ORCHESTRATOR_URL"),
			Timeout: timeout,
		},
	}

	return cfg, nil
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
