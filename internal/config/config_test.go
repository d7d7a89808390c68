package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)

	assert.Equal(t, DefaultModelDir, cfg.Paths.ModelDir)
	assert.Equal(t, DefaultTrainData, cfg.Paths.TrainData)
	assert.Equal(t, DefaultTestData, cfg.Paths.TestData)
	assert.Equal(t, DefaultOutputDir, cfg.Paths.OutputDir)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv(EnvModelDir, "/env/model")
	t.Setenv(EnvTrainChannel, "/env/train")
	t.Setenv(EnvTestChannel, "/env/test")
	t.Setenv(EnvOutputDir, "/env/output")

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)

	assert.Equal(t, "/env/model", cfg.Paths.ModelDir)
	assert.Equal(t, "/env/train", cfg.Paths.TrainData)
	assert.Equal(t, "/env/test", cfg.Paths.TestData)
	assert.Equal(t, "/env/output", cfg.Paths.OutputDir)
}

func TestLoadExplicitFlagsWinOverEnvironment(t *testing.T) {
	t.Setenv(EnvModelDir, "/env/model")
	t.Setenv(EnvTrainChannel, "/env/train")

	cfg, err := Load(FlagOverrides{ModelDir: "/flag/model"})
	require.NoError(t, err)

	assert.Equal(t, "/flag/model", cfg.Paths.ModelDir)
	// Untouched flags still fall back to the environment.
	assert.Equal(t, "/env/train", cfg.Paths.TrainData)
}

func TestLoadOrchestratorTimeout(t *testing.T) {
	t.Setenv("ORCHESTRATOR_TIMEOUT", "5s")
	t.Setenv("ORCHESTRATOR_URL", "http://orchestrator:8080")

	cfg, err := Load(FlagOverrides{})
	require.NoError(t, err)

	assert.Equal(t, "http://orchestrator:8080", cfg.Orchestrator.URL)
	assert.Equal(t, "5s", cfg.Orchestrator.Timeout.String())
}
