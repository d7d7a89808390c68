package evaluator

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-price-pipeline/internal/artifact"
	"house-price-pipeline/internal/domain"
	"house-price-pipeline/internal/model"
	"house-price-pipeline/internal/testutil"
	"house-price-pipeline/internal/trainer"
)

func trainFixtureModel(t *testing.T) (dataDir, modelDir string) {
	t.Helper()
	dataDir = t.TempDir()
	modelDir = t.TempDir()
	testutil.WriteCSV(t, dataDir, "housing.csv", testutil.HousingCSV(testutil.HousingRows))
	require.NoError(t, trainer.New(dataDir, modelDir).Run(context.Background()))
	return dataDir, modelDir
}

func readMetrics(t *testing.T, outputDir string) domain.Metrics {
	t.Helper()
	body, err := os.ReadFile(filepath.Join(outputDir, MetricsFileName))
	require.NoError(t, err)
	var m domain.Metrics
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}

func TestTrainEvaluateRoundTrip(t *testing.T) {
	dataDir, modelDir := trainFixtureModel(t)
	outputDir := filepath.Join(t.TempDir(), "out")

	ev := New(modelDir, dataDir, outputDir)
	require.NoError(t, ev.Run(context.Background()))

	// Evaluating on the exactly-linear training data reproduces it.
	m := readMetrics(t, outputDir)
	assert.InDelta(t, 0, m.MSE, 1e-6)
}

func TestEvaluateFromArchivedModel(t *testing.T) {
	dataDir, trainedDir := trainFixtureModel(t)

	body, err := os.ReadFile(filepath.Join(trainedDir, model.ArtifactName))
	require.NoError(t, err)

	// Stage the model the way the orchestrator hands it to a processing
	// step: as an archived bundle only.
	modelDir := t.TempDir()
	testutil.TarGz(t, filepath.Join(modelDir, "model.tar.gz"), map[string][]byte{
		model.ArtifactName: body,
	})

	outputDir := t.TempDir()
	require.NoError(t, New(modelDir, dataDir, outputDir).Run(context.Background()))

	assert.FileExists(t, filepath.Join(modelDir, model.ArtifactName))
	m := readMetrics(t, outputDir)
	assert.InDelta(t, 0, m.MSE, 1e-6)
}

func TestEvaluateTwoRowScenario(t *testing.T) {
	dataDir := t.TempDir()
	testutil.WriteCSV(t, dataDir, "two.csv",
		testutil.HousingHeader+"\n1000,2,5,100000\n2000,3,10,200000\n")

	modelDir := t.TempDir()
	require.NoError(t, trainer.New(dataDir, modelDir).Run(context.Background()))

	outputDir := t.TempDir()
	require.NoError(t, New(modelDir, dataDir, outputDir).Run(context.Background()))

	m := readMetrics(t, outputDir)
	assert.InDelta(t, 0, m.MSE, 0.01)
}

func TestEvaluateModelNotFound(t *testing.T) {
	dataDir := t.TempDir()
	testutil.WriteCSV(t, dataDir, "housing.csv", testutil.HousingCSV(testutil.HousingRows))
	outputDir := filepath.Join(t.TempDir(), "out")

	ev := New(t.TempDir(), dataDir, outputDir)
	err := ev.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrModelNotFound)

	body, rerr := os.ReadFile(filepath.Join(outputDir, artifact.ModelNotFoundLog))
	require.NoError(t, rerr)
	assert.NotEmpty(t, body)
	assert.NoFileExists(t, filepath.Join(outputDir, MetricsFileName))
}

func TestEvaluateMissingColumnFails(t *testing.T) {
	_, modelDir := trainFixtureModel(t)

	badDir := t.TempDir()
	testutil.WriteCSV(t, badDir, "bad.csv", "size_sqft,num_rooms,age_years\n1000,2,5\n")

	err := New(modelDir, badDir, t.TempDir()).Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
}
