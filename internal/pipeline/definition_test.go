package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaults(t *testing.T) {
	p := Build(BuildOptions{DefaultBucket: "demo-bucket"})

	assert.Equal(t, DefaultName, p.Name)

	require.Len(t, p.Parameters, 3)
	params := map[string]string{}
	for _, param := range p.Parameters {
		params[param.Name] = param.DefaultValue
	}
	assert.Equal(t, "s3://demo-bucket/house-prices/housing.csv", params["InputDataUri"])
	assert.Equal(t, DefaultTrainingInstanceType, params["TrainingInstanceType"])
	assert.Equal(t, DefaultProcessingInstanceType, params["ProcessingInstanceType"])

	require.Len(t, p.Steps, 2)
	assert.Equal(t, "TrainModel", p.Steps[0].Name)
	assert.Equal(t, "Training", p.Steps[0].Type)
	assert.Equal(t, "EvaluateModel", p.Steps[1].Name)
	assert.Equal(t, "Processing", p.Steps[1].Type)
	assert.Equal(t, []string{"TrainModel"}, p.Steps[1].DependsOn)
}

func TestBuildOverrides(t *testing.T) {
	p := Build(BuildOptions{
		Name:         "custom",
		InputDataURI: "s3://elsewhere/data.csv",
	})

	assert.Equal(t, "custom", p.Name)
	assert.Equal(t, "s3://elsewhere/data.csv", p.Parameters[0].DefaultValue)
}

func TestBuildEvaluateStepWiring(t *testing.T) {
	p := Build(BuildOptions{DefaultBucket: "demo-bucket"})
	eval := p.Steps[1]

	require.Len(t, eval.ProcessingInputs, 2)
	assert.Equal(t, "model", eval.ProcessingInputs[0].Name)
	assert.Equal(t, "{{Steps.TrainModel.ModelArtifacts.S3ModelArtifacts}}", eval.ProcessingInputs[0].Source)
	assert.Equal(t, "/opt/ml/processing/model", eval.ProcessingInputs[0].Destination)
	assert.Equal(t, "{{Parameters.InputDataUri}}", eval.ProcessingInputs[1].Source)

	require.Len(t, eval.ProcessingOutputs, 1)
	assert.Equal(t, "s3://demo-bucket/house-prices/evaluation", eval.ProcessingOutputs[0].Destination)

	assert.Equal(t, []string{
		"--model-dir", "/opt/ml/processing/model",
		"--test-data", "/opt/ml/processing/test",
		"--output-dir", "/opt/ml/processing/output",
	}, eval.JobArguments)

	require.Len(t, eval.PropertyFiles, 1)
	assert.Equal(t, "EvaluationReport", eval.PropertyFiles[0].Name)
	assert.Equal(t, "metrics.json", eval.PropertyFiles[0].Path)
}

func TestDefinitionRoundTrips(t *testing.T) {
	p := Build(BuildOptions{DefaultBucket: "demo-bucket"})

	def, err := p.Definition()
	require.NoError(t, err)

	var decoded Pipeline
	require.NoError(t, json.Unmarshal(def, &decoded))
	assert.Equal(t, *p, decoded)
}
