// Package pipeline builds the two-step train→evaluate pipeline definition
// and submits it to the external orchestration service. Scheduling, retries
// and parameter substitution are owned by that service; this package only
// declares and submits.
package pipeline

import (
	"encoding/json"
	"fmt"
)

const (
	DefaultName                   = "house-price-demo-pipeline"
	DefaultTrainingInstanceType   = "ml.m5.xlarge"
	DefaultProcessingInstanceType = "ml.t3.medium"

	schemaVersion = "2020-12-01"
)

// Parameter is a runtime-overridable pipeline input.
type Parameter struct {
	Name         string `json:"Name"`
	Type         string `json:"Type"`
	DefaultValue string `json:"DefaultValue"`
}

// Channel is a named input of a training step.
type Channel struct {
	Name        string `json:"Name"`
	DataURI     string `json:"DataUri"`
	ContentType string `json:"ContentType,omitempty"`
}

// ProcessingIO maps an orchestrator-staged location to a container path.
type ProcessingIO struct {
	Name        string `json:"Name"`
	Source      string `json:"Source"`
	Destination string `json:"Destination"`
}

// PropertyFile exposes a file from a processing output to downstream
// condition/reporting logic.
type PropertyFile struct {
	Name       string `json:"Name"`
	OutputName string `json:"OutputName"`
	Path       string `json:"Path"`
}

type Step struct {
	Name              string         `json:"Name"`
	Type              string         `json:"Type"`
	InstanceType      string         `json:"InstanceType"`
	InstanceCount     int            `json:"InstanceCount"`
	BaseJobName       string         `json:"BaseJobName"`
	EntryPoint        []string       `json:"EntryPoint"`
	Inputs            []Channel      `json:"Inputs,omitempty"`
	ProcessingInputs  []ProcessingIO `json:"ProcessingInputs,omitempty"`
	ProcessingOutputs []ProcessingIO `json:"ProcessingOutputs,omitempty"`
	JobArguments      []string       `json:"JobArguments,omitempty"`
	PropertyFiles     []PropertyFile `json:"PropertyFiles,omitempty"`
	DependsOn         []string       `json:"DependsOn,omitempty"`
}

type Pipeline struct {
	Name       string      `json:"Name"`
	Version    string      `json:"Version"`
	Parameters []Parameter `json:"Parameters"`
	Steps      []Step      `json:"Steps"`
}

type BuildOptions struct {
	Name          string
	DefaultBucket string
	InputDataURI  string
}

// Build declares the two-step pipeline: TrainModel fits the regression and
// EvaluateModel scores the resulting artifact. Reference expressions of the
// form {{...}} are substituted by the orchestration service at run time.
func Build(opts BuildOptions) *Pipeline {
	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	inputDataURI := opts.InputDataURI
	if inputDataURI == "" {
		inputDataURI = fmt.Sprintf("s3://%s/house-prices/housing.csv", opts.DefaultBucket)
	}
	evaluationPrefix := fmt.Sprintf("s3://%s/house-prices/evaluation", opts.DefaultBucket)

	trainStep := Step{
		Name:          "TrainModel",
		Type:          "Training",
		InstanceType:  ref("Parameters.TrainingInstanceType"),
		InstanceCount: 1,
		BaseJobName:   "house-price-train",
		EntryPoint:    []string{"housepipe", "train"},
		Inputs: []Channel{
			{
				Name:        "train",
				DataURI:     ref("Parameters.InputDataUri"),
				ContentType: "text/csv",
			},
		},
	}

	evalStep := Step{
		Name:          "EvaluateModel",
		Type:          "Processing",
		InstanceType:  ref("Parameters.ProcessingInstanceType"),
		InstanceCount: 1,
		BaseJobName:   "house-price-eval",
		EntryPoint:    []string{"housepipe", "evaluate"},
		ProcessingInputs: []ProcessingIO{
			{
				Name:        "model",
				Source:      ref("Steps.TrainModel.ModelArtifacts.S3ModelArtifacts"),
				Destination: "/opt/ml/processing/model",
			},
			{
				Name:        "test",
				Source:      ref("Parameters.InputDataUri"),
				Destination: "/opt/ml/processing/test",
			},
		},
		ProcessingOutputs: []ProcessingIO{
			{
				Name:        "evaluation",
				Source:      "/opt/ml/processing/output",
				Destination: evaluationPrefix,
			},
		},
		JobArguments: []string{
			"--model-dir", "/opt/ml/processing/model",
			"--test-data", "/opt/ml/processing/test",
			"--output-dir", "/opt/ml/processing/output",
		},
		PropertyFiles: []PropertyFile{
			{Name: "EvaluationReport", OutputName: "evaluation", Path: "metrics.json"},
		},
		DependsOn: []string{"TrainModel"},
	}

	return &Pipeline{
		Name:    name,
		Version: schemaVersion,
		Parameters: []Parameter{
			{Name: "InputDataUri", Type: "String", DefaultValue: inputDataURI},
			{Name: "TrainingInstanceType", Type: "String", DefaultValue: DefaultTrainingInstanceType},
			{Name: "ProcessingInstanceType", Type: "String", DefaultValue: DefaultProcessingInstanceType},
		},
		Steps: []Step{trainStep, evalStep},
	}
}

// Definition renders the pipeline as the JSON document the orchestration
// service consumes.
func (p *Pipeline) Definition() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

func ref(path string) string {
	return "{{" + path + "}}"
}
