// Package evaluator implements the evaluation job: resolve the trained
// model artifact, score it against the test channel, persist the metrics
// record.
package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"house-price-pipeline/internal/artifact"
	"house-price-pipeline/internal/config"
	"house-price-pipeline/internal/dataset"
	"house-price-pipeline/internal/domain"
	"house-price-pipeline/internal/model"
)

// MetricsFileName is the metrics record consumed by external reporting.
const MetricsFileName = "metrics.json"

type Evaluator struct {
	ModelDir  string
	TestData  string
	OutputDir string
}

func New(modelDir, testData, outputDir string) *Evaluator {
	return &Evaluator{ModelDir: modelDir, TestData: testData, OutputDir: outputDir}
}

// Run executes one evaluation pass. Single shot: any error is terminal for
// the invocation, and the caller owns fatal logging and the error-log file.
// A model-resolution failure additionally leaves model_not_found.log in the
// output directory.
func (e *Evaluator) Run(ctx context.Context) error {
	log.WithFields(log.Fields{
		"model_dir":  e.ModelDir,
		"test_data":  e.TestData,
		"output_dir": e.OutputDir,
	}).Info("starting evaluation job")

	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", e.OutputDir, err)
	}

	e.logCandidateListings()

	modelPath, err := artifact.Resolve(e.ModelDir)
	if err != nil {
		if errors.Is(err, domain.ErrModelNotFound) {
			artifact.WriteFailureLog(e.OutputDir, artifact.ModelNotFoundLog, err)
		}
		return err
	}
	log.WithField("path", modelPath).Info("resolved model artifact")

	reg, err := model.Load(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	table, err := dataset.Load(e.TestData)
	if err != nil {
		return fmt.Errorf("load test data: %w", err)
	}
	log.WithFields(log.Fields{
		"rows":    table.Rows(),
		"columns": table.Columns(),
	}).Info("loaded test data")

	ds, err := table.Select(domain.FeatureColumns, domain.TargetColumn)
	if err != nil {
		return err
	}

	preds, err := reg.Predict(ds.Features)
	if err != nil {
		return err
	}
	ev, err := model.Evaluate(preds, ds.Target)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"mse":  ev.MSE,
		"rmse": ev.RMSE,
		"mae":  ev.MAE,
		"r2":   ev.R2,
	}).Info("test metrics")

	metricsPath := filepath.Join(e.OutputDir, MetricsFileName)
	if err := writeMetrics(metricsPath, domain.Metrics{MSE: ev.MSE}); err != nil {
		return err
	}
	log.WithField("path", metricsPath).Info("saved metrics")

	return nil
}

// logCandidateListings lists the locations the orchestration layer commonly
// stages model inputs into, for diagnosis before resolution.
func (e *Evaluator) logCandidateListings() {
	for _, dir := range []string{e.ModelDir, "/opt/ml/processing/model", config.DefaultModelDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.WithError(err).WithField("dir", dir).Debug("cannot list candidate model dir")
			continue
		}
		names := make([]string, 0, len(entries))
		for _, ent := range entries {
			names = append(names, ent.Name())
		}
		log.WithFields(log.Fields{"dir": dir, "entries": names}).Debug("candidate model dir")
	}
}

func writeMetrics(path string, m domain.Metrics) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write metrics file %s: %w", path, err)
	}
	return nil
}
