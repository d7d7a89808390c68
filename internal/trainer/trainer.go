// Package trainer implements the training job: load the train channel, fit
// the regression, persist the model artifact.
package trainer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"house-price-pipeline/internal/dataset"
	"house-price-pipeline/internal/domain"
	"house-price-pipeline/internal/model"
)

type Trainer struct {
	TrainData string
	ModelDir  string
}

func New(trainData, modelDir string) *Trainer {
	return &Trainer{TrainData: trainData, ModelDir: modelDir}
}

// Run executes one training pass. Single shot: any error is terminal for
// the invocation, and the caller owns fatal logging and the error-log file.
func (t *Trainer) Run(ctx context.Context) error {
	log.WithFields(log.Fields{
		"train_data": t.TrainData,
		"model_dir":  t.ModelDir,
	}).Info("starting training job")

	table, err := dataset.Load(t.TrainData)
	if err != nil {
		return fmt.Errorf("load training data: %w", err)
	}
	log.WithFields(log.Fields{
		"rows":    table.Rows(),
		"columns": table.Columns(),
	}).Info("loaded training data")

	ds, err := table.Select(domain.FeatureColumns, domain.TargetColumn)
	if err != nil {
		return err
	}

	var reg model.LinearRegression
	if err := reg.Fit(ds.Features, ds.Target, domain.FeatureColumns); err != nil {
		return fmt.Errorf("fit linear model: %w", err)
	}

	preds, err := reg.Predict(ds.Features)
	if err != nil {
		return err
	}
	ev, err := model.Evaluate(preds, ds.Target)
	if err != nil {
		return err
	}
	if err := ev.Check(); err != nil {
		return err
	}
	// Training metrics are informational only; nothing persists them.
	log.WithFields(log.Fields{
		"mse":  ev.MSE,
		"rmse": ev.RMSE,
		"mae":  ev.MAE,
	}).Info("training metrics")

	if err := os.MkdirAll(t.ModelDir, 0o755); err != nil {
		return fmt.Errorf("create model dir %s: %w", t.ModelDir, err)
	}
	path := filepath.Join(t.ModelDir, model.ArtifactName)
	if err := reg.Save(path); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	log.WithField("path", path).Info("saved model")

	return nil
}
