package model

import (
	"fmt"
	"math"
)

// Eval holds the regression quality metrics of one prediction run.
type Eval struct {
	// MAE mean absolute error.
	MAE float64

	// MSE mean squared error.
	MSE float64

	// RMSE root mean squared error.
	RMSE float64

	// R2 coefficient of determination. NaN when the target is constant.
	R2 float64
}

// Evaluate computes MAE, MSE, RMSE and R² between predictions and the true
// targets.
func Evaluate(preds, truth []float64) (*Eval, error) {
	if len(preds) == 0 || len(preds) != len(truth) {
		return nil, fmt.Errorf("evaluate: %d predictions against %d targets", len(preds), len(truth))
	}

	var maeSum, mseSum, mean float64
	for i := range preds {
		diff := truth[i] - preds[i]
		maeSum += math.Abs(diff)
		mseSum += diff * diff
		mean += truth[i]
	}
	n := float64(len(preds))
	mean /= n

	var tss float64
	for _, t := range truth {
		tss += (t - mean) * (t - mean)
	}

	return &Eval{
		MAE:  maeSum / n,
		MSE:  mseSum / n,
		RMSE: math.Sqrt(mseSum / n),
		R2:   1 - mseSum/tss,
	}, nil
}

// Check reports whether the error metrics are usable. R2 is excluded: it is
// legitimately NaN for a constant target.
func (e *Eval) Check() error {
	if math.IsNaN(e.MAE) || math.IsNaN(e.MSE) || math.IsNaN(e.RMSE) {
		return fmt.Errorf("evaluation produced NaN metrics")
	}
	return nil
}
