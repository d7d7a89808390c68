package domain

// Metrics is the record the evaluator persists for external reporting.
// The shape is part of the evaluation contract: only MSE is included.
type Metrics struct {
	MSE float64 `json:"mse"`
}
