// Package model holds the house-price regression: a closed-form ordinary
// least-squares fit, prediction, and gob persistence of the fitted model.
package model

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"

	"house-price-pipeline/internal/domain"
)

// ArtifactName is the filename the trainer writes and the resolver searches
// for inside a model directory.
const ArtifactName = "model.gob"

// LinearRegression is an ordinary least-squares fit of the target against
// the feature columns. The zero value is unfitted.
type LinearRegression struct {
	Intercept    float64
	Coefficients []float64
	FeatureNames []string
}

// Fit solves the least-squares problem for the augmented design matrix
// [1 | x] in closed form. Underdetermined systems get the minimum-norm
// solution.
func (m *LinearRegression) Fit(x [][]float64, y []float64, featureNames []string) error {
	rows := len(x)
	if rows == 0 {
		return fmt.Errorf("fit: empty feature matrix")
	}
	if rows != len(y) {
		return fmt.Errorf("fit: %d feature rows against %d targets", rows, len(y))
	}
	cols := len(featureNames)

	design := mat.NewDense(rows, cols+1, nil)
	for i, row := range x {
		if len(row) != cols {
			return fmt.Errorf("fit: row %d has %d features, want %d: %w",
				i, len(row), cols, domain.ErrFeatureMismatch)
		}
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	target := mat.NewVecDense(rows, y)

	var beta mat.VecDense
	if err := beta.SolveVec(design, target); err != nil {
		return fmt.Errorf("solve least squares: %w", err)
	}

	m.Intercept = beta.AtVec(0)
	m.Coefficients = make([]float64, cols)
	for j := 0; j < cols; j++ {
		m.Coefficients[j] = beta.AtVec(j + 1)
	}
	m.FeatureNames = append([]string(nil), featureNames...)

	if !isFinite(m.Intercept) {
		return domain.ErrDegenerateFit
	}
	for _, c := range m.Coefficients {
		if !isFinite(c) {
			return domain.ErrDegenerateFit
		}
	}
	return nil
}

// Predict applies the fitted parameters to each feature row.
func (m *LinearRegression) Predict(x [][]float64) ([]float64, error) {
	preds := make([]float64, len(x))
	for i, row := range x {
		if len(row) != len(m.Coefficients) {
			return nil, fmt.Errorf("predict: row %d has %d features, want %d: %w",
				i, len(row), len(m.Coefficients), domain.ErrFeatureMismatch)
		}
		v := m.Intercept
		for j, f := range row {
			v += m.Coefficients[j] * f
		}
		preds[i] = v
	}
	return preds, nil
}

// Save serializes the fitted model to path.
func (m *LinearRegression) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model file %s: %w", path, err)
	}
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return fmt.Errorf("encode model: %w", err)
	}
	return f.Close()
}

// Load deserializes a model previously written by Save.
func Load(path string) (*LinearRegression, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file %s: %w", path, err)
	}
	defer f.Close()

	var m LinearRegression
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	return &m, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
