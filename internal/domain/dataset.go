package domain

// Feature and target columns are fixed by the training contract; both the
// trainer and the evaluator select exactly these.
var FeatureColumns = []string{"size_sqft", "num_rooms", "age_years"}

const TargetColumn = "price"

// Dataset is the typed view of the housing table after column selection:
// one row per house, feature order follows FeatureColumns.
type Dataset struct {
	Features [][]float64
	Target   []float64
}

func (d *Dataset) Rows() int {
	return len(d.Target)
}
