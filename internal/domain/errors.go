package domain

import "errors"

var (
	ErrNoDataFound     = errors.New("no csv data files found")
	ErrMissingColumn   = errors.New("required column missing from dataset")
	ErrModelNotFound   = errors.New("no loadable model artifact found")
	ErrFeatureMismatch = errors.New("feature count does not match trained model")
	ErrDegenerateFit   = errors.New("least-squares fit produced non-finite parameters")
)
