package crftrain

import "errors"

var (
	// ErrEmptyDataset indicates a trainer was asked to run over a
	// dataset with zero instances.
	ErrEmptyDataset = errors.New("crftrain: dataset has no instances")

	// ErrInvalidOptions indicates a trainer's Options failed validation.
	ErrInvalidOptions = errors.New("crftrain: invalid options")
)
