package crfdata

import "errors"

var (
	// ErrEmptyItem indicates an Instance was built from a zero-length item
	// sequence; every instance must have T>=1 positions.
	ErrEmptyItem = errors.New("crfdata: instance must contain at least one item")

	// ErrLengthMismatch indicates an Instance's label sequence length
	// disagrees with its item sequence length.
	ErrLengthMismatch = errors.New("crfdata: label sequence length must equal item sequence length")

	// ErrNonPositiveWeight indicates an Instance was given a negative
	// weight. A zero weight is accepted and read as the default 1.0 (see
	// Instance.EffectiveWeight).
	ErrNonPositiveWeight = errors.New("crfdata: instance weight must be positive")

	// ErrUnknownID indicates a dictionary lookup by id found no entry.
	ErrUnknownID = errors.New("crfdata: unknown id")
)
