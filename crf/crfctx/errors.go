package crfctx

import "errors"

// Sentinel errors for crfctx. Callers MUST use errors.Is to branch on
// semantics; messages are not a stable API.
var (
	// ErrInvalidLabelCount indicates NewContext was asked to allocate with
	// a non-positive number of labels.
	ErrInvalidLabelCount = errors.New("crfctx: number of labels must be positive")

	// ErrEmptyInstance indicates Resize was called with T<=0. Per the CRF
	// contract a zero-length instance is a programmer error, not a
	// recoverable condition.
	ErrEmptyInstance = errors.New("crfctx: instance length must be positive")

	// ErrViterbiDisabled indicates Viterbi was called on a Context built
	// without FlagViterbi, so no backward-edge buffer exists.
	ErrViterbiDisabled = errors.New("crfctx: viterbi requires FlagViterbi")

	// ErrMarginalsDisabled indicates a marginals operation was called on a
	// Context built without FlagMarginals.
	ErrMarginalsDisabled = errors.New("crfctx: marginals require FlagMarginals")

	// ErrOutOfRange indicates a bounds-checked accessor (State, Trans, …)
	// received an index outside the current, allocated shape.
	ErrOutOfRange = errors.New("crfctx: index out of range")

	// ErrOutputTooShort indicates Viterbi's out slice is shorter than the
	// current instance length.
	ErrOutputTooShort = errors.New("crfctx: viterbi output slice too short")
)
