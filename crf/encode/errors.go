package encode

import "errors"

var (
	// ErrLevelRegression indicates an operation tried to move the
	// encoder's cache level backward; the level only ever advances
	// forward within one (SetWeights, SetInstance) pair.
	ErrLevelRegression = errors.New("encode: level cache cannot regress")

	// ErrNeedsWeight indicates an operation that requires trans to be
	// populated (level >= WEIGHT) was called before SetWeights.
	ErrNeedsWeight = errors.New("encode: requires SetWeights first")

	// ErrNeedsInstance indicates an operation that requires state to be
	// populated (level >= INSTANCE) was called before SetInstance.
	ErrNeedsInstance = errors.New("encode: requires SetInstance first")

	// ErrWeightVectorSize indicates a weight vector's length does not
	// equal the feature count established by SetData.
	ErrWeightVectorSize = errors.New("encode: weight vector length must equal feature count")

	// ErrGradientVectorSize indicates a gradient vector's length does not
	// equal the feature count established by SetData.
	ErrGradientVectorSize = errors.New("encode: gradient vector length must equal feature count")

	// ErrUnlabeledInstance indicates an operation that needs a gold label
	// sequence (ObjectiveAndGradients, FeaturesOnPath) was given an
	// instance with no labels.
	ErrUnlabeledInstance = errors.New("encode: instance has no gold labels")
)
