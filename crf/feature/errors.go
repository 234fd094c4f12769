package feature

import "errors"

// ErrNoLabels indicates Generate was asked to run over a dataset whose
// label dictionary is empty; a CRF needs at least one label to define any
// feature.
var ErrNoLabels = errors.New("feature: dataset has no labels")
