package crfeval

import "errors"

// ErrLengthMismatch indicates Accumulate was given a reference and
// predicted sequence of different lengths.
var ErrLengthMismatch = errors.New("crfeval: reference and predicted sequences must have equal length")
