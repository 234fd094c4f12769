package model

import "errors"

var (
	// ErrBadMagic indicates a file's first four bytes are not "lCRF".
	ErrBadMagic = errors.New("model: bad magic, not a lCRF model file")

	// ErrBadModelType indicates the model-type field is not "FOMC" (the
	// only model kind this package writes or reads).
	ErrBadModelType = errors.New("model: unsupported model type")

	// ErrVersionMismatch indicates the file's version field does not
	// match the version this package writes.
	ErrVersionMismatch = errors.New("model: unsupported model version")

	// ErrTruncated indicates the buffer is shorter than a field it claims
	// to contain; partial reads never produce a partial model.
	ErrTruncated = errors.New("model: truncated model file")

	// ErrBadChunkTag indicates a chunk's tag field did not match what the
	// reader expected at that file position.
	ErrBadChunkTag = errors.New("model: unexpected chunk tag")

	// ErrFeatureIDOutOfRange indicates Reader.Feature was asked for a fid
	// outside [0, NumFeatures).
	ErrFeatureIDOutOfRange = errors.New("model: feature id out of range")
)
