// Package model writes and reads the compact self-describing binary model
// container described by crf1d_model.cpp: a 48-byte header, label and
// attribute string dictionaries, label/attribute feature-reference
// chunks, and a flat feature-record chunk. The container has no
// dependency on crf/encode or crf/crfctx; it only ever sees a weight
// vector, a feature.Set, and the two crfdata.Dict dictionaries.
//
// The format is bit-exact to the one crfsuite ships: magic "lCRF", model
// type "FOMC", version 100, little-endian fixed-width fields throughout.
// Nothing in the examined example pack offers an equivalent binary
// container codec, so this package is deliberately written against
// encoding/binary and bytes rather than a third-party serialization
// library — see DESIGN.md for the full justification.
package model
