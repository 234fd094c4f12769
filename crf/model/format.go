package model

const (
	magic     = "lCRF"
	modelType = "FOMC"
	version   = 100

	headerSize  = 48
	chunkHeader = 12 // tag(4) + size(4) + count(4)
	featureSize = 20 // kind(4) + src(4) + dst(4) + weight(8)

	chunkLabelRef = "LFRF"
	chunkAttrRef  = "AFRF"
	chunkFeature  = "FEAT"
)

// header mirrors the 48-byte little-endian layout documented in
// crf1d_model.cpp: magic, total size, model type, version, counts, and
// five chunk offsets.
type header struct {
	totalSize     uint32
	numFeatures   uint32
	numLabels     uint32
	numAttrs      uint32
	offFeatures   uint32
	offLabels     uint32
	offAttrs      uint32
	offLabelRefs  uint32
	offAttrRefs   uint32
}
