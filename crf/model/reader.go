package model

import (
	"encoding/binary"
	"math"

	"github.com/katalvlaran/lcrf/crf/feature"
	"github.com/katalvlaran/lcrf/crfdata"
)

// Reader is a read-only, in-memory view over a serialized model. It holds
// the raw bytes and decodes the header, dictionaries, and reference lists
// eagerly; feature records are decoded on demand from the raw buffer via
// the off_features + 12 + 20*fid formula, avoiding an upfront O(J) decode
// pass when only a handful of features are ever queried.
type Reader struct {
	buf    []byte
	hdr    header
	Labels *crfdata.Dict
	Attrs  *crfdata.Dict

	labelRefs [][]int
	attrRefs  [][]int
}

// Open decodes buf into a Reader. buf is retained, not copied; callers
// must not mutate it afterward.
func Open(buf []byte) (*Reader, error) {
	if len(buf) < headerSize {
		return nil, ErrTruncated
	}
	if string(buf[0:4]) != magic {
		return nil, ErrBadMagic
	}
	if string(buf[8:12]) != modelType {
		return nil, ErrBadModelType
	}
	if binary.LittleEndian.Uint32(buf[12:16]) != version {
		return nil, ErrVersionMismatch
	}

	h := header{
		totalSize:    binary.LittleEndian.Uint32(buf[4:8]),
		numFeatures:  binary.LittleEndian.Uint32(buf[16:20]),
		numLabels:    binary.LittleEndian.Uint32(buf[20:24]),
		numAttrs:     binary.LittleEndian.Uint32(buf[24:28]),
		offFeatures:  binary.LittleEndian.Uint32(buf[28:32]),
		offLabels:    binary.LittleEndian.Uint32(buf[32:36]),
		offAttrs:     binary.LittleEndian.Uint32(buf[36:40]),
		offLabelRefs: binary.LittleEndian.Uint32(buf[40:44]),
		offAttrRefs:  binary.LittleEndian.Uint32(buf[44:48]),
	}
	if uint64(len(buf)) < uint64(h.totalSize) {
		return nil, ErrTruncated
	}

	r := &Reader{buf: buf, hdr: h}

	var err error
	r.Labels, err = readDict(buf, int(h.offLabels), int(h.numLabels))
	if err != nil {
		return nil, err
	}
	r.Attrs, err = readDict(buf, int(h.offAttrs), int(h.numAttrs))
	if err != nil {
		return nil, err
	}

	r.labelRefs, err = readRefChunk(buf, int(h.offLabelRefs), chunkLabelRef, int(h.numLabels))
	if err != nil {
		return nil, err
	}
	r.attrRefs, err = readRefChunk(buf, int(h.offAttrRefs), chunkAttrRef, int(h.numAttrs))
	if err != nil {
		return nil, err
	}

	return r, nil
}

// NumFeatures returns J, the number of persisted (nonzero-weight) features.
func (r *Reader) NumFeatures() int { return int(r.hdr.numFeatures) }

// LabelRefs returns the fids of every Transition feature with Src == i.
func (r *Reader) LabelRefs(i int) []int { return r.labelRefs[i] }

// AttrRefs returns the fids of every State feature with Src == a (a is a
// post-pruning attribute id, as returned by Attrs).
func (r *Reader) AttrRefs(a int) []int { return r.attrRefs[a] }

// Feature decodes and returns the fid-th feature record. Freq here holds
// the persisted trained weight, not the generation-time observation
// count Write received it as.
func (r *Reader) Feature(fid int) (feature.Feature, error) {
	if fid < 0 || fid >= int(r.hdr.numFeatures) {
		return feature.Feature{}, ErrFeatureIDOutOfRange
	}
	base := int(r.hdr.offFeatures) + chunkHeader + featureSize*fid
	if base+featureSize > len(r.buf) {
		return feature.Feature{}, ErrTruncated
	}
	kind := binary.LittleEndian.Uint32(r.buf[base : base+4])
	src := binary.LittleEndian.Uint32(r.buf[base+4 : base+8])
	dst := binary.LittleEndian.Uint32(r.buf[base+8 : base+12])
	bits := binary.LittleEndian.Uint64(r.buf[base+12 : base+20])
	return feature.Feature{
		Kind: feature.Kind(kind),
		Src:  int(src),
		Dst:  int(dst),
		Freq: math.Float64frombits(bits),
	}, nil
}

func readDict(buf []byte, off, count int) (*crfdata.Dict, error) {
	if off+4 > len(buf) {
		return nil, ErrTruncated
	}
	n := int(binary.LittleEndian.Uint32(buf[off : off+4]))
	if n != count {
		return nil, ErrTruncated
	}
	d := crfdata.NewDict()
	pos := off + 4
	for i := 0; i < n; i++ {
		if pos+4 > len(buf) {
			return nil, ErrTruncated
		}
		strlen := int(binary.LittleEndian.Uint32(buf[pos : pos+4]))
		pos += 4
		if pos+strlen > len(buf) {
			return nil, ErrTruncated
		}
		d.Put(string(buf[pos : pos+strlen]))
		pos += strlen
	}
	return d, nil
}

func readRefChunk(buf []byte, off int, wantTag string, count int) ([][]int, error) {
	if off+chunkHeader > len(buf) {
		return nil, ErrTruncated
	}
	if string(buf[off:off+4]) != wantTag {
		return nil, ErrBadChunkTag
	}
	size := int(binary.LittleEndian.Uint32(buf[off+4 : off+8]))
	slotCount := int(binary.LittleEndian.Uint32(buf[off+8 : off+12]))
	if off+size > len(buf) {
		return nil, ErrTruncated
	}

	offsetsPos := off + chunkHeader
	blocksStart := offsetsPos + 4*slotCount

	out := make([][]int, count)
	for i := 0; i < count; i++ {
		offPos := offsetsPos + 4*i
		if offPos+4 > len(buf) {
			return nil, ErrTruncated
		}
		blockOff := blocksStart + int(binary.LittleEndian.Uint32(buf[offPos:offPos+4]))
		fids, err := readRefBlock(buf, blockOff)
		if err != nil {
			return nil, err
		}
		out[i] = fids
	}
	return out, nil
}

func readRefBlock(buf []byte, pos int) ([]int, error) {
	if pos+4 > len(buf) {
		return nil, ErrTruncated
	}
	n := int(binary.LittleEndian.Uint32(buf[pos : pos+4]))
	pos += 4
	if pos+4*n > len(buf) {
		return nil, ErrTruncated
	}
	fids := make([]int, n)
	for i := 0; i < n; i++ {
		fids[i] = int(binary.LittleEndian.Uint32(buf[pos+4*i : pos+4*i+4]))
	}
	return fids, nil
}
