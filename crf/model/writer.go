package model

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/katalvlaran/lcrf/crf/feature"
	"github.com/katalvlaran/lcrf/crfdata"
)

// Write serializes weights against feats, labels, and attrs into dst,
// following the writer protocol: reserve the header, append the label and
// attribute dictionaries, the label and attribute reference chunks, then
// the feature chunk, and finally fix up the header with real offsets.
//
// Only features with a nonzero weight are persisted. Attributes with no
// surviving State feature are dropped and renumbered; fids are renumbered
// to the contiguous range [0, J). Labels are never pruned.
func Write(dst io.Writer, weights []float64, feats *feature.Set, labels, attrs *crfdata.Dict) error {
	fmap, order := activeFeatureMap(weights, feats)
	amap, newAttrCount := activeAttrMap(feats, fmap, attrs.Len())

	var body bytes.Buffer

	offLabels := uint32(headerSize)
	writeDict(&body, labels.Names())

	offAttrs := uint32(headerSize) + uint32(body.Len())
	var attrNames []string
	for old := 0; old < attrs.Len(); old++ {
		if amap[old] >= 0 {
			name, err := attrs.Name(old)
			if err != nil {
				return err
			}
			attrNames = append(attrNames, name)
		}
	}
	writeDict(&body, attrNames)

	padTo4(&body)
	offLabelRefs := uint32(headerSize) + uint32(body.Len())
	writeLabelRefChunk(&body, feats, fmap, labels.Len())

	padTo4(&body)
	offAttrRefs := uint32(headerSize) + uint32(body.Len())
	writeAttrRefChunk(&body, feats, fmap, amap, newAttrCount)

	padTo4(&body)
	offFeatures := uint32(headerSize) + uint32(body.Len())
	writeFeatureChunk(&body, feats, weights, amap, order)

	h := header{
		totalSize:    uint32(headerSize) + uint32(body.Len()),
		numFeatures:  uint32(len(order)),
		numLabels:    uint32(labels.Len()),
		numAttrs:     uint32(newAttrCount),
		offFeatures:  offFeatures,
		offLabels:    offLabels,
		offAttrs:     offAttrs,
		offLabelRefs: offLabelRefs,
		offAttrRefs:  offAttrRefs,
	}

	var hdr bytes.Buffer
	writeHeader(&hdr, h)

	if _, err := dst.Write(hdr.Bytes()); err != nil {
		return err
	}
	_, err := dst.Write(body.Bytes())
	return err
}

// activeFeatureMap returns fmap (old fid -> new fid, -1 if pruned) and the
// ordered list of old fids that survive, i.e. those with weights[fid] != 0.
func activeFeatureMap(weights []float64, feats *feature.Set) (fmap []int, order []int) {
	fmap = make([]int, feats.NumFeatures())
	for old := range feats.Features {
		if weights[old] != 0 {
			fmap[old] = len(order)
			order = append(order, old)
		} else {
			fmap[old] = -1
		}
	}
	return fmap, order
}

// activeAttrMap returns amap (old attr id -> new id, -1 if dropped) and
// the count of attributes retained: those referenced by at least one
// surviving State feature.
func activeAttrMap(feats *feature.Set, fmap []int, numAttrs int) (amap []int, count int) {
	amap = make([]int, numAttrs)
	for i := range amap {
		amap[i] = -1
	}
	for old := 0; old < numAttrs; old++ {
		for _, fid := range feats.AttrRefs[old] {
			if fmap[fid] >= 0 {
				amap[old] = count
				count++
				break
			}
		}
	}
	return amap, count
}

func writeDict(buf *bytes.Buffer, names []string) {
	writeU32(buf, uint32(len(names)))
	for _, name := range names {
		writeU32(buf, uint32(len(name)))
		buf.WriteString(name)
	}
}

// writeLabelRefChunk writes the "LFRF" chunk. Per the kept container
// quirk, the offsets table is allocated with L+2 slots (count field =
// L+2) but only the first L slots are ever filled in; the last two stay
// zero. Readers must not assume offsets[L] or offsets[L+1] are valid.
func writeLabelRefChunk(buf *bytes.Buffer, feats *feature.Set, fmap []int, numLabels int) {
	var blocks bytes.Buffer
	offsets := make([]uint32, numLabels+2)
	for i := 0; i < numLabels; i++ {
		offsets[i] = uint32(blocks.Len())
		fids := remapFIDs(feats.LabelRefs[i], fmap)
		writeRefBlock(&blocks, fids)
	}

	chunkStart := buf.Len()
	buf.WriteString(chunkLabelRef)
	sizePos := buf.Len()
	writeU32(buf, 0) // size fixed up below
	writeU32(buf, uint32(numLabels+2))
	for _, off := range offsets {
		writeU32(buf, off)
	}
	buf.Write(blocks.Bytes())

	fixupChunkSize(buf, chunkStart, sizePos)
}

func writeAttrRefChunk(buf *bytes.Buffer, feats *feature.Set, fmap, amap []int, newAttrCount int) {
	var blocks bytes.Buffer
	offsets := make([]uint32, newAttrCount)
	for old := 0; old < len(amap); old++ {
		if amap[old] < 0 {
			continue
		}
		offsets[amap[old]] = uint32(blocks.Len())
		fids := remapFIDs(feats.AttrRefs[old], fmap)
		writeRefBlock(&blocks, fids)
	}

	chunkStart := buf.Len()
	buf.WriteString(chunkAttrRef)
	sizePos := buf.Len()
	writeU32(buf, 0)
	writeU32(buf, uint32(newAttrCount))
	for _, off := range offsets {
		writeU32(buf, off)
	}
	buf.Write(blocks.Bytes())

	fixupChunkSize(buf, chunkStart, sizePos)
}

func writeFeatureChunk(buf *bytes.Buffer, feats *feature.Set, weights []float64, amap, order []int) {
	chunkStart := buf.Len()
	buf.WriteString(chunkFeature)
	sizePos := buf.Len()
	writeU32(buf, 0)
	writeU32(buf, uint32(len(order)))

	for _, oldFid := range order {
		f := feats.Features[oldFid]
		src := f.Src
		if f.Kind == feature.State {
			src = amap[f.Src]
		}
		writeU32(buf, uint32(f.Kind))
		writeU32(buf, uint32(src))
		writeU32(buf, uint32(f.Dst))
		writeF64(buf, weights[oldFid])
	}

	fixupChunkSize(buf, chunkStart, sizePos)
}

func remapFIDs(oldFIDs []int, fmap []int) []int {
	var out []int
	for _, old := range oldFIDs {
		if nf := fmap[old]; nf >= 0 {
			out = append(out, nf)
		}
	}
	return out
}

func writeRefBlock(buf *bytes.Buffer, fids []int) {
	writeU32(buf, uint32(len(fids)))
	for _, fid := range fids {
		writeU32(buf, uint32(fid))
	}
}

func fixupChunkSize(buf *bytes.Buffer, chunkStart, sizePos int) {
	size := uint32(buf.Len() - chunkStart)
	b := buf.Bytes()
	binary.LittleEndian.PutUint32(b[sizePos:sizePos+4], size)
}

func padTo4(buf *bytes.Buffer) {
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeF64(buf *bytes.Buffer, v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	buf.Write(b[:])
}

func writeHeader(buf *bytes.Buffer, h header) {
	buf.WriteString(magic)
	writeU32(buf, h.totalSize)
	buf.WriteString(modelType)
	writeU32(buf, version)
	writeU32(buf, h.numFeatures)
	writeU32(buf, h.numLabels)
	writeU32(buf, h.numAttrs)
	writeU32(buf, h.offFeatures)
	writeU32(buf, h.offLabels)
	writeU32(buf, h.offAttrs)
	writeU32(buf, h.offLabelRefs)
	writeU32(buf, h.offAttrRefs)
}
