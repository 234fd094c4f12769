// Package feature defines the Feature record, the generation Options, and
// the reference-list types built by Generate.
package feature

import lcrf "github.com/katalvlaran/lcrf"

// Kind distinguishes the two feature shapes a linear-chain CRF uses.
type Kind uint8

const (
	// State features fire on (attribute, label) pairs: Src is an
	// attribute id, Dst is a label id.
	State Kind = iota
	// Transition features fire on (prevLabel, curLabel) pairs: both Src
	// and Dst are label ids.
	Transition
)

// Feature is one entry of the trained feature set, identified by its
// position (fid) in a Set's ordered Features slice.
type Feature struct {
	Kind Kind
	Src  int
	Dst  int
	Freq float64
}

// Options configures Generate.
//
//	ConnectAllAttrs      - also emit zero-freq State features (a, l) for
//	                       every label l whenever attribute a is observed,
//	                       so every attribute can receive weight toward
//	                       every label even without direct co-occurrence.
//	ConnectAllEdges      - also emit zero-freq Transition features for
//	                       every (i, j) in L x L.
//	MinFreq              - features with Freq < MinFreq are dropped,
//	                       except the zero-freq features injected by the
//	                       two flags above, which are always retained.
//	Logger               - progress callback; nil defaults to a klog sink.
//	                       Generate has no recoverable failure path to
//	                       cancel into, so a non-zero return is logged but
//	                       otherwise ignored here (unlike a trainer's
//	                       epoch loop, which does honor it).
type Options struct {
	ConnectAllAttrs bool
	ConnectAllEdges bool
	MinFreq         float64
	Logger          lcrf.LogFunc
}

// DefaultOptions returns the crfsuite-compatible defaults: no forced
// connectivity, no pruning.
func DefaultOptions() Options {
	return Options{MinFreq: 0}
}

// Set is the pruned, fid-ordered feature collection produced by Generate,
// plus the reference lists used to look features up by source id.
type Set struct {
	Features []Feature

	// AttrRefs[a] holds the fids of every State feature with Src == a.
	AttrRefs [][]int
	// LabelRefs[i] holds the fids of every Transition feature with Src == i.
	LabelRefs [][]int
}

// NumFeatures returns K, the size of the trained weight vector.
func (s *Set) NumFeatures() int { return len(s.Features) }
