package feature

import (
	"k8s.io/klog/v2"

	lcrf "github.com/katalvlaran/lcrf"
	"github.com/katalvlaran/lcrf/crfdata"
)

// featureKey dedups observed (kind, src, dst) triples via Go's native map
// hashing over a struct key — crf1d_feature.cpp hand-rolls a
// type+src+dst integer hash for the same purpose; a struct key sidesteps
// needing an equivalent mixing function entirely.
type featureKey struct {
	kind Kind
	src  int
	dst  int
}

// Generate builds a Set from ds, following crf1d_feature.cpp's generation
// pass: for every instance, a Transition feature between each consecutive
// gold label pair and a State feature between each observed attribute and
// the current label, both weighted by the instance weight (and, for
// State, the attribute's value). Reports progress through opts.Logger
// every 100 instances and once more on completion; opts.Logger defaults
// to a klog sink when nil.
func Generate(ds *crfdata.Dataset, opts Options) (*Set, error) {
	L := ds.NumLabels()
	A := ds.NumAttributes()
	if L == 0 {
		return nil, ErrNoLabels
	}

	logger := lcrf.OrDefault(opts.Logger, klog.Level(2))

	counts := make(map[featureKey]float64)
	order := make([]featureKey, 0)

	bump := func(k featureKey, delta float64) {
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k] += delta
	}

	for idx, inst := range ds.Instances {
		w := inst.EffectiveWeight()
		prev := L // sentinel begin-of-sequence value

		for t, item := range inst.Items {
			cur := inst.Labels[t]

			if prev != L {
				bump(featureKey{Transition, prev, cur}, w)
			}
			for _, av := range item {
				bump(featureKey{State, av.Attr, cur}, w*av.Value)

				if opts.ConnectAllAttrs {
					for l := 0; l < L; l++ {
						bump(featureKey{State, av.Attr, l}, 0)
					}
				}
			}
			prev = cur
		}

		if idx > 0 && idx%100 == 0 {
			logger("feature: generated from %d/%d instances", idx, ds.Len())
		}
	}

	if opts.ConnectAllEdges {
		for i := 0; i < L; i++ {
			for j := 0; j < L; j++ {
				bump(featureKey{Transition, i, j}, 0)
			}
		}
	}

	set := &Set{
		AttrRefs:  make([][]int, A),
		LabelRefs: make([][]int, L),
	}
	for _, k := range order {
		freq := counts[k]
		// The freq != 0 clause exists to always keep the zero-freq features
		// ConnectAllAttrs/ConnectAllEdges inject above via bump(k, 0). As a
		// side effect it also spares a genuinely observed feature whose
		// summed frequency happens to land on exactly 0 (a zero-valued
		// attribute observation, or attribute values of opposite sign that
		// cancel out); such a
		// feature is rare and harmless to keep, but is not the exception
		// this clause was written for.
		if freq < opts.MinFreq && freq != 0 {
			continue
		}
		fid := len(set.Features)
		set.Features = append(set.Features, Feature{Kind: k.kind, Src: k.src, Dst: k.dst, Freq: freq})

		switch k.kind {
		case State:
			set.AttrRefs[k.src] = append(set.AttrRefs[k.src], fid)
		case Transition:
			set.LabelRefs[k.src] = append(set.LabelRefs[k.src], fid)
		}
	}

	logger("feature: generated %d features from %d instances (L=%d, A=%d)", len(set.Features), ds.Len(), L, A)
	return set, nil
}
