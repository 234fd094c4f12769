package encode

import (
	"github.com/katalvlaran/lcrf/crf/crfctx"
	"github.com/katalvlaran/lcrf/crf/feature"
	"github.com/katalvlaran/lcrf/crf/model"
)

// FromModel rebuilds the feature set held by a serialized model so it can
// be used for tagging: unlike SetData, no Dataset/Generate pass runs,
// since the model file already carries the pruned, fid-ordered Feature
// records and reference lists crf/model.Writer produced.
func FromModel(r *model.Reader) (*Encoder, error) {
	feats := &feature.Set{
		Features:  make([]feature.Feature, r.NumFeatures()),
		AttrRefs:  make([][]int, r.Attrs.Len()),
		LabelRefs: make([][]int, r.Labels.Len()),
	}
	for fid := 0; fid < r.NumFeatures(); fid++ {
		f, err := r.Feature(fid)
		if err != nil {
			return nil, err
		}
		feats.Features[fid] = f
	}
	for a := 0; a < r.Attrs.Len(); a++ {
		feats.AttrRefs[a] = r.AttrRefs(a)
	}
	for i := 0; i < r.Labels.Len(); i++ {
		feats.LabelRefs[i] = r.LabelRefs(i)
	}

	numLabels := r.Labels.Len()
	ctx, err := crfctx.NewContext(crfctx.FlagViterbi|crfctx.FlagMarginals, numLabels, 0)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		feats:     feats,
		ctx:       ctx,
		numLabels: numLabels,
		numAttrs:  r.Attrs.Len(),
		level:     LevelNone,
		scale:     1,
	}, nil
}
