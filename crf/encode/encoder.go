package encode

import (
	"k8s.io/klog/v2"

	lcrf "github.com/katalvlaran/lcrf"
	"github.com/katalvlaran/lcrf/crf/crfctx"
	"github.com/katalvlaran/lcrf/crf/feature"
	"github.com/katalvlaran/lcrf/crfdata"
)

// Encoder mediates between an optimizer loop and one reusable crfctx.Context.
// It is not safe for concurrent use: exactly like the Context it wraps, one
// Encoder serves one single-threaded training or tagging loop.
type Encoder struct {
	feats *feature.Set
	ctx   *crfctx.Context

	numLabels int
	numAttrs  int

	level Level
	w     []float64 // borrowed from the optimizer; not owned
	scale float64

	inst *crfdata.Instance
}

// New returns an Encoder with no feature set and no context; none of its
// methods can be used on it. SetData and FromModel are the constructors
// that return a usable Encoder.
func New() *Encoder {
	return &Encoder{}
}

// SetData builds the feature model from ds and allocates an inference
// context sized to ds's longest instance. Resets the level to NONE.
func SetData(ds *crfdata.Dataset, opts feature.Options) (*Encoder, error) {
	feats, err := feature.Generate(ds, opts)
	if err != nil {
		return nil, err
	}

	ctx, err := crfctx.NewContext(crfctx.FlagViterbi|crfctx.FlagMarginals, ds.NumLabels(), ds.MaxLength())
	if err != nil {
		return nil, err
	}

	lcrf.OrDefault(opts.Logger, klog.Level(1))("encode: set_data built %d features over %d instances", feats.NumFeatures(), ds.Len())

	return &Encoder{
		feats:     feats,
		ctx:       ctx,
		numLabels: ds.NumLabels(),
		numAttrs:  ds.NumAttributes(),
		level:     LevelNone,
		scale:     1,
	}, nil
}

// Level returns the encoder's current cache level.
func (e *Encoder) Level() Level { return e.level }

// NumFeatures returns K, the size of the weight vector SetWeights expects.
func (e *Encoder) NumFeatures() int { return e.feats.NumFeatures() }

// Features returns the generated feature set, read-only.
func (e *Encoder) Features() *feature.Set { return e.feats }

// SetWeights stores w and scale (borrowed, not copied), resets trans, and
// recomputes trans[i][j] = w[fid] * scale for every Transition feature.
// Advances the level to WEIGHT and drops any INSTANCE-or-later caches,
// since state depends on the old weights.
func (e *Encoder) SetWeights(w []float64, scale float64) error {
	if len(w) != e.feats.NumFeatures() {
		return ErrWeightVectorSize
	}
	e.w = w
	e.scale = scale
	e.ctx.Reset(crfctx.ResetTrans)

	for i := 0; i < e.numLabels; i++ {
		row := e.ctx.TransRow(i)
		for _, fid := range e.feats.LabelRefs[i] {
			f := e.feats.Features[fid]
			row[f.Dst] += w[fid] * scale
		}
	}

	e.level = LevelWeight
	e.inst = nil
	return nil
}

// SetInstance resizes the context to inst's length, resets state, and
// fills state[t][dst] += w[fid]*v*scale for every (attribute, value) pair
// observed at t whose attribute has a State feature. Requires level >=
// WEIGHT; advances to INSTANCE.
func (e *Encoder) SetInstance(inst *crfdata.Instance) error {
	if e.level < LevelWeight {
		return ErrNeedsWeight
	}
	if err := e.ctx.Resize(inst.Len()); err != nil {
		return err
	}
	e.ctx.Reset(crfctx.ResetState)

	for t, item := range inst.Items {
		row := e.ctx.StateRow(t)
		for _, av := range item {
			if av.Attr >= len(e.feats.AttrRefs) {
				continue
			}
			for _, fid := range e.feats.AttrRefs[av.Attr] {
				f := e.feats.Features[fid]
				row[f.Dst] += e.w[fid] * av.Value * e.scale
			}
		}
	}

	e.level = LevelInstance
	e.inst = inst
	return nil
}

// Score returns the unnormalized log-score of path against the current
// instance. Requires level >= INSTANCE.
func (e *Encoder) Score(path []int) (float64, error) {
	if e.level < LevelInstance {
		return 0, ErrNeedsInstance
	}
	return e.ctx.Score(path), nil
}

// Viterbi writes the best label path for the current instance into out
// and returns its unnormalized log-score. Requires level >= INSTANCE.
func (e *Encoder) Viterbi(out []int) (float64, error) {
	if e.level < LevelInstance {
		return 0, ErrNeedsInstance
	}
	return e.ctx.Viterbi(out)
}

// PartitionFactor advances the level to ALPHABETA, running exp_state,
// exp_transition, alpha_score, and beta_score if not already cached, and
// returns log_norm. Requires level >= INSTANCE.
func (e *Encoder) PartitionFactor() (float64, error) {
	if e.level < LevelInstance {
		return 0, ErrNeedsInstance
	}
	if e.level < LevelAlphaBeta {
		if err := e.ctx.ExpState(); err != nil {
			return 0, err
		}
		if err := e.ctx.ExpTransition(); err != nil {
			return 0, err
		}
		if err := e.ctx.AlphaScore(); err != nil {
			return 0, err
		}
		if err := e.ctx.BetaScore(); err != nil {
			return 0, err
		}
		e.level = LevelAlphaBeta
	}
	return e.ctx.LogNorm(), nil
}
