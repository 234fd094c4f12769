package encode

import "github.com/katalvlaran/lcrf/crfdata"

// FeaturesOnPath enumerates the (fid, value) pairs that fire when path is
// assigned to inst, in the order (t=0, state features), (t=1, transition
// from t=0), (t=1, state features), (t=2, transition from t=1), ...
func (e *Encoder) FeaturesOnPath(inst *crfdata.Instance, path []int, visit FeatureVisitor) {
	for t, item := range inst.Items {
		if t > 0 {
			i, j := path[t-1], path[t]
			for _, fid := range e.feats.LabelRefs[i] {
				f := e.feats.Features[fid]
				if f.Dst == j {
					visit(fid, 1)
				}
			}
		}

		cur := path[t]
		for _, av := range item {
			if av.Attr >= len(e.feats.AttrRefs) {
				continue
			}
			for _, fid := range e.feats.AttrRefs[av.Attr] {
				f := e.feats.Features[fid]
				if f.Dst == cur {
					visit(fid, av.Value)
				}
			}
		}
	}
}

// ObjectiveAndGradients advances the level to MARGINAL (running
// PartitionFactor and Marginals if needed) and accumulates the per-
// instance log-likelihood gradient (observed feature values minus model
// expectations) into g, scaled by gain*weight. Returns the negative
// log-likelihood (-score(gold) + log_norm) * weight. Requires a labeled current
// instance (set via SetInstance).
func (e *Encoder) ObjectiveAndGradients(g []float64, gain, weight float64) (float64, error) {
	if len(g) != e.feats.NumFeatures() {
		return 0, ErrGradientVectorSize
	}
	if e.inst == nil || !e.inst.Labeled() {
		return 0, ErrUnlabeledInstance
	}

	logNorm, err := e.PartitionFactor()
	if err != nil {
		return 0, err
	}
	if e.level < LevelMarginal {
		if err := e.ctx.Marginals(); err != nil {
			return 0, err
		}
		e.level = LevelMarginal
	}

	wEff := gain * weight
	e.FeaturesOnPath(e.inst, e.inst.Labels, func(fid int, v float64) {
		g[fid] += wEff * v
	})

	for i := 0; i < e.numLabels; i++ {
		mexpTrans := e.ctx.MexpTransRow(i)
		for _, fid := range e.feats.LabelRefs[i] {
			f := e.feats.Features[fid]
			g[fid] -= wEff * mexpTrans[f.Dst]
		}
	}
	for t, item := range e.inst.Items {
		mexpState := e.ctx.MexpStateRow(t)
		for _, av := range item {
			if av.Attr >= len(e.feats.AttrRefs) {
				continue
			}
			for _, fid := range e.feats.AttrRefs[av.Attr] {
				f := e.feats.Features[fid]
				g[fid] -= wEff * mexpState[f.Dst] * av.Value
			}
		}
	}

	goldScore := e.ctx.Score(e.inst.Labels)
	return (-goldScore + logNorm) * weight, nil
}

// ObjectiveAndGradientsBatch computes the full-dataset objective and
// gradient from scratch given w, the path batch L-BFGS takes. It does not
// consult or disturb the encoder's cache level: on return, the encoder is
// restored to whatever state (weights, instance, level) it held before
// the call.
func (e *Encoder) ObjectiveAndGradientsBatch(ds *crfdata.Dataset, w, g []float64) (float64, error) {
	if len(w) != e.feats.NumFeatures() {
		return 0, ErrWeightVectorSize
	}
	if len(g) != e.feats.NumFeatures() {
		return 0, ErrGradientVectorSize
	}

	for fid, f := range e.feats.Features {
		g[fid] = -f.Freq
	}

	savedLevel, savedW, savedScale, savedInst := e.level, e.w, e.scale, e.inst
	defer func() {
		// Replay the cached stages so the context buffers match the
		// restored weights, instance and level again.
		e.level, e.w, e.scale, e.inst = LevelNone, savedW, savedScale, nil
		if savedLevel >= LevelWeight {
			_ = e.SetWeights(savedW, savedScale)
		}
		if savedLevel >= LevelInstance {
			_ = e.SetInstance(savedInst)
		}
		if savedLevel >= LevelAlphaBeta {
			_, _ = e.PartitionFactor()
		}
		if savedLevel >= LevelMarginal && e.ctx.Marginals() == nil {
			e.level = LevelMarginal
		}
	}()

	if err := e.SetWeights(w, 1.0); err != nil {
		return 0, err
	}

	var logl float64
	for idx := range ds.Instances {
		inst := &ds.Instances[idx]
		if err := e.SetInstance(inst); err != nil {
			return 0, err
		}
		logNorm, err := e.PartitionFactor()
		if err != nil {
			return 0, err
		}
		if err := e.ctx.Marginals(); err != nil {
			return 0, err
		}

		weight := inst.EffectiveWeight()
		goldScore := e.ctx.Score(inst.Labels)
		logl += (goldScore - logNorm) * weight

		for i := 0; i < e.numLabels; i++ {
			mexpTrans := e.ctx.MexpTransRow(i)
			for _, fid := range e.feats.LabelRefs[i] {
				f := e.feats.Features[fid]
				g[fid] += weight * mexpTrans[f.Dst]
			}
		}
		for t, item := range inst.Items {
			mexpState := e.ctx.MexpStateRow(t)
			for _, av := range item {
				if av.Attr >= len(e.feats.AttrRefs) {
					continue
				}
				for _, fid := range e.feats.AttrRefs[av.Attr] {
					f := e.feats.Features[fid]
					g[fid] += weight * mexpState[f.Dst] * av.Value
				}
			}
		}
	}

	return -logl, nil
}
