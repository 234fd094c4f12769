package crfctx

import (
	"math"

	lcrf "github.com/katalvlaran/lcrf"
)

// StateRow returns the unchecked unexponentiated state-score row for
// position t: state[t][0..L). Callers writing feature contributions index
// into this slice directly; it aliases the Context's internal buffer.
func (c *Context) StateRow(t int) []float64 { return row(c.state, c.numLabels, t) }

// TransRow returns the unchecked unexponentiated transition-score row for
// source label i: trans[i][0..L).
func (c *Context) TransRow(i int) []float64 { return row(c.trans, c.numLabels, i) }

// ExpState exponentiates state into expState, elementwise, over the
// current instance length. Requires FlagMarginals.
func (c *Context) ExpState() error {
	if !c.flags.Has(FlagMarginals) {
		return ErrMarginalsDisabled
	}
	T, L := c.numItems, c.numLabels
	lcrf.VecExp(c.expState[:T*L], c.state[:T*L])
	return nil
}

// ExpTransition exponentiates trans into expTrans, elementwise. Requires
// FlagMarginals.
func (c *Context) ExpTransition() error {
	if !c.flags.Has(FlagMarginals) {
		return ErrMarginalsDisabled
	}
	lcrf.VecExp(c.expTrans, c.trans)
	return nil
}

// AlphaScore runs the scaled forward pass and caches log_norm.
//
//	alpha[0][j]  = exp_state[0][j]
//	alpha[t][j]  = exp_state[t][j] * sum_i alpha[t-1][i] * exp_trans[i][j]   (t>=1)
//
// After each row is computed its sum is normalized to 1 (or left as an
// all-zero row if the unscaled sum was 0); the reciprocal of the unscaled
// sum is recorded in scale[t]. log_norm = -sum_t log(scale[t]).
// Requires FlagMarginals (AlphaScore reads expState/expTrans).
func (c *Context) AlphaScore() error {
	if !c.flags.Has(FlagMarginals) {
		return ErrMarginalsDisabled
	}
	T, L := c.numItems, c.numLabels

	cur := row(c.alpha, L, 0)
	copy(cur, row(c.expState, L, 0))
	c.scale[0] = scaleOf(lcrf.VecSum(cur))
	lcrf.VecScale(cur, c.scale[0])

	for t := 1; t < T; t++ {
		prev := row(c.alpha, L, t-1)
		cur := row(c.alpha, L, t)
		st := row(c.expState, L, t)

		lcrf.VecSet(cur, 0)
		for i := 0; i < L; i++ {
			lcrf.VecAddScaled(cur, prev[i], row(c.expTrans, L, i))
		}
		lcrf.VecMul(cur, st)

		c.scale[t] = scaleOf(lcrf.VecSum(cur))
		lcrf.VecScale(cur, c.scale[t])
	}

	c.logNorm = -lcrf.VecSumLog(c.scale[:T])
	return nil
}

// scaleOf returns 1/sum, or 1 if sum is exactly zero (an all-zero alpha
// row stays all zero rather than producing a NaN/Inf scale).
func scaleOf(sum float64) float64 {
	if sum != 0 {
		return 1 / sum
	}
	return 1
}

// BetaScore runs the scaled backward pass using the scale vector computed
// by AlphaScore.
//
//	beta[T-1][j] = scale[T-1]
//	beta[t][i]   = scale[t] * sum_j exp_trans[i][j] * exp_state[t+1][j] * beta[t+1][j]
//
// Requires FlagMarginals and a prior AlphaScore call (for scale).
func (c *Context) BetaScore() error {
	if !c.flags.Has(FlagMarginals) {
		return ErrMarginalsDisabled
	}
	T, L := c.numItems, c.numLabels

	cur := row(c.beta, L, T-1)
	lcrf.VecSet(cur, c.scale[T-1])

	for t := T - 2; t >= 0; t-- {
		cur := row(c.beta, L, t)
		next := row(c.beta, L, t+1)
		st := row(c.expState, L, t+1)

		copy(c.rowBuf, next)
		lcrf.VecMul(c.rowBuf, st)

		for i := 0; i < L; i++ {
			cur[i] = lcrf.VecDot(row(c.expTrans, L, i), c.rowBuf)
		}
		lcrf.VecScale(cur, c.scale[t])
	}
	return nil
}

// Marginals fills mexp_state (posterior node probabilities) and
// mexp_trans (posterior edge probabilities, summed over positions).
// Requires FlagMarginals and prior AlphaScore/BetaScore calls.
func (c *Context) Marginals() error {
	if !c.flags.Has(FlagMarginals) {
		return ErrMarginalsDisabled
	}
	T, L := c.numItems, c.numLabels

	for t := 0; t < T; t++ {
		fwd := row(c.alpha, L, t)
		bwd := row(c.beta, L, t)
		prob := row(c.mexpState, L, t)
		copy(prob, fwd)
		lcrf.VecMul(prob, bwd)
		lcrf.VecScale(prob, 1/c.scale[t])
	}

	for t := 0; t < T-1; t++ {
		fwd := row(c.alpha, L, t)
		st := row(c.expState, L, t+1)
		bwd := row(c.beta, L, t+1)

		copy(c.rowBuf, bwd)
		lcrf.VecMul(c.rowBuf, st)

		for i := 0; i < L; i++ {
			edge := row(c.expTrans, L, i)
			prob := row(c.mexpTrans, L, i)
			for j := 0; j < L; j++ {
				prob[j] += fwd[i] * edge[j] * c.rowBuf[j]
			}
		}
	}
	return nil
}

// MexpStateRow returns the posterior node-probability row for position t.
func (c *Context) MexpStateRow(t int) []float64 { return row(c.mexpState, c.numLabels, t) }

// MexpTransRow returns the posterior edge-probability row for source
// label i, summed over all positions.
func (c *Context) MexpTransRow(i int) []float64 { return row(c.mexpTrans, c.numLabels, i) }

// LogNorm returns the log-partition factor cached by the last AlphaScore.
func (c *Context) LogNorm() float64 { return c.logNorm }

// MarginalPoint returns P(label l at position t) = alpha[t][l]*beta[t][l]/scale[t].
func (c *Context) MarginalPoint(l, t int) float64 {
	L := c.numLabels
	fwd := row(c.alpha, L, t)
	bwd := row(c.beta, L, t)
	return fwd[l] * bwd[l] / c.scale[t]
}

// MarginalPath returns the posterior probability of the partial path
// path[begin:end] in product form: alpha[begin][path[begin]] *
// beta[end-1][path[end-1]] / scale[begin], times exp_trans * exp_state *
// scale[t] for every step t in [begin, end-1).
func (c *Context) MarginalPath(path []int, begin, end int) float64 {
	L := c.numLabels
	fwd := row(c.alpha, L, begin)
	bwd := row(c.beta, L, end-1)
	prob := fwd[path[begin]] * bwd[path[end-1]] / c.scale[begin]

	for t := begin; t < end-1; t++ {
		st := row(c.expState, L, t+1)
		edge := row(c.expTrans, L, path[t])
		prob *= edge[path[t+1]] * st[path[t+1]] * c.scale[t]
	}
	return prob
}

// Score returns the unnormalized log-score of a complete label path,
// using the unexponentiated state/trans matrices. len(path) must equal
// NumItems().
func (c *Context) Score(path []int) float64 {
	L := c.numLabels
	i := path[0]
	ret := row(c.state, L, 0)[i]

	for t := 1; t < c.numItems; t++ {
		j := path[t]
		ret += row(c.trans, L, i)[j]
		ret += row(c.state, L, t)[j]
		i = j
	}
	return ret
}

// Viterbi writes the highest-scoring label path into out (which must have
// length >= NumItems()) and returns its unnormalized log-score. Ties break
// toward the lowest candidate index, matching the exhaustive-max reference
// behavior used by the testable-properties suite. Requires FlagViterbi.
//
// Viterbi reuses the alpha buffer as its dp scratch table: it runs
// independently of AlphaScore/BetaScore and does not require them to have
// been called first. It does overwrite the alpha rows of the current
// instance, so MarginalPoint, MarginalPath and Marginals read stale alpha
// values after a Viterbi call until AlphaScore runs again.
func (c *Context) Viterbi(out []int) (float64, error) {
	if !c.flags.Has(FlagViterbi) {
		return 0, ErrViterbiDisabled
	}
	T, L := c.numItems, c.numLabels
	if len(out) < T {
		return 0, ErrOutputTooShort
	}

	dp := c.alpha
	cur := row(dp, L, 0)
	copy(cur, row(c.state, L, 0))

	for t := 1; t < T; t++ {
		prev := row(dp, L, t-1)
		cur := row(dp, L, t)
		st := row(c.state, L, t)
		back := rowInt(c.back, L, t)

		for j := 0; j < L; j++ {
			maxScore := math.Inf(-1)
			argmax := -1
			for i := 0; i < L; i++ {
				score := prev[i] + row(c.trans, L, i)[j]
				if maxScore < score {
					maxScore = score
					argmax = i
				}
			}
			if argmax >= 0 {
				back[j] = argmax
			}
			cur[j] = maxScore + st[j]
		}
	}

	maxScore := math.Inf(-1)
	last := row(dp, L, T-1)
	out[T-1] = 0
	for i := 0; i < L; i++ {
		if maxScore < last[i] {
			maxScore = last[i]
			out[T-1] = i
		}
	}

	for t := T - 2; t >= 0; t-- {
		back := rowInt(c.back, L, t+1)
		out[t] = back[out[t+1]]
	}

	return maxScore, nil
}
