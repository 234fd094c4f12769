package crfctx

// This file exposes bounds-checked scalar accessors over the Context's
// flat row-major buffers, per the "typed 2-D views with bounds-checked
// row access" design note: hot loops use the unchecked row() helper and
// the Row-returning methods in algorithms.go (crf/encode's feature loops
// included), while callers outside the hot path (debuggers, tests) get a
// checked API that cannot read out of bounds.

// State returns state[t][l], the unexponentiated state score.
func (c *Context) State(t, l int) (float64, error) {
	if t < 0 || t >= c.numItems || l < 0 || l >= c.numLabels {
		return 0, ErrOutOfRange
	}
	return row(c.state, c.numLabels, t)[l], nil
}

// Trans returns trans[i][j], the unexponentiated transition score.
func (c *Context) Trans(i, j int) (float64, error) {
	if i < 0 || i >= c.numLabels || j < 0 || j >= c.numLabels {
		return 0, ErrOutOfRange
	}
	return row(c.trans, c.numLabels, i)[j], nil
}

// Alpha returns the scaled forward score alpha[t][l].
func (c *Context) Alpha(t, l int) (float64, error) {
	if t < 0 || t >= c.numItems || l < 0 || l >= c.numLabels {
		return 0, ErrOutOfRange
	}
	return row(c.alpha, c.numLabels, t)[l], nil
}

// Beta returns the scaled backward score beta[t][l].
func (c *Context) Beta(t, l int) (float64, error) {
	if t < 0 || t >= c.numItems || l < 0 || l >= c.numLabels {
		return 0, ErrOutOfRange
	}
	return row(c.beta, c.numLabels, t)[l], nil
}

// Scale returns the per-position scale factor computed by AlphaScore.
func (c *Context) Scale(t int) (float64, error) {
	if t < 0 || t >= c.numItems {
		return 0, ErrOutOfRange
	}
	return c.scale[t], nil
}
