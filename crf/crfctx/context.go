package crfctx

import lcrf "github.com/katalvlaran/lcrf"

// Context holds the dense per-instance buffers of the forward-backward /
// Viterbi / marginals dynamic program for one label sequence at a time.
// A Context is reused across instances within a single encoder or tagger;
// it is not safe for concurrent use by more than one goroutine at a time.
type Context struct {
	flags     Flags
	numLabels int
	numItems  int // T for the instance currently loaded
	capItems  int // high-water mark of numItems ever requested

	state []float64 // T_cap*L, unexponentiated state scores
	trans []float64 // L*L, unexponentiated transition scores

	alpha []float64 // T_cap*L
	beta  []float64 // T_cap*L
	scale []float64 // T_cap
	rowBuf []float64 // L scratch row reused by BetaScore/Marginals

	back []int // T_cap*L, nil unless FlagViterbi

	expState  []float64 // T_cap*L, nil unless FlagMarginals
	expTrans  []float64 // L*L, nil unless FlagMarginals
	mexpState []float64 // T_cap*L, nil unless FlagMarginals
	mexpTrans []float64 // L*L, nil unless FlagMarginals

	logNorm float64
}

// NewContext allocates a Context for numLabels labels, with initial
// capacity for capItemsHint positions (a hint only: Resize grows further
// on demand). capItemsHint may be 0 to defer all position-sized allocation
// to the first Resize call.
func NewContext(flags Flags, numLabels, capItemsHint int) (*Context, error) {
	if numLabels <= 0 {
		return nil, ErrInvalidLabelCount
	}

	c := &Context{
		flags:     flags,
		numLabels: numLabels,
		trans:     make([]float64, numLabels*numLabels),
		rowBuf:    make([]float64, numLabels),
	}
	if flags.Has(FlagMarginals) {
		c.expTrans = make([]float64, numLabels*numLabels)
		c.mexpTrans = make([]float64, numLabels*numLabels)
	}
	if capItemsHint > 0 {
		if err := c.Resize(capItemsHint); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NumLabels returns L, fixed for the lifetime of the Context.
func (c *Context) NumLabels() int { return c.numLabels }

// NumItems returns T, the length of the instance currently loaded.
func (c *Context) NumItems() int { return c.numItems }

// Resize ensures the Context can hold T positions and sets the current
// instance length to T. It is idempotent and never shrinks the underlying
// buffers: once a Context has seen an instance of length N, its memory
// footprint stays at O(N*L + L^2) for the rest of its life. This is
// deliberate — it favors cache-stable, allocation-free hot loops over
// returning memory to the allocator between instances.
func (c *Context) Resize(T int) error {
	if T <= 0 {
		return ErrEmptyInstance
	}
	L := c.numLabels
	c.numItems = T

	if c.capItems < T {
		c.state = make([]float64, T*L)
		c.alpha = make([]float64, T*L)
		c.beta = make([]float64, T*L)
		c.scale = make([]float64, T)

		if c.flags.Has(FlagViterbi) {
			c.back = make([]int, T*L)
		}
		if c.flags.Has(FlagMarginals) {
			c.expState = make([]float64, T*L)
			c.mexpState = make([]float64, T*L)
		}
		c.capItems = T
	}
	return nil
}

// Reset zeroes the buffers selected by which. When FlagMarginals is set,
// Reset additionally zeroes the marginal accumulators (mexp_state,
// mexp_trans) and log_norm regardless of which — those are always
// recomputed fresh by the next Marginals() / AlphaScore() call.
func (c *Context) Reset(which ResetSelector) {
	T, L := c.numItems, c.numLabels

	if which&ResetState != 0 && T > 0 {
		lcrf.VecSet(c.state[:T*L], 0)
	}
	if which&ResetTrans != 0 {
		lcrf.VecSet(c.trans, 0)
	}
	if c.flags.Has(FlagMarginals) {
		if T > 0 {
			lcrf.VecSet(c.mexpState[:T*L], 0)
		}
		lcrf.VecSet(c.mexpTrans, 0)
		c.logNorm = 0
	}
}

// row returns the unchecked L-wide slice for row i of a T*L (or L*L) flat
// buffer. Hot loops take this slice once per row and index into it
// directly, per the context's "no per-position allocation" contract.
func row(buf []float64, L, i int) []float64 {
	return buf[i*L : i*L+L]
}

func rowInt(buf []int, L, i int) []int {
	return buf[i*L : i*L+L]
}
