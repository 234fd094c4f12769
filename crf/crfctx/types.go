package crfctx

// Flags selects which optional buffers a Context allocates, mirroring the
// "optional back[T][L] (Viterbi), optional exp_state/exp_trans/mexp_state/
// mexp_trans (marginals)" entries of the inference-context data model.
type Flags uint8

const (
	// FlagViterbi allocates the backward-edge buffer Viterbi needs to
	// reconstruct the best path.
	FlagViterbi Flags = 1 << iota

	// FlagMarginals allocates exp_state/exp_trans (needed by AlphaScore
	// and BetaScore) and mexp_state/mexp_trans (needed by Marginals).
	// Forward-backward cannot run without this flag set.
	FlagMarginals
)

// Has reports whether all bits of want are set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// ResetSelector chooses which dense buffers Reset clears.
type ResetSelector uint8

const (
	// ResetState clears the state[T][L] buffer.
	ResetState ResetSelector = 1 << iota
	// ResetTrans clears the trans[L][L] buffer.
	ResetTrans
	// ResetBoth clears both state and trans.
	ResetBoth = ResetState | ResetTrans
)
