package crfdata

// Instance is one labeled (or, for tagging, unlabeled) sequence: T items,
// a parallel label sequence of the same length, a positive weight, and a
// group tag used only by Split to assign train/holdout membership.
type Instance struct {
	Items   []Item
	Labels  []int
	Weight  float64
	GroupID int
}

// NewInstance builds an Instance with weight 1.0 and group 0, validating
// that items and labels agree in length and that the instance is
// non-empty.
func NewInstance(items []Item, labels []int) (Instance, error) {
	inst := Instance{Items: items, Labels: labels, Weight: 1.0}
	return inst, inst.Validate()
}

// Validate checks the structural invariants every Instance must satisfy
// before it can be handed to crf/feature or crf/encode.
func (inst Instance) Validate() error {
	if len(inst.Items) == 0 {
		return ErrEmptyItem
	}
	if len(inst.Labels) != 0 && len(inst.Labels) != len(inst.Items) {
		return ErrLengthMismatch
	}
	if inst.Weight < 0 {
		return ErrNonPositiveWeight
	}
	return nil
}

// Len returns T, the number of positions in the instance.
func (inst Instance) Len() int { return len(inst.Items) }

// Labeled reports whether the instance carries gold labels, as opposed to
// being a bare sequence submitted for tagging.
func (inst Instance) Labeled() bool { return len(inst.Labels) == len(inst.Items) && len(inst.Labels) > 0 }

// EffectiveWeight returns the instance's weight, defaulting a zero-value
// Weight field to 1.0 so callers that build Instance via struct literal
// rather than NewInstance still get the documented default.
func (inst Instance) EffectiveWeight() float64 {
	if inst.Weight == 0 {
		return 1.0
	}
	return inst.Weight
}
