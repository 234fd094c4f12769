package encode

// Marginal returns the posterior probability p(y_pos = label | x) for the
// current instance, running PartitionFactor and Marginals if they are not
// already cached. Unlike ObjectiveAndGradients, this does not require a
// labeled instance: tagging needs posteriors over predicted labels, not
// gradients against gold ones.
func (e *Encoder) Marginal(label, pos int) (float64, error) {
	if _, err := e.PartitionFactor(); err != nil {
		return 0, err
	}
	if e.level < LevelMarginal {
		if err := e.ctx.Marginals(); err != nil {
			return 0, err
		}
		e.level = LevelMarginal
	}
	return e.ctx.MarginalPoint(label, pos), nil
}
