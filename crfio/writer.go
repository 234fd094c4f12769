package crfio

import (
	"fmt"
	"io"
	"math"
)

// expClamped computes exp(x), the sequence probability from a log-score
// difference; the argument is always <= 0 by construction (score never
// exceeds log_norm), so overflow cannot occur.
func expClamped(x float64) float64 { return math.Exp(x) }

// TagOptions selects which optional columns WriteTagged emits, mirroring
// tag.cpp's -p/--probability, -r/--reference, -i/--marginal, and
// -l/--marginal-all flags.
type TagOptions struct {
	Probability bool
	Reference   bool
	Marginal    bool
	MarginalAll bool
}

// MarginalFunc returns the posterior probability of label at position pos
// in the instance currently being written.
type MarginalFunc func(label, pos int) float64

// WriteTagged writes one tagged instance in the frontend's output format:
// an optional "@score"/"@probability" header, then one line per position
// with the predicted label (and, per TagOptions, the reference label, the
// predicted label's own marginal, or every label's marginal), followed by
// a blank line separating instances.
func WriteTagged(w io.Writer, labelNames []string, referenceLabels, outputLabels []int, score, logNorm float64, marginal MarginalFunc, opts TagOptions) error {
	if opts.Probability {
		if _, err := fmt.Fprintf(w, "@score\t%f\t%f\n", score, logNorm); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "@probability\t%f\n", expClamped(score-logNorm)); err != nil {
			return err
		}
	}

	for i, predicted := range outputLabels {
		if opts.Reference {
			if _, err := fmt.Fprintf(w, "%s\t", labelNames[referenceLabels[i]]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s", labelNames[predicted]); err != nil {
			return err
		}

		if opts.Marginal {
			if _, err := fmt.Fprintf(w, ":%f", marginal(predicted, i)); err != nil {
				return err
			}
		}
		if opts.MarginalAll {
			for l, name := range labelNames {
				if _, err := fmt.Fprintf(w, "\t%s:%f", name, marginal(l, i)); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
