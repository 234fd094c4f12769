package crftrain

import (
	"github.com/google/uuid"
	"k8s.io/klog/v2"

	lcrf "github.com/katalvlaran/lcrf"
	"github.com/katalvlaran/lcrf/crf/encode"
	"github.com/katalvlaran/lcrf/crfdata"
)

// PerceptronOptions configures TrainPerceptron.
type PerceptronOptions struct {
	// Epochs is the number of full passes over the dataset.
	Epochs int
	// Logger is the per-epoch progress callback; nil defaults to a klog
	// sink. A non-zero return cancels training after that epoch.
	Logger lcrf.LogFunc
}

// DefaultPerceptronOptions returns a single-digit epoch count, typical
// for perceptron-style training which converges quickly on separable data.
func DefaultPerceptronOptions() PerceptronOptions {
	return PerceptronOptions{Epochs: 10}
}

// Validate checks that Options hold a usable combination.
func (o PerceptronOptions) Validate() error {
	if o.Epochs <= 0 {
		return ErrInvalidOptions
	}
	return nil
}

// TrainPerceptron runs the averaged structured perceptron: for every
// instance, predict the Viterbi path under the current weights and, on a
// mismatch, add the gold path's fired features and subtract the
// predicted path's. The returned weight vector is the running average of
// every intermediate weight vector seen during training, which generalizes
// better than the final vector alone. If Logger returns non-zero after an
// epoch, training stops early and Result.Cancelled is true.
func TrainPerceptron(enc *encode.Encoder, ds *crfdata.Dataset, opts PerceptronOptions) (*Result, error) {
	if ds.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := lcrf.OrDefault(opts.Logger, klog.Level(1))
	K := enc.NumFeatures()
	w := make([]float64, K)
	sum := make([]float64, K)
	var updates int

	result := &Result{RunID: runID}
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		var mistakes int
		for idx := range ds.Instances {
			inst := &ds.Instances[idx]

			if err := enc.SetWeights(w, 1.0); err != nil {
				return nil, err
			}
			if err := enc.SetInstance(inst); err != nil {
				return nil, err
			}

			pred := make([]int, inst.Len())
			if _, err := enc.Viterbi(pred); err != nil {
				return nil, err
			}

			if !equalPath(pred, inst.Labels) {
				mistakes++
				enc.FeaturesOnPath(inst, inst.Labels, func(fid int, v float64) { w[fid] += v })
				enc.FeaturesOnPath(inst, pred, func(fid int, v float64) { w[fid] -= v })
			}

			for i := range w {
				sum[i] += w[i]
			}
			updates++
		}

		result.EpochsDone = epoch + 1
		status := logger("crftrain[%s]: perceptron epoch %d/%d mistakes=%d/%d", runID, epoch+1, opts.Epochs, mistakes, ds.Len())
		if status != 0 {
			result.Cancelled = true
			break
		}
	}

	avg := make([]float64, K)
	for i := range avg {
		avg[i] = sum[i] / float64(updates)
	}
	result.Weights = avg

	return result, nil
}

func equalPath(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
