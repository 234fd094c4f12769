package crftrain

import (
	"github.com/google/uuid"
	"k8s.io/klog/v2"

	lcrf "github.com/katalvlaran/lcrf"
	"github.com/katalvlaran/lcrf/crf/encode"
	"github.com/katalvlaran/lcrf/crfdata"
)

// SGDOptions configures TrainSGD.
//
//	Epochs       - number of full passes over the dataset via the batch
//	               objective/gradient contract.
//	LearningRate - initial step size eta0.
//	L2           - L2 regularization coefficient; 0 disables it.
//	Logger       - per-epoch progress callback; nil defaults to a klog
//	               sink. A non-zero return cancels training after the
//	               epoch that produced it.
type SGDOptions struct {
	Epochs       int
	LearningRate float64
	L2           float64
	Logger       lcrf.LogFunc
}

// DefaultSGDOptions returns crfsuite's typical SGD defaults.
func DefaultSGDOptions() SGDOptions {
	return SGDOptions{Epochs: 100, LearningRate: 0.1, L2: 1.0}
}

// Validate checks that Options hold a usable combination.
func (o SGDOptions) Validate() error {
	if o.Epochs <= 0 || o.LearningRate <= 0 || o.L2 < 0 {
		return ErrInvalidOptions
	}
	return nil
}

// Result is the trained weight vector plus bookkeeping for the caller's
// save/report step.
type Result struct {
	Weights    []float64
	RunID      string
	FinalLoss  float64
	Cancelled  bool
	EpochsDone int
}

// TrainSGD minimizes the dataset's negative log-likelihood plus L2
// regularization via batch gradient descent with Bottou-style learning
// rate decay eta_t = eta0 / (1 + eta0*L2*t), using enc's
// ObjectiveAndGradientsBatch at every step. If Logger returns non-zero,
// training stops after that epoch and Result.Cancelled is true; this is
// not an error, matching the training loop's own cancellation
// semantics, which never regard an early stop as a failure.
func TrainSGD(enc *encode.Encoder, ds *crfdata.Dataset, opts SGDOptions) (*Result, error) {
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
	g := make([]float64, K)

	result := &Result{RunID: runID}
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		f, err := enc.ObjectiveAndGradientsBatch(ds, w, g)
		if err != nil {
			return nil, err
		}

		var reg float64
		for i := range w {
			reg += w[i] * w[i]
		}
		loss := f + 0.5*opts.L2*reg

		eta := opts.LearningRate / (1 + opts.LearningRate*opts.L2*float64(epoch))
		for i := range w {
			w[i] -= eta * (g[i] + opts.L2*w[i])
		}

		result.FinalLoss = loss
		result.EpochsDone = epoch + 1

		status := logger("crftrain[%s]: sgd epoch %d/%d loss=%f", runID, epoch+1, opts.Epochs, loss)
		if status != 0 {
			result.Cancelled = true
			break
		}
	}

	result.Weights = w
	return result, nil
}
