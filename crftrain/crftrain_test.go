package crftrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lcrf/crf/encode"
	"github.com/katalvlaran/lcrf/crf/feature"
	"github.com/katalvlaran/lcrf/crfdata"
)

const (
	statusContinue = 0
	statusCancel   = 1
)

func buildSeparableDataset(t *testing.T) *crfdata.Dataset {
	t.Helper()
	ds := crfdata.NewDataset()
	oLabel := ds.Labels.Put("O")
	perLabel := ds.Labels.Put("PER")
	wJohn := ds.Attrs.Put("w=john")
	wRan := ds.Attrs.Put("w=ran")

	for i := 0; i < 5; i++ {
		inst, err := crfdata.NewInstance(
			[]crfdata.Item{crfdata.NewItem().Add(wJohn), crfdata.NewItem().Add(wRan)},
			[]int{perLabel, oLabel},
		)
		require.NoError(t, err)
		require.NoError(t, ds.Append(inst))
	}
	return ds
}

func TestTrainSGDRejectsEmptyDataset(t *testing.T) {
	ds := crfdata.NewDataset()
	ds.Labels.Put("O") // feature generation needs at least one label
	enc, err := encode.SetData(ds, feature.DefaultOptions())
	require.NoError(t, err)
	_, err = TrainSGD(enc, ds, DefaultSGDOptions())
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestTrainSGDReducesLoss(t *testing.T) {
	ds := buildSeparableDataset(t)
	enc, err := encode.SetData(ds, feature.DefaultOptions())
	require.NoError(t, err)

	result, err := TrainSGD(enc, ds, SGDOptions{Epochs: 1, LearningRate: 0.1, L2: 1.0})
	require.NoError(t, err)
	lossAfter1 := result.FinalLoss

	result, err = TrainSGD(enc, ds, SGDOptions{Epochs: 50, LearningRate: 0.1, L2: 1.0})
	require.NoError(t, err)
	assert.Less(t, result.FinalLoss, lossAfter1)
	assert.Len(t, result.Weights, enc.NumFeatures())
	assert.NotEmpty(t, result.RunID)
}

func TestTrainSGDValidatesOptions(t *testing.T) {
	ds := buildSeparableDataset(t)
	enc, err := encode.SetData(ds, feature.DefaultOptions())
	require.NoError(t, err)
	_, err = TrainSGD(enc, ds, SGDOptions{Epochs: 0, LearningRate: 0.1, L2: 1})
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestTrainPerceptronConvergesOnSeparableData(t *testing.T) {
	ds := buildSeparableDataset(t)
	enc, err := encode.SetData(ds, feature.DefaultOptions())
	require.NoError(t, err)

	result, err := TrainPerceptron(enc, ds, PerceptronOptions{Epochs: 20})
	require.NoError(t, err)
	require.NoError(t, enc.SetWeights(result.Weights, 1.0))

	for idx := range ds.Instances {
		inst := &ds.Instances[idx]
		require.NoError(t, enc.SetInstance(inst))
		pred := make([]int, inst.Len())
		_, err := enc.Viterbi(pred)
		require.NoError(t, err)
		assert.Equal(t, inst.Labels, pred)
	}
}

func TestTrainSGDLoggerCancelsEarly(t *testing.T) {
	ds := buildSeparableDataset(t)
	enc, err := encode.SetData(ds, feature.DefaultOptions())
	require.NoError(t, err)

	var calls int
	opts := SGDOptions{Epochs: 50, LearningRate: 0.1, L2: 1.0}
	opts.Logger = func(string, ...interface{}) int {
		calls++
		if calls == 3 {
			return statusCancel
		}
		return statusContinue
	}

	result, err := TrainSGD(enc, ds, opts)
	require.NoError(t, err)
	assert.True(t, result.Cancelled)
	assert.Equal(t, 3, result.EpochsDone)
	assert.Len(t, result.Weights, enc.NumFeatures())
}

func TestTrainPerceptronLoggerCancelsEarly(t *testing.T) {
	ds := buildSeparableDataset(t)
	enc, err := encode.SetData(ds, feature.DefaultOptions())
	require.NoError(t, err)

	opts := PerceptronOptions{Epochs: 20}
	opts.Logger = func(string, ...interface{}) int { return statusCancel }

	result, err := TrainPerceptron(enc, ds, opts)
	require.NoError(t, err)
	assert.True(t, result.Cancelled)
	assert.Equal(t, 1, result.EpochsDone)
}

func TestEqualPath(t *testing.T) {
	assert.True(t, equalPath([]int{0, 1}, []int{0, 1}))
	assert.False(t, equalPath([]int{0, 1}, []int{0, 2}))
	assert.False(t, equalPath([]int{0}, []int{0, 1}))
}
