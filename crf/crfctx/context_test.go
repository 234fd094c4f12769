package crfctx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContextRejectsNonPositiveLabels(t *testing.T) {
	_, err := NewContext(FlagMarginals, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidLabelCount)
}

func TestResizeRejectsNonPositiveLength(t *testing.T) {
	c, err := NewContext(FlagMarginals, 2, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Resize(0), ErrEmptyInstance)
}

func TestResizeNeverShrinks(t *testing.T) {
	c, err := NewContext(FlagMarginals|FlagViterbi, 2, 0)
	require.NoError(t, err)
	require.NoError(t, c.Resize(5))
	require.NoError(t, c.Resize(2))
	assert.Equal(t, 2, c.NumItems())
	assert.Equal(t, 5, c.capItems, "capacity must latch to the high-water mark")
}

// toyContext builds the three-state toy instance from spec.md §8 scenario
// (i): L=3, T=3, with the unexponentiated state/trans scores set to the
// logarithms of the probabilities used by the worked example.
func toyContext(t *testing.T) *Context {
	t.Helper()
	c, err := NewContext(FlagMarginals|FlagViterbi, 3, 3)
	require.NoError(t, err)
	require.NoError(t, c.Resize(3))

	copy(c.StateRow(0), logAll(.4, .5, .1))
	copy(c.StateRow(1), logAll(.4, .1, .5))
	copy(c.StateRow(2), logAll(.4, .1, .5))

	copy(c.TransRow(0), logAll(.3, .1, .4))
	copy(c.TransRow(1), logAll(.6, .2, .1))
	copy(c.TransRow(2), logAll(.5, .2, .1))

	require.NoError(t, c.ExpState())
	require.NoError(t, c.ExpTransition())
	require.NoError(t, c.AlphaScore())
	require.NoError(t, c.BetaScore())
	require.NoError(t, c.Marginals())
	return c
}

func logAll(vs ...float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = math.Log(v)
	}
	return out
}

// bruteForceScores computes the unnormalized probability (not log-score)
// of every one of the 27 label paths for the toy instance, by direct
// multiplication of the original (unexponentiated-domain) probabilities.
func bruteForceScores() (scores [3][3][3]float64, norm float64) {
	stateP := [3][]float64{{.4, .5, .1}, {.4, .1, .5}, {.4, .1, .5}}
	transP := [3][]float64{{.3, .1, .4}, {.6, .2, .1}, {.5, .2, .1}}

	for y1 := 0; y1 < 3; y1++ {
		for y2 := 0; y2 < 3; y2++ {
			for y3 := 0; y3 < 3; y3++ {
				s := stateP[0][y1] * transP[y1][y2] * stateP[1][y2] * transP[y2][y3] * stateP[2][y3]
				scores[y1][y2][y3] = s
				norm += s
			}
		}
	}
	return scores, norm
}

func TestAlphaRowsSumToOne(t *testing.T) {
	c := toyContext(t)
	for tpos := 0; tpos < 3; tpos++ {
		var sum float64
		for l := 0; l < 3; l++ {
			v, err := c.Alpha(tpos, l)
			require.NoError(t, err)
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestLogNormMatchesExhaustiveSum(t *testing.T) {
	c := toyContext(t)
	_, norm := bruteForceScores()
	assert.InDelta(t, norm, math.Exp(c.LogNorm()), 1e-6*norm)
}

func TestScoreMatchesExhaustivePathProbability(t *testing.T) {
	c := toyContext(t)
	scores, norm := bruteForceScores()
	for y1 := 0; y1 < 3; y1++ {
		for y2 := 0; y2 < 3; y2++ {
			for y3 := 0; y3 < 3; y3++ {
				path := []int{y1, y2, y3}
				logp := c.Score(path) - c.LogNorm()
				assert.InDelta(t, scores[y1][y2][y3]/norm, math.Exp(logp), 1e-9)
			}
		}
	}
}

func TestMarginalPointMatchesExhaustiveMarginal(t *testing.T) {
	c := toyContext(t)
	scores, norm := bruteForceScores()

	for y1 := 0; y1 < 3; y1++ {
		var s float64
		for y2 := 0; y2 < 3; y2++ {
			for y3 := 0; y3 < 3; y3++ {
				s += scores[y1][y2][y3]
			}
		}
		got := c.MarginalPoint(y1, 0)
		assert.InDelta(t, s/norm, got, 1e-9)
	}

	for y2 := 0; y2 < 3; y2++ {
		var s float64
		for y1 := 0; y1 < 3; y1++ {
			for y3 := 0; y3 < 3; y3++ {
				s += scores[y1][y2][y3]
			}
		}
		assert.InDelta(t, s/norm, c.MarginalPoint(y2, 1), 1e-9)
	}
}

func TestMarginalPointsSumToOnePerPosition(t *testing.T) {
	c := toyContext(t)
	for tpos := 0; tpos < 3; tpos++ {
		var sum float64
		for l := 0; l < 3; l++ {
			sum += c.MarginalPoint(l, tpos)
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestViterbiMatchesExhaustiveMax(t *testing.T) {
	c := toyContext(t)
	path := make([]int, 3)
	score, err := c.Viterbi(path)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 2}, path)

	// exhaustive max over unnormalized log-scores must agree.
	best := math.Inf(-1)
	for y1 := 0; y1 < 3; y1++ {
		for y2 := 0; y2 < 3; y2++ {
			for y3 := 0; y3 < 3; y3++ {
				s := c.Score([]int{y1, y2, y3})
				if s > best {
					best = s
				}
			}
		}
	}
	assert.InDelta(t, best, score, 1e-9)
}

func TestViterbiRequiresFlag(t *testing.T) {
	c, err := NewContext(FlagMarginals, 2, 2)
	require.NoError(t, err)
	_, err = c.Viterbi(make([]int, 2))
	assert.ErrorIs(t, err, ErrViterbiDisabled)
}

func TestViterbiRejectsShortOutput(t *testing.T) {
	c := toyContext(t)
	_, err := c.Viterbi(make([]int, 1))
	assert.ErrorIs(t, err, ErrOutputTooShort)
}

// TestScalingSafety exercises spec.md §8 scenario (vi): a long instance
// with large state scores must keep alpha finite and marginals summing to
// one everywhere.
func TestScalingSafety(t *testing.T) {
	const T, L = 200, 10
	c, err := NewContext(FlagMarginals|FlagViterbi, L, T)
	require.NoError(t, err)
	require.NoError(t, c.Resize(T))

	for tpos := 0; tpos < T; tpos++ {
		row := c.StateRow(tpos)
		for l := 0; l < L; l++ {
			row[l] = 50.0 + float64(l)
		}
	}
	for i := 0; i < L; i++ {
		row := c.TransRow(i)
		for j := 0; j < L; j++ {
			row[j] = 10.0
		}
	}

	require.NoError(t, c.ExpState())
	require.NoError(t, c.ExpTransition())
	require.NoError(t, c.AlphaScore())
	require.NoError(t, c.BetaScore())
	require.NoError(t, c.Marginals())

	assert.False(t, math.IsInf(c.LogNorm(), 0))
	assert.False(t, math.IsNaN(c.LogNorm()))

	for tpos := 0; tpos < T; tpos++ {
		var sum float64
		for l := 0; l < L; l++ {
			v, err := c.Alpha(tpos, l)
			require.NoError(t, err)
			assert.False(t, math.IsInf(v, 0))
			sum += c.MarginalPoint(l, tpos)
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestBoundsCheckedAccessors(t *testing.T) {
	c := toyContext(t)
	_, err := c.State(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = c.State(0, 3)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = c.Trans(3, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = c.Alpha(3, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = c.Beta(3, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = c.Scale(3)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
