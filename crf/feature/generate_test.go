package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lcrf/crfdata"
)

func buildDataset(t *testing.T) *crfdata.Dataset {
	t.Helper()
	ds := crfdata.NewDataset()
	oLabel := ds.Labels.Put("O")
	perLabel := ds.Labels.Put("PER")
	wTheAttr := ds.Attrs.Put("w=the")
	wBobAttr := ds.Attrs.Put("w=bob")

	inst, err := crfdata.NewInstance(
		[]crfdata.Item{
			crfdata.NewItem().Add(wTheAttr),
			crfdata.NewItem().Add(wBobAttr),
		},
		[]int{oLabel, perLabel},
	)
	require.NoError(t, err)
	require.NoError(t, ds.Append(inst))
	return ds
}

func TestGenerateRejectsEmptyLabelDict(t *testing.T) {
	ds := crfdata.NewDataset()
	_, err := Generate(ds, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoLabels)
}

func TestGenerateBasicCounts(t *testing.T) {
	ds := buildDataset(t)
	set, err := Generate(ds, DefaultOptions())
	require.NoError(t, err)

	var sawState, sawTransition bool
	for _, f := range set.Features {
		if f.Kind == State {
			sawState = true
			assert.Equal(t, 1.0, f.Freq)
		}
		if f.Kind == Transition {
			sawTransition = true
			assert.Equal(t, 1.0, f.Freq)
		}
	}
	assert.True(t, sawState)
	assert.True(t, sawTransition)
	assert.Len(t, set.Features, 3) // 2 state + 1 transition
}

func TestGenerateDedupsBySummingFreq(t *testing.T) {
	ds := buildDataset(t)
	// duplicate the instance so every feature's freq doubles.
	require.NoError(t, ds.Append(ds.Instances[0]))

	set, err := Generate(ds, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, set.Features, 3)
	for _, f := range set.Features {
		assert.Equal(t, 2.0, f.Freq)
	}
}

func TestGenerateOptionsVariants(t *testing.T) {
	ds := buildDataset(t)

	type tc struct {
		name  string
		opts  Options
		check func(t *testing.T, set *Set)
	}

	tests := []tc{
		{
			// minfreq=2 prunes every organically-observed feature (freq 1)
			// but the ConnectAllEdges-injected zero-freq features survive.
			name: "MinFreqPrunesButKeepsInjectedZeros",
			opts: Options{MinFreq: 2, ConnectAllEdges: true},
			check: func(t *testing.T, set *Set) {
				for _, f := range set.Features {
					assert.True(t, f.Freq == 0, "only zero-freq injected features should survive minfreq=2, got %+v", f)
				}
				assert.NotEmpty(t, set.Features)
			},
		},
		{
			name: "ConnectAllEdgesCoversFullLabelProduct",
			opts: Options{ConnectAllEdges: true},
			check: func(t *testing.T, set *Set) {
				L := ds.NumLabels()
				seen := make(map[[2]int]bool)
				for _, f := range set.Features {
					if f.Kind == Transition {
						seen[[2]int{f.Src, f.Dst}] = true
					}
				}
				assert.Len(t, seen, L*L)
			},
		},
		{
			name: "ConnectAllAttrsCoversEveryLabel",
			opts: Options{ConnectAllAttrs: true},
			check: func(t *testing.T, set *Set) {
				L := ds.NumLabels()
				wTheAttr, _ := ds.Attrs.ID("w=the")
				seen := make(map[int]bool)
				for _, f := range set.Features {
					if f.Kind == State && f.Src == wTheAttr {
						seen[f.Dst] = true
					}
				}
				assert.Len(t, seen, L)
			},
		},
	}

	for _, c := range tests {
		c := c
		t.Run(c.name, func(t *testing.T) {
			set, err := Generate(ds, c.opts)
			require.NoError(t, err)
			c.check(t, set)
		})
	}
}

func TestGenerateReferenceLists(t *testing.T) {
	ds := buildDataset(t)
	set, err := Generate(ds, DefaultOptions())
	require.NoError(t, err)

	wTheAttr, _ := ds.Attrs.ID("w=the")
	for _, fid := range set.AttrRefs[wTheAttr] {
		assert.Equal(t, State, set.Features[fid].Kind)
		assert.Equal(t, wTheAttr, set.Features[fid].Src)
	}

	oLabel, _ := ds.Labels.ID("O")
	for _, fid := range set.LabelRefs[oLabel] {
		assert.Equal(t, Transition, set.Features[fid].Kind)
		assert.Equal(t, oLabel, set.Features[fid].Src)
	}
}
