package geodesic

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingsCoverEveryFace(t *testing.T) {
	for f := 1; f <= 6; f++ {
		g, err := Build(f)
		require.NoError(t, err)

		rings := g.DefaultRings()
		assert.Len(t, rings, 3*f)

		total := 0
		seen := make(map[Face]bool)
		for _, r := range rings {
			total += len(r)
			for _, face := range r {
				assert.False(t, seen[face])
				seen[face] = true
			}
		}
		assert.Equal(t, len(g.Faces()), total)
	}
}

func TestRingZeroTouchesPole(t *testing.T) {
	g, err := Build(4)
	require.NoError(t, err)
	rings := g.DefaultRings()
	require.Len(t, rings[0], 5)
	for _, f := range rings[0] {
		assert.True(t, f.Has(NorthPole))
	}
	last := rings[len(rings)-1]
	require.Len(t, last, 5)
	for _, f := range last {
		assert.True(t, f.Has(SouthPole))
	}
}

func TestRingsFromSouthPoleMirrorNorth(t *testing.T) {
	g, err := Build(3)
	require.NoError(t, err)
	north := g.DefaultRings()
	south, err := g.Rings(SouthPole)
	require.NoError(t, err)
	require.Len(t, south, len(north))
	for i := range north {
		assert.Len(t, south[i], len(north[len(north)-1-i]))
	}
}

func TestRingsOrderedByAzimuth(t *testing.T) {
	g, err := Build(2)
	require.NoError(t, err)
	a := g.DefaultRings()
	b, err := g.Rings(NorthPole)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRingsUnknownPole(t *testing.T) {
	g, err := Build(1)
	require.NoError(t, err)
	_, err = g.Rings(VertexID(-1))
	assert.ErrorIs(t, err, ErrUnknownVertex)
	_, err = g.Distances(VertexID(999))
	assert.ErrorIs(t, err, ErrUnknownVertex)
}

func TestDistancesFromPole(t *testing.T) {
	g, err := Build(3)
	require.NoError(t, err)
	dist, err := g.Distances(NorthPole)
	require.NoError(t, err)
	assert.Equal(t, 0, dist[NorthPole])
	assert.Equal(t, 9, dist[SouthPole])
	for _, d := range dist {
		assert.GreaterOrEqual(t, d, 0)
	}
}

func TestDefaultRingsConcurrent(t *testing.T) {
	g, err := Build(5)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]Ring, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = g.DefaultRings()
		}(i)
	}
	wg.Wait()
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}

func TestDefaultRingsReturnsCopy(t *testing.T) {
	g, err := Build(1)
	require.NoError(t, err)
	r := g.DefaultRings()
	r[0][0] = Face{}
	assert.NotEqual(t, Face{}, g.DefaultRings()[0][0])
}
