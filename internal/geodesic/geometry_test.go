package geodesic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRejectsFrequency(t *testing.T) {
	for _, f := range []int{-1, 0, MaxFrequency + 1} {
		g, err := Build(f)
		assert.Nil(t, g)
		assert.ErrorIs(t, err, ErrInvalidFrequency)
	}
}

func TestBuildCounts(t *testing.T) {
	for f := 1; f <= 8; f++ {
		g, err := Build(f)
		require.NoError(t, err)

		assert.Equal(t, 10*f*f+2, g.VertexCount(), "vertices at F=%d", f)
		assert.Len(t, g.Faces(), 20*f*f, "faces at F=%d", f)
		assert.Len(t, g.Edges(), 30*f*f, "edges at F=%d", f)
		// Closed mesh: each face has three edges, each edge two faces.
		assert.Equal(t, 3*len(g.Faces())/2, len(g.Edges()))
	}
}

func TestEveryEdgeSharedByTwoFaces(t *testing.T) {
	g, err := Build(4)
	require.NoError(t, err)

	count := make(map[Edge]int)
	for _, f := range g.Faces() {
		for _, e := range f.Edges() {
			count[e]++
		}
	}
	require.Len(t, count, len(g.Edges()))
	for _, e := range g.Edges() {
		assert.Equal(t, 2, count[e], "edge %v", e)
	}
}

func TestVerticesOnUnitSphere(t *testing.T) {
	g, err := Build(5)
	require.NoError(t, err)
	for i, v := range g.Vertices() {
		assert.InDelta(t, 1, v.Norm(), 1e-12, "vertex %d", i)
	}

	scaled, err := g.VertexAt(NorthPole, 12.5)
	require.NoError(t, err)
	assert.InDelta(t, 12.5, scaled.Z, 1e-12)

	_, err = g.Vertex(VertexID(g.VertexCount()))
	assert.ErrorIs(t, err, ErrUnknownVertex)
}

func TestFacesWoundOutward(t *testing.T) {
	g, err := Build(3)
	require.NoError(t, err)
	vs := g.Vertices()
	for _, f := range g.Faces() {
		a, b, c := vs[f.A], vs[f.B], vs[f.C]
		normal := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, normal.Dot(g.Centroid(f)), 0.0, "face %v", f)
	}
}

func TestNoDuplicateFaces(t *testing.T) {
	g, err := Build(6)
	require.NoError(t, err)
	seen := make(map[Face]bool)
	for _, f := range g.Faces() {
		assert.False(t, seen[f], "duplicate face %v", f)
		seen[f] = true
	}
}

func TestValueEquality(t *testing.T) {
	assert.Equal(t, NewEdge(3, 7), NewEdge(7, 3))
	assert.Equal(t, NewFace(4, 1, 9), NewFace(1, 9, 4))
	assert.Equal(t, NewFace(4, 1, 9), NewFace(9, 4, 1))
	assert.NotEqual(t, NewFace(1, 4, 9), NewFace(1, 9, 4), "opposite winding")
}

func TestBuildIsDeterministic(t *testing.T) {
	a, err := Build(4)
	require.NoError(t, err)
	b, err := Build(4)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Faces(), b.Faces())
	assert.Equal(t, a.Edges(), b.Edges())

	c, err := Build(3)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}

func TestLowestVertex(t *testing.T) {
	g, err := Build(2)
	require.NoError(t, err)
	assert.Equal(t, SouthPole, g.LowestVertex())

	top := g.DefaultRings()[0]
	low, ok := g.LowestVertexOf(top)
	require.True(t, ok)
	v, _ := g.Vertex(low)
	assert.Less(t, v.Z, 1.0)

	_, ok = g.LowestVertexOf(nil)
	assert.False(t, ok)
}

func TestNeighbors(t *testing.T) {
	g, err := Build(3)
	require.NoError(t, err)

	poleNeighbors, err := g.Neighbors(NorthPole)
	require.NoError(t, err)
	assert.Len(t, poleNeighbors, 5, "icosahedron corners have valence 5")

	// Non-corner vertices have valence 6.
	n, err := g.Neighbors(VertexID(icosaVertexCount))
	require.NoError(t, err)
	assert.Len(t, n, 6)
}
