package geodesic

import (
	"math"

	"github.com/golang/geo/r3"
)

const (
	// NorthPole is the id of the icosahedron corner on +Z.
	NorthPole VertexID = 0
	// SouthPole is the id of the icosahedron corner on -Z.
	SouthPole VertexID = 11

	icosaVertexCount = 12
	icosaFaceCount   = 20
)

// icosaVertices places one corner on each pole and two pentagonal rings at
// z = ±1/√5. The lower ring is rotated by 36° against the upper one.
func icosaVertices() []r3.Vector {
	h := 1 / math.Sqrt(5)
	r := 2 / math.Sqrt(5)

	vs := make([]r3.Vector, 0, icosaVertexCount)
	vs = append(vs, r3.Vector{X: 0, Y: 0, Z: 1})
	for k := 0; k < 5; k++ {
		a := float64(k) * 2 * math.Pi / 5
		vs = append(vs, r3.Vector{X: r * math.Cos(a), Y: r * math.Sin(a), Z: h})
	}
	for k := 0; k < 5; k++ {
		a := (float64(k) + 0.5) * 2 * math.Pi / 5
		vs = append(vs, r3.Vector{X: r * math.Cos(a), Y: r * math.Sin(a), Z: -h})
	}
	vs = append(vs, r3.Vector{X: 0, Y: 0, Z: -1})
	return vs
}

// icosaFaces lists the twenty faces top cap first, then the middle band,
// then the bottom cap, each wound counter-clockwise seen from outside.
func icosaFaces() [][3]VertexID {
	upper := func(k int) VertexID { return VertexID(1 + (k+5)%5) }
	lower := func(k int) VertexID { return VertexID(6 + (k+5)%5) }

	fs := make([][3]VertexID, 0, icosaFaceCount)
	for k := 0; k < 5; k++ {
		fs = append(fs, [3]VertexID{NorthPole, upper(k), upper(k + 1)})
	}
	for k := 0; k < 5; k++ {
		fs = append(fs, [3]VertexID{upper(k), lower(k - 1), lower(k)})
		fs = append(fs, [3]VertexID{lower(k), upper(k + 1), upper(k)})
	}
	for k := 0; k < 5; k++ {
		fs = append(fs, [3]VertexID{SouthPole, lower(k + 1), lower(k)})
	}
	return fs
}
