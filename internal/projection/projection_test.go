package projection

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAzimuthal(t *testing.T) {
	p := Azimuthal{}
	tests := []struct {
		name string
		in   r3.Vector
		want r2.Point
	}{
		{"north pole", r3.Vector{Z: 1}, r2.Point{}},
		{"equator +x", r3.Vector{X: 1}, r2.Point{X: 0.5}},
		{"equator +y", r3.Vector{Y: 2}, r2.Point{Y: 0.5}},
		{"south pole", r3.Vector{Z: -1}, r2.Point{X: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Project(tt.in)
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-12)
		})
	}
}

func TestMercator(t *testing.T) {
	p := Mercator{}
	got := p.Project(r3.Vector{X: 1})
	assert.InDelta(t, -1, got.X, 1e-12)
	assert.InDelta(t, 0, got.Y, 1e-12)

	got = p.Project(r3.Vector{X: -1})
	assert.InDelta(t, 0, got.X, 1e-12)

	north := p.Project(r3.Vector{Z: 1})
	south := p.Project(r3.Vector{Z: -1})
	assert.False(t, math.IsInf(north.Y, 0))
	assert.InDelta(t, -north.Y, south.Y, 1e-12)
	assert.InDelta(t, math.Log(math.Tan(math.Pi/4+MaxLatitude/2))/math.Pi, north.Y, 1e-9)
}

func TestTriangleSeam(t *testing.T) {
	a := r3.Vector{X: 1, Y: -0.1}
	b := r3.Vector{X: 1, Y: 0.1}
	c := r3.Vector{X: 1, Z: 0.2}
	tri := Triangle(Mercator{}, [3]r3.Vector{a, b, c})
	for _, q := range tri {
		for _, o := range tri {
			assert.Less(t, math.Abs(q.X-o.X), 1.0)
		}
	}
}

func TestTrianglePole(t *testing.T) {
	a := r3.Vector{Z: 1}
	b := r3.Vector{X: 1, Z: 0.5}
	c := r3.Vector{Y: 1, Z: 0.5}
	tri := Triangle(Mercator{}, [3]r3.Vector{a, b, c})
	assert.InDelta(t, (tri[1].X+tri[2].X)/2, tri[0].X, 1e-12)

	// Azimuthal needs no fixing.
	az := Triangle(Azimuthal{}, [3]r3.Vector{a, b, c})
	assert.Equal(t, Azimuthal{}.Project(a), az[0])
}

func TestByName(t *testing.T) {
	for _, n := range Names() {
		p, err := ByName(n)
		require.NoError(t, err)
		assert.Equal(t, n, p.Name())
	}
	_, err := ByName("gnomonic")
	assert.ErrorIs(t, err, ErrUnknownProjection)
}

func TestBounds(t *testing.T) {
	r := Bounds(r2.Point{X: -1, Y: 2}, r2.Point{X: 3, Y: -4})
	assert.Equal(t, r2.Point{X: -1, Y: -4}, r.Lo())
	assert.Equal(t, r2.Point{X: 3, Y: 2}, r.Hi())
}
