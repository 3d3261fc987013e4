package vecmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

func TestScaleTo(t *testing.T) {
	v := ScaleTo(r3.Vector{X: 3, Y: 4}, 10)
	assert.InDelta(t, 10, v.Norm(), 1e-12)
	assert.InDelta(t, 6, v.X, 1e-12)
	assert.InDelta(t, 8, v.Y, 1e-12)

	assert.Equal(t, r3.Vector{}, ScaleTo(r3.Vector{}, 5))
}

func TestWithAxis(t *testing.T) {
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	assert.Equal(t, r3.Vector{X: 9, Y: 2, Z: 3}, WithX(v, 9))
	assert.Equal(t, r3.Vector{X: 1, Y: 9, Z: 3}, WithY(v, 9))
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 9}, WithZ(v, 9))
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, v, "original must be untouched")
}

func TestDistanceAndCentroid(t *testing.T) {
	a := r3.Vector{X: 0, Y: 0, Z: 0}
	b := r3.Vector{X: 0, Y: 3, Z: 4}
	assert.InDelta(t, 5, a.Distance(b), 1e-12)

	c := Centroid(r3.Vector{X: 3}, r3.Vector{Y: 3}, r3.Vector{Z: 3})
	assert.True(t, ApproxEqual(r3.Vector{X: 1, Y: 1, Z: 1}, c))
	assert.Equal(t, r3.Vector{}, Centroid())
}

func TestLerp(t *testing.T) {
	got := Lerp(r3.Vector{X: 0}, r3.Vector{X: 10, Y: 20}, 0.25)
	assert.True(t, ApproxEqual(r3.Vector{X: 2.5, Y: 5}, got))
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"negative quarter", -math.Pi / 2, 3 * math.Pi / 2},
		{"full turn", 2 * math.Pi, 0},
		{"three halves turns", 3 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeAngle(tt.in), 1e-12)
		})
	}
	assert.InDelta(t, 350, NormalizeDegrees(-10), 1e-9)
	assert.InDelta(t, 10, NormalizeDegrees(370), 1e-9)
}

func TestWrapUnit(t *testing.T) {
	assert.InDelta(t, 0.25, WrapUnit(1.25), 1e-12)
	assert.InDelta(t, 0.75, WrapUnit(-0.25), 1e-12)
	assert.Equal(t, 0.0, WrapUnit(1))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, 255, ClampInt(300, 0, 255))
	assert.Equal(t, 0, ClampInt(-3, 0, 255))
}

func TestAtanh(t *testing.T) {
	assert.InDelta(t, math.Atanh(0.5), Atanh(0.5), 1e-15)
	assert.False(t, math.IsInf(Atanh(1), 0))
	assert.False(t, math.IsInf(Atanh(-1), 0))
	assert.Greater(t, Atanh(1), 10.0)
}

func TestExpScale(t *testing.T) {
	for _, k := range []float64{-3, 0, 2, 5} {
		assert.InDelta(t, 0, ExpScale(0, k), 1e-12)
		assert.InDelta(t, 1, ExpScale(1, k), 1e-12)
	}
	assert.Less(t, ExpScale(0.5, 4), 0.5)
	assert.Greater(t, ExpScale(0.5, -4), 0.5)
	assert.InDelta(t, 0.3, ExpScale(0.3, 0), 1e-12)
}

func TestAzimuthElevation(t *testing.T) {
	assert.InDelta(t, math.Pi/2, Azimuth(r3.Vector{Y: 1}), 1e-12)
	assert.InDelta(t, 3*math.Pi/2, Azimuth(r3.Vector{Y: -1}), 1e-12)
	assert.InDelta(t, math.Pi/2, Elevation(r3.Vector{Z: 2}), 1e-12)
	assert.InDelta(t, 0, Elevation(r3.Vector{X: 1}), 1e-12)
	assert.Equal(t, 0.0, Elevation(r3.Vector{}))
}
