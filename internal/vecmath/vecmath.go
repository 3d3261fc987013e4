// Package vecmath collects the small numeric helpers used by the geometry
// and projection code. Vectors are r3.Vector values and are never mutated.
package vecmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Epsilon is the tolerance used for float comparisons on unit-sphere data.
const Epsilon = 1e-9

// ScaleTo returns v stretched to the given length. The zero vector stays zero.
func ScaleTo(v r3.Vector, length float64) r3.Vector {
	return v.Normalize().Mul(length)
}

// WithX returns v with its X component replaced.
func WithX(v r3.Vector, x float64) r3.Vector { return r3.Vector{X: x, Y: v.Y, Z: v.Z} }

// WithY returns v with its Y component replaced.
func WithY(v r3.Vector, y float64) r3.Vector { return r3.Vector{X: v.X, Y: y, Z: v.Z} }

// WithZ returns v with its Z component replaced.
func WithZ(v r3.Vector, z float64) r3.Vector { return r3.Vector{X: v.X, Y: v.Y, Z: z} }

// Lerp interpolates linearly between a and b.
func Lerp(a, b r3.Vector, t float64) r3.Vector {
	return a.Add(b.Sub(a).Mul(t))
}

// Centroid returns the arithmetic mean of the given points.
func Centroid(points ...r3.Vector) r3.Vector {
	if len(points) == 0 {
		return r3.Vector{}
	}
	var sum r3.Vector
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}

// ApproxEqual reports whether a and b are within Epsilon on every axis.
func ApproxEqual(a, b r3.Vector) bool {
	return math.Abs(a.X-b.X) <= Epsilon &&
		math.Abs(a.Y-b.Y) <= Epsilon &&
		math.Abs(a.Z-b.Z) <= Epsilon
}

// Azimuth is the angle of v around the Z axis, in [0, 2π).
func Azimuth(v r3.Vector) float64 {
	return NormalizeAngle(math.Atan2(v.Y, v.X))
}

// Elevation is the angle of v above the XY plane, in [-π/2, π/2].
func Elevation(v r3.Vector) float64 {
	n := v.Norm()
	if n == 0 {
		return 0
	}
	return math.Asin(Clamp(v.Z/n, -1, 1))
}

// NormalizeAngle wraps a radian angle into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// NormalizeDegrees wraps a degree angle into [0, 360).
func NormalizeDegrees(a float64) float64 {
	return NormalizeAngle(a*math.Pi/180) * 180 / math.Pi
}

// WrapUnit wraps x into [0, 1).
func WrapUnit(x float64) float64 {
	x -= math.Floor(x)
	if x >= 1 {
		x = 0
	}
	return x
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampInt limits x to [lo, hi].
func ClampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Atanh is the inverse hyperbolic tangent with its argument pulled just inside
// (-1, 1), so the poles map to large finite values instead of ±Inf.
func Atanh(x float64) float64 {
	const limit = 1 - 1e-12
	return math.Atanh(Clamp(x, -limit, limit))
}

// ExpScale maps x in [0,1] onto an exponential curve through (0,0) and (1,1).
// k > 0 bends the curve down (slow start), k < 0 bends it up, k == 0 is linear.
func ExpScale(x, k float64) float64 {
	if math.Abs(k) < Epsilon {
		return x
	}
	return (math.Exp(k*x) - 1) / (math.Exp(k) - 1)
}
