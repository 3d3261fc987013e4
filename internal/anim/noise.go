package anim

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
)

const (
	skew   = 0.3660254037844386  // (√3 − 1) / 2
	unskew = 0.21132486540518713 // (3 − √3) / 6
)

// noiseField samples looping fractal simplex noise at points on the dome.
// A point is flattened onto the plane and offset by a drift that travels a
// circle of radius drift once per cycle.
type noiseField struct {
	perm    [512]uint8
	freq    float64
	octaves int
	drift   float64
}

func newNoiseField(seed int64, freq float64, octaves int, drift float64) *noiseField {
	nf := &noiseField{freq: freq, octaves: max(octaves, 1), drift: drift}
	order := rand.New(rand.NewSource(seed)).Perm(256)
	for i := range nf.perm {
		nf.perm[i] = uint8(order[i&255])
	}
	return nf
}

// sample returns the field at p for cycle fraction f, in [0, 1].
func (nf *noiseField) sample(p r3.Vector, f float64) float64 {
	x := p.X + p.Z + nf.drift*math.Cos(2*math.Pi*f)
	y := p.Y - p.Z + nf.drift*math.Sin(2*math.Pi*f)

	var sum, norm float64
	amp, freq := 1.0, nf.freq
	for o := 0; o < nf.octaves; o++ {
		sum += amp * nf.at(x*freq, y*freq)
		norm += amp
		amp /= 2
		freq *= 2
	}
	return (sum/norm + 1) / 2
}

// at is single-octave 2-D simplex noise in [-1, 1].
func (nf *noiseField) at(x, y float64) float64 {
	s := (x + y) * skew
	ci, cj := math.Floor(x+s), math.Floor(y+s)
	t := (ci + cj) * unskew
	dx, dy := x-ci+t, y-cj+t

	// The middle corner of the triangle depends on which half of the
	// skewed cell the point falls in.
	var mi, mj int
	if dx > dy {
		mi = 1
	} else {
		mj = 1
	}
	offsets := [3][2]int{{0, 0}, {mi, mj}, {1, 1}}

	i, j := int(ci)&255, int(cj)&255
	var n float64
	for k, off := range offsets {
		px := dx - float64(off[0]) + float64(k)*unskew
		py := dy - float64(off[1]) + float64(k)*unskew
		w := 0.5 - px*px - py*py
		if w <= 0 {
			continue
		}
		h := nf.perm[i+off[0]+int(nf.perm[j+off[1]])]
		w *= w
		n += w * w * gradient(h, px, py)
	}
	return 70 * n
}

// gradient dots (x, y) with one of eight directions picked by h.
func gradient(h uint8, x, y float64) float64 {
	if h&4 != 0 {
		x, y = y, x
	}
	if h&1 != 0 {
		x = -x
	}
	if h&2 != 0 {
		y = -y
	}
	return x + y
}
