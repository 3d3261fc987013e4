// Package projection flattens points on the unit sphere into the plane for
// previews of the dome.
package projection

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/idralyuk/GradienTea-sub001/internal/vecmath"
)

// ErrUnknownProjection is returned by ByName for an unregistered name.
var ErrUnknownProjection = errors.New("projection: unknown projection")

// MaxLatitude bounds Mercator, which diverges at the poles.
const MaxLatitude = 85 * math.Pi / 180

// Projection maps a direction in 3-D to a point in the plane.
type Projection interface {
	Name() string
	Project(v r3.Vector) r2.Point
}

// Azimuthal is the polar azimuthal equidistant projection around +Z. The
// north pole lands at the origin, the equator on the circle of radius 0.5
// and the south pole on the unit circle.
type Azimuthal struct{}

func (Azimuthal) Name() string { return "azimuthal" }

func (Azimuthal) Project(v r3.Vector) r2.Point {
	r := (math.Pi/2 - vecmath.Elevation(v)) / math.Pi
	a := vecmath.Azimuth(v)
	return r2.Point{X: r * math.Cos(a), Y: r * math.Sin(a)}
}

// Mercator is the cylindrical conformal projection. X spans [-1, 1) over a
// full turn of azimuth; Y is the Mercator ordinate scaled by 1/π so both
// axes share units. Latitude is clamped to ±MaxLatitude.
type Mercator struct{}

func (Mercator) Name() string { return "mercator" }

func (Mercator) Project(v r3.Vector) r2.Point {
	lat := vecmath.Clamp(vecmath.Elevation(v), -MaxLatitude, MaxLatitude)
	return r2.Point{
		X: vecmath.Azimuth(v)/math.Pi - 1,
		Y: vecmath.Atanh(math.Sin(lat)) / math.Pi,
	}
}

var projections = map[string]Projection{
	"azimuthal": Azimuthal{},
	"mercator":  Mercator{},
}

// ByName returns a registered projection.
func ByName(name string) (Projection, error) {
	p, ok := projections[name]
	if !ok {
		return nil, fmt.Errorf("projection %q: %w", name, ErrUnknownProjection)
	}
	return p, nil
}

// Names lists the registered projections in sorted order.
func Names() []string {
	out := make([]string, 0, len(projections))
	for n := range projections {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Triangle projects the corners of one face. For Mercator the corners are
// kept on one side of the azimuth seam, and a corner sitting on a pole takes
// the mean X of the other two, since its azimuth is undefined.
func Triangle(p Projection, corners [3]r3.Vector) [3]r2.Point {
	var out [3]r2.Point
	for i, c := range corners {
		out[i] = p.Project(c)
	}
	if _, ok := p.(Mercator); !ok {
		return out
	}

	lo, hi := out[0].X, out[0].X
	for _, q := range out[1:] {
		lo, hi = math.Min(lo, q.X), math.Max(hi, q.X)
	}
	if hi-lo > 1 {
		for i := range out {
			if out[i].X < 0 {
				out[i].X += 2
			}
		}
	}

	for i, c := range corners {
		if !atPole(c) {
			continue
		}
		var sum float64
		var n int
		for j := range corners {
			if j != i && !atPole(corners[j]) {
				sum += out[j].X
				n++
			}
		}
		if n > 0 {
			out[i].X = sum / float64(n)
		}
	}
	return out
}

func atPole(v r3.Vector) bool {
	return math.Hypot(v.X, v.Y) <= vecmath.Epsilon*v.Norm()
}

// Bounds returns the smallest rectangle containing every point.
func Bounds(points ...r2.Point) r2.Rect {
	return r2.RectFromPoints(points...)
}
