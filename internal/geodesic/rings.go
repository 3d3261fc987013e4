package geodesic

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/r3"

	"github.com/idralyuk/GradienTea-sub001/internal/vecmath"
)

// Distances returns the number of edge steps from pole to every vertex.
func (g *Geometry) Distances(pole VertexID) ([]int, error) {
	if !g.valid(pole) {
		return nil, fmt.Errorf("distances from %d: %w", pole, ErrUnknownVertex)
	}
	dist := make([]int, len(g.vertices))
	for i := range dist {
		dist[i] = -1
	}
	dist[pole] = 0
	queue := []VertexID{pole}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, n := range g.neighbors[v] {
			if dist[n] < 0 {
				dist[n] = dist[v] + 1
				queue = append(queue, n)
			}
		}
	}
	return dist, nil
}

// Rings groups every face by its step distance from pole: ring k holds the
// faces whose nearest corner is k steps away, so ring 0 touches the pole.
// Faces inside a ring are ordered by azimuth around the pole axis.
func (g *Geometry) Rings(pole VertexID) ([]Ring, error) {
	dist, err := g.Distances(pole)
	if err != nil {
		return nil, err
	}

	type placed struct {
		face    Face
		azimuth float64
	}
	var buckets [][]placed
	u, w := poleFrame(g.vertices[pole])
	for _, f := range g.faces {
		d := min(dist[f.A], dist[f.B], dist[f.C])
		for len(buckets) <= d {
			buckets = append(buckets, nil)
		}
		c := g.Centroid(f)
		az := vecmath.NormalizeAngle(math.Atan2(c.Dot(w), c.Dot(u)))
		buckets[d] = append(buckets[d], placed{face: f, azimuth: az})
	}

	rings := make([]Ring, len(buckets))
	for k, b := range buckets {
		sort.SliceStable(b, func(i, j int) bool {
			if b[i].azimuth != b[j].azimuth {
				return b[i].azimuth < b[j].azimuth
			}
			return lessFace(b[i].face, b[j].face)
		})
		ring := make(Ring, len(b))
		for i, p := range b {
			ring[i] = p.face
		}
		rings[k] = ring
	}
	return rings, nil
}

// DefaultRings returns the rings around NorthPole. The result is computed
// once per geometry; callers get their own copy.
func (g *Geometry) DefaultRings() []Ring {
	g.ringsOnce.Do(func() {
		// NorthPole always exists, so the error is impossible here.
		g.rings, _ = g.Rings(NorthPole)
	})
	out := make([]Ring, len(g.rings))
	for i, r := range g.rings {
		out[i] = append(Ring(nil), r...)
	}
	return out
}

// poleFrame returns two unit vectors spanning the plane perpendicular to axis.
func poleFrame(axis r3.Vector) (u, w r3.Vector) {
	ref := r3.Vector{X: 1}
	if math.Abs(axis.X) > 0.9 {
		ref = r3.Vector{Y: 1}
	}
	u = ref.Sub(axis.Mul(ref.Dot(axis))).Normalize()
	w = axis.Cross(u).Normalize()
	return u, w
}

func lessFace(a, b Face) bool {
	if a.A != b.A {
		return a.A < b.A
	}
	if a.B != b.B {
		return a.B < b.B
	}
	return a.C < b.C
}
