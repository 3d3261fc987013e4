package geodesic

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/golang/geo/r3"

	"github.com/idralyuk/GradienTea-sub001/internal/logging"
	"github.com/idralyuk/GradienTea-sub001/internal/vecmath"
)

// MaxFrequency bounds the subdivision so a bad config cannot allocate
// hundreds of millions of faces.
const MaxFrequency = 128

// Geometry is a subdivided icosahedron on the unit sphere. It is immutable
// once Build returns and may be shared by any number of goroutines.
type Geometry struct {
	frequency int
	vertices  []r3.Vector
	edges     []Edge
	faces     []Face
	neighbors [][]VertexID

	ringsOnce sync.Once
	rings     []Ring
}

// latticeKey identifies a subdivision point by exact barycentric weights over
// icosahedron corners. Points shared by adjacent faces produce the same key,
// so deduplication never compares floats.
type latticeKey [3]struct {
	corner VertexID
	weight int
}

func newLatticeKey(corners [3]VertexID, weights [3]int) latticeKey {
	var k latticeKey
	n := 0
	for i := range corners {
		if weights[i] == 0 {
			continue
		}
		k[n].corner, k[n].weight = corners[i], weights[i]
		n++
	}
	sort.Slice(k[:n], func(i, j int) bool { return k[i].corner < k[j].corner })
	for ; n < 3; n++ {
		k[n].corner = -1
	}
	return k
}

// Build subdivides each icosahedron face into frequency² triangles and
// projects the lattice points onto the unit sphere.
func Build(frequency int) (*Geometry, error) {
	if frequency < 1 || frequency > MaxFrequency {
		return nil, fmt.Errorf("build geometry: frequency %d not in [1,%d]: %w", frequency, MaxFrequency, ErrInvalidFrequency)
	}

	corners := icosaVertices()
	g := &Geometry{frequency: frequency}
	ids := make(map[latticeKey]VertexID, 10*frequency*frequency+2)

	// Corners first so their ids are stable across frequencies.
	for i, c := range corners {
		key := newLatticeKey([3]VertexID{VertexID(i), -1, -1}, [3]int{frequency, 0, 0})
		ids[key] = VertexID(i)
		g.vertices = append(g.vertices, c)
	}

	point := func(tri [3]VertexID, i, j int) VertexID {
		w := [3]int{frequency - i - j, i, j}
		key := newLatticeKey(tri, w)
		if id, ok := ids[key]; ok {
			return id
		}
		p := corners[tri[0]].Mul(float64(w[0])).
			Add(corners[tri[1]].Mul(float64(w[1]))).
			Add(corners[tri[2]].Mul(float64(w[2])))
		id := VertexID(len(g.vertices))
		ids[key] = id
		g.vertices = append(g.vertices, p.Normalize())
		return id
	}

	g.faces = make([]Face, 0, icosaFaceCount*frequency*frequency)
	for _, tri := range icosaFaces() {
		for i := 0; i < frequency; i++ {
			for j := 0; j < frequency-i; j++ {
				g.faces = append(g.faces, NewFace(point(tri, i, j), point(tri, i+1, j), point(tri, i, j+1)))
				if i+j < frequency-1 {
					g.faces = append(g.faces, NewFace(point(tri, i+1, j), point(tri, i+1, j+1), point(tri, i, j+1)))
				}
			}
		}
	}

	edgeSet := make(map[Edge]struct{}, len(g.faces)*3/2)
	for _, f := range g.faces {
		for _, e := range f.Edges() {
			edgeSet[e] = struct{}{}
		}
	}
	g.edges = make([]Edge, 0, len(edgeSet))
	for e := range edgeSet {
		g.edges = append(g.edges, e)
	}
	sort.Slice(g.edges, func(i, j int) bool {
		if g.edges[i].A != g.edges[j].A {
			return g.edges[i].A < g.edges[j].A
		}
		return g.edges[i].B < g.edges[j].B
	})

	g.neighbors = make([][]VertexID, len(g.vertices))
	for _, e := range g.edges {
		g.neighbors[e.A] = append(g.neighbors[e.A], e.B)
		g.neighbors[e.B] = append(g.neighbors[e.B], e.A)
	}

	logging.Logger().Debug("geodesic geometry built",
		"frequency", frequency,
		"vertices", len(g.vertices),
		"edges", len(g.edges),
		"faces", len(g.faces))
	return g, nil
}

// Frequency returns the subdivision factor the geometry was built with.
func (g *Geometry) Frequency() int { return g.frequency }

// VertexCount returns the number of distinct vertices (10F²+2).
func (g *Geometry) VertexCount() int { return len(g.vertices) }

// Vertex returns the unit-sphere position of id.
func (g *Geometry) Vertex(id VertexID) (r3.Vector, error) {
	if !g.valid(id) {
		return r3.Vector{}, fmt.Errorf("vertex %d: %w", id, ErrUnknownVertex)
	}
	return g.vertices[id], nil
}

// VertexAt returns the position of id on a sphere of the given radius.
func (g *Geometry) VertexAt(id VertexID, radius float64) (r3.Vector, error) {
	v, err := g.Vertex(id)
	if err != nil {
		return r3.Vector{}, err
	}
	return vecmath.ScaleTo(v, radius), nil
}

// Vertices returns a copy of every unit-sphere position, indexed by VertexID.
func (g *Geometry) Vertices() []r3.Vector {
	return append([]r3.Vector(nil), g.vertices...)
}

// Edges returns a copy of the deduplicated edges sorted by (A, B).
func (g *Geometry) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Faces returns a copy of the faces in generation order.
func (g *Geometry) Faces() []Face {
	return append([]Face(nil), g.faces...)
}

// Neighbors returns the vertices sharing an edge with id.
func (g *Geometry) Neighbors(id VertexID) ([]VertexID, error) {
	if !g.valid(id) {
		return nil, fmt.Errorf("neighbors of %d: %w", id, ErrUnknownVertex)
	}
	return append([]VertexID(nil), g.neighbors[id]...), nil
}

// Centroid returns the unit-sphere centroid direction of f.
func (g *Geometry) Centroid(f Face) r3.Vector {
	return vecmath.Centroid(g.vertices[f.A], g.vertices[f.B], g.vertices[f.C]).Normalize()
}

// LowestVertex returns the vertex with the smallest Z. Ties go to the lower id.
func (g *Geometry) LowestVertex() VertexID {
	return lowestOf(g.vertices, allIDs(len(g.vertices)))
}

// LowestVertexOf returns the lowest vertex touched by faces.
func (g *Geometry) LowestVertexOf(faces []Face) (VertexID, bool) {
	if len(faces) == 0 {
		return 0, false
	}
	seen := make(map[VertexID]struct{})
	var cand []VertexID
	for _, f := range faces {
		for _, v := range f.Vertices() {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				cand = append(cand, v)
			}
		}
	}
	return lowestOf(g.vertices, cand), true
}

func lowestOf(vs []r3.Vector, cand []VertexID) VertexID {
	best := cand[0]
	for _, id := range cand[1:] {
		z, bz := vs[id].Z, vs[best].Z
		if z < bz-vecmath.Epsilon || (math.Abs(z-bz) <= vecmath.Epsilon && id < best) {
			best = id
		}
	}
	return best
}

func allIDs(n int) []VertexID {
	ids := make([]VertexID, n)
	for i := range ids {
		ids[i] = VertexID(i)
	}
	return ids
}

// Equal reports whether two geometries hold the same vertices, edges and faces.
func (g *Geometry) Equal(o *Geometry) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.frequency != o.frequency || len(g.vertices) != len(o.vertices) ||
		len(g.edges) != len(o.edges) || len(g.faces) != len(o.faces) {
		return false
	}
	for i := range g.vertices {
		if !vecmath.ApproxEqual(g.vertices[i], o.vertices[i]) {
			return false
		}
	}
	for i := range g.edges {
		if g.edges[i] != o.edges[i] {
			return false
		}
	}
	for i := range g.faces {
		if g.faces[i] != o.faces[i] {
			return false
		}
	}
	return true
}

func (g *Geometry) valid(id VertexID) bool {
	return id >= 0 && int(id) < len(g.vertices)
}
