package geodesic

import "fmt"

// VertexID indexes a vertex of a Geometry. The twelve icosahedron corners
// always occupy ids 0..11, with 0 at the north pole and 11 at the south pole.
type VertexID int

// Edge is an unordered vertex pair stored with A < B, so two edges built
// from the same endpoints compare equal whatever order they were given in.
type Edge struct {
	A, B VertexID
}

// NewEdge returns the canonical edge between a and b.
func NewEdge(a, b VertexID) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Has reports whether v is an endpoint of e.
func (e Edge) Has(v VertexID) bool { return e.A == v || e.B == v }

func (e Edge) String() string { return fmt.Sprintf("%d-%d", e.A, e.B) }

// Face is a triangle wound counter-clockwise when seen from outside the
// sphere. It is stored rotated so the smallest id comes first; rotation
// keeps the winding, so equal triangles compare equal as values.
type Face struct {
	A, B, C VertexID
}

// NewFace returns the canonical face for the winding a→b→c.
func NewFace(a, b, c VertexID) Face {
	switch {
	case a <= b && a <= c:
		return Face{A: a, B: b, C: c}
	case b <= a && b <= c:
		return Face{A: b, B: c, C: a}
	default:
		return Face{A: c, B: a, C: b}
	}
}

// Vertices returns the corners in winding order.
func (f Face) Vertices() [3]VertexID { return [3]VertexID{f.A, f.B, f.C} }

// Edges returns the three canonical edges of the face.
func (f Face) Edges() [3]Edge {
	return [3]Edge{NewEdge(f.A, f.B), NewEdge(f.B, f.C), NewEdge(f.C, f.A)}
}

// Has reports whether v is a corner of f.
func (f Face) Has(v VertexID) bool { return f.A == v || f.B == v || f.C == v }

func (f Face) String() string { return fmt.Sprintf("(%d,%d,%d)", f.A, f.B, f.C) }

// Ring is the ordered set of faces at one step distance from a pole.
type Ring []Face
