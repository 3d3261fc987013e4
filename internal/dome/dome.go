package dome

import (
	"fmt"
	"sync"

	"github.com/idralyuk/GradienTea-sub001/internal/geodesic"
	"github.com/idralyuk/GradienTea-sub001/internal/logging"
)

// Dome is the top TotalLayers rings of a geodesic sphere. It is read-only
// after New returns; the lighted face set is derived once on first use.
type Dome struct {
	spec     Spec
	geometry *geodesic.Geometry
	rings    []geodesic.Ring

	lightedOnce sync.Once
	lighted     []geodesic.Face
}

// New validates spec and builds its geometry.
func New(spec Spec) (*Dome, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	g, err := geodesic.Build(spec.Frequency)
	if err != nil {
		return nil, fmt.Errorf("new dome: %w", err)
	}
	return NewWithGeometry(spec, g)
}

// NewWithGeometry builds a dome over an existing geometry, so domes that
// differ only in layer counts can share one subdivision.
func NewWithGeometry(spec Spec, g *geodesic.Geometry) (*Dome, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if g == nil || g.Frequency() != spec.Frequency {
		return nil, fmt.Errorf("new dome: geometry frequency does not match %d: %w", spec.Frequency, ErrGeometryMismatch)
	}

	all := g.DefaultRings()
	if len(all) != spec.MaxLayers() {
		return nil, fmt.Errorf("new dome: %d rings, want %d: %w", len(all), spec.MaxLayers(), ErrGeometryMismatch)
	}
	d := &Dome{spec: spec, geometry: g, rings: all[:spec.TotalLayers]}

	want, err := spec.PredictedFaceCount(spec.TotalLayers)
	if err != nil {
		return nil, err
	}
	if got := countFaces(d.rings); got != want {
		return nil, fmt.Errorf("new dome: %d faces in %d layers, predicted %d: %w", got, spec.TotalLayers, want, ErrGeometryMismatch)
	}

	logging.Logger().Debug("dome built",
		"frequency", spec.Frequency,
		"layers", spec.TotalLayers,
		"lighted_layers", spec.LightedLayers,
		"faces", want)
	return d, nil
}

func countFaces(rings []geodesic.Ring) int {
	n := 0
	for _, r := range rings {
		n += len(r)
	}
	return n
}

func flatten(rings []geodesic.Ring) []geodesic.Face {
	out := make([]geodesic.Face, 0, countFaces(rings))
	for _, r := range rings {
		out = append(out, r...)
	}
	return out
}

// Spec returns the specification the dome was built from.
func (d *Dome) Spec() Spec { return d.spec }

// Geometry returns the full sphere the dome was cut from.
func (d *Dome) Geometry() *geodesic.Geometry { return d.geometry }

// Layers returns the number of rings in the dome.
func (d *Dome) Layers() int { return len(d.rings) }

// Ring returns a copy of ring i, counted from the top.
func (d *Dome) Ring(i int) (geodesic.Ring, error) {
	if i < 0 || i >= len(d.rings) {
		return nil, fmt.Errorf("ring %d not in [0,%d): %w", i, len(d.rings), ErrLayerOutOfRange)
	}
	return append(geodesic.Ring(nil), d.rings[i]...), nil
}

// Faces returns every dome face, ring by ring.
func (d *Dome) Faces() []geodesic.Face {
	return flatten(d.rings)
}

// FacesInLayers returns the union of the first layers rings.
func (d *Dome) FacesInLayers(layers int) ([]geodesic.Face, error) {
	if layers < 0 || layers > len(d.rings) {
		return nil, fmt.Errorf("layers %d not in [0,%d]: %w", layers, len(d.rings), ErrLayerOutOfRange)
	}
	return flatten(d.rings[:layers]), nil
}

// LightedFaces returns the faces of the first LightedLayers rings. The set
// is computed once per dome, however many goroutines ask concurrently.
func (d *Dome) LightedFaces() []geodesic.Face {
	d.lightedOnce.Do(func() {
		d.lighted = flatten(d.rings[:d.spec.LightedLayers])
		logging.Logger().Debug("lighted faces computed", "faces", len(d.lighted))
	})
	return append([]geodesic.Face(nil), d.lighted...)
}

// LightedRings returns copies of the lighted rings.
func (d *Dome) LightedRings() []geodesic.Ring {
	out := make([]geodesic.Ring, d.spec.LightedLayers)
	for i := range out {
		out[i] = append(geodesic.Ring(nil), d.rings[i]...)
	}
	return out
}

// LowestVertex returns the lowest vertex of the dome's faces. ok is false
// for a dome with no layers.
func (d *Dome) LowestVertex() (geodesic.VertexID, bool) {
	return d.geometry.LowestVertexOf(d.Faces())
}
