package dome

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/idralyuk/GradienTea-sub001/internal/dmx"
	"github.com/idralyuk/GradienTea-sub001/internal/geodesic"
	"github.com/idralyuk/GradienTea-sub001/internal/pixel"
	"github.com/idralyuk/GradienTea-sub001/internal/vecmath"
)

// FaceNode ties one lighted face to its pixel group.
type FaceNode struct {
	Ring     int
	Index    int // position inside the ring
	Face     geodesic.Face
	Centroid r3.Vector // at the dome radius
	Group    *pixel.Group
}

// Layout is the pixel tree of a dome: root → rings → faces → pixels.
type Layout struct {
	Root  *pixel.Group
	Rings []*pixel.Group
	Faces []FaceNode
}

// Layout addresses pixelsPerFace pixels on every lighted face, in ring
// order, starting at startChannel of universe 1.
func (d *Dome) Layout(pixelsPerFace, startChannel int) (*Layout, error) {
	if pixelsPerFace < 1 {
		return nil, fmt.Errorf("layout: %d pixels per face: %w", pixelsPerFace, ErrInvalidSpec)
	}
	faces := d.LightedFaces()
	addrs, err := dmx.AssignAddresses(startChannel, len(faces)*pixelsPerFace)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	l := &Layout{Faces: make([]FaceNode, 0, len(faces))}
	next := 0
	for ri, ring := range d.LightedRings() {
		faceGroups := make([]*pixel.Group, 0, len(ring))
		for fi, f := range ring {
			leaves := make([]*pixel.Group, pixelsPerFace)
			for k := range leaves {
				leaves[k] = pixel.NewLeaf(addrs[next])
				next++
			}
			g := pixel.NewGroup(fmt.Sprintf("ring%d/face%d", ri, fi), leaves...)
			faceGroups = append(faceGroups, g)
			l.Faces = append(l.Faces, FaceNode{
				Ring:     ri,
				Index:    fi,
				Face:     f,
				Centroid: vecmath.ScaleTo(d.geometry.Centroid(f), d.spec.Radius),
				Group:    g,
			})
		}
		l.Rings = append(l.Rings, pixel.NewGroup(fmt.Sprintf("ring%d", ri), faceGroups...))
	}
	l.Root = pixel.NewGroup("dome", l.Rings...)
	return l, nil
}

// Pixels returns every addressed pixel in tree order.
func (l *Layout) Pixels() []pixel.Pixel {
	return l.Root.Pixels()
}
