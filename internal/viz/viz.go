// Package viz rasterizes a projected dome into an image.
package viz

import (
	"errors"
	"fmt"
	"image"
	stdcolor "image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"golang.org/x/image/vector"

	"github.com/idralyuk/GradienTea-sub001/internal/color"
	"github.com/idralyuk/GradienTea-sub001/internal/dome"
	"github.com/idralyuk/GradienTea-sub001/internal/geodesic"
	"github.com/idralyuk/GradienTea-sub001/internal/projection"
	"github.com/idralyuk/GradienTea-sub001/internal/vecmath"
)

// ErrNothingToDraw is returned for a layout without faces.
var ErrNothingToDraw = errors.New("viz: no faces to draw")

const (
	margin = 0.04 // of the image width, on every side
	inset  = 0.9  // panels are shrunk toward their centroid so seams show
)

var background = stdcolor.RGBA{R: 10, G: 10, B: 15, A: 255}

// FaceColor picks the fill of one face.
type FaceColor func(fn dome.FaceNode) color.RGB

// ByRing gives every ring its own hue.
func ByRing(rings int) FaceColor {
	return func(fn dome.FaceNode) color.RGB {
		return color.NewHSB(float64(fn.Ring)/float64(max(rings, 1)), 0.8, 1).RGB()
	}
}

// Options controls Render.
type Options struct {
	Width      int // pixels; height follows the projection's aspect
	Projection projection.Projection
	Color      FaceColor
}

// Render projects every face of l and fills it.
func Render(g *geodesic.Geometry, l *dome.Layout, opts Options) (*image.RGBA, error) {
	if len(l.Faces) == 0 {
		return nil, ErrNothingToDraw
	}
	if opts.Width < 16 {
		return nil, fmt.Errorf("viz: width %d too small", opts.Width)
	}
	if opts.Projection == nil {
		opts.Projection = projection.Azimuthal{}
	}
	if opts.Color == nil {
		opts.Color = ByRing(len(l.Rings))
	}

	tris := make([][3]r2.Point, len(l.Faces))
	var all []r2.Point
	for i, fn := range l.Faces {
		var corners [3]r3.Vector
		for k, id := range fn.Face.Vertices() {
			v, err := g.Vertex(id)
			if err != nil {
				return nil, fmt.Errorf("viz: %w", err)
			}
			corners[k] = v
		}
		tris[i] = projection.Triangle(opts.Projection, corners)
		all = append(all, tris[i][:]...)
	}

	bounds := projection.Bounds(all...)
	size := bounds.Size()
	inner := float64(opts.Width) * (1 - 2*margin)
	scale := inner / max(size.X, size.Y, vecmath.Epsilon)
	pad := float64(opts.Width) * margin
	w := opts.Width
	h := int(size.Y*scale + 2*pad + 0.5)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	// Image Y grows downward, so flip the projected Y axis.
	toImage := func(p r2.Point) (float32, float32) {
		x := (p.X-bounds.X.Lo)*scale + pad
		y := (bounds.Y.Hi-p.Y)*scale + pad
		return float32(x), float32(y)
	}

	z := vector.NewRasterizer(w, h)
	for i, tri := range tris {
		c := (tri[0].Add(tri[1]).Add(tri[2])).Mul(1.0 / 3)
		z.Reset(w, h)
		for k, p := range tri {
			x, y := toImage(c.Add(p.Sub(c).Mul(inset)))
			if k == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
		b := opts.Color(l.Faces[i]).Bytes()
		fill := image.NewUniform(stdcolor.RGBA{R: b[0], G: b[1], B: b[2], A: 255})
		z.Draw(img, img.Bounds(), fill, image.Point{})
	}
	return img, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
