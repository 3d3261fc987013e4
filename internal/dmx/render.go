package dmx

import (
	"fmt"

	"github.com/idralyuk/GradienTea-sub001/internal/color"
	"github.com/idralyuk/GradienTea-sub001/internal/pixel"
)

// Contributions is a Pixel→colors multimap built fresh for one render pass.
// Pixels keep the order in which they first received a color, and each
// pixel's colors keep application order.
type Contributions struct {
	order  []pixel.Pixel
	colors map[pixel.Pixel][]color.Color
}

// Collect groups values by pixel.
func Collect(values []pixel.PixelValue) *Contributions {
	c := &Contributions{colors: make(map[pixel.Pixel][]color.Color)}
	for _, v := range values {
		if _, seen := c.colors[v.Pixel]; !seen {
			c.order = append(c.order, v.Pixel)
		}
		c.colors[v.Pixel] = append(c.colors[v.Pixel], v.Color)
	}
	return c
}

// Pixels returns the touched pixels in first-touch order.
func (c *Contributions) Pixels() []pixel.Pixel {
	return append([]pixel.Pixel(nil), c.order...)
}

// Colors returns the colors that landed on p, in application order.
func (c *Contributions) Colors(p pixel.Pixel) []color.Color {
	return append([]color.Color(nil), c.colors[p]...)
}

// Reduce applies comp to every touched pixel.
func (c *Contributions) Reduce(comp color.Compositor) map[pixel.Pixel]color.RGB {
	out := make(map[pixel.Pixel]color.RGB, len(c.order))
	for _, p := range c.order {
		out[p] = comp.Composite(c.colors[p])
	}
	return out
}

// Renderer turns pixel values into frames for a fixed set of known pixels.
// It holds no per-frame state and may be used from several goroutines.
type Renderer struct {
	known      map[pixel.Pixel]struct{}
	pixels     []pixel.Pixel
	compositor color.Compositor
}

// NewRenderer validates every address up front. Repeated addresses are the
// same physical pixel and are registered once.
func NewRenderer(pixels []pixel.Pixel, comp color.Compositor) (*Renderer, error) {
	if comp == nil {
		comp = color.Average
	}
	r := &Renderer{
		known:      make(map[pixel.Pixel]struct{}, len(pixels)),
		compositor: comp,
	}
	for _, p := range pixels {
		if err := ValidatePixel(p); err != nil {
			return nil, fmt.Errorf("new renderer: %w", err)
		}
		if _, dup := r.known[p]; dup {
			continue
		}
		r.known[p] = struct{}{}
		r.pixels = append(r.pixels, p)
	}
	return r, nil
}

// Pixels returns the distinct registered pixels in registration order.
func (r *Renderer) Pixels() []pixel.Pixel {
	return append([]pixel.Pixel(nil), r.pixels...)
}

// Compositor returns the reduction used for pixels hit more than once.
func (r *Renderer) Compositor() color.Compositor { return r.compositor }

// Render produces a fresh frame. Pixels that receive no value stay black.
func (r *Renderer) Render(values []pixel.PixelValue) (*Frame, error) {
	return r.RenderOnto(nil, values)
}

// RenderOnto starts from a copy of prev, so untouched pixels keep their
// previous bytes. A nil prev is a black frame. prev is never modified.
// Any value naming an unregistered pixel fails the whole pass.
func (r *Renderer) RenderOnto(prev *Frame, values []pixel.PixelValue) (*Frame, error) {
	for _, v := range values {
		if _, ok := r.known[v.Pixel]; !ok {
			return nil, fmt.Errorf("render: pixel %v: %w", v.Pixel, ErrUnknownPixel)
		}
		if v.Color == nil {
			return nil, fmt.Errorf("render: pixel %v has no color: %w", v.Pixel, ErrNilColor)
		}
	}

	out := new(Frame)
	if prev != nil {
		*out = *prev
	}
	contrib := Collect(values)
	for _, p := range contrib.order {
		// Addresses were validated in NewRenderer.
		_ = out.Set(p, r.compositor.Composite(contrib.colors[p]))
	}
	return out, nil
}
