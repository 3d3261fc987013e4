// Package color defines the immutable color values an animation hands to
// the pixel tree, and the compositors that reduce several colors landing on
// one physical pixel to a single RGB triple.
package color

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/idralyuk/GradienTea-sub001/internal/vecmath"
)

// Color is anything that can be reduced to RGB and carries a composition
// priority. Implementations are value types and never change after creation.
type Color interface {
	RGB() RGB
	Priority() float64
}

// RGB holds channel intensities. Values are not clamped: additive blending
// may push them past 255 and clamping happens only when bytes are emitted.
type RGB struct {
	R, G, B  int
	priority float64
}

// NewRGB returns an RGB color with priority 0.
func NewRGB(r, g, b int) RGB {
	return RGB{R: r, G: g, B: b}
}

// Black is the color of a pixel nothing was rendered to.
var Black = NewRGB(0, 0, 0)

func (c RGB) RGB() RGB          { return c }
func (c RGB) Priority() float64 { return c.priority }
func (c RGB) String() string    { return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B) }

// WithPriority returns a copy of c carrying priority p.
func (c RGB) WithPriority(p float64) RGB {
	c.priority = p
	return c
}

// Add sums channels. The receiver's priority is kept.
func (c RGB) Add(o RGB) RGB {
	return RGB{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, priority: c.priority}
}

// Scale returns c with every channel multiplied by f and rounded.
func (c RGB) Scale(f float64) RGB {
	return RGB{
		R:        int(math.Round(float64(c.R) * f)),
		G:        int(math.Round(float64(c.G) * f)),
		B:        int(math.Round(float64(c.B) * f)),
		priority: c.priority,
	}
}

// Bytes clamps each channel into [0,255].
func (c RGB) Bytes() [3]byte {
	return [3]byte{clampByte(c.R), clampByte(c.G), clampByte(c.B)}
}

func clampByte(v int) byte {
	return byte(vecmath.ClampInt(v, 0, 255))
}

// Component is one optional HSB channel. The zero value is unset.
type Component struct {
	value float64
	set   bool
}

// Set returns a component holding v.
func Set(v float64) Component { return Component{value: v, set: true} }

// Unset is the absent component.
var Unset = Component{}

// Value returns the held value and whether it is set.
func (c Component) Value() (float64, bool) { return c.value, c.set }

// Or returns the value when set, def otherwise.
func (c Component) Or(def float64) float64 {
	if c.set {
		return c.value
	}
	return def
}

// HSB is a hue/saturation/brightness color whose channels may be unset.
// Hue is a fraction of a full turn and wraps; saturation and brightness
// are clamped to [0,1] on conversion.
type HSB struct {
	Hue, Saturation, Brightness Component
	priority                    float64
}

// NewHSB returns an HSB color with all three components set.
func NewHSB(h, s, b float64) HSB {
	return HSB{Hue: Set(h), Saturation: Set(s), Brightness: Set(b)}
}

func (c HSB) Priority() float64 { return c.priority }

// WithPriority returns a copy of c carrying priority p.
func (c HSB) WithPriority(p float64) HSB {
	c.priority = p
	return c
}

// Over fills every unset component of c from base. The priority of c is kept.
func (c HSB) Over(base HSB) HSB {
	out := c
	if !out.Hue.set {
		out.Hue = base.Hue
	}
	if !out.Saturation.set {
		out.Saturation = base.Saturation
	}
	if !out.Brightness.set {
		out.Brightness = base.Brightness
	}
	return out
}

// RGB converts c, substituting 0 for any unset component.
func (c HSB) RGB() RGB {
	h := vecmath.WrapUnit(c.Hue.Or(0)) * 360
	s := vecmath.Clamp(c.Saturation.Or(0), 0, 1)
	v := vecmath.Clamp(c.Brightness.Or(0), 0, 1)
	r, g, b := colorful.Hsv(h, s, v).RGB255()
	return RGB{R: int(r), G: int(g), B: int(b), priority: c.priority}
}

func (c HSB) String() string {
	f := func(x Component) string {
		if v, ok := x.Value(); ok {
			return fmt.Sprintf("%.3g", v)
		}
		return "-"
	}
	return fmt.Sprintf("hsb(%s,%s,%s)", f(c.Hue), f(c.Saturation), f(c.Brightness))
}
