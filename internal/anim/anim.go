// Package anim produces the pixel values of one frame from a playback
// fraction. Animations are pure: the same fraction always yields the same
// values.
package anim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/idralyuk/GradienTea-sub001/internal/color"
	"github.com/idralyuk/GradienTea-sub001/internal/dome"
	"github.com/idralyuk/GradienTea-sub001/internal/pixel"
	"github.com/idralyuk/GradienTea-sub001/internal/vecmath"
)

// ErrUnknownAnimation is returned by ByName for an unregistered name.
var ErrUnknownAnimation = errors.New("anim: unknown animation")

// Animation renders the pixel values for a point in its cycle. fraction is
// wrapped into [0, 1) before use.
type Animation interface {
	Render(fraction float64) []pixel.PixelValue
}

// Func adapts a plain function to Animation.
type Func func(fraction float64) []pixel.PixelValue

func (f Func) Render(fraction float64) []pixel.PixelValue { return f(vecmath.WrapUnit(fraction)) }

// Solid paints the whole tree one color.
func Solid(root *pixel.Group, c color.Color) Animation {
	return Func(func(float64) []pixel.PixelValue {
		return root.ApplyColor(c)
	})
}

// Rainbow gives each ring its own hue, spread evenly over one turn, and
// rotates all of them once per cycle.
func Rainbow(l *dome.Layout) Animation {
	n := float64(len(l.Rings))
	return Func(func(f float64) []pixel.PixelValue {
		var out []pixel.PixelValue
		for i, ring := range l.Rings {
			hue := f + float64(i)/n
			out = append(out, ring.ApplyColor(color.NewHSB(hue, 1, 1))...)
		}
		return out
	})
}

// Pulse breathes the whole tree in and out once per cycle at a fixed hue.
// Brightness follows an exponential curve of sharpness k so the fade reads
// evenly to the eye.
func Pulse(root *pixel.Group, hue, k float64) Animation {
	return Func(func(f float64) []pixel.PixelValue {
		tri := 1 - math.Abs(2*f-1)
		return root.ApplyColor(color.NewHSB(hue, 1, vecmath.ExpScale(tri, k)))
	})
}

// Noise colors every face from fractal simplex noise sampled at the face
// centroid. The sample point travels a circle once per cycle, so the
// animation loops seamlessly.
func Noise(l *dome.Layout, seed int64) Animation {
	field := newNoiseField(seed, 0.15, 3, 4)
	return Func(func(f float64) []pixel.PixelValue {
		var out []pixel.PixelValue
		for _, fn := range l.Faces {
			n := field.sample(fn.Centroid, f)
			out = append(out, fn.Group.ApplyColor(color.NewHSB(n, 1, 0.5+n/2))...)
		}
		return out
	})
}

// Sparkle overlays white flashes on a random subset of faces. The cycle is
// cut into steps; the faces lit in a step depend only on seed and step.
// Flashes carry priority 1 so they win under the highest compositor and
// brighten the base under the additive one.
func Sparkle(base Animation, l *dome.Layout, density float64, steps int, seed int64) Animation {
	if steps < 1 {
		steps = 1
	}
	flash := color.NewRGB(255, 255, 255).WithPriority(1)
	return Func(func(f float64) []pixel.PixelValue {
		out := base.Render(f)
		step := int(f * float64(steps))
		r := rand.New(rand.NewSource(seed*int64(steps) + int64(step)))
		for _, fn := range l.Faces {
			if r.Float64() < density {
				out = append(out, fn.Group.ApplyColor(flash)...)
			}
		}
		return out
	})
}

// Layered concatenates the values of several animations; overlaps are
// settled by the renderer's compositor.
func Layered(anims ...Animation) Animation {
	return Func(func(f float64) []pixel.PixelValue {
		var out []pixel.PixelValue
		for _, a := range anims {
			out = append(out, a.Render(f)...)
		}
		return out
	})
}

type factory func(l *dome.Layout) Animation

var registry = map[string]factory{
	"solid": func(l *dome.Layout) Animation {
		return Solid(l.Root, color.NewHSB(0.08, 0.35, 1))
	},
	"rainbow": Rainbow,
	"pulse": func(l *dome.Layout) Animation {
		return Pulse(l.Root, 0.6, 3)
	},
	"noise": func(l *dome.Layout) Animation {
		return Noise(l, 1)
	},
	"sparkle": func(l *dome.Layout) Animation {
		return Sparkle(Rainbow(l), l, 0.05, 40, 1)
	},
}

// ByName builds a registered animation over l.
func ByName(name string, l *dome.Layout) (Animation, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("animation %q: %w", name, ErrUnknownAnimation)
	}
	return mk(l), nil
}

// Names lists the registered animations in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
