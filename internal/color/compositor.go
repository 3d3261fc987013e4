package color

import (
	"fmt"
	"math"
	"sort"
)

// Compositor reduces every color that landed on one pixel to a single RGB.
// The result is not clamped; an empty input yields Black.
type Compositor interface {
	Composite(colors []Color) RGB
}

// CompositorFunc adapts a plain function to Compositor.
type CompositorFunc func(colors []Color) RGB

func (f CompositorFunc) Composite(colors []Color) RGB { return f(colors) }

var (
	// Replace keeps the last color in application order.
	Replace Compositor = CompositorFunc(replace)

	// Additive sums channels without clamping.
	Additive Compositor = CompositorFunc(additive)

	// Average is the equal-weight arithmetic mean of all contributions.
	Average Compositor = CompositorFunc(average)

	// PriorityWeighted averages contributions weighted by their priority.
	// Non-positive priorities carry no weight; when no contribution has
	// positive weight it falls back to Average.
	PriorityWeighted Compositor = CompositorFunc(priorityWeighted)

	// HighestPriority keeps the color with the largest priority. On ties the
	// later color wins, so equal priorities behave like Replace.
	HighestPriority Compositor = CompositorFunc(highestPriority)
)

var compositors = map[string]Compositor{
	"replace":  Replace,
	"additive": Additive,
	"average":  Average,
	"priority": PriorityWeighted,
	"highest":  HighestPriority,
}

// CompositorByName looks up a built-in compositor by its config name.
func CompositorByName(name string) (Compositor, error) {
	c, ok := compositors[name]
	if !ok {
		return nil, fmt.Errorf("compositor %q: %w", name, ErrUnknownCompositor)
	}
	return c, nil
}

// CompositorNames lists the registered names in sorted order.
func CompositorNames() []string {
	names := make([]string, 0, len(compositors))
	for n := range compositors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func replace(colors []Color) RGB {
	if len(colors) == 0 {
		return Black
	}
	return colors[len(colors)-1].RGB()
}

func additive(colors []Color) RGB {
	var sum RGB
	for _, c := range colors {
		sum = sum.Add(c.RGB())
	}
	return sum
}

func average(colors []Color) RGB {
	if len(colors) == 0 {
		return Black
	}
	sum := additive(colors)
	n := len(colors)
	return RGB{R: sum.R / n, G: sum.G / n, B: sum.B / n}
}

func priorityWeighted(colors []Color) RGB {
	var r, g, b, total float64
	for _, c := range colors {
		w := c.Priority()
		if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			continue
		}
		rgb := c.RGB()
		r += w * float64(rgb.R)
		g += w * float64(rgb.G)
		b += w * float64(rgb.B)
		total += w
	}
	if total == 0 {
		return average(colors)
	}
	return RGB{
		R: int(math.Round(r / total)),
		G: int(math.Round(g / total)),
		B: int(math.Round(b / total)),
	}
}

func highestPriority(colors []Color) RGB {
	if len(colors) == 0 {
		return Black
	}
	best := colors[0]
	for _, c := range colors[1:] {
		if c.Priority() >= best.Priority() {
			best = c
		}
	}
	return best.RGB()
}
