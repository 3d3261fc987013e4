// Package pixel models the physically addressable LEDs of a dome and the
// tree of groups that fans one applied color out to them.
package pixel

import (
	"fmt"

	"github.com/idralyuk/GradienTea-sub001/internal/color"
)

// Pixel is one RGB fixture, identified by its protocol address: the
// universe it lives in and the first of its three consecutive channels.
// Two Pixels with the same address are the same physical unit.
type Pixel struct {
	Universe int
	Channel  int
}

func (p Pixel) String() string { return fmt.Sprintf("%d/%d", p.Universe, p.Channel) }

// PixelValue pairs one Pixel with one Color.
type PixelValue struct {
	Pixel Pixel
	Color color.Color
}

// Group is a node of the pixel tree: either a leaf holding one Pixel or a
// composite holding ordered children. Groups are immutable after creation.
type Group struct {
	name     string
	leaf     bool
	pixel    Pixel
	children []*Group
}

// NewLeaf returns a leaf group for p.
func NewLeaf(p Pixel) *Group {
	return &Group{name: p.String(), leaf: true, pixel: p}
}

// NewGroup returns a composite over children. The slice is copied, nil
// children are skipped.
func NewGroup(name string, children ...*Group) *Group {
	kids := make([]*Group, 0, len(children))
	for _, c := range children {
		if c != nil {
			kids = append(kids, c)
		}
	}
	return &Group{name: name, children: kids}
}

func (g *Group) Name() string { return g.name }

// IsLeaf reports whether g is a single Pixel.
func (g *Group) IsLeaf() bool { return g.leaf }

// Pixel returns the leaf's pixel. ok is false for composites.
func (g *Group) Pixel() (p Pixel, ok bool) {
	return g.pixel, g.leaf
}

// Children returns the immediate children in order. Leaves have none.
func (g *Group) Children() []*Group {
	return append([]*Group(nil), g.children...)
}

// ApplyColor distributes c to every leaf below g, depth first in child
// order. A pixel reachable along several paths appears once per path.
func (g *Group) ApplyColor(c color.Color) []PixelValue {
	return g.appendValues(make([]PixelValue, 0, g.Len()), c)
}

func (g *Group) appendValues(dst []PixelValue, c color.Color) []PixelValue {
	if g.leaf {
		return append(dst, PixelValue{Pixel: g.pixel, Color: c})
	}
	for _, child := range g.children {
		dst = child.appendValues(dst, c)
	}
	return dst
}

// Pixels lists the leaf pixels in ApplyColor order, duplicates included.
func (g *Group) Pixels() []Pixel {
	var out []Pixel
	g.Walk(func(n *Group) {
		if n.leaf {
			out = append(out, n.pixel)
		}
	})
	return out
}

// Len counts leaves, duplicates included.
func (g *Group) Len() int {
	if g.leaf {
		return 1
	}
	n := 0
	for _, c := range g.children {
		n += c.Len()
	}
	return n
}

// Walk visits g and its descendants depth first, parents before children.
func (g *Group) Walk(fn func(*Group)) {
	fn(g)
	for _, c := range g.children {
		c.Walk(fn)
	}
}
