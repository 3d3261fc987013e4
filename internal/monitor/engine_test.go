package monitor

import (
	"strings"
	"testing"

	"github.com/idralyuk/GradienTea-sub001/internal/pixel"
)

func pixelsIn(universe, n int) []pixel.Pixel {
	out := make([]pixel.Pixel, n)
	for i := range out {
		out[i] = pixel.Pixel{Universe: universe, Channel: 1 + 3*i}
	}
	return out
}

func rowText(e *Engine, row int) string {
	var b strings.Builder
	for _, c := range e.current[row] {
		b.WriteRune(c.Ch)
	}
	return b.String()
}

func TestNewViewport(t *testing.T) {
	tests := []struct {
		name                         string
		top, termH, contentH, status int
		wantTop, wantH               int
	}{
		{"fits", 0, 10, 5, 1, 0, 9},
		{"scroll within", 3, 10, 20, 1, 3, 9},
		{"scroll past end", 50, 10, 20, 1, 11, 9},
		{"negative", -4, 10, 20, 1, 0, 9},
		{"tiny terminal", 2, 0, 20, 1, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := NewViewport(tt.top, tt.termH, tt.contentH, tt.status)
			if vp.Top != tt.wantTop || vp.ViewH != tt.wantH {
				t.Errorf("got top=%d h=%d, want top=%d h=%d", vp.Top, vp.ViewH, tt.wantTop, tt.wantH)
			}
		})
	}
}

func TestLayoutLines(t *testing.T) {
	pixels := append(pixelsIn(1, 5), pixelsIn(2, 2)...)
	lines := layoutLines(pixels, 2)

	// u1 header, 3 rows of ≤2, u2 header, 1 row
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}
	if !lines[0].header || lines[0].universe != 1 {
		t.Errorf("line 0 should be the universe 1 header, got %+v", lines[0])
	}
	if len(lines[3].pixels) != 1 {
		t.Errorf("last universe 1 row should hold 1 pixel, got %d", len(lines[3].pixels))
	}
	if !lines[4].header || lines[4].universe != 2 {
		t.Errorf("line 4 should be the universe 2 header, got %+v", lines[4])
	}
}

func TestRenderDrawsPixelColors(t *testing.T) {
	pixels := pixelsIn(1, 3)
	e := NewEngine(20, 5, pixels)

	u1 := make([]byte, 512)
	copy(u1[3:6], []byte{200, 100, 50})
	out := e.Render(Frame{Seq: 7, Fraction: 0.5, Universes: [][]byte{u1}}, 20, 5)

	if !strings.Contains(out, "48;2;200;100;50m ") {
		t.Errorf("expected a cell with the second pixel's color")
	}
	if got := rowText(e, 0); !strings.HasPrefix(got, "universe 1  3 pixels") {
		t.Errorf("expected a universe header on row 0, got %q", got)
	}
	if !strings.HasSuffix(out, Reset) {
		t.Errorf("expected output to end with reset")
	}
	// Row 2 (the pixel row), column 3 holds pixel 1.
	if got := e.current[1][2].Bg; got != [3]uint8{200, 100, 50} {
		t.Errorf("expected pixel color at row 1 col 2, got %v", got)
	}
}

func TestRenderEmitsOnlyChanges(t *testing.T) {
	pixels := pixelsIn(1, 3)
	e := NewEngine(20, 5, pixels)
	u1 := make([]byte, 512)
	frame := Frame{Universes: [][]byte{u1}}

	first := e.Render(frame, 20, 5)
	second := e.Render(frame, 20, 5)
	if second != "" {
		t.Errorf("expected no output for an unchanged frame, got %q", second)
	}

	u1[0] = 255
	third := e.Render(frame, 20, 5)
	if third == "" || len(third) >= len(first) {
		t.Errorf("expected a small diff, got %d bytes (full frame %d)", len(third), len(first))
	}
	if !strings.Contains(third, MoveTo(2, 1)) {
		t.Errorf("expected the diff to start at the first pixel")
	}
}

func TestRenderResizeRedraws(t *testing.T) {
	e := NewEngine(20, 5, pixelsIn(1, 3))
	frame := Frame{Universes: [][]byte{make([]byte, 512)}}
	e.Render(frame, 20, 5)
	if out := e.Render(frame, 30, 6); out == "" {
		t.Errorf("expected a full redraw after resize")
	}
}

func TestScrollBy(t *testing.T) {
	// 40 pixels at 5 per row: header + 8 rows = 9 lines, 4 visible.
	e := NewEngine(10, 5, pixelsIn(1, 40))
	e.ScrollBy(3)
	if e.Top() != 3 {
		t.Errorf("expected top 3, got %d", e.Top())
	}
	e.ScrollBy(100)
	if e.Top() != 5 {
		t.Errorf("expected top clamped to 5, got %d", e.Top())
	}
	e.ScrollBy(-100)
	if e.Top() != 0 {
		t.Errorf("expected top 0, got %d", e.Top())
	}
}

func TestPixelRGBOutOfRange(t *testing.T) {
	u := [][]byte{{1, 2, 3}}
	if got := pixelRGB(u, pixel.Pixel{Universe: 2, Channel: 1}); got != [3]uint8{} {
		t.Errorf("expected black for a missing universe, got %v", got)
	}
	if got := pixelRGB(u, pixel.Pixel{Universe: 1, Channel: 2}); got != [3]uint8{2, 3, 0} {
		t.Errorf("expected a truncated triple, got %v", got)
	}
}
