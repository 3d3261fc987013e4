// Package monitor draws channel frames as colored terminal cells. It knows
// nothing about domes or animations: its only inputs are the universe byte
// arrays of a frame and the addresses of the pixels in them.
package monitor

import (
	"fmt"
	"strings"

	"github.com/idralyuk/GradienTea-sub001/internal/pixel"
)

// StatusRows is the height of the status bar at the bottom of the screen.
const StatusRows = 1

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch   rune
	Fg   [3]uint8
	Bg   [3]uint8
	Bold bool
}

var sentinel = Cell{Ch: '\x00', Fg: [3]uint8{255, 0, 0}, Bg: [3]uint8{0, 0, 255}, Bold: true}

var (
	background = [3]uint8{10, 10, 15}
	statusBg   = [3]uint8{15, 18, 30}
	headerFg   = [3]uint8{180, 180, 195}
	statusFg   = [3]uint8{130, 130, 145}
)

// Frame is what the monitor displays: one byte array per universe,
// universe 1 first, plus bookkeeping for the status bar.
type Frame struct {
	Seq       uint64
	Fraction  float64
	Universes [][]byte
}

// line is one content row: a universe header or a run of pixels.
type line struct {
	universe int
	header   bool
	pixels   []pixel.Pixel
}

// Engine is a per-session double-buffer diff renderer.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool

	pixels []pixel.Pixel
	lines  []line
	top    int
}

// NewEngine creates a renderer for the given terminal dimensions that shows
// pixels in the order given, grouped by universe.
func NewEngine(width, height int, pixels []pixel.Pixel) *Engine {
	e := &Engine{pixels: append([]pixel.Pixel(nil), pixels...)}
	e.Resize(width, height)
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
	e.lines = layoutLines(e.pixels, width/CellWidth)
	e.ScrollBy(0)
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// layoutLines splits pixels into a header per universe followed by rows of
// at most perRow pixels.
func layoutLines(pixels []pixel.Pixel, perRow int) []line {
	if perRow < 1 {
		perRow = 1
	}
	var out []line
	for i := 0; i < len(pixels); {
		u := pixels[i].Universe
		out = append(out, line{universe: u, header: true})
		j := i
		for j < len(pixels) && pixels[j].Universe == u {
			j++
		}
		for k := i; k < j; k += perRow {
			end := k + perRow
			if end > j {
				end = j
			}
			out = append(out, line{universe: u, pixels: pixels[k:end]})
		}
		i = j
	}
	return out
}

// ScrollBy moves the view by delta content lines, clamped to the content.
func (e *Engine) ScrollBy(delta int) {
	vp := NewViewport(e.top+delta, e.height, len(e.lines), StatusRows)
	e.top = vp.Top
}

// Top returns the first visible content line.
func (e *Engine) Top() int { return e.top }

// Render produces the ANSI byte output for f.
func (e *Engine) Render(f Frame, termW, termH int) string {
	if termW != e.width || termH != e.height {
		e.Resize(termW, termH)
	}

	bgCell := Cell{Ch: ' ', Bg: background}
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = bgCell
		}
	}

	vp := NewViewport(e.top, e.height, len(e.lines), StatusRows)
	for i, ln := range e.lines {
		row := vp.LineToScreen(i)
		if row < 0 {
			continue
		}
		if ln.header {
			n := 0
			for _, p := range e.pixels {
				if p.Universe == ln.universe {
					n++
				}
			}
			e.writeText(row, 0, fmt.Sprintf("universe %d  %d pixels", ln.universe, n), headerFg, background, true)
			continue
		}
		for k, p := range ln.pixels {
			rgb := pixelRGB(f.Universes, p)
			for c := 0; c < CellWidth; c++ {
				x := k*CellWidth + c
				if x < e.width {
					e.next[row][x] = Cell{Ch: ' ', Bg: rgb}
				}
			}
		}
	}

	e.drawStatus(f)
	return e.emitDiff()
}

// pixelRGB reads p's triple. Addresses outside the supplied bytes read as black.
func pixelRGB(universes [][]byte, p pixel.Pixel) [3]uint8 {
	var out [3]uint8
	if p.Universe < 1 || p.Universe > len(universes) {
		return out
	}
	u := universes[p.Universe-1]
	for i := range out {
		if ch := p.Channel - 1 + i; ch >= 0 && ch < len(u) {
			out[i] = u[ch]
		}
	}
	return out
}

func (e *Engine) drawStatus(f Frame) {
	y := e.height - StatusRows
	if y < 0 {
		return
	}
	for x := 0; x < e.width; x++ {
		e.next[y][x] = Cell{Ch: ' ', Bg: statusBg}
	}
	text := fmt.Sprintf("frame %d  t=%.3f  %d pixels  │  ↑↓/jk scroll  │  q quit",
		f.Seq, f.Fraction, len(e.pixels))
	e.writeText(y, 1, text, statusFg, statusBg, false)
}

// writeText writes colored text starting at col. Returns the next column position.
func (e *Engine) writeText(row, col int, text string, fg, bg [3]uint8, bold bool) int {
	for _, r := range text {
		if col >= e.width {
			break
		}
		if row >= 0 && row < e.height && col >= 0 {
			e.next[row][col] = Cell{Ch: r, Fg: fg, Bg: bg, Bold: bold}
		}
		col++
	}
	return col
}

// emitDiff writes only the cells that changed since the last frame and
// swaps the buffers.
func (e *Engine) emitDiff() string {
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}
