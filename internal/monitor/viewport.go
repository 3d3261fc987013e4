package monitor

// Viewport is the window of content lines visible above the status bar.
type Viewport struct {
	Top   int // first visible content line
	ViewH int // visible content lines
}

// NewViewport clamps a requested top line so the view never scrolls past
// either end of the content. statusRows are reserved at the bottom.
func NewViewport(top, termH, contentH, statusRows int) Viewport {
	viewH := termH - statusRows
	if viewH < 0 {
		viewH = 0
	}
	if top > contentH-viewH {
		top = contentH - viewH
	}
	if top < 0 {
		top = 0
	}
	return Viewport{Top: top, ViewH: viewH}
}

// LineToScreen converts a content line to a screen row (0-based).
// Returns -1 if the line is outside the viewport.
func (v Viewport) LineToScreen(line int) int {
	row := line - v.Top
	if row < 0 || row >= v.ViewH {
		return -1
	}
	return row
}
