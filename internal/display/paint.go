package display

import "github.com/vovakirdan/flappy-homage/internal/core"

// Glyphs used when painting the matrix into a terminal screen.
const (
	LitChar   = '█'
	UnlitChar = '·'
)

// Layout describes where the matrix lands on a screen and how big each pixel is.
type Layout struct {
	X, Y  int // Top-left corner of the matrix
	CellW int // Screen columns per pixel
	CellH int // Screen rows per pixel
}

// Bounds returns the screen rectangle covered by the matrix.
func (l Layout) Bounds() core.Rect {
	return core.NewRect(l.X, l.Y, Width*l.CellW, Height*l.CellH)
}

// FitLayout picks the largest pixel size that fits in a w x h area with room
// for a one-cell border and a HUD line on top. Terminal cells are roughly twice
// as tall as they are wide, so pixels are twice as wide as high.
func FitLayout(w, h int) Layout {
	cellH := max(1, (h-3)/Height)
	cellW := max(1, (w-2)/Width)
	if cellW > cellH*2 {
		cellW = cellH * 2
	} else {
		cellH = max(1, cellW/2)
	}

	mw := Width * cellW
	mh := Height * cellH
	return Layout{
		X:     max(1, (w-mw)/2),
		Y:     max(2, (h-mh)/2+1),
		CellW: cellW,
		CellH: cellH,
	}
}

// Paint draws the frame into dst. Lit pixels use litColor; unlit pixels get a
// faint dot in the middle of the cell so the grid stays visible.
func Paint(dst *core.Screen, fb Frame, l Layout, litColor core.Color) {
	for py := 0; py < Height; py++ {
		for px := 0; px < Width; px++ {
			cell := core.NewRect(l.X+px*l.CellW, l.Y+py*l.CellH, l.CellW, l.CellH)
			if Pixel(fb, px, py) {
				dst.DrawRect(cell, LitChar, litColor)
				continue
			}
			dst.DrawRect(cell, ' ', core.ColorDefault)
			dst.SetColored(cell.X+l.CellW/2, cell.Y+l.CellH/2, UnlitChar, core.ColorGray)
		}
	}
}
