package flappy

import (
	"fmt"

	"github.com/vovakirdan/flappy-homage/internal/core"
	"github.com/vovakirdan/flappy-homage/internal/display"
)

// Colors used when the matrix is shown in a terminal.
const (
	wallColor = core.ColorGreen
	birdColor = core.ColorBrightYellow
	deadColor = core.ColorBrightRed
)

// drawFrame projects the session into its framebuffer: visible walls first,
// then the bird pixel.
func (s *Sim) drawFrame() {
	fb := &s.game.Framebuffer
	display.ClearFrame(fb)

	for _, w := range [2]Wall{s.game.WallOne, s.game.WallTwo} {
		if !Visible(w) {
			continue
		}
		for row := 0; row < display.Height; row++ {
			if Solid(w, row) {
				display.SetPixel(fb, int(w.XPos), row, true)
			}
		}
	}

	display.SetPixel(fb, s.cfg.Bird.Column, BirdRow(s.game.BirdY), true)
}

// Render paints the framebuffer into dst as large pixels with a score line.
func (s *Sim) Render(dst *core.Screen) {
	dst.Clear()

	layout := display.FitLayout(dst.Width(), dst.Height())
	bounds := layout.Bounds()

	display.Paint(dst, s.game.Framebuffer, layout, wallColor)
	dst.DrawBox(core.NewRect(bounds.X-1, bounds.Y-1, bounds.W+2, bounds.H+2))

	// Recolor the bird so it stands out from the walls.
	bird := birdColor
	if s.game.State == Stopped {
		bird = deadColor
	}
	bx := layout.X + s.cfg.Bird.Column*layout.CellW
	by := layout.Y + BirdRow(s.game.BirdY)*layout.CellH
	dst.DrawRect(core.NewRect(bx, by, layout.CellW, layout.CellH), display.LitChar, bird)

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", s.game.Score))

	if s.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if s.game.State == Stopped {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  R to restart", s.game.Score))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
