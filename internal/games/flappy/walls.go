package flappy

import (
	"math/rand"

	"github.com/vovakirdan/flappy-homage/internal/core"
	"github.com/vovakirdan/flappy-homage/internal/display"
)

// maxXPos is the furthest a wall may be queued off-screen.
const maxXPos = 255

// GapBricks returns a brick mask for a full column with size open rows
// starting at row top. The gap is clipped to the matrix.
func GapBricks(top, size int) uint8 {
	if size <= 0 {
		return 0xff
	}
	if top < 0 {
		size += top
		top = 0
	}
	if top+size > display.Height {
		size = display.Height - top
	}
	if size <= 0 {
		return 0xff
	}
	gap := uint8((uint16(1)<<uint(size) - 1) << uint(top))
	return 0xff &^ gap
}

// Solid reports whether the wall blocks the given row.
func Solid(w Wall, row int) bool {
	if row < 0 || row >= display.Height {
		return false
	}
	return w.Bricks&(1<<uint(row)) != 0
}

// Visible reports whether the wall is on the matrix.
func Visible(w Wall) bool {
	return int(w.XPos) < display.Width
}

// GapRows returns the first and last open row of a wall, or ok=false for a
// wall with no gap.
func GapRows(w Wall) (first, last int, ok bool) {
	first, last = -1, -1
	for row := 0; row < display.Height; row++ {
		if Solid(w, row) {
			continue
		}
		if first < 0 {
			first = row
		}
		last = row
	}
	return first, last, first >= 0
}

// newWall builds a wall with a random gap of gapSize rows at column x.
// gapSize is clamped to the column height and x to maxXPos.
func newWall(rng *rand.Rand, gapSize int, x int) Wall {
	gapSize = core.Clamp(gapSize, 0, display.Height)
	x = core.Clamp(x, 0, maxXPos)
	top := rng.Intn(display.Height - gapSize + 1)
	return Wall{
		Bricks: GapBricks(top, gapSize),
		XPos:   uint8(x),
	}
}
