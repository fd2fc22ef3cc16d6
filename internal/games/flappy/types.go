package flappy

import "github.com/vovakirdan/flappy-homage/internal/display"

// GameState tells whether the simulation is running.
type GameState int

const (
	Started GameState = iota
	Stopped
)

// String returns the state name.
func (s GameState) String() string {
	switch s {
	case Started:
		return "started"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Direction is the vertical intent for one tick. The values are signed so they
// can be multiplied straight into a velocity.
type Direction int8

const (
	Down     Direction = -1
	Straight Direction = 0
	Up       Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Straight:
		return "straight"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// Wall is one obstacle column sliding in from the right.
// Bit r of Bricks set means row r (0 = top) is solid. XPos is the matrix
// column; values of display.Width and above are off-screen to the right.
type Wall struct {
	Bricks uint8
	XPos   uint8
}

// Game is the whole session state. It is a plain value: copying a Game copies
// both walls and the framebuffer.
type Game struct {
	State GameState
	Score int

	// Vertical velocity in display heights per tick, positive is up.
	VY float64

	// Bird height between 0 (bottom row) and 1 (top row).
	BirdY float64

	// The two walls form a ring: one can be respawning while the other is visible.
	WallOne Wall
	WallTwo Wall

	Framebuffer display.Frame
}
