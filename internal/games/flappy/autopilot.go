package flappy

import (
	"github.com/vovakirdan/flappy-homage/internal/config"
	"github.com/vovakirdan/flappy-homage/internal/core"
	"github.com/vovakirdan/flappy-homage/internal/display"
)

// Autopilot picks a direction that steers the bird toward the bottom of the
// next gap and flaps from there. It only reads the session, so it can drive a
// headless display or serve as an attract-mode player.
func Autopilot(g Game, cfg config.FlappyConfig) Direction {
	if g.State == Stopped {
		return Straight
	}

	target := float64(display.Height) / 2
	if w, ok := nextWall(g, cfg.Bird.Column); ok {
		if _, last, hasGap := GapRows(w); hasGap {
			target = float64(last)
		}
	}

	// Flap once the bird has sunk to within a third of a row of the target
	// while falling. Rows grow downward.
	row := (1 - g.BirdY) * float64(display.Height-1)
	if row >= target-0.34 && g.VY <= 0 {
		return Up
	}
	return Straight
}

// nextWall returns the closest wall that has not yet passed the bird.
func nextWall(g Game, birdColumn int) (Wall, bool) {
	var best Wall
	found := false
	for _, w := range [2]Wall{g.WallOne, g.WallTwo} {
		if int(w.XPos) < birdColumn {
			continue
		}
		if !found || w.XPos < best.XPos {
			best = w
			found = true
		}
	}
	return best, found
}

// AutoInput returns the autopilot's input for the current tick.
func (s *Sim) AutoInput() core.InputFrame {
	return InputFor(Autopilot(s.game, s.cfg))
}
