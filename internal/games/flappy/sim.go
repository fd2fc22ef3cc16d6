// Package flappy implements a Flappy Bird homage for an 8x8 LED matrix.
//
// Game holds the session as plain data; Sim owns one Game and applies input,
// physics, wall scrolling, scoring and collision to it once per tick, then
// redraws its framebuffer.
package flappy

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-homage/internal/config"
	"github.com/vovakirdan/flappy-homage/internal/core"
	"github.com/vovakirdan/flappy-homage/internal/display"
	"github.com/vovakirdan/flappy-homage/internal/registry"
)

// ID is the registry and score table key for this game.
const ID = "flappy"

// Title is the display name.
const Title = "Flappy Homage"

// Package-level settings, set by the CLI before the registry creates a game.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the YAML file used by games created through the registry.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the preset applied on top of the loaded config.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.DifficultyPreset(preset)
}

// Sim runs the game simulation.
type Sim struct {
	game       Game
	cfg        config.FlappyConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	runtime    core.RuntimeConfig
	paused     bool
	tickCount  int // Ticks simulated since reset
	scrollWait int // Ticks since the walls last moved
}

// New creates a Sim from the configured YAML file and preset. A config that
// fails to load is logged and replaced by the built-in defaults.
func New() *Sim {
	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		log.Warn("flappy: using default config", "path", configPath, "err", err)
		cfg = config.DefaultFlappyConfig()
	}
	config.ApplyFlappyPreset(&cfg, difficultyPreset)
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Sim with an explicit configuration.
func NewWithConfig(cfg config.FlappyConfig) *Sim {
	return &Sim{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rand.New(rand.NewSource(0)),
	}
}

// ID returns the unique identifier for this game.
func (s *Sim) ID() string {
	return ID
}

// Title returns the display name for this game.
func (s *Sim) Title() string {
	return Title
}

// Reset starts a new session. Both walls begin off-screen to the right so the
// player gets a moment before the first one arrives.
func (s *Sim) Reset(cfg core.RuntimeConfig) {
	s.runtime = cfg
	s.rng = rand.New(rand.NewSource(cfg.Seed))
	s.paused = false
	s.tickCount = 0
	s.scrollWait = 0

	gap := s.difficulty.GapSize(s.cfg.Walls.GapSize, s.cfg.Walls.MinGapSize, 0, 0)
	spacing := s.difficulty.Spacing(s.cfg.Walls.Spacing, 0, 0)

	s.game = Game{
		State:   Started,
		BirdY:   s.cfg.Physics.StartY,
		WallOne: newWall(s.rng, gap, display.Width),
		WallTwo: newWall(s.rng, gap, display.Width+spacing+1),
	}
	s.drawFrame()
}

// Step advances the game by one tick.
func (s *Sim) Step(in core.InputFrame) core.StepResult {
	if s.game.State == Stopped {
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	s.tickCount++
	s.applyPhysics(DirectionFor(in))

	if s.game.State == Started {
		s.scrollWalls()
	}
	if s.game.State == Started && s.collides() {
		s.game.State = Stopped
	}

	s.drawFrame()
	return core.StepResult{State: s.State()}
}

// DirectionFor turns an input frame into a vertical direction. Pressing flap
// and dive together cancels out.
func DirectionFor(in core.InputFrame) Direction {
	dir := Straight
	if in.Has(core.ActionJump) {
		dir += Up
	}
	if in.Has(core.ActionDuck) {
		dir += Down
	}
	return dir
}

// InputFor is the inverse of DirectionFor, used by scripted and automatic players.
func InputFor(dir Direction) core.InputFrame {
	in := core.NewInputFrame()
	switch dir {
	case Up:
		in.Set(core.ActionJump)
	case Down:
		in.Set(core.ActionDuck)
	}
	return in
}

// applyPhysics updates velocity and height. A flap or dive replaces the
// velocity outright; otherwise gravity pulls the bird down.
func (s *Sim) applyPhysics(dir Direction) {
	p := s.cfg.Physics

	if dir != Straight {
		s.game.VY = float64(dir) * p.FlapImpulse
	} else {
		s.game.VY -= p.Gravity
	}
	s.game.VY = core.Clamp(s.game.VY, -p.MaxFallSpeed, p.FlapImpulse)
	s.game.BirdY += s.game.VY

	if s.game.BirdY > 1 {
		s.game.BirdY = 1
		s.game.VY = 0
	}
	if s.game.BirdY < 0 {
		s.game.BirdY = 0
		s.game.State = Stopped
	}
}

// scrollWalls moves both walls one column left every few ticks. A wall that
// leaves the bird's column scores a point; a wall that leaves column 0 is
// rebuilt behind the other one.
func (s *Sim) scrollWalls() {
	s.scrollWait++
	every := s.difficulty.TicksPerColumn(s.cfg.Walls.TicksPerColumn, s.game.Score, s.tickCount)
	if s.scrollWait < every {
		return
	}
	s.scrollWait = 0

	birdCol := uint8(s.cfg.Bird.Column)
	walls := [2]*Wall{&s.game.WallOne, &s.game.WallTwo}

	for _, w := range walls {
		if w.XPos == birdCol {
			s.game.Score++
		}
	}

	var expired [2]bool
	for i, w := range walls {
		if w.XPos == 0 {
			expired[i] = true
			continue
		}
		w.XPos--
	}
	for i, w := range walls {
		if expired[i] {
			*w = s.respawn(*walls[1-i])
		}
	}
}

// respawn builds a new wall spaced behind the given one, using the current
// difficulty for gap size and spacing.
func (s *Sim) respawn(ahead Wall) Wall {
	gap := s.difficulty.GapSize(s.cfg.Walls.GapSize, s.cfg.Walls.MinGapSize, s.game.Score, s.tickCount)
	spacing := s.difficulty.Spacing(s.cfg.Walls.Spacing, s.game.Score, s.tickCount)

	x := int(ahead.XPos) + spacing + 1
	if x < display.Width {
		x = display.Width
	}
	return newWall(s.rng, gap, x)
}

// BirdRow maps a bird height onto a matrix row, 0 being the top.
func BirdRow(birdY float64) int {
	row := int(math.Round((1 - birdY) * float64(display.Height-1)))
	return core.Clamp(row, 0, display.Height-1)
}

// collides reports whether a wall in the bird's column blocks the bird's row.
func (s *Sim) collides() bool {
	row := BirdRow(s.game.BirdY)
	col := uint8(s.cfg.Bird.Column)
	for _, w := range [2]Wall{s.game.WallOne, s.game.WallTwo} {
		if w.XPos == col && Solid(w, row) {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the current session.
func (s *Sim) Snapshot() Game {
	return s.game
}

// Config returns the configuration the simulation runs with.
func (s *Sim) Config() config.FlappyConfig {
	return s.cfg
}

// Ticks returns the number of simulated ticks since the last reset.
func (s *Sim) Ticks() int {
	return s.tickCount
}

// State returns the current platform-facing state.
func (s *Sim) State() core.GameState {
	return core.GameState{
		Score:    s.game.Score,
		GameOver: s.game.State == Stopped,
		Paused:   s.paused,
	}
}

func init() {
	registry.Register(ID, Title, func() registry.Game {
		return New()
	})
}
