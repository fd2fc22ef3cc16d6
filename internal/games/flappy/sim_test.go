package flappy

import (
	"bytes"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-homage/internal/config"
	"github.com/vovakirdan/flappy-homage/internal/core"
	"github.com/vovakirdan/flappy-homage/internal/display"
	"github.com/vovakirdan/flappy-homage/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// newTestSim returns a reset sim with difficulty progression off so wall speed
// and gaps stay at their configured values.
func newTestSim(t *testing.T, mutate func(*config.FlappyConfig)) *Sim {
	t.Helper()
	cfg := config.DefaultFlappyConfig()
	cfg.Difficulty.Enabled = false
	if mutate != nil {
		mutate(&cfg)
	}
	s := NewWithConfig(cfg)
	s.Reset(testRuntime(7))
	return s
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSimDeterminism(t *testing.T) {
	run := func() (Game, int) {
		s := NewWithConfig(config.DefaultFlappyConfig())
		s.Reset(testRuntime(12345))
		for i := 0; i < 400; i++ {
			dir := Straight
			if i%14 == 0 {
				dir = Up
			}
			if s.Step(InputFor(dir)).State.GameOver {
				break
			}
		}
		return s.Snapshot(), s.Ticks()
	}

	g1, ticks1 := run()
	g2, ticks2 := run()

	if g1 != g2 {
		t.Errorf("same seed and inputs produced different sessions:\n%+v\n%+v", g1, g2)
	}
	if ticks1 != ticks2 {
		t.Errorf("tick counts differ: %d vs %d", ticks1, ticks2)
	}
}

func TestSimReset(t *testing.T) {
	s := newTestSim(t, nil)
	cfg := s.Config()

	for i := 0; i < 50; i++ {
		s.Step(InputFor(Up))
	}
	s.Reset(testRuntime(7))

	g := s.Snapshot()
	if g.State != Started || g.Score != 0 || g.VY != 0 {
		t.Errorf("reset session = %+v", g)
	}
	if g.BirdY != cfg.Physics.StartY {
		t.Errorf("BirdY = %v, expected %v", g.BirdY, cfg.Physics.StartY)
	}
	if Visible(g.WallOne) || Visible(g.WallTwo) {
		t.Error("walls should start off-screen")
	}
	if int(g.WallTwo.XPos)-int(g.WallOne.XPos) != cfg.Walls.Spacing+1 {
		t.Errorf("walls at %d and %d, expected spacing %d", g.WallOne.XPos, g.WallTwo.XPos, cfg.Walls.Spacing)
	}
	if s.Ticks() != 0 {
		t.Errorf("ticks = %d after reset", s.Ticks())
	}

	// Only the bird is on the matrix.
	if display.Lit(g.Framebuffer) != 1 {
		t.Errorf("lit pixels = %d, expected 1", display.Lit(g.Framebuffer))
	}
	if !display.Pixel(g.Framebuffer, cfg.Bird.Column, BirdRow(g.BirdY)) {
		t.Error("bird pixel not drawn")
	}
}

func TestSimGravity(t *testing.T) {
	s := newTestSim(t, nil)
	g := s.Config().Physics.Gravity

	s.Step(core.NewInputFrame())
	snap := s.Snapshot()

	if !approx(snap.VY, -g) {
		t.Errorf("VY = %v, expected %v", snap.VY, -g)
	}
	if !approx(snap.BirdY, 0.5-g) {
		t.Errorf("BirdY = %v, expected %v", snap.BirdY, 0.5-g)
	}
}

func TestSimTerminalVelocity(t *testing.T) {
	s := newTestSim(t, func(c *config.FlappyConfig) { c.Physics.MaxFallSpeed = 0.01 })
	s.game.BirdY = 1

	for i := 0; i < 15; i++ {
		s.Step(core.NewInputFrame())
	}
	if vy := s.Snapshot().VY; !approx(vy, -0.01) {
		t.Errorf("VY = %v, expected terminal velocity -0.01", vy)
	}
}

func TestSimDirections(t *testing.T) {
	tests := []struct {
		name   string
		input  func() core.InputFrame
		wantVY float64
	}{
		{"flap", func() core.InputFrame { return InputFor(Up) }, 0.04},
		{"dive", func() core.InputFrame { return InputFor(Down) }, -0.04},
		{"both cancel", func() core.InputFrame {
			in := core.NewInputFrame()
			in.Set(core.ActionJump)
			in.Set(core.ActionDuck)
			return in
		}, -0.003},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSim(t, nil)
			s.Step(tc.input())
			snap := s.Snapshot()
			if !approx(snap.VY, tc.wantVY) {
				t.Errorf("VY = %v, expected %v", snap.VY, tc.wantVY)
			}
			if !approx(snap.BirdY, 0.5+tc.wantVY) {
				t.Errorf("BirdY = %v, expected %v", snap.BirdY, 0.5+tc.wantVY)
			}
		})
	}
}

func TestDirectionForInputFor(t *testing.T) {
	for _, dir := range []Direction{Down, Straight, Up} {
		if got := DirectionFor(InputFor(dir)); got != dir {
			t.Errorf("DirectionFor(InputFor(%v)) = %v", dir, got)
		}
	}
}

func TestSimCeiling(t *testing.T) {
	s := newTestSim(t, nil)
	s.game.BirdY = 0.99

	s.Step(InputFor(Up))
	snap := s.Snapshot()

	if snap.BirdY != 1 || snap.VY != 0 {
		t.Errorf("bird should stop at the ceiling, got y=%v vy=%v", snap.BirdY, snap.VY)
	}
	if snap.State != Started {
		t.Error("touching the ceiling is not fatal")
	}
}

func TestSimFloorStopsGame(t *testing.T) {
	s := newTestSim(t, nil)
	s.game.BirdY = 0.01
	s.game.VY = -0.05

	result := s.Step(core.NewInputFrame())
	if !result.State.GameOver {
		t.Fatal("falling through the floor should end the game")
	}

	snap := s.Snapshot()
	if snap.State != Stopped || snap.BirdY != 0 {
		t.Errorf("session after floor = %+v", snap)
	}

	// Stopped sessions ignore further ticks.
	s.Step(InputFor(Up))
	if s.Snapshot() != snap {
		t.Error("Step after game over must not change the session")
	}
}

func TestSimPause(t *testing.T) {
	s := newTestSim(t, nil)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	s.Step(pause)
	if !s.State().Paused {
		t.Fatal("game should be paused")
	}

	before := s.Snapshot()
	s.Step(InputFor(Up))
	if s.Snapshot() != before {
		t.Error("session should not change while paused")
	}

	s.Step(pause)
	if s.State().Paused {
		t.Error("game should be unpaused")
	}
}

func TestSimWallsScroll(t *testing.T) {
	s := newTestSim(t, func(c *config.FlappyConfig) { c.Walls.TicksPerColumn = 3 })
	start := s.Snapshot()

	s.Step(core.NewInputFrame())
	s.Step(core.NewInputFrame())
	if s.Snapshot().WallOne.XPos != start.WallOne.XPos {
		t.Error("walls should wait ticks_per_column ticks before moving")
	}

	s.Step(core.NewInputFrame())
	snap := s.Snapshot()
	if snap.WallOne.XPos != start.WallOne.XPos-1 || snap.WallTwo.XPos != start.WallTwo.XPos-1 {
		t.Errorf("walls at %d/%d, expected %d/%d", snap.WallOne.XPos, snap.WallTwo.XPos,
			start.WallOne.XPos-1, start.WallTwo.XPos-1)
	}
	if !Visible(snap.WallOne) {
		t.Error("first wall should slide onto the right edge")
	}
}

func TestSimScoresPassedWall(t *testing.T) {
	s := newTestSim(t, func(c *config.FlappyConfig) { c.Walls.TicksPerColumn = 1 })
	col := uint8(s.Config().Bird.Column)

	s.game.WallOne = Wall{Bricks: GapBricks(3, 3), XPos: col}
	s.game.WallTwo = Wall{Bricks: GapBricks(3, 3), XPos: 9}

	s.Step(core.NewInputFrame())
	snap := s.Snapshot()

	if snap.State != Started {
		t.Fatal("bird inside the gap should survive")
	}
	if snap.Score != 1 {
		t.Errorf("score = %d, expected 1", snap.Score)
	}
	if snap.WallOne.XPos != col-1 {
		t.Errorf("wall should have moved past the bird, at %d", snap.WallOne.XPos)
	}
}

func TestSimCollision(t *testing.T) {
	s := newTestSim(t, func(c *config.FlappyConfig) { c.Walls.TicksPerColumn = 1 })
	col := uint8(s.Config().Bird.Column)

	s.game.WallOne = Wall{Bricks: 0xff, XPos: col + 1}
	s.game.WallTwo = Wall{Bricks: 0xff, XPos: 12}

	result := s.Step(core.NewInputFrame())
	if !result.State.GameOver {
		t.Fatal("moving into a solid wall should end the game")
	}
	if result.State.Score != 0 {
		t.Errorf("score = %d, crashing must not score", result.State.Score)
	}
}

func TestSimWallRing(t *testing.T) {
	s := newTestSim(t, func(c *config.FlappyConfig) {
		c.Walls.TicksPerColumn = 1
		c.Bird.Column = 3
	})
	spacing := s.Config().Walls.Spacing
	gap := s.Config().Walls.GapSize

	s.game.BirdY = 0.9
	s.game.WallOne = Wall{Bricks: GapBricks(0, 3), XPos: 0}
	s.game.WallTwo = Wall{Bricks: GapBricks(0, 3), XPos: 5}

	s.Step(core.NewInputFrame())
	snap := s.Snapshot()

	if snap.WallTwo.XPos != 4 {
		t.Errorf("second wall at %d, expected 4", snap.WallTwo.XPos)
	}
	if want := uint8(4 + spacing + 1); snap.WallOne.XPos != want {
		t.Errorf("respawned wall at %d, expected %d", snap.WallOne.XPos, want)
	}
	first, last, ok := GapRows(snap.WallOne)
	if !ok || last-first+1 != gap {
		t.Errorf("respawned wall gap rows %d..%d, expected %d rows", first, last, gap)
	}
}

func TestSimFramebufferTracksState(t *testing.T) {
	s := newTestSim(t, nil)
	col := s.Config().Bird.Column

	s.game.WallOne = Wall{Bricks: GapBricks(2, 3), XPos: 6}
	s.Step(core.NewInputFrame())
	snap := s.Snapshot()

	for row := 0; row < display.Height; row++ {
		want := Solid(snap.WallOne, row)
		if got := display.Pixel(snap.Framebuffer, 6, row); got != want {
			t.Errorf("column 6 row %d lit = %v, expected %v", row, got, want)
		}
	}
	if !display.Pixel(snap.Framebuffer, col, BirdRow(snap.BirdY)) {
		t.Error("bird pixel missing from framebuffer")
	}
}

func TestSimSnapshotIsCopy(t *testing.T) {
	s := newTestSim(t, nil)

	snap := s.Snapshot()
	snap.WallOne.XPos = 99
	snap.Framebuffer[0] = 0xff

	again := s.Snapshot()
	if again.WallOne.XPos == 99 || again.Framebuffer[0] == 0xff {
		t.Error("Snapshot must not alias the running session")
	}
}

func TestAutopilotScores(t *testing.T) {
	s := NewWithConfig(config.DefaultFlappyConfig())
	s.Reset(testRuntime(42))

	last := 0
	for i := 0; i < 200; i++ {
		dir := Autopilot(s.Snapshot(), s.Config())
		result := s.Step(InputFor(dir))
		if result.State.Score < last {
			t.Fatalf("score went down from %d to %d", last, result.State.Score)
		}
		last = result.State.Score
		if result.State.GameOver {
			t.Fatalf("autopilot crashed at tick %d", i)
		}
	}
	if last < 1 {
		t.Errorf("autopilot should pass the first wall, score = %d", last)
	}
}

func TestAutopilotIdleWhenStopped(t *testing.T) {
	if Autopilot(Game{State: Stopped}, config.DefaultFlappyConfig()) != Straight {
		t.Error("autopilot should not steer a stopped game")
	}
}

func TestSimRender(t *testing.T) {
	s := newTestSim(t, nil)
	screen := core.NewScreen(80, 24)

	s.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "Score: 0") {
		t.Error("HUD should show the score")
	}
	if !strings.ContainsRune(out, display.LitChar) {
		t.Error("bird pixel should be painted")
	}

	s.game.State = Stopped
	s.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("stopped game should show GAME OVER")
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatal("flappy should register itself")
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Flappy Homage" {
		t.Errorf("title = %q", g.Title())
	}
}

func TestAutoInputMatchesAutopilot(t *testing.T) {
	s := newTestSim(t, nil)

	for i := 0; i < 30; i++ {
		want := Autopilot(s.Snapshot(), s.Config())
		in := s.AutoInput()
		if got := DirectionFor(in); got != want {
			t.Fatalf("tick %d: AutoInput = %v, Autopilot = %v", i, got, want)
		}
		s.Step(in)
	}
}

func TestSimResetSurvivesGrowingGap(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Walls.GapSize = 7
	cfg.Difficulty.InitialLevel = 1
	cfg.Difficulty.Scaling.GapReduction = -3

	s := NewWithConfig(cfg)
	s.Reset(testRuntime(3))

	for _, w := range [2]Wall{s.Snapshot().WallOne, s.Snapshot().WallTwo} {
		if w.Bricks != 0 {
			t.Errorf("an oversized gap should open the whole column, bricks = %#02x", w.Bricks)
		}
	}
}

func TestNewWallClamps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name   string
		gap, x int
		xPos   uint8
	}{
		{"gap taller than matrix", 12, 8, 8},
		{"negative gap", -2, 9, 9},
		{"x past byte range", 3, 400, maxXPos},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newWall(rng, tc.gap, tc.x)
			if w.XPos != tc.xPos {
				t.Errorf("XPos = %d, expected %d", w.XPos, tc.xPos)
			}
		})
	}
}

func TestNewLogsConfigFallback(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		SetConfigPath("")
	})

	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	s := New()

	if s.Config() != config.DefaultFlappyConfig() {
		t.Error("a config that fails to load should fall back to the defaults")
	}
	if !strings.Contains(buf.String(), "default config") {
		t.Errorf("fallback should be logged, got %q", buf.String())
	}
}
