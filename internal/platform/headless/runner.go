// Package headless runs a flappy session without a terminal UI, pushing every
// frame to a display driver. It backs the drive command and attract loops on
// real LED matrices.
package headless

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-homage/internal/core"
	"github.com/vovakirdan/flappy-homage/internal/display"
	"github.com/vovakirdan/flappy-homage/internal/games/flappy"
)

// Options controls a headless run.
type Options struct {
	// Seed for the wall generator.
	Seed int64

	// TickRate in ticks per second. Zero runs as fast as possible.
	TickRate int

	// MaxTicks stops the run after this many ticks. Zero means until the
	// bird crashes.
	MaxTicks int

	// Script supplies one direction per tick. When it runs out the
	// autopilot takes over if enabled, otherwise the bird glides.
	Script []flappy.Direction

	// Autopilot plays ticks the script does not cover.
	Autopilot bool

	// Logger receives progress; nil discards it.
	Logger *log.Logger
}

// Result summarizes a finished run.
type Result struct {
	Score  int
	Ticks  int
	Frames int
	Final  flappy.Game
}

// Run resets sim and plays it, pushing the initial frame and one frame per
// tick to drv. It returns when the bird crashes, MaxTicks is reached or ctx
// is cancelled; cancellation is not an error.
func Run(ctx context.Context, sim *flappy.Sim, drv display.Driver, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rc := core.DefaultConfig()
	rc.Seed = opts.Seed
	if opts.TickRate > 0 {
		rc.TickRate = opts.TickRate
	}
	sim.Reset(rc)

	var res Result
	if err := drv.Push(sim.Snapshot().Framebuffer); err != nil {
		return res, fmt.Errorf("headless: push frame: %w", err)
	}
	res.Frames++

	var tick <-chan time.Time
	if opts.TickRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(opts.TickRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	logger.Info("run started", "seed", opts.Seed, "tick_rate", opts.TickRate, "autopilot", opts.Autopilot)

	for {
		g := sim.Snapshot()
		if g.State == flappy.Stopped || (opts.MaxTicks > 0 && res.Ticks >= opts.MaxTicks) {
			break
		}

		if ctx.Err() != nil {
			return finish(logger, res, sim, "cancelled"), nil
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return finish(logger, res, sim, "cancelled"), nil
			case <-tick:
			}
		}

		dir := choose(g, sim, opts, res.Ticks)
		sim.Step(flappy.InputFor(dir))
		res.Ticks++

		next := sim.Snapshot()
		if next.Score != g.Score {
			logger.Debug("scored", "score", next.Score, "tick", res.Ticks)
		}

		if err := drv.Push(next.Framebuffer); err != nil {
			return res, fmt.Errorf("headless: push frame: %w", err)
		}
		res.Frames++
	}

	reason := "crashed"
	if sim.Snapshot().State == flappy.Started {
		reason = "tick limit"
	}
	return finish(logger, res, sim, reason), nil
}

// choose picks the direction for the given tick.
func choose(g flappy.Game, sim *flappy.Sim, opts Options, tick int) flappy.Direction {
	if tick < len(opts.Script) {
		return opts.Script[tick]
	}
	if opts.Autopilot {
		return flappy.Autopilot(g, sim.Config())
	}
	return flappy.Straight
}

func finish(logger *log.Logger, res Result, sim *flappy.Sim, reason string) Result {
	res.Final = sim.Snapshot()
	res.Score = res.Final.Score
	logger.Info("run finished", "reason", reason, "score", res.Score, "ticks", res.Ticks)
	return res
}
