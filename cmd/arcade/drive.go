package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-homage/internal/display"
	"github.com/vovakirdan/flappy-homage/internal/games/flappy"
	"github.com/vovakirdan/flappy-homage/internal/platform/headless"
	"github.com/vovakirdan/flappy-homage/internal/storage"
)

var (
	flagDriveFormat    string
	flagDriveTicks     int
	flagDriveScript    string
	flagDriveAutopilot bool
	flagDriveSave      bool
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Run flappy headless and stream frames to stdout",
	Long: `Run a session without a terminal UI, writing every framebuffer to
stdout. Pipe it into a matrix controller, or watch it with --format matrix.

Formats:
  hex     - One line per frame, eight hex bytes, top row first
  matrix  - Eight rows of '#' and '.' per frame

Scripts use one character per tick: u/^ flap, d/v dive, ./- glide.
Ticks past the end of the script are played by the autopilot unless
--autopilot=false, in which case the bird glides.

Examples:
  arcade drive --format matrix --fps 8
  arcade drive --ticks 500 --fps 0 --seed 7
  arcade drive --script "u....u...." --autopilot=false`,
	RunE: runDrive,
}

func init() {
	driveCmd.Flags().StringVarP(&flagDriveFormat, "format", "f", "hex", "Frame format: hex or matrix")
	driveCmd.Flags().IntVar(&flagDriveTicks, "ticks", 0, "Stop after this many ticks (0 = until the bird crashes)")
	driveCmd.Flags().StringVar(&flagDriveScript, "script", "", "Directions to play, one character per tick")
	driveCmd.Flags().BoolVar(&flagDriveAutopilot, "autopilot", true, "Let the autopilot play unscripted ticks")
	driveCmd.Flags().BoolVar(&flagDriveSave, "save", false, "Record the final score in the scores database")
}

func runDrive(_ *cobra.Command, _ []string) error {
	logger := newLogger("flappy-drive")

	if err := applyGameFlags(); err != nil {
		return err
	}

	drv, err := display.NewDriver(flagDriveFormat, os.Stdout)
	if err != nil {
		return err
	}

	script, err := headless.ParseScript(flagDriveScript)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := headless.Run(ctx, flappy.New(), drv, headless.Options{
		Seed:      seed,
		TickRate:  flagFPS,
		MaxTicks:  flagDriveTicks,
		Script:    script,
		Autopilot: flagDriveAutopilot,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	if flagDriveSave && res.Score > 0 {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()

		if _, err := store.SaveScore(flappy.ID, flagPlayer, res.Score, res.Ticks); err != nil {
			return err
		}
		logger.Info("score saved", "player", flagPlayer, "score", res.Score)
	}
	return nil
}
