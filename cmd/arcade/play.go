package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-homage/internal/core"
	"github.com/vovakirdan/flappy-homage/internal/platform/tui"
	"github.com/vovakirdan/flappy-homage/internal/registry"
)

var flagDemo bool

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Space/W/Up  - Flap
  S/Down      - Dive
  P           - Pause
  R           - Restart (after game over)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play flappy
  arcade play flappy --difficulty hard
  arcade play flappy --demo
  arcade play flappy --config ./my-flappy.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagDemo, "demo", false, "Let the autopilot play")
}

func runPlay(_ *cobra.Command, args []string) error {
	if !registry.Exists(args[0]) {
		return fmt.Errorf("unknown game %q (see 'arcade list')", args[0])
	}
	// The game reads --config and --difficulty when it is created.
	if err := applyGameFlags(); err != nil {
		return err
	}
	game, err := registry.Create(args[0])
	if err != nil {
		return err
	}

	store := openScores()
	defer closeScores(store)

	return tui.Run(game, store, runtimeConfig(), flagPlayer, flagDemo)
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
