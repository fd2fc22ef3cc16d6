package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-homage/internal/platform/tui"
	"github.com/vovakirdan/flappy-homage/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a game from an interactive menu",
	Long: `Open the game picker. Each game has a play entry and, when it can
steer itself, an autopilot entry. Tab opens the scoreboard; leaving a game
or the scoreboard returns here.

Keys:
  ↑/↓ or k/j   move
  enter        start
  tab          scoreboard
  q            quit

Examples:
  arcade menu
  arcade menu --fps 30 --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}
	logger := newLogger("arcade")

	store := openScores()
	defer closeScores(store)

	cfg := runtimeConfig()
	for {
		pick, err := tui.RunMenu(store, cfg, flagPlayer)
		if err != nil {
			return err
		}
		cfg = pick.Config

		switch {
		case pick.Quit:
			return nil

		case pick.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil || !back {
				return err
			}

		default:
			game, err := registry.Create(pick.GameID)
			if err != nil {
				logger.Error("start game", "id", pick.GameID, "err", err)
				continue
			}
			cfg.Seed = time.Now().UnixNano()
			if err := tui.Run(game, store, cfg, flagPlayer, pick.Demo); err != nil {
				logger.Error("game ended with an error", "id", pick.GameID, "err", err)
			}
		}
	}
}
