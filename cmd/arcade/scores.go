package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-homage/internal/registry"
	"github.com/vovakirdan/flappy-homage/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show recorded runs of a game",
	Long: `Print the best runs of a game, or the latest ones with --recent,
followed by a summary of every run.

Examples:
  arcade scores flappy
  arcade scores flappy -n 25
  arcade scores flappy --recent
  arcade scores flappy --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	f := scoresCmd.Flags()
	f.IntVarP(&flagScoresLimit, "limit", "n", 10, "How many runs to list")
	f.BoolVar(&flagScoresRecent, "recent", false, "List the latest runs instead of the best")
	f.BoolVar(&flagScoresClear, "clear", false, "Delete every run of the game")
}

func runScores(_ *cobra.Command, args []string) error {
	id := args[0]
	game, err := registry.Create(id)
	if err != nil {
		return fmt.Errorf("%w (see 'arcade list')", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(id); err != nil {
			return err
		}
		fmt.Printf("Removed every %s run.\n", game.Title())
		return nil
	}

	heading, fetch := "Best runs", store.TopScores
	if flagScoresRecent {
		heading, fetch = "Latest runs", store.RecentScores
	}
	entries, err := fetch(id, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("%s · %s\n\n", heading, game.Title())
	if len(entries) == 0 {
		fmt.Printf("Nothing recorded yet. Try 'arcade play %s'.\n", id)
		return nil
	}
	fmt.Println(renderTable([]string{"#", "Player", "Score", "Ticks", "When"}, scoreTableRows(entries)))

	if st, err := store.GameStats(id); err == nil {
		fmt.Printf("\n%d runs, best %d, average %.1f, last %s\n",
			st.GamesCount, st.HighScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
