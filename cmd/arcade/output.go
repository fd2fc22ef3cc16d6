package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/flappy-homage/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderTable formats rows under headers with a light border.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// scoreTableRows formats runs for renderTable, ranked from 1.
func scoreTableRows(entries []storage.ScoreEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		player := e.Player
		if player == "" {
			player = "-"
		}
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			player,
			fmt.Sprint(e.Score),
			fmt.Sprint(e.Ticks),
			e.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return rows
}

// openScores opens the score database. Interactive commands keep going
// without it, so failure is only logged.
func openScores() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		newLogger("arcade").Warn("scores disabled", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

func closeScores(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
