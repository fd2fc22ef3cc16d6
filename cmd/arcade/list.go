package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-homage/internal/registry"
)

var flagListJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered games",
	Long: `Print every game the arcade can run, with the ID that play, scores
and drive expect.

Examples:
  arcade list
  arcade list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListJSON, "json", false, "Print the list as JSON")
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()

	if flagListJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(games)
	}

	if len(games) == 0 {
		fmt.Println("No games registered.")
		return nil
	}

	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{g.ID, g.Title})
	}
	fmt.Println(renderTable([]string{"ID", "Title"}, rows))
	fmt.Println("\nStart one with 'arcade play <id>'.")
	return nil
}
