package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tower-blocks/internal/registry"
	"github.com/vovakirdan/tower-blocks/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the best runs for a game mode (classic by default).

Examples:
  towerblocks scores
  towerblocks scores practice
  towerblocks scores --limit 25`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	gameID, err := modeGameID(mode)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening save database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'towerblocks play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-6s  %-6s  %s\n", "Rank", "Score", "Floors", "Golden", "Date")
	fmt.Printf("  %-4s  %-7s  %-6s  %-6s  %s\n", "----", "-----", "------", "------", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-7d  %-6d  %-6d  %s\n", i+1, e.Score, e.Floors, e.Golden, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d   Best: %d   Average: %.1f   Tallest: %d floors\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestFloors)
	}
	return nil
}
