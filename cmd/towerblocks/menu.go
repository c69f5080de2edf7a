package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tower-blocks/internal/platform/tui"
	"github.com/vovakirdan/tower-blocks/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start Tower Blocks in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a round ends, Esc returns you to the menu.

Examples:
  towerblocks menu
  towerblocks menu --fps 60
  towerblocks menu --db ./save.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tower config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	st := loadProfile(store)

	deps := newDeps(store, st)
	defer deps.Audio.Close()

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(deps, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch res.Choice {
		case tui.ChoiceQuit, tui.ChoiceNone:
			return nil

		case tui.ChoiceClassic, tui.ChoicePractice:
			game, err := registry.Create(res.GameID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				continue
			}
			logger.Info("round started", "mode", res.GameID)
			back, err := tui.Run(game, deps, cfg, st.Background)
			if err != nil {
				return fmt.Errorf("error running game: %w", err)
			}
			if !back {
				return nil
			}

		case tui.ChoiceShop:
			back, err := tui.RunShop(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil || !back {
				return err
			}

		case tui.ChoiceSettings:
			updated, back, err := tui.RunSettings(deps, cfg.ScreenW)
			if err != nil {
				return err
			}
			st.MusicVolume = updated.MusicVolume
			st.SoundVolume = updated.SoundVolume
			st.Background = updated.Background
			if !back {
				return nil
			}

		case tui.ChoiceScores:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil || !back {
				return err
			}
		}
	}
}
