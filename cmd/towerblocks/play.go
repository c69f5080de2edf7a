package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tower-blocks/internal/config"
	"github.com/vovakirdan/tower-blocks/internal/games/towerblocks"
	"github.com/vovakirdan/tower-blocks/internal/platform/tui"
	"github.com/vovakirdan/tower-blocks/internal/registry"
)

var (
	flagMode       string
	flagConfig     string
	flagDifficulty string
	flagSkin       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round of Tower Blocks.

Controls:
  Space/Down/Enter - Release the block
  P                - Pause
  R                - Restart (after game over)
  Esc              - Back
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a text screenshot

Modes:
  classic  - Three lives, coins for every floor
  practice - No lives, the tower simply restarts

Difficulty options:
  easy   - Gentle swing, slow ramp
  normal - Default tuning
  hard   - Fast swing from the first block
  fixed  - The swing never speeds up

Examples:
  towerblocks play
  towerblocks play --mode practice
  towerblocks play --difficulty hard --skin neon
  towerblocks play --config ./my-tower.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "classic", "Game mode: classic, practice")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tower config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagSkin, "skin", "", "Skin to use for this session (must be unlocked)")
}

// modeGameID maps a --mode value to a registered game ID.
func modeGameID(mode string) (string, error) {
	switch mode {
	case "", "classic":
		return "towerblocks", nil
	case "practice":
		return "towerblocks_practice", nil
	}
	return "", fmt.Errorf("unknown mode %q (want classic or practice)", mode)
}

// applyGameFlags resolves the config with its difficulty preset, fails on
// anything invalid and hands the result to new games.
func applyGameFlags() error {
	preset := config.ParsePreset(flagDifficulty)
	if flagDifficulty != "" && preset == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	cfg, err := config.ResolveTower(flagConfig, preset)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := towerblocks.SetConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger.Debug("config loaded", "path", flagConfig, "difficulty", flagDifficulty)
	return nil
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameID, err := modeGameID(flagMode)
	if err != nil {
		return err
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	st := loadProfile(store)

	if flagSkin != "" {
		if _, ok := towerblocks.LookupSkin(flagSkin); !ok {
			return fmt.Errorf("unknown skin %q", flagSkin)
		}
		if store != nil {
			owned, err := store.IsSkinUnlocked(flagSkin)
			if err != nil {
				return err
			}
			if !owned {
				return fmt.Errorf("skin %q is locked, buy it with 'towerblocks shop buy %s'", flagSkin, flagSkin)
			}
		}
		towerblocks.SetSkin(flagSkin)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	deps := newDeps(store, st)
	defer deps.Audio.Close()

	logger.Info("round started", "mode", gameID, "fps", flagFPS)
	if _, err := tui.Run(game, deps, runtimeConfig(), st.Background); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
