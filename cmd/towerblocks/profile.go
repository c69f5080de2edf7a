package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show coins, skins and settings",
	Args:  cobra.NoArgs,
	RunE:  runProfile,
}

func runProfile(_ *cobra.Command, _ []string) error {
	store, err := openStoreStrict()
	if err != nil {
		return err
	}
	defer store.Close()

	coins, err := store.Coins()
	if err != nil {
		return err
	}
	skins, err := store.UnlockedSkins()
	if err != nil {
		return err
	}
	st, err := store.LoadSettings()
	if err != nil {
		return err
	}
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Printf("Coins:        %d\n", coins)
	fmt.Printf("Skin:         %s\n", st.Skin)
	fmt.Printf("Unlocked:     %s\n", strings.Join(skins, ", "))
	fmt.Printf("Music volume: %d%%\n", st.MusicVolume)
	fmt.Printf("Sound volume: %d%%\n", st.SoundVolume)
	fmt.Printf("Background:   %s\n", st.Background)

	if len(stats) > 0 {
		fmt.Println()
		for _, id := range []string{"towerblocks", "towerblocks_practice"} {
			s, ok := stats[id]
			if !ok {
				continue
			}
			fmt.Printf("%-21s %d runs, best %d, tallest %d floors, %d golden\n",
				id+":", s.GamesCount, s.HighScore, s.BestFloors, s.GoldenTotal)
		}
	}
	return nil
}
