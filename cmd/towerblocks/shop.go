package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tower-blocks/internal/games/towerblocks"
	"github.com/vovakirdan/tower-blocks/internal/platform/tui"
	"github.com/vovakirdan/tower-blocks/internal/storage"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "List, buy and select skins",
	Long: `Browse the skin shop. Without a subcommand the interactive shop opens.

Examples:
  towerblocks shop
  towerblocks shop list
  towerblocks shop buy ice
  towerblocks shop select classic`,
	Args: cobra.NoArgs,
	RunE: runShop,
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skins with prices and ownership",
	Args:  cobra.NoArgs,
	RunE:  runShopList,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <skin>",
	Short: "Buy a skin with coins and select it",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopChoose,
}

var shopSelectCmd = &cobra.Command{
	Use:   "select <skin>",
	Short: "Select an unlocked skin",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopChoose,
}

func init() {
	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopBuyCmd)
	shopCmd.AddCommand(shopSelectCmd)
}

func openStoreStrict() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening save database: %w", err)
	}
	return store, nil
}

func runShop(_ *cobra.Command, _ []string) error {
	store, err := openStoreStrict()
	if err != nil {
		return err
	}
	defer store.Close()

	cfg := runtimeConfig()
	_, err = tui.RunShop(store, cfg.ScreenW, cfg.ScreenH)
	return err
}

func runShopList(_ *cobra.Command, _ []string) error {
	store, err := openStoreStrict()
	if err != nil {
		return err
	}
	defer store.Close()

	coins, err := store.Coins()
	if err != nil {
		return err
	}
	selected, err := store.SelectedSkin()
	if err != nil {
		return err
	}

	fmt.Printf("Coins: %d\n\n", coins)
	fmt.Printf("  %-8s  %-8s  %5s  %s\n", "ID", "Name", "Price", "Status")
	fmt.Printf("  %-8s  %-8s  %5s  %s\n", "--", "----", "-----", "------")
	for _, s := range towerblocks.Skins() {
		owned, err := store.IsSkinUnlocked(s.ID)
		if err != nil {
			return err
		}
		status := "locked"
		switch {
		case s.ID == selected:
			status = "selected"
		case owned:
			status = "owned"
		}
		fmt.Printf("  %-8s  %-8s  %5d  %s\n", s.ID, s.Name, s.Price, status)
	}
	return nil
}

// runShopChoose serves both buy and select; owned skins are never charged twice.
func runShopChoose(cmd *cobra.Command, args []string) error {
	skin, ok := towerblocks.LookupSkin(args[0])
	if !ok {
		return fmt.Errorf("unknown skin %q, see 'towerblocks shop list'", args[0])
	}

	store, err := openStoreStrict()
	if err != nil {
		return err
	}
	defer store.Close()

	if cmd == shopSelectCmd {
		if err := store.SelectSkin(skin.ID); err != nil {
			if errors.Is(err, storage.ErrSkinLocked) {
				return fmt.Errorf("skin %q is locked, buy it first (%d coins)", skin.ID, skin.Price)
			}
			return err
		}
		fmt.Printf("%s selected.\n", skin.Name)
		return nil
	}

	out, err := tui.BuyOrSelect(store, skin)
	if errors.Is(err, storage.ErrInsufficientCoins) {
		coins, _ := store.Coins()
		return fmt.Errorf("not enough coins for %s: have %d, need %d", skin.Name, coins, skin.Price)
	}
	if err != nil {
		return err
	}

	if out.Bought {
		logger.Info("skin bought", "skin", skin.ID, "price", skin.Price)
		fmt.Printf("Bought %s for %d coins. %d coins left.\n", skin.Name, skin.Price, out.Coins)
	} else {
		fmt.Printf("%s is already yours and is now selected.\n", skin.Name)
	}
	return nil
}
