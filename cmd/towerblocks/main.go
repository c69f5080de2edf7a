// towerblocks is a terminal stack-the-block game.
//
// Usage:
//
//	towerblocks play             - Play a round (classic or practice)
//	towerblocks menu             - Start the interactive menu
//	towerblocks scores [mode]    - Show high scores
//	towerblocks shop             - List, buy and select skins
//	towerblocks profile          - Show coins, skins and settings
//	towerblocks list             - List game modes
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 120)
//	--db <path>     - Set database path (default: ~/.towerblocks/scores.db)
//	--log <path>    - Write a debug log to a file
//	--mute          - Disable audio
//
// TOWERBLOCKS_DB, TOWERBLOCKS_LOG and TOWERBLOCKS_FPS (also read from .env)
// replace the defaults of the matching flags.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tower-blocks/internal/audio"
	"github.com/vovakirdan/tower-blocks/internal/core"
	"github.com/vovakirdan/tower-blocks/internal/games/towerblocks"
	"github.com/vovakirdan/tower-blocks/internal/platform/tui"
	"github.com/vovakirdan/tower-blocks/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagLogPath string
	flagMute    bool
	flagVerbose bool

	logger = log.New(io.Discard)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "towerblocks",
	Short: "Tower Blocks - stack swinging blocks in your terminal",
	Long: `Tower Blocks is a terminal arcade game. A block swings on a rope;
release it so it lands on the tower. Aligned drops build the tower higher,
near-perfect drops are golden and pay double.

Available commands:
  play     - Play a round directly
  menu     - Interactive menu with shop and settings
  scores   - View high scores
  shop     - List, buy and select skins
  profile  - Show coins, skins and settings
  list     - Show game modes

Examples:
  towerblocks play
  towerblocks play --mode practice
  towerblocks menu --fps 60
  towerblocks shop buy ice`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 120, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.towerblocks/scores.db", "Path to save database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable audio")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug events")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(profileCmd)
}

// setup loads .env, applies environment defaults and opens the log.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: .env not loaded: %v\n", err)
	}

	flags := cmd.Flags()
	if v := os.Getenv("TOWERBLOCKS_DB"); v != "" && !flags.Changed("db") {
		flagDBPath = v
	}
	if v := os.Getenv("TOWERBLOCKS_LOG"); v != "" && !flags.Changed("log") {
		flagLogPath = v
	}
	if v := os.Getenv("TOWERBLOCKS_FPS"); v != "" && !flags.Changed("fps") {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TOWERBLOCKS_FPS %q: %w", v, err)
		}
		flagFPS = fps
	}
	if flagFPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", flagFPS)
	}

	return openLog()
}

// openLog points the logger at --log. The TUI owns the terminal, so without
// a file the log is discarded.
func openLog() error {
	if flagLogPath == "" {
		return nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "towerblocks",
		Level:           level,
	})
	return nil
}

// openStore opens the save database. A failure is logged and the game
// continues without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open save database: %v\n", err)
		logger.Warn("could not open save database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig builds the runtime config from the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

// loadProfile reads settings and applies the stored skin to new games.
func loadProfile(store *storage.Store) storage.Settings {
	st := storage.DefaultSettings()
	if store == nil {
		return st
	}
	loaded, err := store.LoadSettings()
	if err != nil {
		logger.Warn("could not load settings", "error", err)
		return st
	}
	towerblocks.SetSkin(loaded.Skin)
	return loaded
}

// newDeps wires the collaborators for a TUI session.
func newDeps(store *storage.Store, st storage.Settings) tui.Deps {
	sound := audio.NewManager(audio.Options{
		SoundVolume: st.SoundVolume,
		MusicVolume: st.MusicVolume,
		Mute:        flagMute,
		Logger:      logger,
	})
	_ = sound.Init() // headless audio is logged and ignored
	return tui.Deps{Store: store, Audio: sound, Logger: logger}
}
