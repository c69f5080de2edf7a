package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInsufficientCoins is returned when a purchase exceeds the balance.
	ErrInsufficientCoins = errors.New("storage: insufficient coins")
	// ErrSkinOwned is returned when buying a skin that is already unlocked.
	ErrSkinOwned = errors.New("storage: skin already unlocked")
	// ErrSkinLocked is returned when selecting a skin that is not unlocked.
	ErrSkinLocked = errors.New("storage: skin is locked")
)

// Coins returns the current wallet balance.
func (s *Store) Coins() (int, error) {
	var coins int
	if err := s.db.QueryRow("SELECT coins FROM wallet WHERE id = 1").Scan(&coins); err != nil {
		return 0, fmt.Errorf("storage: cannot read coins: %w", err)
	}
	return coins, nil
}

// AddCoins credits n coins and returns the new balance.
func (s *Store) AddCoins(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("storage: cannot add negative coins: %d", n)
	}
	if _, err := s.db.Exec("UPDATE wallet SET coins = coins + ? WHERE id = 1", n); err != nil {
		return 0, fmt.Errorf("storage: cannot add coins: %w", err)
	}
	return s.Coins()
}

// SpendCoins debits n coins and returns the new balance.
// The balance never goes negative.
func (s *Store) SpendCoins(n int) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	balance, err := spend(tx, n)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit spend: %w", err)
	}
	return balance, nil
}

func spend(tx *sql.Tx, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("storage: cannot spend negative coins: %d", n)
	}
	var coins int
	if err := tx.QueryRow("SELECT coins FROM wallet WHERE id = 1").Scan(&coins); err != nil {
		return 0, fmt.Errorf("storage: cannot read coins: %w", err)
	}
	if coins < n {
		return coins, ErrInsufficientCoins
	}
	if _, err := tx.Exec("UPDATE wallet SET coins = coins - ? WHERE id = 1", n); err != nil {
		return 0, fmt.Errorf("storage: cannot spend coins: %w", err)
	}
	return coins - n, nil
}

// UnlockSkin marks a skin as owned. Unlocking twice is a no-op.
func (s *Store) UnlockSkin(skinID string) error {
	if _, err := s.db.Exec("INSERT OR IGNORE INTO skins (skin_id) VALUES (?)", skinID); err != nil {
		return fmt.Errorf("storage: cannot unlock skin: %w", err)
	}
	return nil
}

// IsSkinUnlocked reports whether the skin is owned.
func (s *Store) IsSkinUnlocked(skinID string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM skins WHERE skin_id = ?", skinID).Scan(&n); err != nil {
		return false, fmt.Errorf("storage: cannot query skin: %w", err)
	}
	return n > 0, nil
}

// UnlockedSkins returns the owned skin IDs in unlock order.
func (s *Store) UnlockedSkins() ([]string, error) {
	rows, err := s.db.Query("SELECT skin_id FROM skins ORDER BY unlocked_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query skins: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan skin: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}

// BuySkin spends price coins and unlocks the skin in one transaction.
// Returns the new balance.
func (s *Store) BuySkin(skinID string, price int) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var owned int
	if err := tx.QueryRow("SELECT COUNT(*) FROM skins WHERE skin_id = ?", skinID).Scan(&owned); err != nil {
		return 0, fmt.Errorf("storage: cannot query skin: %w", err)
	}
	if owned > 0 {
		return 0, ErrSkinOwned
	}

	balance, err := spend(tx, price)
	if err != nil {
		return balance, err
	}
	if _, err := tx.Exec("INSERT INTO skins (skin_id) VALUES (?)", skinID); err != nil {
		return 0, fmt.Errorf("storage: cannot unlock skin: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit purchase: %w", err)
	}
	return balance, nil
}

// Settings holds the player's preferences.
type Settings struct {
	MusicVolume int    // 0-100
	SoundVolume int    // 0-100
	Background  string // Background theme name
	Skin        string // Selected skin ID
}

// DefaultSettings returns the preferences of a fresh profile.
func DefaultSettings() Settings {
	return Settings{
		MusicVolume: 50,
		SoundVolume: 80,
		Background:  "day",
		Skin:        DefaultSkin,
	}
}

const (
	keyMusicVolume = "music_volume"
	keySoundVolume = "sound_volume"
	keyBackground  = "background"
	keySkin        = "selected_skin"
)

// LoadSettings reads preferences, filling missing keys with defaults.
func (s *Store) LoadSettings() (Settings, error) {
	st := DefaultSettings()

	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return st, fmt.Errorf("storage: cannot query settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return st, fmt.Errorf("storage: cannot scan setting: %w", err)
		}
		switch key {
		case keyMusicVolume:
			if v, err := strconv.Atoi(value); err == nil {
				st.MusicVolume = clampVolume(v)
			}
		case keySoundVolume:
			if v, err := strconv.Atoi(value); err == nil {
				st.SoundVolume = clampVolume(v)
			}
		case keyBackground:
			st.Background = value
		case keySkin:
			st.Skin = value
		}
	}
	if err := rows.Err(); err != nil {
		return st, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return st, nil
}

// SaveSettings writes all preferences. Volumes are clamped to 0-100.
func (s *Store) SaveSettings(st Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	values := map[string]string{
		keyMusicVolume: strconv.Itoa(clampVolume(st.MusicVolume)),
		keySoundVolume: strconv.Itoa(clampVolume(st.SoundVolume)),
		keyBackground:  st.Background,
	}
	for k, v := range values {
		if err := putSetting(tx, k, v); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit settings: %w", err)
	}
	return nil
}

// SelectSkin persists the skin choice. Only unlocked skins can be selected.
func (s *Store) SelectSkin(skinID string) error {
	ok, err := s.IsSkinUnlocked(skinID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSkinLocked
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := putSetting(tx, keySkin, skinID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit skin selection: %w", err)
	}
	return nil
}

// SelectedSkin returns the persisted skin choice.
func (s *Store) SelectedSkin() (string, error) {
	st, err := s.LoadSettings()
	return st.Skin, err
}

func putSetting(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save setting %s: %w", key, err)
	}
	return nil
}

func clampVolume(v int) int {
	return min(100, max(0, v))
}
