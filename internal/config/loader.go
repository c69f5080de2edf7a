package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTower returns the validated tower configuration.
//
// A non-empty customPath must exist and parse; unknown keys in it are
// rejected so typos fail loudly. Otherwise the first readable file of
// SearchPaths wins, then the embedded default. A search path file that
// exists but does not parse is an error, not a fallback. Every file is
// decoded over DefaultTowerConfig, so partial overrides are allowed.
func LoadTower(customPath string) (TowerConfig, error) {
	cfg, err := readTower(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ResolveTower loads the configuration, applies a difficulty preset and
// validates the result. Presets can push a valid file out of range, so the
// check runs after they are applied.
func ResolveTower(customPath string, preset DifficultyPreset) (TowerConfig, error) {
	cfg, err := readTower(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyTowerPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SearchPaths lists the optional config locations, most specific first.
func SearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".towerblocks", "configs", "tower.yaml"))
	}
	return append(paths, filepath.Join("configs", "tower.yaml"))
}

func readTower(customPath string) (TowerConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTowerConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decodeTower(data, true)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, p := range SearchPaths() {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		cfg, err := decodeTower(data, false)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", p, err)
		}
		return cfg, nil
	}

	cfg, err := decodeTower(defaultTowerYAML, false)
	if err != nil {
		return DefaultTowerConfig(), nil
	}
	return cfg, nil
}

// decodeTower overlays YAML onto the hardcoded defaults.
func decodeTower(data []byte, strict bool) (TowerConfig, error) {
	cfg := DefaultTowerConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}
	return cfg, nil
}

// ApplyTowerPreset modifies the config based on a difficulty preset.
// Unknown or empty presets leave the config untouched.
func ApplyTowerPreset(cfg *TowerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Gameplay.Lives = 5
		cfg.Physics.InitialForce *= 0.7
		cfg.Block.GoldenTolerance = 8
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Gameplay.Lives = 2
		cfg.Physics.InitialForce *= 1.5
		cfg.Physics.ForceMultiplier = 1.03
		cfg.Block.GoldenTolerance = 3
	}
}
