package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultsMatchEmbeddedYAML(t *testing.T) {
	var fromYAML TowerConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	def := DefaultTowerConfig()
	if fromYAML != def {
		t.Errorf("embedded YAML and DefaultTowerConfig differ:\nyaml: %+v\ndefault: %+v", fromYAML, def)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultTowerConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *TowerConfig)
	}{
		{"negative width", func(c *TowerConfig) { c.Block.Width = -96 }},
		{"zero height", func(c *TowerConfig) { c.Block.Height = 0 }},
		{"margin wider than block", func(c *TowerConfig) { c.Block.CollisionMargin = 64 }},
		{"golden outside collision window", func(c *TowerConfig) { c.Block.GoldenTolerance = 70 }},
		{"negative golden tolerance", func(c *TowerConfig) { c.Block.GoldenTolerance = -1 }},
		{"zero gravity", func(c *TowerConfig) { c.Physics.Gravity = 0 }},
		{"shrinking ramp", func(c *TowerConfig) { c.Physics.ForceMultiplier = 0.9 }},
		{"no lives", func(c *TowerConfig) { c.Gameplay.Lives = 0 }},
		{"compaction above reset cap", func(c *TowerConfig) { c.Camera.CompactFloors = 7 }},
		{"scroll line below ground", func(c *TowerConfig) { c.Camera.ScrollLine = 650 }},
		{"collapse below wobble", func(c *TowerConfig) { c.Tower.CollapseWidth = 50 }},
		{"zero wobble floors", func(c *TowerConfig) { c.Tower.WobbleMinFloors = 0 }},
		{"wobble cap below min floors", func(c *TowerConfig) { c.Tower.WobbleHardCap = 4 }},
		{"zero scroll floors", func(c *TowerConfig) { c.Camera.ScrollMinFloors = 0 }},
		{"scroll floors below onscreen cap", func(c *TowerConfig) { c.Camera.ScrollMinFloors = 3 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTowerConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadTowerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tower.yaml")
	data := []byte("block:\n  width: 96\n  height: 96\ngameplay:\n  lives: 4\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTower(path)
	if err != nil {
		t.Fatalf("LoadTower() failed: %v", err)
	}
	if cfg.Block.Width != 96 || cfg.Block.Height != 96 {
		t.Errorf("block size = %vx%v, expected 96x96", cfg.Block.Width, cfg.Block.Height)
	}
	if cfg.Gameplay.Lives != 4 {
		t.Errorf("lives = %d, expected 4", cfg.Gameplay.Lives)
	}
	// Untouched sections keep their defaults
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("gravity = %v, expected default 0.5", cfg.Physics.Gravity)
	}
}

func TestLoadTowerRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tower.yaml")
	if err := os.WriteFile(path, []byte("block:\n  width: -10\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadTower(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadTower() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadTowerMissingCustomPath(t *testing.T) {
	if _, err := LoadTower(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadTower() should fail for a missing custom file")
	}
}

func TestApplyTowerPreset(t *testing.T) {
	easy := DefaultTowerConfig()
	ApplyTowerPreset(&easy, DifficultyEasy)
	if easy.Gameplay.Lives != 5 {
		t.Errorf("easy lives = %d, expected 5", easy.Gameplay.Lives)
	}
	if math.Abs(easy.Physics.InitialForce) >= math.Abs(DefaultTowerConfig().Physics.InitialForce) {
		t.Error("easy preset should soften the initial force")
	}

	fixed := DefaultTowerConfig()
	ApplyTowerPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed preset should disable the force ramp")
	}

	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed} {
		cfg := DefaultTowerConfig()
		ApplyTowerPreset(&cfg, p)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q produces invalid config: %v", p, err)
		}
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) should be DifficultyHard")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown presets should parse to empty")
	}
}

func TestForceRamp(t *testing.T) {
	cfg := DefaultTowerConfig()
	ramp := NewForceRamp(cfg.Physics, cfg.Difficulty)

	next := ramp.Next(-0.001)
	if math.Abs(next-(-0.00102)) > 1e-12 {
		t.Errorf("Next(-0.001) = %v, expected -0.00102", next)
	}

	// Magnitude is capped while the sign survives
	if got := ramp.Next(-0.0199); got != -0.02 {
		t.Errorf("Next should clamp to -max_force, got %v", got)
	}

	cfg.Difficulty.Enabled = false
	fixed := NewForceRamp(cfg.Physics, cfg.Difficulty)
	if fixed.Next(-0.001) != -0.001 {
		t.Error("disabled ramp should keep the force unchanged")
	}

	cfg.Physics.MaxForce = 0
	unclamped := NewForceRamp(cfg.Physics, RampConfig{Enabled: true})
	if unclamped.Clamp(-5) != -5 {
		t.Error("max_force 0 should disable the cap")
	}
}

func TestLoadTowerRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.yaml")
	if err := os.WriteFile(path, []byte("block:\n  widht: 80\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadTower(path); err == nil {
		t.Error("LoadTower() should reject a misspelled key in a custom file")
	}
}

func TestLoadTowerEmptyCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.yaml")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTower(path)
	if err != nil {
		t.Fatalf("LoadTower() failed: %v", err)
	}
	if cfg != DefaultTowerConfig() {
		t.Error("an empty file should yield the defaults")
	}
}

func TestSearchPathsEndWithLocalDir(t *testing.T) {
	paths := SearchPaths()
	if len(paths) == 0 || paths[len(paths)-1] != filepath.Join("configs", "tower.yaml") {
		t.Errorf("SearchPaths() = %v", paths)
	}
}

// writeHomeConfig places a tower.yaml in the per-user search path of a fresh HOME.
func writeHomeConfig(t *testing.T, data string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".towerblocks", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tower.yaml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTowerInvalidHomeConfig(t *testing.T) {
	writeHomeConfig(t, "block:\n  width: -5\n")

	_, err := LoadTower("")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("LoadTower() error = %v, expected ErrInvalidConfig", err)
	}
	if _, err := ResolveTower("", DifficultyNormal); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ResolveTower() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadTowerUnparsableHomeConfig(t *testing.T) {
	writeHomeConfig(t, "block: [64\n")

	if _, err := LoadTower(""); err == nil {
		t.Error("LoadTower() should fail on a search path file that does not parse")
	}
}

func TestLoadTowerHomeConfigOverrides(t *testing.T) {
	writeHomeConfig(t, "gameplay:\n  lives: 7\n")

	cfg, err := LoadTower("")
	if err != nil {
		t.Fatalf("LoadTower() failed: %v", err)
	}
	if cfg.Gameplay.Lives != 7 {
		t.Errorf("lives = %d, expected 7", cfg.Gameplay.Lives)
	}
}

func TestResolveTowerValidatesPreset(t *testing.T) {
	// Collision window of 8 leaves room for the default golden tolerance only
	path := filepath.Join(t.TempDir(), "tower.yaml")
	data := []byte("block:\n  width: 12\n  collision_margin: 4\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := ResolveTower(path, DifficultyNormal); err != nil {
		t.Fatalf("ResolveTower(normal) failed: %v", err)
	}
	_, err := ResolveTower(path, DifficultyEasy)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ResolveTower(easy) error = %v, expected ErrInvalidConfig", err)
	}
}

func TestResolveTowerAppliesPreset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := ResolveTower("", DifficultyHard)
	if err != nil {
		t.Fatalf("ResolveTower() failed: %v", err)
	}
	if cfg.Gameplay.Lives != 2 {
		t.Errorf("lives = %d, expected hard preset's 2", cfg.Gameplay.Lives)
	}
}
