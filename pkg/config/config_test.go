package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.MaxLimit < 1 || cfg.Server.MaxInputLength < 1 {
		t.Errorf("defaults must be positive: %+v", cfg.Server)
	}
	if cfg.Keyboard.Locale == "" || cfg.Keyboard.MaxProximityChars < 1 {
		t.Errorf("keyboard defaults must be set: %+v", cfg.Keyboard)
	}
}

func TestSearchOptionsMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.MaxErrors = 3
	cfg.Search.MultiWordDemote = 60
	cfg.Server.MaxLimit = 7

	opts := cfg.SearchOptions()
	if opts.MaxErrors != 3 {
		t.Errorf("MaxErrors = %d, want 3", opts.MaxErrors)
	}
	if opts.MultiWordDemotionRate != 60 {
		t.Errorf("MultiWordDemotionRate = %d, want 60", opts.MultiWordDemotionRate)
	}
	if opts.MaxWords != 7 {
		t.Errorf("MaxWords = %d, want 7", opts.MaxWords)
	}

	// zero values fall back to the engine defaults
	cfg.Search.OmissionDemote = 0
	opts = cfg.SearchOptions()
	if opts.OmissionDemotionRate == 0 {
		t.Error("zero config value must fall back to the default rate")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.Server.MaxLimit = 42
	cfg.Keyboard.Locale = "de"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.MaxLimit != 42 || loaded.Keyboard.Locale != "de" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg == nil {
		t.Fatal("InitConfig returned nil config")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file should have been created: %v", err)
	}
}

func TestPartialParseRecovery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	// valid server section; the keyboard value carries the wrong type
	body := "[server]\nmax_limit = 9\n\n[keyboard]\nlocale = \"fr\"\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.MaxLimit != 9 {
		t.Errorf("MaxLimit = %d, want 9", cfg.Server.MaxLimit)
	}
	if cfg.Keyboard.Locale != "fr" {
		t.Errorf("Locale = %q, want fr", cfg.Keyboard.Locale)
	}
	// untouched sections keep their defaults
	if cfg.Search.MaxErrors != DefaultConfig().Search.MaxErrors {
		t.Errorf("unset section should keep defaults, got %+v", cfg.Search)
	}
}
