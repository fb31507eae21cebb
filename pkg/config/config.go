/*
Package config manages TOML config for the suggestion engine and its
stdio server.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/internal/utils"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/suggest"
)

// Config holds the entire config structure
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Search   SearchConfig   `toml:"search"`
	Keyboard KeyboardConfig `toml:"keyboard"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit         int  `toml:"max_limit"`
	MaxInputLength   int  `toml:"max_input_length"`
	FullEditDistance bool `toml:"full_edit_distance"`
}

// SearchConfig holds the correction search tuning. Zero values fall back
// to the built-in defaults.
type SearchConfig struct {
	MaxErrors           int `toml:"max_errors"`
	MaxErrorsForSplit   int `toml:"max_errors_for_split"`
	MaxSplits           int `toml:"max_splits"`
	TypedLetterMult     int `toml:"typed_letter_multiplier"`
	FullWordMult        int `toml:"full_word_multiplier"`
	ProximityDemote     int `toml:"proximity_demotion"`
	SubstitutionDemote  int `toml:"substitution_demotion"`
	OmissionDemote      int `toml:"omission_demotion"`
	InsertionDemote     int `toml:"insertion_demotion"`
	TranspositionDemote int `toml:"transposition_demotion"`
	DigraphDemote       int `toml:"digraph_demotion"`
	CompletionDemote    int `toml:"completion_demotion"`
	MultiWordDemote     int `toml:"multi_word_demotion"`
}

// KeyboardConfig holds layout options.
type KeyboardConfig struct {
	Locale            string `toml:"locale"`
	MaxProximityChars int    `toml:"max_proximity_chars"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "suggestd")
	if utils.WritableDir(primaryPath) {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "suggestd")
	if utils.WritableDir(macOSPath) {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/suggestd/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	opts := suggest.DefaultOptions()
	return &Config{
		Server: ServerConfig{
			MaxLimit:         opts.MaxWords,
			MaxInputLength:   opts.MaxWordLength,
			FullEditDistance: false,
		},
		Search: SearchConfig{
			MaxErrors:           opts.MaxErrors,
			MaxErrorsForSplit:   opts.MaxErrorsForSplit,
			MaxSplits:           opts.MaxSplits,
			TypedLetterMult:     opts.TypedLetterMultiplier,
			FullWordMult:        opts.FullWordMultiplier,
			ProximityDemote:     opts.ProximityDemotionRate,
			SubstitutionDemote:  opts.SubstitutionDemotionRate,
			OmissionDemote:      opts.OmissionDemotionRate,
			InsertionDemote:     opts.InsertionDemotionRate,
			TranspositionDemote: opts.TranspositionDemotionRate,
			DigraphDemote:       opts.DigraphDemotionRate,
			CompletionDemote:    opts.CompletionDemotionRate,
			MultiWordDemote:     opts.MultiWordDemotionRate,
		},
		Keyboard: KeyboardConfig{
			Locale:            "en",
			MaxProximityChars: 16,
		},
	}
}

// SearchOptions maps the loaded config onto the engine's option set,
// falling back to defaults for unset (zero) values.
func (c *Config) SearchOptions() suggest.Options {
	opts := suggest.DefaultOptions()
	s := c.Search
	if c.Server.MaxLimit > 0 {
		opts.MaxWords = c.Server.MaxLimit
	}
	if c.Server.MaxInputLength > 0 {
		opts.MaxWordLength = c.Server.MaxInputLength
	}
	if s.MaxErrors > 0 {
		opts.MaxErrors = s.MaxErrors
	}
	if s.MaxErrorsForSplit > 0 {
		opts.MaxErrorsForSplit = s.MaxErrorsForSplit
	}
	if s.MaxSplits > 0 {
		opts.MaxSplits = s.MaxSplits
	}
	if s.TypedLetterMult > 0 {
		opts.TypedLetterMultiplier = s.TypedLetterMult
	}
	if s.FullWordMult > 0 {
		opts.FullWordMultiplier = s.FullWordMult
	}
	if s.ProximityDemote > 0 {
		opts.ProximityDemotionRate = s.ProximityDemote
	}
	if s.SubstitutionDemote > 0 {
		opts.SubstitutionDemotionRate = s.SubstitutionDemote
	}
	if s.OmissionDemote > 0 {
		opts.OmissionDemotionRate = s.OmissionDemote
	}
	if s.InsertionDemote > 0 {
		opts.InsertionDemotionRate = s.InsertionDemote
	}
	if s.TranspositionDemote > 0 {
		opts.TranspositionDemotionRate = s.TranspositionDemote
	}
	if s.DigraphDemote > 0 {
		opts.DigraphDemotionRate = s.DigraphDemote
	}
	if s.CompletionDemote > 0 {
		opts.CompletionDemotionRate = s.CompletionDemote
	}
	if s.MultiWordDemote > 0 {
		opts.MultiWordDemotionRate = s.MultiWordDemote
	}
	return opts
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.DecodeTOMLMap(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if serverSection, ok := utils.Section(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if searchSection, ok := utils.Section(tempConfig, "search"); ok {
		extractSearchConfig(searchSection, &config.Search)
	}
	if kbSection, ok := utils.Section(tempConfig, "keyboard"); ok {
		extractKeyboardConfig(kbSection, &config.Keyboard)
	}
	return config, nil
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.IntAt(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.IntAt(data, "max_input_length"); ok {
		server.MaxInputLength = val
	}
	if val, ok := utils.BoolAt(data, "full_edit_distance"); ok {
		server.FullEditDistance = val
	}
}

// extractSearchConfig extracts search tuning from a map
func extractSearchConfig(data map[string]any, search *SearchConfig) {
	fields := map[string]*int{
		"max_errors":              &search.MaxErrors,
		"max_errors_for_split":    &search.MaxErrorsForSplit,
		"max_splits":              &search.MaxSplits,
		"typed_letter_multiplier": &search.TypedLetterMult,
		"full_word_multiplier":    &search.FullWordMult,
		"proximity_demotion":      &search.ProximityDemote,
		"substitution_demotion":   &search.SubstitutionDemote,
		"omission_demotion":       &search.OmissionDemote,
		"insertion_demotion":      &search.InsertionDemote,
		"transposition_demotion":  &search.TranspositionDemote,
		"digraph_demotion":        &search.DigraphDemote,
		"completion_demotion":     &search.CompletionDemote,
		"multi_word_demotion":     &search.MultiWordDemote,
	}
	for key, dst := range fields {
		if val, ok := utils.IntAt(data, key); ok {
			*dst = val
		}
	}
}

// extractKeyboardConfig extracts keyboard layout options from a map
func extractKeyboardConfig(data map[string]any, kb *KeyboardConfig) {
	if val, ok := utils.StringAt(data, "locale"); ok {
		kb.Locale = val
	}
	if val, ok := utils.IntAt(data, "max_proximity_chars"); ok {
		kb.MaxProximityChars = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}
