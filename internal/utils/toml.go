package utils

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// SaveTOMLFile encodes v as TOML at filePath, replacing any existing file.
func SaveTOMLFile(v any, filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", filePath, err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(v)
}

// LoadTOMLFile decodes the TOML file at path into out.
func LoadTOMLFile(path string, out any) error {
	if _, err := toml.DecodeFile(path, out); err != nil {
		log.Warnf("malformed TOML in %s: %v", path, err)
		return err
	}
	return nil
}

// DecodeTOMLMap parses the file at path into a loose map so the config
// loader can salvage the readable sections of a file that fails strict
// decoding.
func DecodeTOMLMap(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if _, err := toml.Decode(string(raw), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Section returns the named sub-table of decoded TOML data.
func Section(data map[string]any, name string) (map[string]any, bool) {
	s, ok := data[name].(map[string]any)
	return s, ok
}

// IntAt reads an integer key from decoded TOML data. The toml package
// surfaces every integer as int64.
func IntAt(data map[string]any, key string) (int, bool) {
	v, ok := data[key].(int64)
	return int(v), ok
}

// BoolAt reads a boolean key from decoded TOML data.
func BoolAt(data map[string]any, key string) (bool, bool) {
	v, ok := data[key].(bool)
	return v, ok
}

// StringAt reads a string key from decoded TOML data.
func StringAt(data map[string]any, key string) (string, bool) {
	v, ok := data[key].(string)
	return v, ok
}
