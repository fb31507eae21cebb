package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FileExists reports whether path names an existing file.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dirPath and any missing parents.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// WritableDir reports whether dirPath exists (creating it when missing)
// and accepts new files. The config loader walks its directory fallback
// chain with it, so failures log and return false rather than error.
func WritableDir(dirPath string) bool {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		log.Warnf("cannot create directory %s: %v", dirPath, err)
		return false
	}
	check := filepath.Join(dirPath, ".suggestd-write-check")
	f, err := os.Create(check)
	if err != nil {
		log.Warnf("directory %s is not writable: %v", dirPath, err)
		return false
	}
	f.Close()
	os.Remove(check)
	return true
}

// GetAbsolutePath resolves path against the working directory. An empty
// path comes back as "unknown" so callers can log it verbatim.
func GetAbsolutePath(path string) string {
	if path == "" {
		return "unknown"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// GetExecutableDir returns the directory holding the running binary, the
// last stop on the config-dir fallback chain.
func GetExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
