package config

import (
	"os"
	"path/filepath"
)

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.keyloom",
		Store: StoreConfig{
			Path:            "",
			EncryptMnemonic: false,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Columns:       1,
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.keyloom/keyloom.log",
		},
	}
}

// DefaultHome returns the default data directory, expanding the home dir
// when possible.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".keyloom"
	}
	return filepath.Join(home, ".keyloom")
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
