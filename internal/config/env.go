package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome            = "KEYLOOM_HOME"
	EnvOutputFormat    = "KEYLOOM_OUTPUT_FORMAT"
	EnvVerbose         = "KEYLOOM_VERBOSE"
	EnvLogLevel        = "KEYLOOM_LOG_LEVEL"
	EnvStorePassphrase = "KEYLOOM_STORE_PASSPHRASE" // #nosec G101 -- const name, not a credential
)

// ApplyEnvironment applies environment variable overrides to the
// configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}

// StorePassphrase returns the at-rest encryption passphrase from the
// environment, empty when unset.
func StorePassphrase() string {
	return os.Getenv(EnvStorePassphrase)
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
