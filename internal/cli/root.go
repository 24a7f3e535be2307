// Package cli implements the keyloom command-line interface.
//
// This package uses global variables to manage CLI state, which is the standard
// pattern for Cobra-based CLI applications. The globals are initialized in
// PersistentPreRunE and cleaned up in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/keyloom/keyloom/internal/config"
	"github.com/keyloom/keyloom/internal/output"
	"github.com/keyloom/keyloom/internal/registry"
	"github.com/keyloom/keyloom/internal/store"
	loomerr "github.com/keyloom/keyloom/pkg/errors"
)

var (
	// Global flags
	homeDir      string
	outputFormat string
	verbose      bool

	// Global state initialized in PersistentPreRunE
	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "keyloom",
	Short: "Deterministic multi-chain HD wallet derivation",
	Long: `Keyloom derives Solana and Ethereum wallets from BIP39 recovery phrases
using fully hardened BIP44 paths, entirely offline.

Select a chain once, then generate as many wallets as you need; every
wallet in a session shares one recovery phrase and gets its own hardened
account index.

Example:
  keyloom chain select solana
  keyloom wallet generate
  keyloom wallet add
  keyloom wallet show 0 --reveal-private --qr`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initGlobals()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if formatter != nil {
			_ = output.FormatError(os.Stderr, err, formatter.Format())
		} else {
			_ = output.FormatError(os.Stderr, err, output.FormatText)
		}
		return err
	}
	return nil
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return loomerr.ExitCode(err)
}

// initGlobals initializes global configuration, logger, and formatter.
func initGlobals() error {
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	var err error
	cfg, err = config.Load(config.Path(home))
	if err != nil {
		if !os.IsNotExist(err) {
			output.Warnf("ignoring unreadable config %s: %v", config.Path(home), err)
		}
		cfg = config.Defaults()
		cfg.Home = home
	}

	config.ApplyEnvironment(cfg)

	if homeDir != "" {
		cfg.Home = homeDir
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = "debug"
	}
	if outputFormat != "" && outputFormat != "auto" {
		cfg.Output.DefaultFormat = outputFormat
	}

	logger, err = config.NewLogger(config.ParseLogLevel(cfg.Logging.Level), cfg.Logging.File)
	if err != nil {
		logger = config.NullLogger()
	}

	explicitFormat := output.ParseFormat(cfg.Output.DefaultFormat)
	formatter = output.NewFormatter(output.DetectFormat(os.Stdout, explicitFormat), os.Stdout)

	return nil
}

// cleanup releases resources.
func cleanup() {
	if logger != nil {
		_ = logger.Close()
	}
}

// openRegistry builds the persistence gateway from the configuration and
// restores the registry from it.
func openRegistry() (*registry.Registry, error) {
	passphrase := config.StorePassphrase()
	if cfg.Store.EncryptMnemonic && passphrase == "" {
		return nil, loomerr.WithSuggestion(
			loomerr.ErrConfigInvalid,
			"set "+config.EnvStorePassphrase+" to encrypt the stored recovery phrase, or disable store.encrypt_mnemonic",
		)
	}

	var gateway registry.Gateway
	if passphrase != "" {
		gateway = store.NewEncryptedFileStore(cfg.StorePath(), passphrase)
	} else {
		gateway = store.NewFileStore(cfg.StorePath())
	}

	reg := registry.New(gateway, logger)
	if err := reg.Restore(); err != nil {
		return nil, err
	}
	return reg, nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "keyloom data directory (default: ~/.keyloom)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
