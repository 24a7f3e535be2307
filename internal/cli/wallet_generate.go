package cli

import (
	"github.com/spf13/cobra"

	"github.com/keyloom/keyloom/internal/mnemonic"
	"github.com/keyloom/keyloom/internal/registry"
	loomerr "github.com/keyloom/keyloom/pkg/errors"
)

// generateMnemonic is the --mnemonic flag for wallet generate.
var generateMnemonic string

// walletGenerateCmd derives a new wallet, generating a recovery phrase on
// the first call.
var walletGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new wallet",
	Long: `Generate a new wallet for the selected chain.

The first generate establishes the session recovery phrase, either a
freshly generated 12-word phrase or one supplied with --mnemonic. Every
later wallet derives from that same phrase at the next hardened account
index.`,
	Args: cobra.NoArgs,
	RunE: runWalletGenerate,
}

// walletAddCmd derives another wallet from the established phrase.
var walletAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a wallet from the session recovery phrase",
	Args:  cobra.NoArgs,
	RunE:  runWalletAdd,
}

func runWalletGenerate(_ *cobra.Command, _ []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	wallet, err := reg.Generate(generateMnemonic)
	if err != nil {
		if generateMnemonic != "" && loomerr.Is(err, loomerr.ErrInvalidMnemonic) {
			if typos := mnemonic.DetectTypos(generateMnemonic); len(typos) > 0 {
				return loomerr.WithSuggestion(err, mnemonic.FormatTypoSuggestions(typos))
			}
		}
		return err
	}

	return printNewWallet(reg, wallet)
}

func runWalletAdd(_ *cobra.Command, _ []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	wallet, err := reg.AddFromExistingPhrase()
	if err != nil {
		return err
	}

	return printNewWallet(reg, wallet)
}

// printNewWallet reports a freshly derived wallet. Only the public key and
// path are shown; secrets stay concealed until revealed explicitly.
func printNewWallet(reg *registry.Registry, wallet *registry.Wallet) error {
	position := reg.Len() - 1

	if formatter.IsJSON() {
		return formatter.Print(map[string]any{
			"position":   position,
			"chain":      reg.Kind().String(),
			"path":       wallet.Path,
			"public_key": wallet.PublicKey,
		})
	}

	if err := formatter.Printf("Wallet #%d (%s)\n", position, reg.Kind()); err != nil {
		return err
	}
	if err := formatter.Printf("  Path:       %s\n", wallet.Path); err != nil {
		return err
	}
	return formatter.Printf("  Public key: %s\n", wallet.PublicKey)
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	walletGenerateCmd.Flags().StringVar(&generateMnemonic, "mnemonic", "", "recovery phrase to derive from (generated when omitted)")

	walletCmd.AddCommand(walletGenerateCmd)
	walletCmd.AddCommand(walletAddCmd)
}
