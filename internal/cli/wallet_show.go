package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/keyloom/keyloom/internal/output"
	"github.com/keyloom/keyloom/internal/registry"
)

// Flags for wallet show.
var (
	showRevealPrivate  bool
	showRevealMnemonic bool
	showHidePrivate    bool
	showHideMnemonic   bool
	showQR             bool
)

// walletShowCmd displays one wallet, optionally toggling field visibility.
var walletShowCmd = &cobra.Command{
	Use:   "show <position>",
	Short: "Show a wallet",
	Long: `Show the wallet at a list position.

Reveal and hide flags change which fields are displayed, and the choice is
remembered for later list and show calls. Revealed fields print as raw
values, so they can be piped straight into clipboard tooling.`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletShow,
}

func runWalletShow(_ *cobra.Command, args []string) error {
	position, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	reg, err := openRegistry()
	if err != nil {
		return err
	}

	if err := applyVisibilityFlags(reg, position); err != nil {
		return err
	}

	rec, err := reg.Record(position)
	if err != nil {
		return err
	}

	view := walletView(reg, position, *rec)
	if formatter.IsJSON() {
		if err := formatter.Print(view); err != nil {
			return err
		}
	} else if err := formatter.Printf("%s", view.Card()); err != nil {
		return err
	}

	if showQR && rec.Visibility.PublicKey {
		return output.RenderQR(os.Stdout, rec.Wallet.PublicKey, output.DefaultQRConfig())
	}
	return nil
}

// applyVisibilityFlags persists any reveal or hide toggles before display.
func applyVisibilityFlags(reg *registry.Registry, position int) error {
	toggles := []struct {
		set   bool
		field registry.Field
		shown bool
	}{
		{showRevealPrivate, registry.FieldPrivateKey, true},
		{showHidePrivate, registry.FieldPrivateKey, false},
		{showRevealMnemonic, registry.FieldMnemonic, true},
		{showHideMnemonic, registry.FieldMnemonic, false},
	}

	for _, t := range toggles {
		if !t.set {
			continue
		}
		if err := reg.SetVisibility(position, t.field, t.shown); err != nil {
			return err
		}
	}
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	walletShowCmd.Flags().BoolVar(&showRevealPrivate, "reveal-private", false, "reveal the private key")
	walletShowCmd.Flags().BoolVar(&showRevealMnemonic, "reveal-mnemonic", false, "reveal the recovery phrase")
	walletShowCmd.Flags().BoolVar(&showHidePrivate, "hide-private", false, "hide the private key again")
	walletShowCmd.Flags().BoolVar(&showHideMnemonic, "hide-mnemonic", false, "hide the recovery phrase again")
	walletShowCmd.Flags().BoolVar(&showQR, "qr", false, "render the public key as a terminal QR code")
	walletShowCmd.MarkFlagsMutuallyExclusive("reveal-private", "hide-private")
	walletShowCmd.MarkFlagsMutuallyExclusive("reveal-mnemonic", "hide-mnemonic")

	walletCmd.AddCommand(walletShowCmd)
}
