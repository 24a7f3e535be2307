package cli

import (
	"github.com/spf13/cobra"

	"github.com/keyloom/keyloom/internal/output"
)

// walletRemoveCmd removes one wallet from the session.
var walletRemoveCmd = &cobra.Command{
	Use:   "remove <position>",
	Short: "Remove a wallet",
	Long: `Remove the wallet at a list position.

Later wallets shift down one position but keep their derivation paths;
removed account indices are never reused.`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletRemove,
}

// walletClearCmd resets the whole session.
var walletClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all wallets and reset the session",
	Long: `Remove every wallet, forget the recovery phrase, and release the chain
selection. After clear a new chain can be selected.`,
	Args: cobra.NoArgs,
	RunE: runWalletClear,
}

func runWalletRemove(_ *cobra.Command, args []string) error {
	position, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	reg, err := openRegistry()
	if err != nil {
		return err
	}

	if err := reg.Remove(position); err != nil {
		return err
	}

	if formatter.IsJSON() {
		return formatter.Print(map[string]any{"removed": position, "remaining": reg.Len()})
	}
	return formatter.Printf("Removed wallet #%d (%d remaining)\n", position, reg.Len())
}

func runWalletClear(_ *cobra.Command, _ []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	reg.Clear()

	if formatter.IsJSON() {
		return formatter.Print(map[string]string{"status": "cleared"})
	}
	output.Success("Session cleared")
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	walletCmd.AddCommand(walletRemoveCmd)
	walletCmd.AddCommand(walletClearCmd)
}
