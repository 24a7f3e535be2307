package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/keyloom/keyloom/internal/output"
	"github.com/keyloom/keyloom/internal/registry"
	loomerr "github.com/keyloom/keyloom/pkg/errors"
)

// walletCmd is the parent command for wallet operations.
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Generate, inspect, and manage derived wallets",
}

// listColumns is the --columns flag for wallet list.
var listColumns int

// walletListCmd lists all wallets in the session.
var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallets",
	Args:  cobra.NoArgs,
	RunE:  runWalletList,
}

func runWalletList(_ *cobra.Command, _ []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	records := reg.Records()
	views := make([]output.WalletView, len(records))
	for i, rec := range records {
		views[i] = walletView(reg, i, rec)
	}

	if formatter.IsJSON() {
		return formatter.Print(map[string]any{
			"chain":   reg.Kind().String(),
			"wallets": views,
		})
	}

	if len(views) == 0 {
		return formatter.Println("No wallets")
	}

	columns := listColumns
	if columns == 0 {
		columns = cfg.Output.Columns
	}
	return formatter.Printf("%s", output.Grid(views, columns))
}

// walletView maps a record to its display form, masking concealed fields.
func walletView(reg *registry.Registry, position int, rec registry.Record) output.WalletView {
	view := output.WalletView{
		Position:  position,
		Chain:     reg.Kind().String(),
		Path:      rec.Wallet.Path,
		PublicKey: output.Hidden,
	}
	if rec.Visibility.PublicKey {
		view.PublicKey = rec.Wallet.PublicKey
	}
	if rec.Visibility.PrivateKey {
		view.PrivateKey = rec.Wallet.PrivateKey
	}
	if rec.Visibility.Mnemonic {
		view.Mnemonic = rec.Wallet.Mnemonic
	}
	return view
}

// parsePosition parses a wallet position argument.
func parsePosition(arg string) (int, error) {
	position, err := strconv.Atoi(arg)
	if err != nil {
		return 0, loomerr.WithDetails(loomerr.ErrInvalidInput, map[string]string{
			"position": arg,
			"reason":   "not a number",
		})
	}
	return position, nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	walletListCmd.Flags().IntVar(&listColumns, "columns", 0, "number of display columns (default from config)")

	walletCmd.AddCommand(walletListCmd)
	rootCmd.AddCommand(walletCmd)
}
