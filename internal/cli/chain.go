package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/keyloom/keyloom/internal/chain"
	loomerr "github.com/keyloom/keyloom/pkg/errors"
)

// chainCmd is the parent command for chain operations.
var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Select and inspect the session chain",
}

// chainSelectCmd binds the session to one chain.
var chainSelectCmd = &cobra.Command{
	Use:   "select <chain>",
	Short: "Select the chain for this session",
	Long: `Select the chain all wallets in this session derive for.

The selection is one-way: once a chain is chosen it stays fixed until
'keyloom wallet clear' resets the session. Supported chains: ` +
		strings.Join(chainNames(), ", ") + `.`,
	Args: cobra.ExactArgs(1),
	RunE: runChainSelect,
}

// chainShowCmd prints the current selection.
var chainShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the selected chain",
	Args:  cobra.NoArgs,
	RunE:  runChainShow,
}

func runChainSelect(_ *cobra.Command, args []string) error {
	kind, ok := chain.ParseKind(args[0])
	if !ok {
		unsupported := loomerr.WithDetails(loomerr.ErrUnsupportedChain, map[string]string{
			"chain": args[0],
		})
		return loomerr.WithSuggestion(unsupported, "supported chains: "+strings.Join(chainNames(), ", "))
	}

	reg, err := openRegistry()
	if err != nil {
		return err
	}

	if err := reg.SelectChain(kind); err != nil {
		return err
	}

	if formatter.IsJSON() {
		return formatter.Print(map[string]string{"chain": kind.String()})
	}
	return formatter.Printf("Chain selected: %s\n", kind)
}

func runChainShow(_ *cobra.Command, _ []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	if !reg.ChainSelected() {
		if formatter.IsJSON() {
			return formatter.Print(map[string]any{"chain": nil})
		}
		return formatter.Println("No chain selected")
	}

	if formatter.IsJSON() {
		return formatter.Print(map[string]string{"chain": reg.Kind().String()})
	}
	return formatter.Printf("Chain: %s\n", reg.Kind())
}

func chainNames() []string {
	kinds := chain.SupportedKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	chainCmd.AddCommand(chainSelectCmd)
	chainCmd.AddCommand(chainShowCmd)
	rootCmd.AddCommand(chainCmd)
}
