package output

import (
	"fmt"
	"strings"
)

// Hidden is the placeholder shown in place of a concealed wallet field.
const Hidden = "(hidden)"

// WalletView is the display form of a single wallet entry. Concealed fields
// are already replaced with the Hidden placeholder by the caller.
type WalletView struct {
	Position  int    `json:"position"`
	Chain     string `json:"chain"`
	Path      string `json:"path"`
	PublicKey string `json:"public_key"`
	// PrivateKey and Mnemonic are omitted from JSON when concealed.
	PrivateKey string `json:"private_key,omitempty"`
	Mnemonic   string `json:"mnemonic,omitempty"`
}

// Card renders a wallet view as a labeled text block.
func (v WalletView) Card() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Wallet #%d (%s)\n", v.Position, v.Chain))
	sb.WriteString(fmt.Sprintf("  Path:        %s\n", v.Path))
	sb.WriteString(fmt.Sprintf("  Public key:  %s\n", v.PublicKey))
	sb.WriteString(fmt.Sprintf("  Private key: %s\n", orHidden(v.PrivateKey)))
	sb.WriteString(fmt.Sprintf("  Mnemonic:    %s\n", orHidden(v.Mnemonic)))
	return sb.String()
}

func orHidden(s string) string {
	if s == "" {
		return Hidden
	}
	return s
}

// Grid lays out wallet cards in the requested number of columns, left to
// right then top to bottom. Columns below 1 are treated as 1.
func Grid(views []WalletView, columns int) string {
	if columns < 1 {
		columns = 1
	}

	blocks := make([][]string, len(views))
	for i, v := range views {
		blocks[i] = strings.Split(strings.TrimRight(v.Card(), "\n"), "\n")
	}

	var sb strings.Builder
	for start := 0; start < len(blocks); start += columns {
		end := start + columns
		if end > len(blocks) {
			end = len(blocks)
		}
		sb.WriteString(renderRow(blocks[start:end]))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderRow joins a row of card blocks side by side, padding each column to
// its widest line.
func renderRow(row [][]string) string {
	widths := make([]int, len(row))
	height := 0
	for i, block := range row {
		for _, line := range block {
			if len(line) > widths[i] {
				widths[i] = len(line)
			}
		}
		if len(block) > height {
			height = len(block)
		}
	}

	var sb strings.Builder
	for line := 0; line < height; line++ {
		parts := make([]string, len(row))
		for i, block := range row {
			cell := ""
			if line < len(block) {
				cell = block[line]
			}
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, "    "), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}
