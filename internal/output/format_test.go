package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loomerr "github.com/keyloom/keyloom/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{" text ", FormatText},
		{"auto", FormatAuto},
		{"", FormatAuto},
		{"yaml", FormatAuto},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseFormat(tt.input))
		})
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	// Explicit formats win regardless of the writer
	assert.Equal(t, FormatText, DetectFormat(&buf, FormatText))
	assert.Equal(t, FormatJSON, DetectFormat(&buf, FormatJSON))

	// A non-TTY writer auto-detects to JSON
	assert.Equal(t, FormatJSON, DetectFormat(&buf, FormatAuto))
}

func TestFormatter_PrintJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := NewFormatter(FormatJSON, &buf)
	require.True(t, f.IsJSON())

	require.NoError(t, f.Print(map[string]string{"chain": "solana"}))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "solana", decoded["chain"])
}

func TestFormatter_PrintText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := NewFormatter(FormatText, &buf)

	require.NoError(t, f.Print("hello"))
	assert.Equal(t, "hello\n", buf.String())
}

func TestFormatError_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := loomerr.WithSuggestion(
		loomerr.WithDetails(loomerr.ErrUnsupportedChain, map[string]string{"chain": "bitcoin"}),
		"supported chains: solana, ethereum",
	)

	require.NoError(t, FormatError(&buf, err, FormatJSON))

	var decoded ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "UNSUPPORTED_CHAIN", decoded.Error.Code)
	assert.Equal(t, "bitcoin", decoded.Error.Details["chain"])
	assert.Equal(t, "supported chains: solana, ethereum", decoded.Error.Suggestion)
	assert.Equal(t, loomerr.ExitInput, decoded.Error.ExitCode)
}

func TestFormatError_JSONPlainError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, FormatError(&buf, assert.AnError, FormatJSON))

	var decoded ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "GENERAL_ERROR", decoded.Error.Code)
	assert.Equal(t, loomerr.ExitGeneral, decoded.Error.ExitCode)
}

func TestFormatError_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := loomerr.WithSuggestion(loomerr.ErrNoChainSelected, "run 'keyloom chain select'")

	require.NoError(t, FormatError(&buf, err, FormatText))

	out := buf.String()
	assert.Contains(t, out, "Error: no chain selected")
	assert.Contains(t, out, "Suggestion: run 'keyloom chain select'")
}

func TestFormatError_Nil(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, FormatError(&buf, nil, FormatText))
	assert.Empty(t, buf.String())
}

func TestFormatSuccess(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, FormatSuccess(&buf, "done", FormatText))
	assert.Equal(t, "done\n", buf.String())

	buf.Reset()
	require.NoError(t, FormatSuccess(&buf, "done", FormatJSON))
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "success", decoded["status"])
}

func TestWalletView_Card(t *testing.T) {
	t.Parallel()

	view := WalletView{
		Position:  0,
		Chain:     "solana",
		Path:      "m/44'/501'/0'/0'",
		PublicKey: "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk",
	}

	card := view.Card()
	assert.Contains(t, card, "Wallet #0 (solana)")
	assert.Contains(t, card, "m/44'/501'/0'/0'")
	assert.Contains(t, card, view.PublicKey)
	assert.Contains(t, card, Hidden)
}

func TestGrid(t *testing.T) {
	t.Parallel()

	views := []WalletView{
		{Position: 0, Chain: "solana", Path: "m/44'/501'/0'/0'", PublicKey: "aaa"},
		{Position: 1, Chain: "solana", Path: "m/44'/501'/0'/1'", PublicKey: "bbb"},
		{Position: 2, Chain: "solana", Path: "m/44'/501'/0'/2'", PublicKey: "ccc"},
	}

	single := Grid(views, 1)
	assert.Contains(t, single, "Wallet #0")
	assert.Contains(t, single, "Wallet #2")

	double := Grid(views, 2)
	// Two cards share the first row, the third wraps to its own row
	firstLine := strings.SplitN(double, "\n", 2)[0]
	assert.Contains(t, firstLine, "Wallet #0")
	assert.Contains(t, firstLine, "Wallet #1")
	assert.NotContains(t, firstLine, "Wallet #2")
}

func TestGrid_ClampsColumns(t *testing.T) {
	t.Parallel()

	views := []WalletView{{Position: 0, Chain: "solana", PublicKey: "aaa"}}
	assert.Equal(t, Grid(views, 1), Grid(views, 0))
}
