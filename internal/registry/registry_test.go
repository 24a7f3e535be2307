package registry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyloom/keyloom/internal/chain"
	loomerr "github.com/keyloom/keyloom/pkg/errors"
)

// testPhrase is a fixed valid recovery phrase used across scenarios.
const testPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// recordingGateway captures every snapshot handed to Save.
type recordingGateway struct {
	snapshot  *Snapshot
	saves     []*Snapshot
	saveErr   error
	loadErr   error
	clearCall int
}

func (g *recordingGateway) Load() (*Snapshot, error) {
	if g.loadErr != nil {
		return nil, g.loadErr
	}
	return g.snapshot, nil
}

func (g *recordingGateway) Save(snap *Snapshot) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	g.saves = append(g.saves, snap)
	return nil
}

func (g *recordingGateway) Clear() error {
	g.clearCall++
	return nil
}

// recordingLogger captures error log lines.
type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Debug(string, ...any) {}

func (l *recordingLogger) Error(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func newTestRegistry(t *testing.T) (*Registry, *recordingGateway) {
	t.Helper()
	gateway := &recordingGateway{}
	return New(gateway, &recordingLogger{}), gateway
}

func TestSelectChain(t *testing.T) {
	t.Parallel()

	reg, gateway := newTestRegistry(t)
	require.False(t, reg.ChainSelected())

	require.NoError(t, reg.SelectChain(chain.Solana))
	assert.True(t, reg.ChainSelected())
	assert.Equal(t, chain.Solana, reg.Kind())
	assert.Len(t, gateway.saves, 1)
}

func TestSelectChain_Unsupported(t *testing.T) {
	t.Parallel()

	reg, gateway := newTestRegistry(t)
	err := reg.SelectChain(chain.Kind("bitcoin"))
	assert.ErrorIs(t, err, loomerr.ErrUnsupportedChain)
	assert.False(t, reg.ChainSelected())
	assert.Empty(t, gateway.saves)
}

func TestSelectChain_AlreadySelected(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.SelectChain(chain.Solana))

	err := reg.SelectChain(chain.Ethereum)
	assert.ErrorIs(t, err, loomerr.ErrChainAlreadySelected)
	assert.Equal(t, chain.Solana, reg.Kind())

	// Re-selecting the same chain is rejected too
	err = reg.SelectChain(chain.Solana)
	assert.ErrorIs(t, err, loomerr.ErrChainAlreadySelected)
}

func TestGenerate_RequiresChain(t *testing.T) {
	t.Parallel()

	reg, gateway := newTestRegistry(t)
	_, err := reg.Generate("")
	assert.ErrorIs(t, err, loomerr.ErrNoChainSelected)
	assert.Empty(t, gateway.saves)
}

func TestGenerate_EstablishesPhrase(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.SelectChain(chain.Solana))
	require.Empty(t, reg.Phrase())

	first, err := reg.Generate("")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Phrase())
	assert.Equal(t, reg.Phrase(), first.Mnemonic)
	assert.Equal(t, "m/44'/501'/0'/0'", first.Path)
	assert.Equal(t, uint32(0), first.AccountIndex)

	// The second wallet reuses the established phrase at the next index
	second, err := reg.Generate("")
	require.NoError(t, err)
	assert.Equal(t, first.Mnemonic, second.Mnemonic)
	assert.Equal(t, "m/44'/501'/0'/1'", second.Path)
	assert.Equal(t, uint32(1), second.AccountIndex)
	assert.NotEqual(t, first.PublicKey, second.PublicKey)
}

func TestGenerate_PhraseOverride(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.SelectChain(chain.Solana))

	wallet, err := reg.Generate(testPhrase)
	require.NoError(t, err)
	assert.Equal(t, testPhrase, wallet.Mnemonic)
	assert.Equal(t, testPhrase, reg.Phrase())

	// Deterministic: the canonical phrase yields the canonical keys
	assert.Equal(t, "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk", wallet.PublicKey)
}

func TestGenerate_EthereumVector(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.SelectChain(chain.Ethereum))

	wallet, err := reg.Generate(testPhrase)
	require.NoError(t, err)
	assert.Equal(t, "0x1cC31E180CCA3a8698fD6f13765209EC7CB9E755", wallet.PublicKey)
	assert.Equal(t, "0x43ff9ebfdccfa25e3921d9500db2f946d46a525fa08004af7f98976d9706cd5c", wallet.PrivateKey)
	assert.Equal(t, "m/44'/60'/0'/0'", wallet.Path)
}

func TestGenerate_InvalidOverride(t *testing.T) {
	t.Parallel()

	reg, gateway := newTestRegistry(t)
	require.NoError(t, reg.SelectChain(chain.Solana))
	savesBefore := len(gateway.saves)

	_, err := reg.Generate("definitely not a valid mnemonic phrase here ok")
	assert.ErrorIs(t, err, loomerr.ErrInvalidMnemonic)

	// Failed operations mutate and save nothing
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Phrase())
	assert.Len(t, gateway.saves, savesBefore)
}

func TestAddFromExistingPhrase(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.SelectChain(chain.Solana))

	_, err := reg.Generate(testPhrase)
	require.NoError(t, err)

	added, err := reg.AddFromExistingPhrase()
	require.NoError(t, err)
	assert.Equal(t, testPhrase, added.Mnemonic)
	assert.Equal(t, "m/44'/501'/0'/1'", added.Path)
	assert.Equal(t, "GKreMsHvt8A79VApjboYDq3J4ZCXSJRYYQk9BscMbi1H", added.PublicKey)
}

func TestAddFromExistingPhrase_NoPhrase(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)

	_, err := reg.AddFromExistingPhrase()
	assert.ErrorIs(t, err, loomerr.ErrNoChainSelected)

	require.NoError(t, reg.SelectChain(chain.Solana))
	_, err = reg.AddFromExistingPhrase()
	assert.ErrorIs(t, err, loomerr.ErrNoMnemonicEstablished)
}

func TestRemove_CompactsWithoutReindexing(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.SelectChain(chain.Solana))

	for i := 0; i < 3; i++ {
		_, err := reg.Generate(testPhrase)
		require.NoError(t, err)
	}

	require.NoError(t, reg.Remove(1))
	require.Equal(t, 2, reg.Len())

	// Positions compact but derivation paths are untouched
	records := reg.Records()
	assert.Equal(t, uint32(0), records[0].Wallet.AccountIndex)
	assert.Equal(t, uint32(2), records[1].Wallet.AccountIndex)
	assert.Equal(t, "m/44'/501'/0'/2'", records[1].Wallet.Path)

	// The freed index is never reused
	next, err := reg.AddFromExistingPhrase()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), next.AccountIndex)
	assert.Equal(t, "m/44'/501'/0'/3'", next.Path)
}

func TestRemove_OutOfRange(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.SelectChain(chain.Solana))
	_, err := reg.Generate(testPhrase)
	require.NoError(t, err)

	assert.ErrorIs(t, reg.Remove(-1), loomerr.ErrIndexOutOfRange)
	assert.ErrorIs(t, reg.Remove(1), loomerr.ErrIndexOutOfRange)
	assert.Equal(t, 1, reg.Len())
}

func TestClear_ResetsSession(t *testing.T) {
	t.Parallel()

	reg, gateway := newTestRegistry(t)
	require.NoError(t, reg.SelectChain(chain.Solana))
	_, err := reg.Generate(testPhrase)
	require.NoError(t, err)

	reg.Clear()

	assert.False(t, reg.ChainSelected())
	assert.Empty(t, reg.Phrase())
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 1, gateway.clearCall)

	// A different chain can be selected after clearing
	require.NoError(t, reg.SelectChain(chain.Ethereum))
	next, err := reg.Generate(testPhrase)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), next.AccountIndex)
}

func TestSetVisibility(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.SelectChain(chain.Solana))
	_, err := reg.Generate(testPhrase)
	require.NoError(t, err)

	rec, err := reg.Record(0)
	require.NoError(t, err)
	assert.True(t, rec.Visibility.PublicKey)
	assert.False(t, rec.Visibility.PrivateKey)
	assert.False(t, rec.Visibility.Mnemonic)

	require.NoError(t, reg.SetVisibility(0, FieldPrivateKey, true))
	require.NoError(t, reg.SetVisibility(0, FieldMnemonic, true))

	rec, err = reg.Record(0)
	require.NoError(t, err)
	assert.True(t, rec.Visibility.PrivateKey)
	assert.True(t, rec.Visibility.Mnemonic)

	require.NoError(t, reg.SetVisibility(0, FieldPrivateKey, false))
	rec, err = reg.Record(0)
	require.NoError(t, err)
	assert.False(t, rec.Visibility.PrivateKey)
}

func TestSetVisibility_Errors(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.SelectChain(chain.Solana))
	_, err := reg.Generate(testPhrase)
	require.NoError(t, err)

	assert.ErrorIs(t, reg.SetVisibility(5, FieldPrivateKey, true), loomerr.ErrIndexOutOfRange)
	assert.ErrorIs(t, reg.SetVisibility(0, Field("bogus"), true), loomerr.ErrInvalidInput)
}

func TestSaveCalledPerMutation(t *testing.T) {
	t.Parallel()

	reg, gateway := newTestRegistry(t)

	require.NoError(t, reg.SelectChain(chain.Solana))
	_, err := reg.Generate(testPhrase)
	require.NoError(t, err)
	_, err = reg.AddFromExistingPhrase()
	require.NoError(t, err)
	require.NoError(t, reg.Remove(0))
	require.NoError(t, reg.SetVisibility(0, FieldPrivateKey, true))

	// select + generate + add + remove + visibility
	require.Len(t, gateway.saves, 5)

	last := gateway.saves[len(gateway.saves)-1]
	assert.Equal(t, chain.Solana, last.Chain)
	assert.Equal(t, uint32(2), last.NextIndex)
	assert.Len(t, last.Records, 1)
}

func TestSaveFailureIsLoggedNotPropagated(t *testing.T) {
	t.Parallel()

	gateway := &recordingGateway{saveErr: errors.New("disk full")}
	logger := &recordingLogger{}
	reg := New(gateway, logger)

	require.NoError(t, reg.SelectChain(chain.Solana))
	wallet, err := reg.Generate(testPhrase)
	require.NoError(t, err)
	assert.NotNil(t, wallet)
	assert.Equal(t, 1, reg.Len())
	assert.NotEmpty(t, logger.errors)
}

func TestRestore(t *testing.T) {
	t.Parallel()

	stored := &Snapshot{
		Mnemonic:  []string{"abandon", "abandon", "abandon", "abandon", "abandon", "abandon", "abandon", "abandon", "abandon", "abandon", "abandon", "about"},
		Chain:     chain.Ethereum,
		NextIndex: 4,
		Records: []Record{
			{
				Wallet: Wallet{
					PublicKey:    "0x1cC31E180CCA3a8698fD6f13765209EC7CB9E755",
					Path:         "m/44'/60'/0'/0'",
					AccountIndex: 0,
				},
				Visibility: Visibility{PublicKey: true},
			},
		},
	}

	gateway := &recordingGateway{snapshot: stored}
	reg := New(gateway, &recordingLogger{})
	require.NoError(t, reg.Restore())

	assert.Equal(t, chain.Ethereum, reg.Kind())
	assert.Equal(t, testPhrase, reg.Phrase())
	assert.Equal(t, 1, reg.Len())

	// The restored counter keeps index assignment monotone
	next, err := reg.AddFromExistingPhrase()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), next.AccountIndex)
}

func TestRestore_Empty(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.Restore())
	assert.False(t, reg.ChainSelected())
	assert.Equal(t, 0, reg.Len())
}

func TestRestore_LoadError(t *testing.T) {
	t.Parallel()

	gateway := &recordingGateway{loadErr: errors.New("corrupt")}
	reg := New(gateway, &recordingLogger{})

	require.Error(t, reg.Restore())
	assert.False(t, reg.ChainSelected())
}

func TestRecordsReturnsCopy(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	require.NoError(t, reg.SelectChain(chain.Solana))
	_, err := reg.Generate(testPhrase)
	require.NoError(t, err)

	records := reg.Records()
	records[0].Wallet.PublicKey = "tampered"

	rec, err := reg.Record(0)
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", rec.Wallet.PublicKey)
}
