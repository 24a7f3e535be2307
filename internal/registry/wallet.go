// Package registry owns the ordered collection of derived wallets for a
// session, assigns account indices, and enforces the single-chain and
// ordering invariants.
package registry

import "github.com/keyloom/keyloom/internal/chain"

// Wallet is one derived keypair with its provenance. Wallets are immutable
// after creation: keys are never re-derived or mutated in place, only
// removed.
type Wallet struct {
	// PublicKey is the chain-formatted public key or address string.
	PublicKey string `json:"public_key"`

	// PrivateKey is the chain-formatted private key string.
	PrivateKey string `json:"private_key"`

	// Mnemonic is the recovery phrase this wallet was derived from.
	Mnemonic string `json:"mnemonic"`

	// Path is the hardened derivation path used.
	Path string `json:"path"`

	// AccountIndex is the hardened account segment of Path. It is assigned
	// monotonically and never reused, so it can differ from the wallet's
	// list position after removals.
	AccountIndex uint32 `json:"account_index"`
}

// Visibility tracks which wallet fields the presentation layer currently
// reveals. New records start with the public key revealed and the secret
// fields hidden.
type Visibility struct {
	PublicKey  bool `json:"public_key"`
	PrivateKey bool `json:"private_key"`
	Mnemonic   bool `json:"mnemonic"`
}

// Field names a revealable wallet field.
type Field string

// Revealable fields.
const (
	FieldPublicKey  Field = "public"
	FieldPrivateKey Field = "private"
	FieldMnemonic   Field = "mnemonic"
)

// Record couples a wallet with its presentation state so both are created
// and removed atomically. Keeping them in one ordered sequence avoids the
// index drift that parallel arrays invite on removal.
type Record struct {
	Wallet     Wallet     `json:"wallet"`
	Visibility Visibility `json:"visibility"`
}

// Snapshot is the registry state handed to and restored from the
// persistence gateway.
type Snapshot struct {
	// Mnemonic is the established recovery phrase as a word list.
	Mnemonic []string `json:"mnemonic"`

	// Chain is the selected chain, empty when no chain is selected.
	Chain chain.Kind `json:"chain"`

	// NextIndex is the monotone account index counter.
	NextIndex uint32 `json:"next_index"`

	// Records is the ordered wallet sequence.
	Records []Record `json:"records"`
}

// Gateway is the opaque persistence collaborator. Saves are best-effort:
// the in-memory registry stays authoritative for the session regardless of
// gateway failures.
type Gateway interface {
	// Load returns the stored snapshot, or (nil, nil) when nothing is stored.
	Load() (*Snapshot, error)

	// Save persists a snapshot.
	Save(*Snapshot) error

	// Clear removes all stored state.
	Clear() error
}

// NopGateway discards saves and loads nothing. Used when persistence is
// disabled and in tests.
type NopGateway struct{}

// Load implements Gateway.
func (NopGateway) Load() (*Snapshot, error) { return nil, nil }

// Save implements Gateway.
func (NopGateway) Save(*Snapshot) error { return nil }

// Clear implements Gateway.
func (NopGateway) Clear() error { return nil }
