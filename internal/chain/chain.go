// Package chain defines the closed set of supported chains and constructs
// chain-specific keypairs from derived sub-seeds.
package chain

import "strings"

// Kind identifies a supported chain.
type Kind string

// Supported chain identifiers.
const (
	// Solana is the Ed25519-curve chain.
	Solana Kind = "solana"
	// Ethereum is the secp256k1-curve EVM chain.
	Ethereum Kind = "ethereum"
)

// Registered coin types used in derivation paths.
const (
	CoinTypeSolana   uint32 = 501
	CoinTypeEthereum uint32 = 60
)

// CoinType returns the registered coin type for a chain.
func (k Kind) CoinType() uint32 {
	switch k {
	case Solana:
		return CoinTypeSolana
	case Ethereum:
		return CoinTypeEthereum
	default:
		return 0
	}
}

// String returns the chain identifier string.
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the kind is a known chain.
func (k Kind) IsValid() bool {
	switch k {
	case Solana, Ethereum:
		return true
	default:
		return false
	}
}

// ParseKind parses a string into a chain Kind. Common aliases ("sol",
// "eth", "evm") are accepted from user input.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solana", "sol":
		return Solana, true
	case "ethereum", "eth", "evm":
		return Ethereum, true
	default:
		return Kind(s), false
	}
}

// SupportedKinds returns all known chain kinds.
func SupportedKinds() []Kind {
	return []Kind{Solana, Ethereum}
}
