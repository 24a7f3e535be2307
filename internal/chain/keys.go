package chain

import (
	"crypto/ed25519"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/sha3"

	loomerr "github.com/keyloom/keyloom/pkg/errors"
)

// SubSeedLen is the required sub-seed length for keypair construction.
const SubSeedLen = 32

// KeyPair holds a derived keypair in its chain-native string encoding.
type KeyPair struct {
	// PublicKey is the chain-formatted address or public key string.
	PublicKey string `json:"public_key"`

	// PrivateKey is the chain-formatted private key string.
	PrivateKey string `json:"private_key"`
}

// DeriveKeyPair produces a keypair from a 32-byte sub-seed for the given
// chain. It is a pure function: identical inputs always produce identical
// keypairs, and it never substitutes a different chain. Adding a chain
// means one Kind constant plus one case here.
func DeriveKeyPair(kind Kind, subSeed []byte) (*KeyPair, error) {
	if len(subSeed) != SubSeedLen {
		return nil, loomerr.WithDetails(loomerr.ErrKeyDerivation, map[string]string{
			"reason": "sub-seed must be 32 bytes",
		})
	}

	switch kind {
	case Solana:
		return deriveSolanaKeyPair(subSeed), nil
	case Ethereum:
		return deriveEthereumKeyPair(subSeed)
	default:
		return nil, loomerr.WithDetails(loomerr.ErrUnsupportedChain, map[string]string{
			"chain": string(kind),
		})
	}
}

// deriveSolanaKeyPair expands a sub-seed into an Ed25519 keypair. The
// public key is the 32-byte curve point in base58 (the chain's native
// address format, no checksum); the private key is the 64-byte expanded
// secret (seed followed by the public key) in the same base58 alphabet.
func deriveSolanaKeyPair(subSeed []byte) *KeyPair {
	priv := solana.PrivateKey(ed25519.NewKeyFromSeed(subSeed))
	return &KeyPair{
		PublicKey:  priv.PublicKey().String(),
		PrivateKey: priv.String(),
	}
}

// deriveEthereumKeyPair treats the sub-seed as a secp256k1 private scalar,
// reduced modulo the curve order when out of range. The public key is the
// EIP-55 checksummed 20-byte Keccak-256 address of the uncompressed curve
// point; the private key is the 32-byte scalar as 0x-prefixed hex.
func deriveEthereumKeyPair(subSeed []byte) (*KeyPair, error) {
	var scalar secp256k1.ModNScalar
	scalar.SetByteSlice(subSeed) // reduces modulo the curve order
	if scalar.IsZero() {
		return nil, loomerr.ErrInvalidScalar
	}

	priv := secp256k1.NewPrivateKey(&scalar)
	pub := priv.PubKey().SerializeUncompressed()

	// Address is keccak256(pubkey minus the 0x04 prefix), last 20 bytes
	hash := sha3.NewLegacyKeccak256()
	hash.Write(pub[1:])
	addrBytes := hash.Sum(nil)[12:]

	return &KeyPair{
		PublicKey:  common.BytesToAddress(addrBytes).Hex(),
		PrivateKey: hexutil.Encode(priv.Serialize()),
	}, nil
}

// ValidateAddress checks that an address string is well-formed for the
// given chain. Used on the inspection paths; key generation never consumes
// external addresses.
func ValidateAddress(kind Kind, address string) bool {
	switch kind {
	case Solana:
		_, err := solana.PublicKeyFromBase58(address)
		return err == nil
	case Ethereum:
		return isValidEthereumAddress(address)
	default:
		return false
	}
}

// isValidEthereumAddress checks the 0x prefix, length, and hex charset.
func isValidEthereumAddress(address string) bool {
	if len(address) != 42 || !strings.HasPrefix(address, "0x") {
		return false
	}
	for _, c := range address[2:] {
		if !isHexChar(c) {
			return false
		}
	}
	return true
}

func isHexChar(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
