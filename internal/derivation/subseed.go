package derivation

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"strconv"

	"github.com/tyler-smith/go-bip32"

	"github.com/keyloom/keyloom/internal/chain"
	loomerr "github.com/keyloom/keyloom/pkg/errors"
)

// ed25519MasterKey is the HMAC key for the SLIP-0010 ed25519 master node.
var ed25519MasterKey = []byte("ed25519 seed")

// SubSeed derives the 32-byte chain-specific sub-seed for a chain and
// account index from a 64-byte master seed. The curve family of the chain
// decides the child key derivation scheme: SLIP-0010 for the Ed25519
// chain, standard BIP32 hardened chaining for the secp256k1 chain.
// Identical (masterSeed, chain, index) inputs always yield identical
// sub-seeds.
func SubSeed(masterSeed []byte, kind chain.Kind, accountIndex uint32) ([]byte, error) {
	path, err := BuildPath(kind, accountIndex)
	if err != nil {
		return nil, err
	}
	return SubSeedAtPath(masterSeed, kind, path)
}

// SubSeedAtPath derives the sub-seed at an explicit hardened path.
func SubSeedAtPath(masterSeed []byte, kind chain.Kind, path string) ([]byte, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case chain.Solana:
		return ed25519SubSeed(masterSeed, segments), nil
	case chain.Ethereum:
		return secp256k1SubSeed(masterSeed, segments)
	default:
		return nil, loomerr.WithDetails(loomerr.ErrUnsupportedChain, map[string]string{
			"chain": kind.String(),
		})
	}
}

// ed25519SubSeed implements SLIP-0010 hardened-only child key derivation:
// the master node is HMAC-SHA512("ed25519 seed", seed), and each child is
// HMAC-SHA512(chainCode, 0x00 || key || hardened(index)). The left half of
// the final node is the sub-seed.
func ed25519SubSeed(masterSeed []byte, segments []uint32) []byte {
	sum := hmacSHA512(ed25519MasterKey, masterSeed)
	key, chainCode := sum[:32], sum[32:]

	data := make([]byte, 1+32+4)
	for _, segment := range segments {
		data[0] = 0x00
		copy(data[1:33], key)
		binary.BigEndian.PutUint32(data[33:], segment|hardenedFlag)

		sum = hmacSHA512(chainCode, data)
		key, chainCode = sum[:32], sum[32:]
	}

	out := make([]byte, 32)
	copy(out, key)
	return out
}

// secp256k1SubSeed chains hardened BIP32 child keys and returns the final
// child's 32-byte private key material.
func secp256k1SubSeed(masterSeed []byte, segments []uint32) ([]byte, error) {
	key, err := bip32.NewMasterKey(masterSeed)
	if err != nil {
		return nil, loomerr.WithDetails(loomerr.ErrDerivation, map[string]string{
			"reason": err.Error(),
		})
	}

	for _, segment := range segments {
		key, err = key.NewChildKey(bip32.FirstHardenedChild + segment)
		if err != nil {
			return nil, loomerr.WithDetails(loomerr.ErrDerivation, map[string]string{
				"segment": strconv.FormatUint(uint64(segment), 10),
				"reason":  err.Error(),
			})
		}
	}

	out := make([]byte, 32)
	copy(out, key.Key)
	return out, nil
}

func hmacSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
