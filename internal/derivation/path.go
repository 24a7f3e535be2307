// Package derivation builds hardened derivation paths and computes
// per-chain sub-seeds from a BIP39 master seed.
package derivation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/keyloom/keyloom/internal/chain"
	loomerr "github.com/keyloom/keyloom/pkg/errors"
)

// HardenedIndexLimit is the exclusive upper bound for a path segment
// before the hardening flag is applied.
const HardenedIndexLimit = uint32(1) << 31

// hardenedFlag is OR-ed into each segment during child key derivation.
const hardenedFlag = uint32(0x80000000)

// BuildPath formats the hardened derivation path for a chain and account
// index: m/44'/<coin>'/0'/<index>'. Every segment after m is hardened.
func BuildPath(kind chain.Kind, accountIndex uint32) (string, error) {
	if !kind.IsValid() {
		return "", loomerr.WithDetails(loomerr.ErrUnsupportedChain, map[string]string{
			"chain": kind.String(),
		})
	}
	if accountIndex >= HardenedIndexLimit {
		return "", loomerr.WithDetails(loomerr.ErrIndexOverflow, map[string]string{
			"index": strconv.FormatUint(uint64(accountIndex), 10),
		})
	}
	return fmt.Sprintf("m/44'/%d'/0'/%d'", kind.CoinType(), accountIndex), nil
}

// ParsePath splits a hardened derivation path into its raw segment
// indices (without the hardening flag). Only fully hardened paths of the
// form m/a'/b'/.../z' are accepted.
func ParsePath(path string) ([]uint32, error) {
	const prefix = "m/"
	if !strings.HasPrefix(path, prefix) {
		return nil, loomerr.WithDetails(loomerr.ErrDerivation, map[string]string{
			"path":   path,
			"reason": "path must start with m/",
		})
	}

	parts := strings.Split(path[len(prefix):], "/")
	segments := make([]uint32, 0, len(parts))
	for _, part := range parts {
		if !strings.HasSuffix(part, "'") {
			return nil, loomerr.WithDetails(loomerr.ErrDerivation, map[string]string{
				"path":   path,
				"reason": fmt.Sprintf("segment %q is not hardened", part),
			})
		}
		n, err := strconv.ParseUint(strings.TrimSuffix(part, "'"), 10, 32)
		if err != nil {
			return nil, loomerr.WithDetails(loomerr.ErrDerivation, map[string]string{
				"path":   path,
				"reason": fmt.Sprintf("segment %q is not a number", part),
			})
		}
		if uint32(n) >= HardenedIndexLimit {
			return nil, loomerr.WithDetails(loomerr.ErrIndexOverflow, map[string]string{
				"path":    path,
				"segment": part,
			})
		}
		segments = append(segments, uint32(n))
	}

	if len(segments) == 0 {
		return nil, loomerr.WithDetails(loomerr.ErrDerivation, map[string]string{
			"path":   path,
			"reason": "path has no segments",
		})
	}

	return segments, nil
}
