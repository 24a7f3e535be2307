// Package store persists registry snapshots through the opaque
// key-value gateway contract.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/keyloom/keyloom/internal/chain"
	"github.com/keyloom/keyloom/internal/loomcrypto"
	"github.com/keyloom/keyloom/internal/registry"
	loomerr "github.com/keyloom/keyloom/pkg/errors"
)

// Entry file names. The snapshot is stored as three independent entries:
// the wallet list, the mnemonic word list, and the chain selector. The
// names are single-sourced here so every code path reads and writes the
// same keys.
const (
	walletsEntry  = "wallets.json"
	mnemonicEntry = "mnemonic.json"
	chainEntry    = "chain.json"
)

const (
	// entryFilePermissions is the permission mode for entry files.
	entryFilePermissions = 0o600

	// storeDirPermissions is the permission mode for the store directory.
	storeDirPermissions = 0o750
)

// walletsPayload is the wallet-list entry. It carries the monotone index
// counter so account indices survive reloads without reuse.
type walletsPayload struct {
	NextIndex uint32            `json:"next_index"`
	Records   []registry.Record `json:"records"`
}

// FileStore implements registry.Gateway on a directory of JSON entries.
// With a passphrase set, the mnemonic entry is age-encrypted at rest.
type FileStore struct {
	basePath   string
	passphrase string
}

// NewFileStore creates a file-backed gateway rooted at basePath.
func NewFileStore(basePath string) *FileStore {
	return &FileStore{basePath: basePath}
}

// NewEncryptedFileStore creates a file-backed gateway that encrypts the
// mnemonic entry with the given passphrase.
func NewEncryptedFileStore(basePath, passphrase string) *FileStore {
	return &FileStore{basePath: basePath, passphrase: passphrase}
}

// Save writes the snapshot as three entries, each replaced atomically.
func (s *FileStore) Save(snap *registry.Snapshot) error {
	if err := os.MkdirAll(s.basePath, storeDirPermissions); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	wallets, err := json.MarshalIndent(walletsPayload{
		NextIndex: snap.NextIndex,
		Records:   snap.Records,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling wallet list: %w", err)
	}

	words, err := json.Marshal(snap.Mnemonic)
	if err != nil {
		return fmt.Errorf("marshaling mnemonic: %w", err)
	}
	if s.passphrase != "" {
		words, err = loomcrypto.Encrypt(words, s.passphrase)
		if err != nil {
			return fmt.Errorf("encrypting mnemonic: %w", err)
		}
	}

	selector, err := json.Marshal(snap.Chain)
	if err != nil {
		return fmt.Errorf("marshaling chain selector: %w", err)
	}

	entries := []struct {
		name string
		data []byte
	}{
		{walletsEntry, wallets},
		{mnemonicEntry, words},
		{chainEntry, selector},
	}
	for _, e := range entries {
		if err := s.writeEntry(e.name, e.data); err != nil {
			return err
		}
	}

	return nil
}

// Load reads the three entries back into a snapshot. Returns (nil, nil)
// when nothing has been stored yet.
func (s *FileStore) Load() (*registry.Snapshot, error) {
	wallets, err := s.readEntry(walletsEntry)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var payload walletsPayload
	if err := json.Unmarshal(wallets, &payload); err != nil {
		return nil, loomerr.WithDetails(loomerr.ErrStoreCorrupted, map[string]string{
			"entry": walletsEntry,
		})
	}

	words, err := s.readEntry(mnemonicEntry)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	var phrase []string
	if len(words) > 0 {
		if s.passphrase != "" {
			words, err = loomcrypto.Decrypt(words, s.passphrase)
			if err != nil {
				return nil, loomerr.ErrDecryptionFailed
			}
		}
		if err := json.Unmarshal(words, &phrase); err != nil {
			return nil, loomerr.WithDetails(loomerr.ErrStoreCorrupted, map[string]string{
				"entry": mnemonicEntry,
			})
		}
	}

	selector, err := s.readEntry(chainEntry)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	var kind chain.Kind
	if len(selector) > 0 {
		if err := json.Unmarshal(selector, &kind); err != nil {
			return nil, loomerr.WithDetails(loomerr.ErrStoreCorrupted, map[string]string{
				"entry": chainEntry,
			})
		}
	}

	return &registry.Snapshot{
		Mnemonic:  phrase,
		Chain:     kind,
		NextIndex: payload.NextIndex,
		Records:   payload.Records,
	}, nil
}

// Clear removes all stored entries.
func (s *FileStore) Clear() error {
	for _, name := range []string{walletsEntry, mnemonicEntry, chainEntry} {
		err := os.Remove(filepath.Join(s.basePath, name))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", name, err)
		}
	}
	return nil
}

// writeEntry replaces one entry via write-then-rename.
func (s *FileStore) writeEntry(name string, data []byte) error {
	path := filepath.Join(s.basePath, name)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, entryFilePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

// readEntry reads one entry.
func (s *FileStore) readEntry(name string) ([]byte, error) {
	path := filepath.Join(s.basePath, name)
	// #nosec G304 -- path is a fixed entry name under the configured store directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}
