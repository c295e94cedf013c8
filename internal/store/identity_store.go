package store

import (
	"errors"
	"path/filepath"
	"sync"

	"didauth/internal/crypto"
	"didauth/internal/domain"
)

const (
	recordFilename   = "identity.json"
	mnemonicFilename = "mnemonic.enc"
)

// ErrNoIdentity is returned when no identity has been saved under the store's directory.
var ErrNoIdentity = errors.New("no identity stored")

// IdentityFileStore persists the local identity to disk.
type IdentityFileStore struct {
	dir  string
	cost scryptCost
	mu   sync.Mutex
}

// NewIdentityFileStore returns an IdentityFileStore rooted at dir.
func NewIdentityFileStore(dir string) *IdentityFileStore {
	return &IdentityFileStore{dir: dir, cost: defaultScryptCost()}
}

// SaveIdentity seals the mnemonic under passphrase and writes it together
// with the public record. The mnemonic is written first so a crash never
// leaves a record without its secret.
func (s *IdentityFileStore) SaveIdentity(
	passphrase string,
	record domain.IdentityRecord,
	mnemonic string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := []byte(mnemonic)
	defer crypto.Wipe(raw)

	sealed, err := seal(passphrase, raw, s.cost)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(s.dir, mnemonicFilename), sealed, 0o600); err != nil {
		return err
	}
	return writeJSON(filepath.Join(s.dir, recordFilename), record, 0o644)
}

// LoadRecord returns the public identity record. ok is false when none is stored.
func (s *IdentityFileStore) LoadRecord() (domain.IdentityRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec domain.IdentityRecord
	found, err := readJSON(filepath.Join(s.dir, recordFilename), &rec)
	if err != nil || !found {
		return domain.IdentityRecord{}, false, err
	}
	return rec, true, nil
}

// LoadMnemonic decrypts and returns the stored mnemonic.
func (s *IdentityFileStore) LoadMnemonic(passphrase string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, mnemonicFilename))
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", ErrNoIdentity
	}
	pt, err := open(passphrase, b)
	if err != nil {
		return "", err
	}
	defer crypto.Wipe(pt)
	return string(pt), nil
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)
