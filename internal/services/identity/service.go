package identity

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/hkdf"

	"didauth/internal/crypto"
	"didauth/internal/domain"
	"didauth/internal/protocol/derivation"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12

	// entropyBits gives a 24-word mnemonic.
	entropyBits = 256

	recordVersion = 1
)

// Named derivation paths for the DID verification relationships.
const (
	PurposeAuthentication = "//authentication"
	PurposeAssertion      = "//assertion"
	PurposeDelegation     = "//delegation"
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
	// ErrInvalidMnemonic is returned when an imported mnemonic fails the BIP-39 checksum.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrNoIdentity is returned when an operation needs an identity and none exists.
	ErrNoIdentity = errors.New("no identity; run init first")
	// ErrInvalidPath is returned when a derivation path fails validation.
	ErrInvalidPath = fmt.Errorf("%w: invalid derivation path", domain.ErrPath)
)

// Service manages the local identity using a backing store.
type Service struct {
	store domain.IdentityStore
	now   func() time.Time
}

// New returns an identity service backed by the given store.
func New(s domain.IdentityStore) *Service {
	return &Service{store: s, now: time.Now}
}

// GenerateIdentity creates a fresh mnemonic, saves it encrypted with the
// passphrase, and returns the public record plus the mnemonic for backup.
func (s *Service) GenerateIdentity(passphrase string) (domain.IdentityRecord, string, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.IdentityRecord{}, "", ErrWeakPassphrase
	}
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return domain.IdentityRecord{}, "", err
	}
	defer crypto.Wipe(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return domain.IdentityRecord{}, "", err
	}
	rec, err := s.save(passphrase, mnemonic)
	if err != nil {
		return domain.IdentityRecord{}, "", err
	}
	return rec, mnemonic, nil
}

// ImportIdentity restores an identity from an existing mnemonic.
func (s *Service) ImportIdentity(passphrase, mnemonic string) (domain.IdentityRecord, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.IdentityRecord{}, ErrWeakPassphrase
	}
	mnemonic = strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return domain.IdentityRecord{}, ErrInvalidMnemonic
	}
	return s.save(passphrase, mnemonic)
}

func (s *Service) save(passphrase, mnemonic string) (domain.IdentityRecord, error) {
	root, err := rootSeed(mnemonic)
	if err != nil {
		return domain.IdentityRecord{}, err
	}
	defer crypto.Wipe(root)

	priv, pub, err := crypto.Ed25519FromSeed(root)
	if err != nil {
		return domain.IdentityRecord{}, err
	}
	defer crypto.Wipe(priv)

	did, err := crypto.DIDKey(pub)
	if err != nil {
		return domain.IdentityRecord{}, err
	}
	rec := domain.IdentityRecord{
		DID:        domain.DID(did),
		PublicKey:  append([]byte(nil), pub...),
		CreatedUTC: s.now().Unix(),
		Version:    recordVersion,
	}
	if err := s.store.SaveIdentity(passphrase, rec, mnemonic); err != nil {
		return domain.IdentityRecord{}, err
	}
	return rec, nil
}

// Record returns the stored public record.
func (s *Service) Record() (domain.IdentityRecord, error) {
	rec, ok, err := s.store.LoadRecord()
	if err != nil {
		return domain.IdentityRecord{}, err
	}
	if !ok {
		return domain.IdentityRecord{}, ErrNoIdentity
	}
	return rec, nil
}

// CurrentDID returns the DID of the stored identity, if any.
func (s *Service) CurrentDID(ctx context.Context) (domain.DID, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	rec, ok, err := s.store.LoadRecord()
	if err != nil || !ok {
		return "", false, err
	}
	return rec.DID, rec.DID != "", nil
}

// DeriveSubKey derives the Ed25519 key pair at path from the master seed.
// The path must pass derivation.IsValid.
func (s *Service) DeriveSubKey(passphrase, path string) (domain.SubKey, error) {
	p := derivation.Parse(path)
	if !derivation.IsValid(p) {
		return domain.SubKey{}, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	mnemonic, err := s.store.LoadMnemonic(passphrase)
	if err != nil {
		return domain.SubKey{}, err
	}
	root, err := rootSeed(mnemonic)
	if err != nil {
		return domain.SubKey{}, err
	}
	defer crypto.Wipe(root)

	seed, err := Walk(root, p)
	if err != nil {
		return domain.SubKey{}, err
	}
	defer crypto.Wipe(seed)

	priv, pub, err := crypto.Ed25519FromSeed(seed)
	if err != nil {
		return domain.SubKey{}, err
	}
	return domain.SubKey{
		Path:       derivation.String(p),
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}

// Walk steps seed through every junction of p and returns the resulting
// 32-byte seed. Hard, soft and password junctions each run HKDF-SHA256 over the
// current seed, salted with the junction's chain code under a kind-specific
// label. A parent junction returns to the previous seed; placeholders are
// skipped. seed is not modified.
func Walk(seed []byte, p domain.DerivationPath) ([]byte, error) {
	stack := [][]byte{append([]byte(nil), seed...)}
	for _, j := range p {
		cur := stack[len(stack)-1]
		switch j.Kind {
		case domain.JunctionHard, domain.JunctionSoft, domain.JunctionPassword:
			next, err := step(cur, j)
			if err != nil {
				wipeAll(stack)
				return nil, err
			}
			stack = append(stack, next)
		case domain.JunctionParent:
			if len(stack) > 1 {
				crypto.Wipe(cur)
				stack = stack[:len(stack)-1]
			}
		case domain.JunctionPlaceholder:
		default:
			wipeAll(stack)
			return nil, fmt.Errorf("%w: unknown junction kind %d", domain.ErrPath, j.Kind)
		}
	}
	out := stack[len(stack)-1]
	wipeAll(stack[:len(stack)-1])
	return out, nil
}

func step(seed []byte, j domain.Junction) ([]byte, error) {
	info := "didauth/junction/" + j.Kind.String()
	out := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, seed, j.ChainCode(), []byte(info)), out); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrKeyDerivation, err)
	}
	return out, nil
}

// rootSeed turns a mnemonic into the 32-byte master seed.
func rootSeed(mnemonic string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}
	defer crypto.Wipe(seed)

	out := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, seed, nil, []byte("didauth/master")), out); err != nil {
		return nil, err
	}
	return out, nil
}

func wipeAll(bufs [][]byte) {
	for _, b := range bufs {
		crypto.Wipe(b)
	}
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
