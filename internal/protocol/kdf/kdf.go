package kdf

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"

	"didauth/internal/crypto"
	"didauth/internal/domain"
)

var (
	// ErrInvalidParams is returned for unsupported KDF parameters.
	ErrInvalidParams = fmt.Errorf("%w: invalid parameters", domain.ErrKeyDerivation)
	// ErrEmptyPassword is returned when there is no password to stretch.
	ErrEmptyPassword = fmt.Errorf("%w: empty password", domain.ErrKeyDerivation)
	// ErrRandom is returned when the CSPRNG fails.
	ErrRandom = fmt.Errorf("%w: random source failed", domain.ErrKeyDerivation)
)

// Engine derives keys with a fixed set of parameters. It is safe for
// concurrent use.
type Engine struct {
	params Params
}

// New validates p and returns an Engine.
func New(p Params) (*Engine, error) {
	p.Algorithm = Algorithm(strings.ToLower(string(p.Algorithm)))
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Engine{params: p}, nil
}

// Params returns the engine's parameters.
func (e *Engine) Params() Params { return e.params }

// DeriveKey stretches password with salt into a 32-byte key.
//
// The computation is deliberately expensive and is not interruptible once
// started; ctx is only checked before it begins.
func (e *Engine) DeriveKey(
	ctx context.Context,
	password string,
	salt domain.Salt,
) (domain.EncryptionKey, error) {
	var key domain.EncryptionKey
	if password == "" {
		return key, ErrEmptyPassword
	}
	if err := ctx.Err(); err != nil {
		return key, fmt.Errorf("%w: %w", domain.ErrKeyDerivation, err)
	}

	pw := []byte(password)
	defer crypto.Wipe(pw)

	var (
		out []byte
		err error
	)
	switch e.params.Algorithm {
	case AlgorithmScrypt:
		out, err = scrypt.Key(pw, salt[:], e.params.N, e.params.R, e.params.P, domain.KeySize)
	case AlgorithmPBKDF2:
		out = pbkdf2.Key(pw, salt[:], e.params.N, domain.KeySize, sha256.New)
	case AlgorithmArgon2id:
		out = argon2.IDKey(pw, salt[:], e.params.ArgonTime, e.params.ArgonMemory, e.params.ArgonThreads, domain.KeySize)
	default:
		err = fmt.Errorf("unknown algorithm %q", e.params.Algorithm)
	}
	if err != nil {
		return key, fmt.Errorf("%w: %w", domain.ErrKeyDerivation, err)
	}
	defer crypto.Wipe(out)
	if !IsValidKey(out) {
		return key, fmt.Errorf("%w: derived %d bytes", domain.ErrKeyDerivation, len(out))
	}
	copy(key[:], out)
	return key, nil
}

// DeriveKeyFromDID derives a key whose password is DIDPassword(did). Every
// holder of the DID regenerates the same key for a given salt.
func (e *Engine) DeriveKeyFromDID(
	ctx context.Context,
	did domain.DID,
	salt domain.Salt,
) (domain.EncryptionKey, error) {
	if did == "" {
		return domain.EncryptionKey{}, fmt.Errorf("%w: empty DID", domain.ErrKeyDerivation)
	}
	return e.DeriveKey(ctx, DIDPassword(did), salt)
}

// IsValidKey reports whether key has the contract length of 32 bytes.
func IsValidKey(key []byte) bool { return len(key) == domain.KeySize }

// GenerateSalt returns 32 fresh random bytes.
func GenerateSalt() (domain.Salt, error) {
	var s domain.Salt
	if err := crypto.RandomBytes(s[:]); err != nil {
		return s, errors.Join(ErrRandom, err)
	}
	return s, nil
}

// GenerateNonce returns 24 fresh random bytes.
func GenerateNonce() (domain.Nonce, error) {
	var n domain.Nonce
	if err := crypto.RandomBytes(n[:]); err != nil {
		return n, errors.Join(ErrRandom, err)
	}
	return n, nil
}

// Compile-time assertion that Engine implements domain.KeyDeriver.
var _ domain.KeyDeriver = (*Engine)(nil)
