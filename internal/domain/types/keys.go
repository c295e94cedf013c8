package types

import (
	"crypto/subtle"
	"fmt"
)

const (
	// SaltSize is the length of a per-session KDF salt.
	SaltSize = 32
	// NonceSize is the length of a cipher nonce.
	NonceSize = 24
	// KeySize is the length of a derived encryption key.
	KeySize = 32
)

// Salt is random data mixed into the KDF. Fresh per session.
type Salt [SaltSize]byte

// Slice returns the salt as a []byte.
func (s Salt) Slice() []byte { return s[:] }

// Nonce is used once per (key, message) pair.
type Nonce [NonceSize]byte

// Slice returns the nonce as a []byte.
func (n Nonce) Slice() []byte { return n[:] }

// EncryptionKey is the 32-byte symmetric key produced by the KDF. Holding it
// is equivalent to being able to answer the challenge.
type EncryptionKey [KeySize]byte

// Slice returns the key as a []byte.
func (k EncryptionKey) Slice() []byte { return k[:] }

// Equal compares two keys in constant time.
func (k EncryptionKey) Equal(other EncryptionKey) bool {
	return subtle.ConstantTimeCompare(k[:], other[:]) == 1
}

// IsZero reports whether the key has been wiped or never set.
func (k EncryptionKey) IsZero() bool {
	var zero EncryptionKey
	return k.Equal(zero)
}

// String never prints key material.
func (k EncryptionKey) String() string { return "EncryptionKey(redacted)" }

// GoString keeps %#v from leaking key material.
func (k EncryptionKey) GoString() string { return k.String() }

// SaltFromBytes copies b into a Salt.
func SaltFromBytes(b []byte) (Salt, error) {
	var out Salt
	if len(b) != SaltSize {
		return out, fmt.Errorf("salt: want %d bytes, got %d", SaltSize, len(b))
	}
	copy(out[:], b)
	return out, nil
}

// NonceFromBytes copies b into a Nonce.
func NonceFromBytes(b []byte) (Nonce, error) {
	var out Nonce
	if len(b) != NonceSize {
		return out, fmt.Errorf("nonce: want %d bytes, got %d", NonceSize, len(b))
	}
	copy(out[:], b)
	return out, nil
}

// EncryptionKeyFromBytes copies b into an EncryptionKey.
func EncryptionKeyFromBytes(b []byte) (EncryptionKey, error) {
	var out EncryptionKey
	if len(b) != KeySize {
		return out, fmt.Errorf("encryption key: want %d bytes, got %d", KeySize, len(b))
	}
	copy(out[:], b)
	return out, nil
}
