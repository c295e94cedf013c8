package challenge

import (
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"

	"didauth/internal/domain"
	"didauth/internal/protocol/kdf"
)

// Overhead is the number of bytes Seal adds to the plaintext.
const Overhead = secretbox.Overhead

var (
	// ErrAuthentication is returned when the tag does not verify: wrong key,
	// wrong nonce, or modified ciphertext.
	ErrAuthentication = fmt.Errorf("%w: message authentication failed", domain.ErrCipher)
	// ErrKeySize is returned for raw keys that are not 32 bytes.
	ErrKeySize = fmt.Errorf("%w: invalid key size", domain.ErrCipher)
	// ErrNonceSize is returned for raw nonces that are not 24 bytes.
	ErrNonceSize = fmt.Errorf("%w: invalid nonce size", domain.ErrCipher)
	// ErrShortCiphertext is returned when the input cannot hold a tag.
	ErrShortCiphertext = fmt.Errorf("%w: ciphertext too short", domain.ErrCipher)
)

// Seal encrypts plaintext under key with a fresh nonce and returns both.
func Seal(plaintext []byte, key domain.EncryptionKey) ([]byte, domain.Nonce, error) {
	nonce, err := kdf.GenerateNonce()
	if err != nil {
		return nil, nonce, fmt.Errorf("%w: nonce: %v", domain.ErrCipher, err)
	}
	k := [domain.KeySize]byte(key)
	n := [domain.NonceSize]byte(nonce)
	return secretbox.Seal(nil, plaintext, &n, &k), nonce, nil
}

// Open authenticates and decrypts ciphertext.
func Open(ciphertext []byte, nonce domain.Nonce, key domain.EncryptionKey) ([]byte, error) {
	if len(ciphertext) < Overhead {
		return nil, ErrShortCiphertext
	}
	k := [domain.KeySize]byte(key)
	n := [domain.NonceSize]byte(nonce)
	out, ok := secretbox.Open(nil, ciphertext, &n, &k)
	if !ok {
		return nil, ErrAuthentication
	}
	return out, nil
}

// OpenBytes is Open for raw buffers received from a transport.
func OpenBytes(ciphertext, nonce, key []byte) ([]byte, error) {
	if !kdf.IsValidKey(key) {
		return nil, ErrKeySize
	}
	if len(nonce) != domain.NonceSize {
		return nil, ErrNonceSize
	}
	k, _ := domain.EncryptionKeyFromBytes(key)
	n, _ := domain.NonceFromBytes(nonce)
	return Open(ciphertext, n, k)
}

// Cipher adapts the package functions to domain.ChallengeCipher.
type Cipher struct{}

// Seal calls the package-level Seal.
func (Cipher) Seal(plaintext []byte, key domain.EncryptionKey) ([]byte, domain.Nonce, error) {
	return Seal(plaintext, key)
}

// Open calls the package-level Open.
func (Cipher) Open(ciphertext []byte, nonce domain.Nonce, key domain.EncryptionKey) ([]byte, error) {
	return Open(ciphertext, nonce, key)
}

// Compile-time assertion that Cipher implements domain.ChallengeCipher.
var _ domain.ChallengeCipher = Cipher{}
