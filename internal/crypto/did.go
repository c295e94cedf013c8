package crypto

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58/base58"
)

const didKeyPrefix = "did:key:z"

// ed25519-pub multicodec, varint encoded.
var ed25519Multicodec = []byte{0xed, 0x01}

var errNotDIDKey = errors.New("not an ed25519 did:key")

// DIDKey encodes an Ed25519 public key as a did:key identifier
// (multibase base58btc over the multicodec-prefixed key).
func DIDKey(pub ed25519.PublicKey) (string, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", fmt.Errorf("invalid ed25519 public key size: %d", len(pub))
	}
	buf := make([]byte, 0, len(ed25519Multicodec)+len(pub))
	buf = append(buf, ed25519Multicodec...)
	buf = append(buf, pub...)
	return didKeyPrefix + base58.Encode(buf), nil
}

// ParseDIDKey extracts the Ed25519 public key from a did:key identifier.
func ParseDIDKey(did string) (ed25519.PublicKey, error) {
	if !strings.HasPrefix(did, didKeyPrefix) {
		return nil, errNotDIDKey
	}
	raw, err := base58.Decode(strings.TrimPrefix(did, didKeyPrefix))
	if err != nil {
		return nil, fmt.Errorf("did:key: %w", err)
	}
	if len(raw) != len(ed25519Multicodec)+ed25519.PublicKeySize ||
		raw[0] != ed25519Multicodec[0] || raw[1] != ed25519Multicodec[1] {
		return nil, errNotDIDKey
	}
	return ed25519.PublicKey(raw[len(ed25519Multicodec):]), nil
}
