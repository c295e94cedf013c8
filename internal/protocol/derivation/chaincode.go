package derivation

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"didauth/internal/domain"
)

// SerializeValue turns junction text into raw chain-code bytes. Unsigned
// base-10 integers up to MaxUint64 become 8 little-endian bytes; a sign
// character makes the text non-numeric.
func SerializeValue(text string) []byte {
	if n, err := strconv.ParseUint(text, 10, 64); err == nil {
		out := make([]byte, 8)
		binary.LittleEndian.PutUint64(out, n)
		return out
	}
	if b, ok := decodeHex(text); ok {
		return b
	}
	return []byte(text)
}

// NormalizeChainCode maps raw bytes onto exactly 32 bytes: shorter input is
// right-padded with zeros, longer input is hashed with BLAKE2b-256. This is
// the one place BLAKE2b is used; DID passwords and fingerprints are SHA-256,
// so chain codes must not be compared against those digests.
func NormalizeChainCode(raw []byte) []byte {
	switch {
	case len(raw) > domain.ChainCodeSize:
		sum := blake2b.Sum256(raw)
		return sum[:]
	default:
		out := make([]byte, domain.ChainCodeSize)
		copy(out, raw)
		return out
	}
}

// ChainCode is NormalizeChainCode(SerializeValue(text)).
func ChainCode(text string) []byte {
	return NormalizeChainCode(SerializeValue(text))
}

// decodeHex accepts an optional 0x prefix. The empty string is not hex.
func decodeHex(text string) ([]byte, bool) {
	s := strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	if s == "" || len(s)%2 != 0 {
		return nil, false
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return b, true
}
