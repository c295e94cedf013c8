package kdf

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"didauth/internal/domain"
)

// DIDPassword is the hex SHA-256 digest of the DID string. It carries no
// entropy beyond the DID itself.
func DIDPassword(did domain.DID) string {
	sum := sha256.Sum256([]byte(did))
	return hex.EncodeToString(sum[:])
}

// FallbackPassword derives a password from a device identifier and a
// timestamp for when neither a biometric password nor a DID is available.
//
// SECURITY: the result is a 32-bit hash rendered as 8 hex characters, far
// weaker than the 256-bit key it seeds, and the timestamp makes it hard to
// regenerate. Flagged for security review; do not rely on it for anything but
// a last-resort session.
func FallbackPassword(deviceID string, now time.Time) (string, error) {
	if deviceID == "" {
		return "", fmt.Errorf("%w: no device identifier", domain.ErrKeyDerivation)
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(deviceID + ":" + strconv.FormatInt(now.UnixMilli(), 10)))
	return fmt.Sprintf("%08x", h.Sum32()), nil
}
