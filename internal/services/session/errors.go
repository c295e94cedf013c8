package session

import (
	"fmt"

	"didauth/internal/domain"
)

// Failure text shown to end users. Details stay in the returned error.
const genericFailure = "authentication failed"

var (
	// ErrNoIdentity is returned when no DID is available.
	ErrNoIdentity = fmt.Errorf("%w: no identity", domain.ErrSession)
	// ErrKeyDerivationFailed is returned when the session key could not be derived.
	ErrKeyDerivationFailed = fmt.Errorf("%w: key derivation failed", domain.ErrSession)
	// ErrBiometricCanceled is returned when the caller's context ended while
	// waiting for the biometric prompt.
	ErrBiometricCanceled = fmt.Errorf("%w: biometric prompt canceled", domain.ErrSession)
	// ErrVerificationMismatch is returned when an opened challenge differs from
	// the expected one.
	ErrVerificationMismatch = fmt.Errorf("%w: challenge mismatch", domain.ErrSession)
	// ErrInvalidState is returned when a session is used out of order.
	ErrInvalidState = fmt.Errorf("%w: invalid session state", domain.ErrSession)
	// ErrNotDIDKeyed is returned when an envelope's key cannot be re-derived
	// from its DID alone.
	ErrNotDIDKeyed = fmt.Errorf("%w: envelope not keyed by DID password", domain.ErrSession)
	// ErrRateLimited is returned when a DID starts attempts too quickly.
	ErrRateLimited = fmt.Errorf("%w: too many attempts", domain.ErrSession)
)

// kindLabel names the error kind of err for metrics and logs.
func kindLabel(err error) string {
	switch domain.KindOf(err) {
	case domain.ErrPath:
		return "path"
	case domain.ErrKeyDerivation:
		return "key_derivation"
	case domain.ErrCipher:
		return "cipher"
	case domain.ErrSession:
		return "session"
	default:
		return "unknown"
	}
}
