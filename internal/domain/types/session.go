package types

import (
	"bytes"
	"time"
)

// SessionState tracks one authentication attempt.
//
//	Init -> KeyReady -> ChallengeSent -> Verified | Failed
//
// Closed is entered from any state once the session has been cleaned up.
type SessionState uint8

const (
	StateInit SessionState = iota
	StateKeyReady
	StateChallengeSent
	StateVerified
	StateFailed
	StateClosed
)

// String returns the name of the state.
func (s SessionState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateKeyReady:
		return "key_ready"
	case StateChallengeSent:
		return "challenge_sent"
	case StateVerified:
		return "verified"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// PasswordSource records which input produced a session's KDF password.
type PasswordSource string

const (
	PasswordFromBiometric PasswordSource = "biometric"
	PasswordFromDID       PasswordSource = "did"
	PasswordFromDevice    PasswordSource = "device"
)

// SessionData is the ephemeral state of one authentication attempt. It owns
// the encryption key; nothing else keeps a copy.
type SessionData struct {
	SessionID       SessionID
	EncryptionKey   EncryptionKey
	Nonce           Nonce
	Salt            Salt
	DIDAddress      DID
	EncryptionKeyID EncryptionKeyID
	// ChallengeNonce is nil until the challenge has been sealed.
	ChallengeNonce *Nonce
	PasswordSource PasswordSource
	State          SessionState
	CreatedAt      time.Time
}

// Equal compares sessions by content, never by identity.
func (s *SessionData) Equal(other *SessionData) bool {
	if s == nil || other == nil {
		return s == other
	}
	if (s.ChallengeNonce == nil) != (other.ChallengeNonce == nil) {
		return false
	}
	if s.ChallengeNonce != nil && *s.ChallengeNonce != *other.ChallengeNonce {
		return false
	}
	return s.SessionID == other.SessionID &&
		s.EncryptionKey.Equal(other.EncryptionKey) &&
		s.Nonce == other.Nonce &&
		s.Salt == other.Salt &&
		s.DIDAddress == other.DIDAddress &&
		s.EncryptionKeyID == other.EncryptionKeyID &&
		s.PasswordSource == other.PasswordSource &&
		s.State == other.State &&
		s.CreatedAt.Equal(other.CreatedAt)
}

// AuthenticationResult is the terminal value of StartAuthentication.
type AuthenticationResult struct {
	Success            bool
	SessionData        *SessionData
	EncryptedChallenge []byte
	// Error is safe to show to end users; it never names the failing step.
	Error string
	// BiometricError is set when a biometric password was requested but the
	// provider failed and the DID-derived password was used instead.
	BiometricError string
}

// ChallengeEnvelope carries a sealed challenge to a remote verifier. It never
// contains the key. Salt lets a verifier that knows the DID re-derive the key
// of a DID-password session.
type ChallengeEnvelope struct {
	SessionID      SessionID      `json:"session_id" cbor:"1,keyasint"`
	DIDAddress     DID            `json:"did" cbor:"2,keyasint"`
	Ciphertext     []byte         `json:"ciphertext" cbor:"3,keyasint"`
	Nonce          Nonce          `json:"nonce" cbor:"4,keyasint"`
	CreatedAt      int64          `json:"created_at" cbor:"5,keyasint"`
	Salt           Salt           `json:"salt" cbor:"6,keyasint"`
	PasswordSource PasswordSource `json:"password_source,omitempty" cbor:"7,keyasint,omitempty"`
}

// Equal compares envelopes by content.
func (e ChallengeEnvelope) Equal(other ChallengeEnvelope) bool {
	return e.SessionID == other.SessionID &&
		e.DIDAddress == other.DIDAddress &&
		bytes.Equal(e.Ciphertext, other.Ciphertext) &&
		e.Nonce == other.Nonce &&
		e.CreatedAt == other.CreatedAt &&
		e.Salt == other.Salt &&
		e.PasswordSource == other.PasswordSource
}
