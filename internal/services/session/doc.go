// Package session coordinates challenge-response authentication attempts.
//
// One attempt resolves the current DID, picks a password (biometric or
// DID-derived), stretches it into a session key with a fresh salt, and seals
// the verifier's challenge under that key. The resulting SessionData is owned
// by the caller; the coordinator itself keeps no per-session state.
package session
