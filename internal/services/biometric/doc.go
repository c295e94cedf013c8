// Package biometric adapts platform password sources to
// domain.BiometricProvider.
//
// The sensor prompt itself lives outside didauth; providers here only wrap a
// result channel or function so the session service can wait on it with a
// context and fall back to the DID-derived password on failure.
package biometric
