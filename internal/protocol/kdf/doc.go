// Package kdf derives 32-byte symmetric keys from low-entropy passwords.
//
// The default algorithm is scrypt with N=16384, r=8, p=1. PBKDF2-HMAC-SHA256
// with N iterations is available as a deliberately weaker but deterministic
// substitute, and Argon2id as a stronger one. The same password, salt and
// parameters always yield the same key.
//
// Passwords come from a biometric provider, from a DID (DIDPassword), or as a
// last resort from a device identifier and timestamp (FallbackPassword).
package kdf
