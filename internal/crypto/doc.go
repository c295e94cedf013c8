// Package crypto exposes the minimal primitives shared by didauth.
//
// Contents
//
//   - Ed25519 key pairs from a seed, signing and verification (Ed25519FromSeed,
//     SignEd25519, VerifyEd25519)
//   - did:key encoding of Ed25519 public keys (DIDKey, ParseDIDKey)
//   - CSPRNG helpers (RandomBytes)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short fingerprints for display/logging (Fingerprint, FingerprintString)
//   - Hex encoding for CLI output (Hex)
//
// # Notes
//
// Callers should treat returned secrets as sensitive and rely on Wipe when
// practical to reduce lifetime in memory.
package crypto
