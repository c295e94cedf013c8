// Package store provides file-based persistence for the local identity and
// for sealed challenge bundles.
//
// The identity record (DID and public key) is written in clear as JSON so the
// DID resolves without a passphrase. The BIP-39 mnemonic is sealed in a
// scrypt + ChaCha20-Poly1305 keystore blob. Challenge envelopes are written as
// CBOR so they can be handed between prover and verifier as files. Writes go
// through a temp file and an atomic rename; methods are concurrency-safe.
package store
