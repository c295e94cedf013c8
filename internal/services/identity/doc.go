// Package identity manages creation, import and use of the local DID identity.
//
// An identity is a BIP-39 mnemonic. Its seed yields a master Ed25519 key whose
// public half is published as a did:key DID. Sub-keys are derived from the
// master seed along Substrate-style derivation paths. The mnemonic is persisted
// encrypted via the domain.IdentityStore; the passphrase strength policy is
// enforced on every write.
package identity
