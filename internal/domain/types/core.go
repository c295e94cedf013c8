package types

// DID is a decentralized identifier such as "did:key:z6Mk...".
type DID string

// String returns the string form of the DID.
func (d DID) String() string { return string(d) }

// SessionID uniquely identifies one authentication attempt.
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }

// EncryptionKeyID names the key of a session without revealing it.
type EncryptionKeyID string

// String returns the string form of the key identifier.
func (id EncryptionKeyID) String() string { return string(id) }
