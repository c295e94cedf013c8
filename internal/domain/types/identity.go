package types

import "time"

// IdentityRecord is the public half of the local identity. It is stored in
// clear so the DID can be resolved without the passphrase.
type IdentityRecord struct {
	DID        DID    `json:"did"`
	PublicKey  []byte `json:"public_key"`
	CreatedUTC int64  `json:"created_utc"`
	Version    int    `json:"version"`
}

// Created returns the creation time.
func (r IdentityRecord) Created() time.Time { return time.Unix(r.CreatedUTC, 0).UTC() }

// SubKey is a key pair derived from the master seed along a path.
type SubKey struct {
	Path       string `json:"path"`
	PublicKey  []byte `json:"public_key"`
	PrivateKey []byte `json:"-"`
}
