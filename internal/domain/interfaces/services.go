package interfaces

import (
	"context"

	domaintypes "didauth/internal/domain/types"
)

// KeyDeriver turns a password and salt into a symmetric key.
type KeyDeriver interface {
	DeriveKey(
		ctx context.Context,
		password string,
		salt domaintypes.Salt,
	) (domaintypes.EncryptionKey, error)
	DeriveKeyFromDID(
		ctx context.Context,
		did domaintypes.DID,
		salt domaintypes.Salt,
	) (domaintypes.EncryptionKey, error)
}

// ChallengeCipher seals and opens challenges with authenticated encryption.
type ChallengeCipher interface {
	Seal(
		plaintext []byte,
		key domaintypes.EncryptionKey,
	) (ciphertext []byte, nonce domaintypes.Nonce, err error)
	Open(
		ciphertext []byte,
		nonce domaintypes.Nonce,
		key domaintypes.EncryptionKey,
	) ([]byte, error)
}

// AuthenticationService drives challenge-response sessions end to end.
type AuthenticationService interface {
	StartAuthentication(
		ctx context.Context,
		challenge string,
		useBiometric bool,
	) (domaintypes.AuthenticationResult, error)
	VerifyChallenge(
		ciphertext []byte,
		nonce domaintypes.Nonce,
		key domaintypes.EncryptionKey,
	) (string, error)
	CleanupSession(session *domaintypes.SessionData)
}

// IdentityService creates, imports and inspects the local identity.
type IdentityService interface {
	GenerateIdentity(passphrase string) (
		domaintypes.IdentityRecord,
		string, // mnemonic
		error,
	)
	ImportIdentity(passphrase, mnemonic string) (domaintypes.IdentityRecord, error)
	DeriveSubKey(passphrase, path string) (domaintypes.SubKey, error)
	IdentityProvider
}
