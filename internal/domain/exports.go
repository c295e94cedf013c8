package domain

import (
	interfaces "didauth/internal/domain/interfaces"
	types "didauth/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	DID                  = types.DID
	SessionID            = types.SessionID
	EncryptionKeyID      = types.EncryptionKeyID
	Salt                 = types.Salt
	Nonce                = types.Nonce
	EncryptionKey        = types.EncryptionKey
	JunctionKind         = types.JunctionKind
	Junction             = types.Junction
	DerivationPath       = types.DerivationPath
	SessionState         = types.SessionState
	PasswordSource       = types.PasswordSource
	SessionData          = types.SessionData
	AuthenticationResult = types.AuthenticationResult
	ChallengeEnvelope    = types.ChallengeEnvelope
	IdentityRecord       = types.IdentityRecord
	SubKey               = types.SubKey
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityProvider      = interfaces.IdentityProvider
	BiometricProvider     = interfaces.BiometricProvider
	KeyDeriver            = interfaces.KeyDeriver
	ChallengeCipher       = interfaces.ChallengeCipher
	AuthenticationService = interfaces.AuthenticationService
	IdentityService       = interfaces.IdentityService
	IdentityStore         = interfaces.IdentityStore
	ChallengeTransport    = interfaces.ChallengeTransport
)

// Sizes and limits.
const (
	SaltSize      = types.SaltSize
	NonceSize     = types.NonceSize
	KeySize       = types.KeySize
	ChainCodeSize = types.ChainCodeSize
	MaxPathDepth  = types.MaxPathDepth
)

// Junction kinds.
const (
	JunctionHard        = types.JunctionHard
	JunctionSoft        = types.JunctionSoft
	JunctionPassword    = types.JunctionPassword
	JunctionParent      = types.JunctionParent
	JunctionPlaceholder = types.JunctionPlaceholder
)

// Session states.
const (
	StateInit          = types.StateInit
	StateKeyReady      = types.StateKeyReady
	StateChallengeSent = types.StateChallengeSent
	StateVerified      = types.StateVerified
	StateFailed        = types.StateFailed
	StateClosed        = types.StateClosed
)

// Password sources.
const (
	PasswordFromBiometric = types.PasswordFromBiometric
	PasswordFromDID       = types.PasswordFromDID
	PasswordFromDevice    = types.PasswordFromDevice
)

// Error kinds.
var (
	ErrPath          = types.ErrPath
	ErrKeyDerivation = types.ErrKeyDerivation
	ErrCipher        = types.ErrCipher
	ErrSession       = types.ErrSession
)

// Constructors and helpers re-exported from the types subpackage.
var (
	NewJunction            = types.NewJunction
	KindOf                 = types.KindOf
	SaltFromBytes          = types.SaltFromBytes
	NonceFromBytes         = types.NonceFromBytes
	EncryptionKeyFromBytes = types.EncryptionKeyFromBytes
)
