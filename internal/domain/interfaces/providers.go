package interfaces

import (
	"context"

	domaintypes "didauth/internal/domain/types"
)

// IdentityProvider supplies the DID of the active identity. ok is false when
// no identity exists.
type IdentityProvider interface {
	CurrentDID(ctx context.Context) (did domaintypes.DID, ok bool, err error)
}

// BiometricProvider asks the platform for a biometric-backed password. It
// blocks until the user answers or ctx is done.
type BiometricProvider interface {
	RequestPassword(ctx context.Context) (string, error)
}
