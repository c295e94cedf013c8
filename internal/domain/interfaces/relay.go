package interfaces

import (
	"context"

	domaintypes "didauth/internal/domain/types"
)

// ChallengeTransport moves sealed challenges between a prover and a remote
// verifier. It is agnostic to how the bytes are encoded on the wire.
type ChallengeTransport interface {
	DeliverChallenge(ctx context.Context, envelope domaintypes.ChallengeEnvelope) error
	FetchChallenges(
		ctx context.Context,
		did domaintypes.DID,
		limit int,
	) ([]domaintypes.ChallengeEnvelope, error)
	AckChallenges(ctx context.Context, did domaintypes.DID, count int) error
}
