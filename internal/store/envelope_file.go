package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"didauth/internal/domain"
)

// ErrEmptyEnvelope is returned when an envelope file decodes to no ciphertext.
var ErrEmptyEnvelope = errors.New("envelope has no ciphertext")

var envelopeEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// MarshalEnvelope encodes env as deterministic CBOR.
func MarshalEnvelope(env domain.ChallengeEnvelope) ([]byte, error) {
	return envelopeEncMode.Marshal(env)
}

// UnmarshalEnvelope decodes a CBOR envelope.
func UnmarshalEnvelope(b []byte) (domain.ChallengeEnvelope, error) {
	var env domain.ChallengeEnvelope
	if err := cbor.Unmarshal(b, &env); err != nil {
		return domain.ChallengeEnvelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if len(env.Ciphertext) == 0 {
		return domain.ChallengeEnvelope{}, ErrEmptyEnvelope
	}
	return env, nil
}

// WriteEnvelope writes env to path as CBOR.
func WriteEnvelope(path string, env domain.ChallengeEnvelope) error {
	b, err := MarshalEnvelope(env)
	if err != nil {
		return err
	}
	return writeFile(path, b, 0o600)
}

// ReadEnvelope reads a CBOR envelope from path.
func ReadEnvelope(path string) (domain.ChallengeEnvelope, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.ChallengeEnvelope{}, err
	}
	return UnmarshalEnvelope(b)
}
