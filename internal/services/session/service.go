package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"didauth/internal/crypto"
	"didauth/internal/domain"
	"didauth/internal/protocol/kdf"
)

// passwordSourcer is implemented by biometric providers whose password does
// not come from a sensor.
type passwordSourcer interface {
	PasswordSource() domain.PasswordSource
}

// Service runs authentication attempts.
//
// Each call to StartAuthentication:
//   - Resolves the current DID from the identity provider.
//   - Draws a fresh salt and session nonce.
//   - Chooses the password: biometric when asked for and available, the
//     DID-derived password otherwise.
//   - Derives the session key under the KDF concurrency bound.
//   - Seals the challenge and hands back the session to the caller.
type Service struct {
	ids    domain.IdentityProvider
	kdf    domain.KeyDeriver
	cipher domain.ChallengeCipher

	biometric domain.BiometricProvider
	limiter   Limiter
	metrics   *Metrics
	log       zerolog.Logger
	now       func() time.Time

	maxKDF int64
	kdfSem *semaphore.Weighted
}

// New constructs a coordinator from its collaborators.
func New(
	ids domain.IdentityProvider,
	deriver domain.KeyDeriver,
	cipher domain.ChallengeCipher,
	opts ...Option,
) *Service {
	s := &Service{
		ids:    ids,
		kdf:    deriver,
		cipher: cipher,
		log:    zerolog.Nop(),
		now:    time.Now,
		maxKDF: int64(runtime.NumCPU()),
	}
	for _, o := range opts {
		o(s)
	}
	s.kdfSem = semaphore.NewWeighted(s.maxKDF)
	return s
}

// StartAuthentication seals challenge under a freshly derived session key.
//
// On failure the result carries only the generic error text; the typed error
// is the second return value and no SessionData is handed out.
func (s *Service) StartAuthentication(
	ctx context.Context,
	challenge string,
	useBiometric bool,
) (domain.AuthenticationResult, error) {
	res, err := s.start(ctx, challenge, useBiometric)
	s.metrics.attempt(err)
	if err != nil {
		s.log.Warn().
			Str("event", "auth_failed").
			Str("kind", kindLabel(err)).
			Err(err).
			Msg("authentication attempt failed")
		return domain.AuthenticationResult{
			Success:        false,
			Error:          genericFailure,
			BiometricError: res.BiometricError,
		}, err
	}
	s.log.Info().
		Str("event", "auth_started").
		Str("session_id", res.SessionData.SessionID.String()).
		Str("did_fp", crypto.FingerprintString(string(res.SessionData.DIDAddress))).
		Str("password_source", string(res.SessionData.PasswordSource)).
		Msg("challenge sealed")
	return res, nil
}

func (s *Service) start(
	ctx context.Context,
	challenge string,
	useBiometric bool,
) (domain.AuthenticationResult, error) {
	var res domain.AuthenticationResult

	did, ok, err := s.ids.CurrentDID(ctx)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrNoIdentity, err)
	}
	if !ok || did == "" {
		return res, ErrNoIdentity
	}
	if s.limiter != nil && !s.limiter.Allow(did, s.now()) {
		return res, ErrRateLimited
	}

	salt, err := kdf.GenerateSalt()
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	}
	nonce, err := kdf.GenerateNonce()
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	}
	sd := &domain.SessionData{
		Salt:       salt,
		Nonce:      nonce,
		DIDAddress: did,
		State:      domain.StateInit,
		CreatedAt:  s.now(),
	}

	password, source, bioErr := s.password(ctx, useBiometric)
	if bioErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.CleanupSession(sd)
			return res, fmt.Errorf("%w: %w", ErrBiometricCanceled, ctxErr)
		}
		res.BiometricError = bioErr.Error()
		s.log.Info().
			Str("event", "biometric_fallback").
			Str("did_fp", crypto.FingerprintString(string(did))).
			Err(bioErr).
			Msg("falling back to DID-derived password")
	}
	sd.PasswordSource = source

	key, err := s.deriveKey(ctx, did, password, source, salt)
	if err != nil {
		s.CleanupSession(sd)
		return res, err
	}
	sd.EncryptionKey = key
	crypto.Wipe(key[:])
	sd.State = domain.StateKeyReady

	id, err := uuid.NewV7()
	if err != nil {
		s.CleanupSession(sd)
		return res, fmt.Errorf("%w: session id: %v", domain.ErrSession, err)
	}
	sd.SessionID = domain.SessionID(id.String())
	sd.EncryptionKeyID = keyID(sd.SessionID, salt)

	ct, challengeNonce, err := s.cipher.Seal([]byte(challenge), sd.EncryptionKey)
	if err != nil {
		s.CleanupSession(sd)
		return res, err
	}
	sd.ChallengeNonce = &challengeNonce
	sd.State = domain.StateChallengeSent

	res.Success = true
	res.SessionData = sd
	res.EncryptedChallenge = ct
	return res, nil
}

// password picks the KDF input. A non-nil bioErr means biometrics were
// requested but did not produce a password; the DID password is used instead.
func (s *Service) password(
	ctx context.Context,
	useBiometric bool,
) (string, domain.PasswordSource, error) {
	if !useBiometric {
		return "", domain.PasswordFromDID, nil
	}
	if s.biometric == nil {
		return "", domain.PasswordFromDID, errors.New("no biometric provider configured")
	}
	pw, err := s.biometric.RequestPassword(ctx)
	if err != nil {
		return "", domain.PasswordFromDID, err
	}
	if pw == "" {
		return "", domain.PasswordFromDID, errors.New("biometric provider returned no password")
	}
	source := domain.PasswordFromBiometric
	if ps, ok := s.biometric.(passwordSourcer); ok {
		source = ps.PasswordSource()
	}
	return pw, source, nil
}

func (s *Service) deriveKey(
	ctx context.Context,
	did domain.DID,
	password string,
	source domain.PasswordSource,
	salt domain.Salt,
) (domain.EncryptionKey, error) {
	if err := s.kdfSem.Acquire(ctx, 1); err != nil {
		return domain.EncryptionKey{}, fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	}
	defer s.kdfSem.Release(1)

	start := time.Now()
	var (
		key domain.EncryptionKey
		err error
	)
	if source == domain.PasswordFromDID {
		key, err = s.kdf.DeriveKeyFromDID(ctx, did, salt)
	} else {
		key, err = s.kdf.DeriveKey(ctx, password, salt)
	}
	s.metrics.kdf(string(source), time.Since(start))
	if err != nil {
		return domain.EncryptionKey{}, fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// VerifyChallenge opens ciphertext and returns the challenge text.
func (s *Service) VerifyChallenge(
	ciphertext []byte,
	nonce domain.Nonce,
	key domain.EncryptionKey,
) (string, error) {
	pt, err := s.cipher.Open(ciphertext, nonce, key)
	s.metrics.verification(err == nil)
	if err != nil {
		return "", err
	}
	defer crypto.Wipe(pt)
	return string(pt), nil
}

// VerifySession opens a session's own sealed challenge and compares it with
// expected when expected is non-empty. The session moves to StateVerified on
// success and to StateFailed otherwise.
func (s *Service) VerifySession(
	sd *domain.SessionData,
	ciphertext []byte,
	expected string,
) (string, error) {
	if sd == nil || sd.State != domain.StateChallengeSent || sd.ChallengeNonce == nil {
		return "", ErrInvalidState
	}
	got, err := s.VerifyChallenge(ciphertext, *sd.ChallengeNonce, sd.EncryptionKey)
	if err != nil {
		sd.State = domain.StateFailed
		s.log.Warn().
			Str("event", "verify_failed").
			Str("session_id", sd.SessionID.String()).
			Str("kind", kindLabel(err)).
			Msg("challenge did not open")
		return "", err
	}
	if expected != "" && subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
		sd.State = domain.StateFailed
		s.log.Warn().
			Str("event", "verify_mismatch").
			Str("session_id", sd.SessionID.String()).
			Msg("challenge mismatch")
		return "", ErrVerificationMismatch
	}
	sd.State = domain.StateVerified
	s.log.Info().
		Str("event", "verified").
		Str("session_id", sd.SessionID.String()).
		Msg("challenge verified")
	return got, nil
}

// CleanupSession wipes the session's key material and closes it. It is safe
// to call more than once and on nil.
func (s *Service) CleanupSession(sd *domain.SessionData) {
	if sd == nil {
		return
	}
	crypto.Wipe(sd.EncryptionKey[:], sd.Salt[:], sd.Nonce[:])
	if sd.ChallengeNonce != nil {
		crypto.Wipe(sd.ChallengeNonce[:])
		sd.ChallengeNonce = nil
	}
	sd.State = domain.StateClosed
}

// Envelope packages a started session for transport to the verifier.
func Envelope(sd *domain.SessionData, ciphertext []byte) (domain.ChallengeEnvelope, error) {
	if sd == nil || sd.ChallengeNonce == nil {
		return domain.ChallengeEnvelope{}, ErrInvalidState
	}
	return domain.ChallengeEnvelope{
		SessionID:      sd.SessionID,
		DIDAddress:     sd.DIDAddress,
		Ciphertext:     append([]byte(nil), ciphertext...),
		Nonce:          *sd.ChallengeNonce,
		CreatedAt:      sd.CreatedAt.Unix(),
		Salt:           sd.Salt,
		PasswordSource: sd.PasswordSource,
	}, nil
}

// VerifyEnvelope is the remote verifier's side: it re-derives the key of a
// DID-password session from the envelope's DID and salt, opens the challenge,
// and compares it with expected when expected is non-empty.
func (s *Service) VerifyEnvelope(
	ctx context.Context,
	env domain.ChallengeEnvelope,
	expected string,
) (string, error) {
	if env.PasswordSource != "" && env.PasswordSource != domain.PasswordFromDID {
		return "", ErrNotDIDKeyed
	}
	if env.DIDAddress == "" {
		return "", ErrNoIdentity
	}
	key, err := s.deriveKey(ctx, env.DIDAddress, "", domain.PasswordFromDID, env.Salt)
	if err != nil {
		return "", err
	}
	defer crypto.Wipe(key[:])

	got, err := s.VerifyChallenge(env.Ciphertext, env.Nonce, key)
	if err != nil {
		return "", err
	}
	if expected != "" && subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
		return "", ErrVerificationMismatch
	}
	s.log.Info().
		Str("event", "envelope_verified").
		Str("session_id", env.SessionID.String()).
		Str("did_fp", crypto.FingerprintString(string(env.DIDAddress))).
		Msg("challenge verified")
	return got, nil
}

// keyID names a session key without revealing it.
func keyID(id domain.SessionID, salt domain.Salt) domain.EncryptionKeyID {
	return domain.EncryptionKeyID("ek_" + crypto.Fingerprint(append([]byte(id), salt[:]...)))
}

// Compile-time assertion that Service implements domain.AuthenticationService.
var _ domain.AuthenticationService = (*Service)(nil)
