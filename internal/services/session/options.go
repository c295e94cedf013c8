package session

import (
	"time"

	"github.com/rs/zerolog"

	"didauth/internal/domain"
)

// Limiter decides whether a DID may start another attempt.
type Limiter interface {
	Allow(did domain.DID, now time.Time) bool
}

// Option configures a Service.
type Option func(*Service)

// WithBiometric sets the provider asked for a password when an attempt
// requests biometrics.
func WithBiometric(p domain.BiometricProvider) Option {
	return func(s *Service) { s.biometric = p }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMetrics records attempts and KDF timings in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithRateLimit throttles StartAuthentication per DID.
func WithRateLimit(l Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithMaxConcurrentKDF bounds how many key derivations run at once.
// Values below 1 are ignored.
func WithMaxConcurrentKDF(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxKDF = int64(n)
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
