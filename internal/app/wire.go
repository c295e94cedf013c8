package app

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"didauth/internal/domain"
	"didauth/internal/logging"
	"didauth/internal/protocol/challenge"
	"didauth/internal/protocol/kdf"
	"didauth/internal/ratelimit"
	"didauth/internal/relay"
	"didauth/internal/services/biometric"
	identitysvc "didauth/internal/services/identity"
	sessionsvc "didauth/internal/services/session"
	"didauth/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config    *Config
	Log       zerolog.Logger
	Store     *store.IdentityFileStore
	Identity  *identitysvc.Service
	KDF       *kdf.Engine
	Biometric domain.BiometricProvider
	Sessions  *sessionsvc.Service
	Metrics   *sessionsvc.Metrics
	Relay     domain.ChallengeTransport
}

// NewWire constructs the dependency graph from cfg. Logs go to logOut
// (stderr when nil); metrics are registered with reg when it is non-nil.
func NewWire(cfg *Config, logOut io.Writer, reg prometheus.Registerer) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}

	// File-based identity store and the service on top of it
	identityStore := store.NewIdentityFileStore(cfg.Home)
	identitySvc := identitysvc.New(identityStore)

	engine, err := kdf.New(cfg.KDF)
	if err != nil {
		return nil, err
	}

	// Without a sensor integration the only "biometric" source is the device fallback.
	var bio domain.BiometricProvider = biometric.Unavailable{}
	if cfg.DeviceID != "" {
		bio = biometric.DeviceFallback{
			DeviceID: cfg.DeviceID,
			Log:      log.With().Str("component", "biometric").Logger(),
		}
	}

	metrics := sessionsvc.NewMetrics(reg)
	opts := []sessionsvc.Option{
		sessionsvc.WithBiometric(bio),
		sessionsvc.WithLogger(log.With().Str("component", "session").Logger()),
		sessionsvc.WithMetrics(metrics),
		sessionsvc.WithMaxConcurrentKDF(cfg.Session.MaxConcurrentKDF),
	}
	if l := ratelimit.New(cfg.Session.RateLimit); l != nil {
		opts = append(opts, sessionsvc.WithRateLimit(l))
	}
	sessionSvc := sessionsvc.New(identitySvc, engine, challenge.Cipher{}, opts...)

	// Relay client, optionally with a caller-provided HTTP client
	rc := relay.NewHTTP(cfg.RelayURL)
	if cfg.HTTP != nil {
		rc.HTTP = cfg.HTTP
	}

	return &Wire{
		Config:    cfg,
		Log:       log,
		Store:     identityStore,
		Identity:  identitySvc,
		KDF:       engine,
		Biometric: bio,
		Sessions:  sessionSvc,
		Metrics:   metrics,
		Relay:     rc,
	}, nil
}
