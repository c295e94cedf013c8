package biometric

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"didauth/internal/domain"
	"didauth/internal/protocol/kdf"
)

var (
	// ErrCanceled is returned when the user dismissed the prompt.
	ErrCanceled = errors.New("biometric prompt canceled")
	// ErrUnavailable is returned when no sensor or enrolment exists.
	ErrUnavailable = errors.New("biometric unavailable")
)

// Func turns a function into a BiometricProvider.
type Func func(ctx context.Context) (string, error)

// RequestPassword calls f. An empty password counts as unavailable.
func (f Func) RequestPassword(ctx context.Context) (string, error) {
	pw, err := f(ctx)
	if err != nil {
		return "", err
	}
	if pw == "" {
		return "", ErrUnavailable
	}
	return pw, nil
}

// Unavailable always fails with ErrUnavailable.
type Unavailable struct{}

// RequestPassword returns ErrUnavailable.
func (Unavailable) RequestPassword(context.Context) (string, error) {
	return "", ErrUnavailable
}

// Result is one answer from an asynchronous prompt.
type Result struct {
	Password string
	Err      error
}

// Prompt bridges a callback-style sensor API. Start is called once per
// request and must deliver at most one Result on the returned channel, or
// close it. The channel may be unbuffered: if ctx ends first, a late result
// is received and discarded so the sender never blocks.
type Prompt struct {
	Start func() <-chan Result
}

// RequestPassword waits for the prompt's result or for ctx to be done.
func (p Prompt) RequestPassword(ctx context.Context) (string, error) {
	if p.Start == nil {
		return "", ErrUnavailable
	}
	ch := p.Start()
	select {
	case <-ctx.Done():
		go func() { <-ch }()
		return "", ctx.Err()
	case r, ok := <-ch:
		if !ok {
			return "", ErrCanceled
		}
		if r.Err != nil {
			return "", r.Err
		}
		if r.Password == "" {
			return "", ErrUnavailable
		}
		return r.Password, nil
	}
}

// DeviceFallback stands in for a sensor on devices without one. Its password
// comes from kdf.FallbackPassword and is only as strong as a 32-bit hash.
type DeviceFallback struct {
	DeviceID string
	Now      func() time.Time
	Log      zerolog.Logger
}

// RequestPassword returns the device fallback password.
func (d DeviceFallback) RequestPassword(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	pw, err := kdf.FallbackPassword(d.DeviceID, now())
	if err != nil {
		return "", errors.Join(ErrUnavailable, err)
	}
	d.Log.Warn().Msg("using low-entropy device fallback password")
	return pw, nil
}

// PasswordSource marks sessions keyed by this provider as device-derived.
func (DeviceFallback) PasswordSource() domain.PasswordSource { return domain.PasswordFromDevice }

// Compile-time assertions that the adapters implement domain.BiometricProvider.
var (
	_ domain.BiometricProvider = Func(nil)
	_ domain.BiometricProvider = Unavailable{}
	_ domain.BiometricProvider = Prompt{}
	_ domain.BiometricProvider = DeviceFallback{}
)
