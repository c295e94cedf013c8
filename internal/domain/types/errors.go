package types

import "errors"

// Error kinds. Every failure returned by the core wraps exactly one of these,
// so callers branch with errors.Is(err, ErrCipher) and friends.
var (
	ErrPath          = errors.New("path error")
	ErrKeyDerivation = errors.New("key derivation error")
	ErrCipher        = errors.New("cipher error")
	ErrSession       = errors.New("session error")
)

// KindOf returns the kind sentinel err wraps, or nil if it wraps none.
func KindOf(err error) error {
	for _, kind := range []error{ErrPath, ErrKeyDerivation, ErrCipher, ErrSession} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
