package kdf

import (
	"fmt"
	"strings"
)

// Algorithm selects the key-derivation function.
type Algorithm string

const (
	AlgorithmScrypt   Algorithm = "scrypt"
	AlgorithmPBKDF2   Algorithm = "pbkdf2-sha256"
	AlgorithmArgon2id Algorithm = "argon2id"
)

// Params tunes the KDF. Fields not used by the selected algorithm are ignored.
type Params struct {
	Algorithm Algorithm `yaml:"algorithm"`

	// scrypt cost factor; also the PBKDF2 iteration count.
	N int `yaml:"n"`
	R int `yaml:"r"`
	P int `yaml:"p"`

	ArgonTime    uint32 `yaml:"argon_time"`
	ArgonMemory  uint32 `yaml:"argon_memory_kib"`
	ArgonThreads uint8  `yaml:"argon_threads"`
}

// DefaultParams returns scrypt N=16384, r=8, p=1.
func DefaultParams() Params {
	return Params{
		Algorithm:    AlgorithmScrypt,
		N:            1 << 14,
		R:            8,
		P:            1,
		ArgonTime:    1,
		ArgonMemory:  64 * 1024,
		ArgonThreads: 4,
	}
}

// Validate checks the fields the selected algorithm uses.
func (p Params) Validate() error {
	switch Algorithm(strings.ToLower(string(p.Algorithm))) {
	case AlgorithmScrypt:
		if p.N <= 1 || p.N&(p.N-1) != 0 {
			return fmt.Errorf("%w: scrypt N must be a power of two > 1, got %d", ErrInvalidParams, p.N)
		}
		if p.R <= 0 || p.P <= 0 {
			return fmt.Errorf("%w: scrypt r and p must be positive", ErrInvalidParams)
		}
		if uint64(p.R)*uint64(p.P) >= 1<<30 {
			return fmt.Errorf("%w: scrypt r*p too large", ErrInvalidParams)
		}
	case AlgorithmPBKDF2:
		if p.N <= 0 {
			return fmt.Errorf("%w: pbkdf2 iterations must be positive", ErrInvalidParams)
		}
	case AlgorithmArgon2id:
		if p.ArgonTime == 0 || p.ArgonMemory == 0 || p.ArgonThreads == 0 {
			return fmt.Errorf("%w: argon2id time, memory and threads must be positive", ErrInvalidParams)
		}
	default:
		return fmt.Errorf("%w: unknown algorithm %q", ErrInvalidParams, p.Algorithm)
	}
	return nil
}
