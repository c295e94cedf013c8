package kdf_test

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"didauth/internal/domain"
	"didauth/internal/protocol/kdf"
)

func newEngine(t *testing.T, p kdf.Params) *kdf.Engine {
	t.Helper()
	e, err := kdf.New(p)
	if err != nil {
		t.Fatalf("kdf.New: %v", err)
	}
	return e
}

func TestDeriveKey_Deterministic(t *testing.T) {
	e := newEngine(t, kdf.DefaultParams())
	salt, err := kdf.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}

	k1, err := e.DeriveKey(context.Background(), "test_password", salt)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	k2, err := e.DeriveKey(context.Background(), "test_password", salt)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if k1 != k2 {
		t.Fatal("same password and salt produced different keys")
	}
	if !kdf.IsValidKey(k1[:]) {
		t.Fatalf("key length %d", len(k1))
	}
}

// Fixed vectors pin the default parameters so keys stay reproducible
// across builds and restarts.
func TestDeriveKey_KnownAnswers(t *testing.T) {
	var salt domain.Salt
	for i := range salt {
		salt[i] = byte(i)
	}
	e := newEngine(t, kdf.DefaultParams())

	key, err := e.DeriveKey(context.Background(), "test_password", salt)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	const want = "1a4b5d72ea1edf3f7d6323595f4848f27646682e13583f10e4b8993c0d0cf5ab"
	if got := hex.EncodeToString(key[:]); got != want {
		t.Fatalf("scrypt key = %s, want %s", got, want)
	}

	key, err = e.DeriveKeyFromDID(context.Background(), "did:example:abc", salt)
	if err != nil {
		t.Fatalf("DeriveKeyFromDID: %v", err)
	}
	const wantDID = "65a2182a2ad3d86560624c4e4b2c717f8898f29a9b8a5aa33471d33af6039c15"
	if got := hex.EncodeToString(key[:]); got != wantDID {
		t.Fatalf("DID key = %s, want %s", got, wantDID)
	}

	p := kdf.DefaultParams()
	p.Algorithm = kdf.AlgorithmPBKDF2
	key, err = newEngine(t, p).DeriveKey(context.Background(), "test_password", salt)
	if err != nil {
		t.Fatalf("DeriveKey pbkdf2: %v", err)
	}
	const wantPBKDF2 = "68edb6a26b91b9bbb40e1de616709976c3e6e3bcfa3948ef857cc8b70ba5bfb3"
	if got := hex.EncodeToString(key[:]); got != wantPBKDF2 {
		t.Fatalf("pbkdf2 key = %s, want %s", got, wantPBKDF2)
	}
}

func TestDeriveKey_SaltAndPasswordMatter(t *testing.T) {
	e := newEngine(t, kdf.DefaultParams())
	s1, _ := kdf.GenerateSalt()
	s2, _ := kdf.GenerateSalt()

	a, _ := e.DeriveKey(context.Background(), "pw", s1)
	b, _ := e.DeriveKey(context.Background(), "pw", s2)
	c, _ := e.DeriveKey(context.Background(), "pw2", s1)
	if a == b || a == c {
		t.Fatal("keys should differ across salts and passwords")
	}
}

func TestDeriveKey_Algorithms(t *testing.T) {
	salt := domain.Salt{7}
	keys := map[kdf.Algorithm]domain.EncryptionKey{}
	for _, alg := range []kdf.Algorithm{kdf.AlgorithmScrypt, kdf.AlgorithmPBKDF2, kdf.AlgorithmArgon2id} {
		p := kdf.DefaultParams()
		p.Algorithm = alg
		p.ArgonMemory = 8 * 1024
		k, err := newEngine(t, p).DeriveKey(context.Background(), "pw", salt)
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		again, _ := newEngine(t, p).DeriveKey(context.Background(), "pw", salt)
		if k != again {
			t.Fatalf("%s not deterministic", alg)
		}
		keys[alg] = k
	}
	if keys[kdf.AlgorithmScrypt] == keys[kdf.AlgorithmPBKDF2] ||
		keys[kdf.AlgorithmScrypt] == keys[kdf.AlgorithmArgon2id] {
		t.Fatal("algorithms should not collide")
	}
}

func TestDeriveKeyFromDID_MatchesDIDPassword(t *testing.T) {
	e := newEngine(t, kdf.DefaultParams())
	salt := domain.Salt{1, 2, 3}
	did := domain.DID("did:example:abc")

	got, err := e.DeriveKeyFromDID(context.Background(), did, salt)
	if err != nil {
		t.Fatalf("DeriveKeyFromDID: %v", err)
	}
	want, _ := e.DeriveKey(context.Background(), kdf.DIDPassword(did), salt)
	if got != want {
		t.Fatal("DID key does not match key of DID password")
	}
	if len(kdf.DIDPassword(did)) != 64 {
		t.Fatalf("DID password should be hex sha-256, got %q", kdf.DIDPassword(did))
	}
}

func TestDeriveKey_Errors(t *testing.T) {
	e := newEngine(t, kdf.DefaultParams())

	_, err := e.DeriveKey(context.Background(), "", domain.Salt{})
	if !errors.Is(err, kdf.ErrEmptyPassword) || !errors.Is(err, domain.ErrKeyDerivation) {
		t.Fatalf("want ErrEmptyPassword, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.DeriveKey(ctx, "pw", domain.Salt{}); !errors.Is(err, domain.ErrKeyDerivation) {
		t.Fatalf("want key derivation error on canceled ctx, got %v", err)
	}

	if _, err := e.DeriveKeyFromDID(context.Background(), "", domain.Salt{}); !errors.Is(err, domain.ErrKeyDerivation) {
		t.Fatalf("want key derivation error for empty DID, got %v", err)
	}
}

func TestNew_InvalidParams(t *testing.T) {
	bad := []kdf.Params{
		{Algorithm: kdf.AlgorithmScrypt, N: 1000, R: 8, P: 1},
		{Algorithm: kdf.AlgorithmScrypt, N: 1 << 14, R: 0, P: 1},
		{Algorithm: kdf.AlgorithmPBKDF2, N: 0},
		{Algorithm: kdf.AlgorithmArgon2id},
		{Algorithm: "bcrypt", N: 1 << 14, R: 8, P: 1},
	}
	for _, p := range bad {
		if _, err := kdf.New(p); !errors.Is(err, kdf.ErrInvalidParams) {
			t.Fatalf("%+v: want ErrInvalidParams, got %v", p, err)
		}
	}
}

func TestGenerateSaltAndNonce_Fresh(t *testing.T) {
	s1, _ := kdf.GenerateSalt()
	s2, _ := kdf.GenerateSalt()
	if s1 == s2 {
		t.Fatal("salts repeated")
	}
	n1, _ := kdf.GenerateNonce()
	n2, _ := kdf.GenerateNonce()
	if n1 == n2 {
		t.Fatal("nonces repeated")
	}
	if len(s1) != 32 || len(n1) != 24 {
		t.Fatalf("unexpected sizes salt=%d nonce=%d", len(s1), len(n1))
	}
}

func TestIsValidKey(t *testing.T) {
	if kdf.IsValidKey(make([]byte, 31)) || kdf.IsValidKey(make([]byte, 33)) {
		t.Fatal("only 32-byte keys are valid")
	}
	if !kdf.IsValidKey(make([]byte, 32)) {
		t.Fatal("32-byte key should be valid")
	}
}

func TestFallbackPassword(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	a, err := kdf.FallbackPassword("device-1", now)
	if err != nil {
		t.Fatalf("FallbackPassword: %v", err)
	}
	b, _ := kdf.FallbackPassword("device-1", now)
	c, _ := kdf.FallbackPassword("device-1", now.Add(time.Millisecond))
	if a != b {
		t.Fatal("same inputs should give the same password")
	}
	if a == c {
		t.Fatal("timestamp should change the password")
	}
	if len(a) != 8 {
		t.Fatalf("want 8 hex chars, got %q", a)
	}
	if _, err := kdf.FallbackPassword("", now); !errors.Is(err, domain.ErrKeyDerivation) {
		t.Fatalf("want key derivation error, got %v", err)
	}
}
