package store_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"didauth/internal/domain"
	"didauth/internal/store"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon about"

func testRecord() domain.IdentityRecord {
	return domain.IdentityRecord{
		DID:        "did:key:z6MkTest",
		PublicKey:  []byte{1, 2, 3},
		CreatedUTC: 1700000000,
		Version:    1,
	}
}

func TestIdentity_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	pass := "Correct-Horse-9"

	var ids domain.IdentityStore = store.NewIdentityFileStore(home)

	if err := ids.SaveIdentity(pass, testRecord(), testMnemonic); err != nil {
		t.Fatalf("save identity: %v", err)
	}

	rec, ok, err := ids.LoadRecord()
	if err != nil || !ok {
		t.Fatalf("load record: ok=%v err=%v", ok, err)
	}
	if rec.DID != testRecord().DID || rec.Version != 1 {
		t.Fatalf("record mismatch after load: %+v", rec)
	}

	m, err := ids.LoadMnemonic(pass)
	if err != nil {
		t.Fatalf("load mnemonic: %v", err)
	}
	if m != testMnemonic {
		t.Fatal("mnemonic mismatch after load")
	}
}

func TestIdentity_WrongPassphrase_Fails(t *testing.T) {
	home := t.TempDir()
	ids := store.NewIdentityFileStore(home)

	if err := ids.SaveIdentity("correct", testRecord(), testMnemonic); err != nil {
		t.Fatalf("save identity: %v", err)
	}
	if _, err := ids.LoadMnemonic("wrong"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
}

func TestIdentity_Empty(t *testing.T) {
	ids := store.NewIdentityFileStore(filepath.Join(t.TempDir(), "missing"))

	_, ok, err := ids.LoadRecord()
	if err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}
	if _, err := ids.LoadMnemonic("x"); !errors.Is(err, store.ErrNoIdentity) {
		t.Fatalf("want ErrNoIdentity, got %v", err)
	}
}

func TestIdentity_FileModes(t *testing.T) {
	home := t.TempDir()
	ids := store.NewIdentityFileStore(home)
	if err := ids.SaveIdentity("pw", testRecord(), testMnemonic); err != nil {
		t.Fatalf("save identity: %v", err)
	}

	fi, err := os.Stat(filepath.Join(home, "mnemonic.enc"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Fatalf("mnemonic mode = %v", fi.Mode().Perm())
	}
	b, err := os.ReadFile(filepath.Join(home, "mnemonic.enc"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(b) == 0 || bytes.Contains(b, []byte("abandon")) {
		t.Fatal("mnemonic must not be stored in clear")
	}
}

func TestEnvelope_FileRoundTrip(t *testing.T) {
	env := domain.ChallengeEnvelope{
		SessionID:  "0190f1c2-0000-7000-8000-000000000001",
		DIDAddress: "did:example:abc",
		Ciphertext: []byte{9, 8, 7, 6},
		Nonce:      domain.Nonce{1, 2, 3},
		CreatedAt:  1700000000,
	}
	path := filepath.Join(t.TempDir(), "challenge.cbor")

	if err := store.WriteEnvelope(path, env); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := store.ReadEnvelope(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !got.Equal(env) {
		t.Fatalf("envelope mismatch: %+v", got)
	}
}

func TestEnvelope_RejectsGarbage(t *testing.T) {
	if _, err := store.UnmarshalEnvelope([]byte{0xff, 0x00}); err == nil {
		t.Fatal("expected decode error")
	}
	b, err := store.MarshalEnvelope(domain.ChallengeEnvelope{DIDAddress: "did:example:abc"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := store.UnmarshalEnvelope(b); !errors.Is(err, store.ErrEmptyEnvelope) {
		t.Fatalf("want ErrEmptyEnvelope, got %v", err)
	}
}
