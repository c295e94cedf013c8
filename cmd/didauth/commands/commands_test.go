package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"didauth/internal/relay"
)

const testPass = "Str0ng-Passphrase!"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRoot()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func didFrom(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "DID:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	t.Fatalf("no DID in output:\n%s", out)
	return ""
}

func TestCLI_InitStartVerify(t *testing.T) {
	t.Setenv("DIDAUTH_RELAY_URL", "")
	home := t.TempDir()
	bundle := filepath.Join(t.TempDir(), "challenge.cbor")

	out := mustRun(t, "--home", home, "-p", testPass, "init")
	did := didFrom(t, out)
	if !strings.HasPrefix(did, "did:key:z6Mk") {
		t.Fatalf("DID = %q", did)
	}

	if got := didFrom(t, mustRun(t, "--home", home, "did")); got != did {
		t.Fatalf("did command = %q, want %q", got, did)
	}

	out = mustRun(t, "--home", home, "start", "hello-server-123", "--out", bundle, "--self-check")
	if !strings.Contains(out, "Self-check: hello-server-123 (verified)") {
		t.Fatalf("self-check missing:\n%s", out)
	}

	out = mustRun(t, "--home", t.TempDir(), "verify", "--in", bundle, "--expect", "hello-server-123")
	if !strings.Contains(out, "hello-server-123") {
		t.Fatalf("verify output:\n%s", out)
	}
	if _, err := run(t, "--home", t.TempDir(), "verify", "--in", bundle, "--expect", "other"); err == nil {
		t.Fatal("verify with wrong expectation should fail")
	}
}

func TestCLI_PathAndDerive(t *testing.T) {
	home := t.TempDir()

	out := mustRun(t, "--home", home, "path", "//Alice//5/soft///pw")
	if !strings.Contains(out, "valid: true") || !strings.Contains(out, "canonical: //Alice//5/soft///pw") {
		t.Fatalf("path output:\n%s", out)
	}
	out = mustRun(t, "--home", home, "path", "//a//b//c//d//e//f")
	if !strings.Contains(out, "valid: false") {
		t.Fatalf("six junctions must be invalid:\n%s", out)
	}

	mustRun(t, "--home", home, "-p", testPass, "import",
		"abandon", "abandon", "abandon", "abandon", "abandon", "abandon",
		"abandon", "abandon", "abandon", "abandon", "abandon", "about")
	a := mustRun(t, "--home", home, "-p", testPass, "derive", "//authentication")
	b := mustRun(t, "--home", home, "-p", testPass, "derive", "//authentication")
	if a != b || !strings.Contains(a, "did:key:    did:key:z6Mk") {
		t.Fatalf("derive output:\n%s\n%s", a, b)
	}
	if _, err := run(t, "--home", home, "-p", testPass, "derive", "//bad-path"); err == nil {
		t.Fatal("invalid path should fail")
	}
}

func TestCLI_RequiresPassphrase(t *testing.T) {
	if _, err := run(t, "--home", t.TempDir(), "init"); err == nil {
		t.Fatal("init without passphrase should fail")
	}
}

func TestCLI_RelayRoundTrip(t *testing.T) {
	srv := httptest.NewServer(relay.NewServer(zerolog.Nop(), prometheus.NewRegistry()).Handler())
	defer srv.Close()

	prover := t.TempDir()
	did := didFrom(t, mustRun(t, "--home", prover, "-p", testPass, "init"))

	mustRun(t, "--home", prover, "--relay", srv.URL, "start", "nonce-42", "--send")

	verifier := t.TempDir()
	out := mustRun(t, "--home", verifier, "--relay", srv.URL, "recv", "--did", did, "--expect", "nonce-42")
	if !strings.Contains(out, "nonce-42") || strings.Contains(out, "FAILED") {
		t.Fatalf("recv output:\n%s", out)
	}

	out = mustRun(t, "--home", verifier, "--relay", srv.URL, "recv", "--did", did)
	if strings.TrimSpace(out) != "" {
		t.Fatalf("queue should be empty after ack:\n%s", out)
	}
}
