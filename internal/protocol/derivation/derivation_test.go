package derivation_test

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"golang.org/x/crypto/blake2b"

	"didauth/internal/domain"
	"didauth/internal/protocol/derivation"
)

func TestParse_HardJunction(t *testing.T) {
	p := derivation.Parse("//Alice")
	if len(p) != 1 {
		t.Fatalf("want 1 junction, got %d", len(p))
	}
	if p[0].Kind != domain.JunctionHard {
		t.Fatalf("want hard junction, got %s", p[0].Kind)
	}
	want := derivation.NormalizeChainCode(derivation.SerializeValue("Alice"))
	if !bytes.Equal(p[0].ChainCode(), want) {
		t.Fatalf("chain code mismatch: %x != %x", p[0].ChainCode(), want)
	}
	if !bytes.Equal(want[:5], []byte("Alice")) {
		t.Fatalf("text should be stored as utf-8, got %x", want[:5])
	}
}

func TestParse_IntegerJunction(t *testing.T) {
	p := derivation.Parse("//5")
	if len(p) != 1 {
		t.Fatalf("want 1 junction, got %d", len(p))
	}
	want := make([]byte, domain.ChainCodeSize)
	binary.LittleEndian.PutUint64(want, 5)
	if !bytes.Equal(p[0].ChainCode(), want) {
		t.Fatalf("got %x, want %x", p[0].ChainCode(), want)
	}
}

func TestSerializeValue_Uint64Range(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0000000000000000"},
		{"9223372036854775807", "ffffffffffffff7f"},
		{"9223372036854775808", "0000000000000080"},
		{"18446744073709551615", "ffffffffffffffff"},
	}
	for _, c := range cases {
		if got := hex.EncodeToString(derivation.SerializeValue(c.in)); got != c.want {
			t.Fatalf("SerializeValue(%q) = %s, want %s", c.in, got, c.want)
		}
	}

	// One past MaxUint64 is not an integer; its 20 digits decode as hex.
	if got := derivation.SerializeValue("18446744073709551616"); len(got) != 10 {
		t.Fatalf("overflowing integer: got %d bytes, want 10", len(got))
	}
}

func TestSerializeValue_SignedIsText(t *testing.T) {
	for _, in := range []string{"-5", "+5", "-1"} {
		if got := derivation.SerializeValue(in); !bytes.Equal(got, []byte(in)) {
			t.Fatalf("SerializeValue(%q) = %x, want utf-8 text", in, got)
		}
	}
}

func TestParse_AllKinds(t *testing.T) {
	p := derivation.Parse("//hard/soft///secret/..")
	kinds := []domain.JunctionKind{
		domain.JunctionHard,
		domain.JunctionSoft,
		domain.JunctionPassword,
		domain.JunctionParent,
	}
	if len(p) != len(kinds) {
		t.Fatalf("want %d junctions, got %d", len(kinds), len(p))
	}
	for i, k := range kinds {
		if p[i].Kind != k {
			t.Fatalf("junction %d: want %s, got %s", i, k, p[i].Kind)
		}
	}
	if len(p[3].ChainCode()) != 0 {
		t.Fatalf("parent junction must carry no chain code")
	}
	for _, j := range p[:3] {
		if len(j.ChainCode()) != domain.ChainCodeSize {
			t.Fatalf("%s junction: chain code length %d", j.Kind, len(j.ChainCode()))
		}
	}
}

func TestParse_HexJunction(t *testing.T) {
	p := derivation.Parse("//0xdeadbeef")
	if len(p) != 1 {
		t.Fatalf("want 1 junction, got %d", len(p))
	}
	want := make([]byte, domain.ChainCodeSize)
	copy(want, []byte{0xde, 0xad, 0xbe, 0xef})
	if !bytes.Equal(p[0].ChainCode(), want) {
		t.Fatalf("got %x, want %x", p[0].ChainCode(), want)
	}
}

func TestParse_DropsUnparsedSuffix(t *testing.T) {
	p, rest := derivation.ParseWithRemainder("//a/b!x~y")
	if len(p) != 2 {
		t.Fatalf("want 2 junctions, got %d", len(p))
	}
	if rest != "" {
		t.Fatalf("text runs to the next slash, want empty remainder, got %q", rest)
	}

	p, rest = derivation.ParseWithRemainder("//a/..tail")
	if len(p) != 2 || p[1].Kind != domain.JunctionParent {
		t.Fatalf("unexpected path %v", p)
	}
	if rest != "tail" {
		t.Fatalf("want remainder %q, got %q", "tail", rest)
	}
}

func TestParse_MalformedYieldsNoPath(t *testing.T) {
	for _, in := range []string{"", "Alice", "no/slash/first", "//", "////x"} {
		if p := derivation.Parse(in); len(p) != 0 {
			t.Fatalf("Parse(%q): want no junctions, got %d", in, len(p))
		}
	}
}

func TestNormalizeChainCode_Boundaries(t *testing.T) {
	short := bytes.Repeat([]byte{0x01}, 10)
	got := derivation.NormalizeChainCode(short)
	if len(got) != 32 || !bytes.Equal(got[:10], short) || !bytes.Equal(got[10:], make([]byte, 22)) {
		t.Fatalf("10-byte input not zero-padded: %x", got)
	}

	exact := bytes.Repeat([]byte{0x02}, 32)
	if got := derivation.NormalizeChainCode(exact); !bytes.Equal(got, exact) {
		t.Fatalf("32-byte input changed: %x", got)
	}

	long := bytes.Repeat([]byte{0x03}, 40)
	sum := blake2b.Sum256(long)
	if got := derivation.NormalizeChainCode(long); !bytes.Equal(got, sum[:]) {
		t.Fatalf("40-byte input not hashed: %x", got)
	}
}

func TestIsValidSubstratePath_Depth(t *testing.T) {
	if !derivation.IsValidSubstratePath("//a//b//c//d//e") {
		t.Fatal("depth 5 should be valid")
	}
	if derivation.IsValidSubstratePath("//a//b//c//d//e//f") {
		t.Fatal("depth 6 should be invalid")
	}
	if !derivation.IsValidSubstratePath("//authentication/0") {
		t.Fatal("short path should be valid")
	}
}

func TestIsValidSubstratePath_Rejects(t *testing.T) {
	for _, in := range []string{"", "Alice", "//al-ice", "//a/..", "//a b"} {
		if derivation.IsValidSubstratePath(in) {
			t.Fatalf("%q should be invalid", in)
		}
	}
}

func TestString_RoundTrip(t *testing.T) {
	for _, in := range []string{"//Alice", "//hard/soft///pw", "/0/1//2", "//a/.."} {
		p := derivation.Parse(in)
		if got := derivation.String(p); got != in {
			t.Fatalf("String(Parse(%q)) = %q", in, got)
		}
		if !derivation.Parse(derivation.String(p)).Equal(p) {
			t.Fatalf("re-parse of %q differs", in)
		}
	}
}
