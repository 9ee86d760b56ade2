package keys

import (
	"crypto/ed25519"
	"encoding/hex"
	"strings"
	"testing"
)

func TestFromSeedKnownVector(t *testing.T) {
	seed, err := ParseSeedHex("0681d6420abb1ba47acd5c03c8e5ee84185a2673576b262e234e50c46d86f597")
	if err != nil {
		t.Fatalf("ParseSeedHex: %v", err)
	}
	pub, priv, err := FromSeed(seed)
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	wantPub := "12c8299ec2c51dffbbcb4f9fccadcee1424cb237e9b30d3cd72d47c18103689d"
	if got := hex.EncodeToString(pub); got != wantPub {
		t.Fatalf("public key mismatch: got %s want %s", got, wantPub)
	}
	if len(priv) != ed25519.PrivateKeySize {
		t.Fatalf("private key length %d", len(priv))
	}
}

func TestFromSeedRejectsBadLength(t *testing.T) {
	if _, _, err := FromSeed(make([]byte, 31)); err == nil {
		t.Fatalf("expected error for short seed")
	}
}

func TestParseSeedHex(t *testing.T) {
	want := strings.Repeat("ab", 32)
	for _, in := range []string{want, "0x" + want, "  " + want + "\n"} {
		seed, err := ParseSeedHex(in)
		if err != nil {
			t.Fatalf("ParseSeedHex(%q): %v", in, err)
		}
		if hex.EncodeToString(seed) != want {
			t.Fatalf("seed mismatch for %q", in)
		}
	}
	for _, in := range []string{"", "zz", want[:62], want + "ff"} {
		if _, err := ParseSeedHex(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestIPNSNameForm(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	name, err := IPNSName(seed)
	if err != nil {
		t.Fatalf("IPNSName: %v", err)
	}
	if !strings.HasPrefix(name, "ipns://k") {
		t.Fatalf("unexpected name form: %s", name)
	}
}

func TestNewSeedDeterministicReader(t *testing.T) {
	r := strings.NewReader(strings.Repeat("x", 32))
	seed, err := NewSeed(r)
	if err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	if len(seed) != ed25519.SeedSize {
		t.Fatalf("seed length %d", len(seed))
	}
	if _, err := NewSeed(strings.NewReader("short")); err == nil {
		t.Fatalf("expected error for exhausted reader")
	}
}
