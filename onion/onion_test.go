package onion

import (
	"bytes"
	"crypto/ed25519"
	"strings"
	"testing"
)

func testPub(fill byte) ed25519.PublicKey {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = fill
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return priv.Public().(ed25519.PublicKey)
}

func TestAddressForm(t *testing.T) {
	addr, err := Address(testPub(0x01))
	if err != nil {
		t.Fatalf("Address: %v", err)
	}
	if !strings.HasSuffix(addr, ".onion") {
		t.Fatalf("missing suffix: %s", addr)
	}
	if len(addr) != 56+len(".onion") {
		t.Fatalf("unexpected length %d: %s", len(addr), addr)
	}
	if addr != strings.ToLower(addr) {
		t.Fatalf("address not lower-case: %s", addr)
	}

	// Deterministic.
	again, err := Address(testPub(0x01))
	if err != nil {
		t.Fatalf("Address: %v", err)
	}
	if again != addr {
		t.Fatalf("address not deterministic")
	}
}

func TestAddressRoundTrip(t *testing.T) {
	pub := testPub(0x5a)
	addr, err := Address(pub)
	if err != nil {
		t.Fatalf("Address: %v", err)
	}
	got, err := ParseAddress(addr)
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	if !bytes.Equal(got, pub) {
		t.Fatalf("round trip mismatch")
	}

	// Hostnames decode case-insensitively.
	upper, err := ParseAddress(strings.ToUpper(strings.TrimSuffix(addr, ".onion")) + ".onion")
	if err != nil {
		t.Fatalf("ParseAddress(upper): %v", err)
	}
	if !bytes.Equal(upper, pub) {
		t.Fatalf("upper-case round trip mismatch")
	}
}

func TestParseAddressRejections(t *testing.T) {
	pub := testPub(0x77)
	addr, err := Address(pub)
	if err != nil {
		t.Fatalf("Address: %v", err)
	}

	// Flip one payload character to break the checksum.
	host := strings.TrimSuffix(addr, ".onion")
	var corrupted string
	if host[0] != 'a' {
		corrupted = "a" + host[1:]
	} else {
		corrupted = "b" + host[1:]
	}
	if _, err := ParseAddress(corrupted + ".onion"); err == nil {
		t.Fatalf("expected error for corrupted address")
	}

	if _, err := ParseAddress("tooshort.onion"); err == nil {
		t.Fatalf("expected error for short address")
	}
	if _, err := ParseAddress("!!!.onion"); err == nil {
		t.Fatalf("expected error for invalid base32")
	}
	if _, err := Address(make([]byte, 31)); err == nil {
		t.Fatalf("expected error for short public key")
	}
}
