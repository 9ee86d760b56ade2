package hdkey

import (
	"encoding/hex"
	"testing"
)

// SLIP-0010 ed25519 test vector 1.
func TestSlip10Vector1(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	if err != nil {
		t.Fatalf("decode seed: %v", err)
	}

	master, err := NewMaster(seed)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}
	checkKey(t, master,
		"2b4be7f19ee27bbf30c667b642d5f4aa69fd169872f8fc3059c08ebae2eb19e7",
		"90046a93de5380a72b5e45010748567d5ea02bbf6522f979e05c0d8d8ca9fffb",
		"00a4b2856bfec510abab89753fac1ac0e1112364e7d250545963f135f2a33188ed")

	child := master.Child(0)
	checkKey(t, child,
		"68e0fe46dfb67e368c75379acec591dad19df3cde26e63b93a8e704f1dade7a3",
		"8b59aa11380b624e81507a27fedda59fea6d0b779a778918a2fd3590e16e9c69",
		"008c8a13df77a28f3445213a0f432fde644acaa215fc72dcdf300d5efaa85d350c")

	viaPath, err := DerivePath(seed, "m/0'/1'")
	if err != nil {
		t.Fatalf("DerivePath: %v", err)
	}
	checkKey(t, viaPath,
		"b1d0bad404bf35da785a64ca1ac54b2617211d2777696fbffaf208f746ae84f2",
		"a320425f77d1b5c2505a6b1b27382b37368ee640e3557c315416801243552f14",
		"001932a5270f335bed617d5b935c80aedb1a35bd9fc1e31acafd5372c30f5c1187")
}

func checkKey(t *testing.T, k Key, wantKey, wantChain, wantPub string) {
	t.Helper()
	if got := hex.EncodeToString(k.Seed()); got != wantKey {
		t.Fatalf("key mismatch: got %s want %s", got, wantKey)
	}
	if got := hex.EncodeToString(k.ChainCode()); got != wantChain {
		t.Fatalf("chain code mismatch: got %s want %s", got, wantChain)
	}
	if got := hex.EncodeToString(k.PublicKey()); got != wantPub {
		t.Fatalf("public key mismatch: got %s want %s", got, wantPub)
	}
}

func TestHardenedMarkerVariants(t *testing.T) {
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	a, err := DerivePath(seed, "m/44'/0'")
	if err != nil {
		t.Fatalf("DerivePath('): %v", err)
	}
	b, err := DerivePath(seed, "m/44h/0h")
	if err != nil {
		t.Fatalf("DerivePath(h): %v", err)
	}
	if hex.EncodeToString(a.Seed()) != hex.EncodeToString(b.Seed()) {
		t.Fatalf("apostrophe and h markers derived different keys")
	}
}

func TestParsePathRejections(t *testing.T) {
	cases := []string{
		"44'/0'",        // missing m
		"m//0'",         // empty segment
		"m/0",           // non-hardened
		"m/x'",          // non-numeric
		"m/0'/1",        // non-hardened tail
		"m/2147483648'", // index out of range
	}
	for _, path := range cases {
		if _, err := ParsePath(path); err == nil {
			t.Fatalf("expected error for path %q", path)
		}
	}
}

func TestChildForcesHardened(t *testing.T) {
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	master, err := NewMaster(seed)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}
	plain := master.Child(7)
	marked := master.Child(7 | Hardened)
	if hex.EncodeToString(plain.Seed()) != hex.EncodeToString(marked.Seed()) {
		t.Fatalf("hardened offset not applied unconditionally")
	}
}
