package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"keyforge.dev/keyforge/ipns"
)

// FromSeed derives the ed25519 keypair for a 32-byte seed.
func FromSeed(seed []byte) (ed25519.PublicKey, ed25519.PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, nil, fmt.Errorf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return priv.Public().(ed25519.PublicKey), priv, nil
}

// NewSeed reads a fresh 32-byte seed from r (crypto/rand if nil).
func NewSeed(r io.Reader) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return seed, nil
}

// ParseSeedHex parses a 64-hex-char seed, tolerating surrounding
// whitespace and an optional 0x marker.
func ParseSeedHex(seedHex string) ([]byte, error) {
	seedHex = strings.TrimSpace(seedHex)
	seedHex = strings.TrimPrefix(seedHex, "0x")
	data, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(data) != ed25519.SeedSize {
		return nil, fmt.Errorf("expected seed length of %d bytes, got %d", ed25519.SeedSize, len(data))
	}
	return data, nil
}

// IPNSName returns the base36 IPNS address for a seed's public key.
// This is the identity string the keystore reports for stored keys.
func IPNSName(seed []byte) (string, error) {
	pub, _, err := FromSeed(seed)
	if err != nil {
		return "", err
	}
	tagged, err := ipns.BuildPublicKey(pub)
	if err != nil {
		return "", err
	}
	addrs, err := ipns.EncodeAddresses(tagged)
	if err != nil {
		return "", err
	}
	return addrs.Base36, nil
}
