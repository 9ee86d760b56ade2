// Package onion derives Tor v3 onion-service hostnames from ed25519
// public keys (rend-spec-v3 §6).
package onion

import (
	"crypto/ed25519"
	"fmt"

	base32 "github.com/multiformats/go-base32"
	"golang.org/x/crypto/sha3"
)

const version = 0x03

var checksumPrefix = []byte(".onion checksum")

// b32lc encodes the RFC 4648 alphabet lower-case with no padding and
// decodes case-insensitively, matching onion hostname conventions.
var b32lc = base32.NewEncodingCI("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Address returns the 62-char v3 hostname:
// base32(pubkey || checksum[:2] || version) + ".onion".
func Address(pub ed25519.PublicKey) (string, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
	h := sha3.New256()
	h.Write(checksumPrefix)
	h.Write(pub)
	h.Write([]byte{version})
	sum := h.Sum(nil)

	host := make([]byte, 0, ed25519.PublicKeySize+3)
	host = append(host, pub...)
	host = append(host, sum[:2]...)
	host = append(host, version)
	return b32lc.EncodeToString(host) + ".onion", nil
}

// ParseAddress extracts the public key from a v3 hostname, verifying the
// embedded checksum and version byte.
func ParseAddress(addr string) (ed25519.PublicKey, error) {
	const suffix = ".onion"
	if len(addr) > len(suffix) && addr[len(addr)-len(suffix):] == suffix {
		addr = addr[:len(addr)-len(suffix)]
	}
	raw, err := b32lc.DecodeString(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid onion address: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize+3 {
		return nil, fmt.Errorf("invalid onion address length: %d", len(raw))
	}
	if raw[34] != version {
		return nil, fmt.Errorf("unsupported onion address version: %d", raw[34])
	}
	pub := ed25519.PublicKey(raw[:ed25519.PublicKeySize])
	h := sha3.New256()
	h.Write(checksumPrefix)
	h.Write(pub)
	h.Write([]byte{version})
	sum := h.Sum(nil)
	if raw[32] != sum[0] || raw[33] != sum[1] {
		return nil, fmt.Errorf("onion address checksum mismatch")
	}
	return pub, nil
}
