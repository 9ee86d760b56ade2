// Package hdkey implements SLIP-0010 hierarchical key derivation for the
// ed25519 curve. Only hardened derivation exists for this curve, so every
// path segment must carry the hardened marker.
package hdkey

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Hardened is the index offset marking hardened derivation.
const Hardened uint32 = 0x80000000

// masterHMACKey is the SLIP-0010 curve constant for ed25519.
var masterHMACKey = []byte("ed25519 seed")

// Key is one node of the derivation tree: a 32-byte private key (usable
// as an ed25519 seed) and its 32-byte chain code.
type Key struct {
	key       []byte
	chainCode []byte
}

func hmacSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// NewMaster derives the master key from a seed per SLIP-0010.
func NewMaster(seed []byte) (Key, error) {
	if len(seed) == 0 {
		return Key{}, errors.New("empty seed")
	}
	sum := hmacSHA512(masterHMACKey, seed)
	return Key{key: sum[:32], chainCode: sum[32:]}, nil
}

// Child derives the hardened child at index. The hardened offset is
// applied unconditionally since ed25519 has no normal derivation.
func (k Key) Child(index uint32) Key {
	index |= Hardened
	data := make([]byte, 0, 1+32+4)
	data = append(data, 0x00)
	data = append(data, k.key...)
	data = binary.BigEndian.AppendUint32(data, index)
	sum := hmacSHA512(k.chainCode, data)
	return Key{key: sum[:32], chainCode: sum[32:]}
}

// Seed returns a copy of the 32-byte private key, suitable as an ed25519 seed.
func (k Key) Seed() []byte {
	out := make([]byte, len(k.key))
	copy(out, k.key)
	return out
}

// ChainCode returns a copy of the 32-byte chain code.
func (k Key) ChainCode() []byte {
	out := make([]byte, len(k.chainCode))
	copy(out, k.chainCode)
	return out
}

// PublicKey returns the 0x00-prefixed public key, the 33-byte form the
// SLIP-0010 test vectors use for this curve.
func (k Key) PublicKey() []byte {
	priv := ed25519.NewKeyFromSeed(k.key)
	pub := priv.Public().(ed25519.PublicKey)
	out := make([]byte, 0, 1+ed25519.PublicKeySize)
	out = append(out, 0x00)
	out = append(out, pub...)
	return out
}

// ParsePath parses a derivation path like "m/44'/138'/0'" into indexes
// (without the hardened bit; Child applies it). A trailing apostrophe or
// "h" marks hardening; unmarked segments are rejected for this curve.
func ParsePath(path string) ([]uint32, error) {
	segments := strings.Split(path, "/")
	if len(segments) == 0 || segments[0] != "m" {
		return nil, fmt.Errorf("path must start with \"m\": %q", path)
	}
	indexes := make([]uint32, 0, len(segments)-1)
	for _, seg := range segments[1:] {
		if seg == "" {
			return nil, fmt.Errorf("empty segment in path %q", path)
		}
		hardened := false
		switch seg[len(seg)-1] {
		case '\'', 'h', 'H':
			hardened = true
			seg = seg[:len(seg)-1]
		}
		if !hardened {
			return nil, fmt.Errorf("ed25519 supports hardened derivation only, segment %q in %q", seg, path)
		}
		n, err := strconv.ParseUint(seg, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment %q: %w", seg, err)
		}
		if n >= uint64(Hardened) {
			return nil, fmt.Errorf("path index %d out of range", n)
		}
		indexes = append(indexes, uint32(n))
	}
	return indexes, nil
}

// DerivePath derives the key at path from a master seed.
func DerivePath(seed []byte, path string) (Key, error) {
	indexes, err := ParsePath(path)
	if err != nil {
		return Key{}, err
	}
	k, err := NewMaster(seed)
	if err != nil {
		return Key{}, err
	}
	for _, index := range indexes {
		k = k.Child(index)
	}
	return k, nil
}
