// Package ipns implements the IPNS identity codec for ed25519 public keys.
//
// A raw 32-byte public key is tagged with the fixed libp2p-key prefix and
// rendered into three multibase address forms (base36 "k", base32 "b",
// hex "f"). Decoding is the exact inverse and validates the fixed prefix
// and total length before returning the tagged key. All operations are
// pure transformations over immutable byte slices; nothing is persisted.
package ipns

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-varint"
)

const (
	// Scheme is the address scheme marker. Optional on decode.
	Scheme = "ipns://"

	// TaggedPublicKeySize is the fixed length of a tagged public key:
	// 8 prefix bytes plus the 32-byte ed25519 public key.
	TaggedPublicKeySize = 40

	// TaggedPrivateKeySize is the fixed length of a tagged private key:
	// 4 prefix bytes plus the 32-byte seed and 32-byte public key.
	TaggedPrivateKeySize = 68
)

// publicKeyTag is the CIDv1 header for an ed25519 libp2p key: version 1,
// libp2p-key codec, identity multihash of the 36-byte protobuf PublicKey
// envelope (Type=Ed25519, Data=32 bytes).
var publicKeyTag = []byte{0x01, 0x72, 0x00, 0x24, 0x08, 0x01, 0x12, 0x20}

// publicKeyTagHex is the prefix every decoded payload is validated against.
const publicKeyTagHex = "0172002408011220"

// privateKeyTag is the protobuf PrivateKey envelope header
// (Type=Ed25519, Data=64 bytes: seed || public key).
var privateKeyTag = []byte{0x08, 0x01, 0x12, 0x40}

// contenthashNamespace is the uvarint form of the ipns-ns codec (0xe5).
var contenthashNamespace = varint.ToUvarint(0xe5)

// TaggedPublicKey is the canonical 40-byte binary identity form. All
// textual addresses are deterministic encodings of this value.
type TaggedPublicKey []byte

// Hex returns the 80-char lower-case hex rendering without any marker.
func (k TaggedPublicKey) Hex() string {
	return hex.EncodeToString(k)
}

// PublicKey returns the raw ed25519 public key carried after the tag.
func (k TaggedPublicKey) PublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(k[len(publicKeyTag):])
}

// TaggedPrivateKey is the 68-byte private-key export form. It is never
// round-tripped through Decode.
type TaggedPrivateKey []byte

// Hex returns the 136-char lower-case hex rendering without any marker.
func (k TaggedPrivateKey) Hex() string {
	return hex.EncodeToString(k)
}

// BuildPublicKey tags a raw ed25519 public key with the fixed protocol
// prefix, producing the canonical 40-byte identity.
func BuildPublicKey(pub ed25519.PublicKey) (TaggedPublicKey, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, newError(KindKey, "KF-KEY-001",
			fmt.Sprintf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub)))
	}
	tagged := make([]byte, 0, TaggedPublicKeySize)
	tagged = append(tagged, publicKeyTag...)
	tagged = append(tagged, pub...)
	return TaggedPublicKey(tagged), nil
}

// BuildPrivateKey tags seed and public key with the private-key envelope
// header. The result is export-only; Decode does not accept it.
func BuildPrivateKey(seed []byte, pub ed25519.PublicKey) (TaggedPrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, newError(KindSeed, "KF-SEED-001",
			fmt.Sprintf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed)))
	}
	if len(pub) != ed25519.PublicKeySize {
		return nil, newError(KindKey, "KF-KEY-001",
			fmt.Sprintf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub)))
	}
	tagged := make([]byte, 0, TaggedPrivateKeySize)
	tagged = append(tagged, privateKeyTag...)
	tagged = append(tagged, seed...)
	tagged = append(tagged, pub...)
	return TaggedPrivateKey(tagged), nil
}

// Addresses holds the three textual renderings of one tagged key, each
// carrying the scheme marker and its multibase indicator character.
type Addresses struct {
	Base36 string
	Base32 string
	Base16 string
}

// EncodeAddresses renders a tagged key into its three address forms.
// All three decode back to the identical 40 bytes.
func EncodeAddresses(tagged TaggedPublicKey) (Addresses, error) {
	if len(tagged) != TaggedPublicKeySize {
		return Addresses{}, newError(KindKey, "KF-KEY-002",
			fmt.Sprintf("tagged key must be %d bytes, got %d", TaggedPublicKeySize, len(tagged)))
	}
	b36, err := multibase.Encode(multibase.Base36, tagged)
	if err != nil {
		return Addresses{}, wrapError(KindKey, "KF-ENC-001", "base36 encoding failed", err)
	}
	b32, err := multibase.Encode(multibase.Base32, tagged)
	if err != nil {
		return Addresses{}, wrapError(KindKey, "KF-ENC-002", "base32 encoding failed", err)
	}
	b16, err := multibase.Encode(multibase.Base16, tagged)
	if err != nil {
		return Addresses{}, wrapError(KindKey, "KF-ENC-003", "base16 encoding failed", err)
	}
	return Addresses{
		Base36: Scheme + b36,
		Base32: Scheme + b32,
		Base16: Scheme + b16,
	}, nil
}

// ContentHash returns the DNS contenthash rendering of a tagged key: the
// ipns-ns namespace varint followed by the key bytes, hex with 0x marker.
// The input is assumed to have passed construction or Decode validation.
func ContentHash(tagged TaggedPublicKey) string {
	return "0x" + hex.EncodeToString(contenthashNamespace) + tagged.Hex()
}

// KeyBundle is the full output record for one identity: both hex key
// exports, the three addresses, and the contenthash.
type KeyBundle struct {
	PublicKey   string `json:"publicKey"`
	PrivateKey  string `json:"privateKey"`
	Base36      string `json:"base36"`
	Base32      string `json:"base32"`
	Base16      string `json:"base16"`
	ContentHash string `json:"contenthash"`
}

// Bundle assembles the KeyBundle for a seed and its derived public key.
// It does not derive the public key itself; key material comes from the
// caller (see the keys package).
func Bundle(seed []byte, pub ed25519.PublicKey) (KeyBundle, error) {
	tagged, err := BuildPublicKey(pub)
	if err != nil {
		return KeyBundle{}, err
	}
	taggedPriv, err := BuildPrivateKey(seed, pub)
	if err != nil {
		return KeyBundle{}, err
	}
	addrs, err := EncodeAddresses(tagged)
	if err != nil {
		return KeyBundle{}, err
	}
	return KeyBundle{
		PublicKey:   "0x" + tagged.Hex(),
		PrivateKey:  "0x" + taggedPriv.Hex(),
		Base36:      addrs.Base36,
		Base32:      addrs.Base32,
		Base16:      addrs.Base16,
		ContentHash: ContentHash(tagged),
	}, nil
}
