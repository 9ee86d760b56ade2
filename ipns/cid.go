package ipns

import (
	"crypto/ed25519"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multihash"
)

// CID parses the tagged key as the CIDv1 it structurally is
// (libp2p-key codec over an identity multihash).
func (k TaggedPublicKey) CID() (cid.Cid, error) {
	c, err := cid.Cast(k)
	if err != nil {
		return cid.Undef, wrapError(KindKey, "KF-CID-001", "tagged key is not a valid cid", err)
	}
	return c, nil
}

// keyEnvelope returns the 36-byte protobuf PublicKey envelope
// (Type=Ed25519, Data=pub) that the identity multihash wraps.
func keyEnvelope(pub ed25519.PublicKey) ([]byte, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, newError(KindKey, "KF-KEY-001",
			fmt.Sprintf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub)))
	}
	env := make([]byte, 0, 4+ed25519.PublicKeySize)
	env = append(env, 0x08, 0x01, 0x12, 0x20)
	env = append(env, pub...)
	return env, nil
}

// CIDForPublicKey rebuilds the identity CID from multiformats primitives
// rather than the compiled-in tag. Its byte form always equals
// BuildPublicKey's output; tests hold the two constructions together.
func CIDForPublicKey(pub ed25519.PublicKey) (cid.Cid, error) {
	env, err := keyEnvelope(pub)
	if err != nil {
		return cid.Undef, err
	}
	sum, err := multihash.Sum(env, multihash.IDENTITY, -1)
	if err != nil {
		return cid.Undef, wrapError(KindKey, "KF-CID-002", "identity multihash failed", err)
	}
	return cid.NewCidV1(cid.Libp2pKey, sum), nil
}

// PeerID returns the base58btc libp2p peer ID for an ed25519 public key:
// the identity multihash of the key envelope, without the CID header.
func PeerID(pub ed25519.PublicKey) (string, error) {
	env, err := keyEnvelope(pub)
	if err != nil {
		return "", err
	}
	sum, err := multihash.Sum(env, multihash.IDENTITY, -1)
	if err != nil {
		return "", wrapError(KindKey, "KF-CID-002", "identity multihash failed", err)
	}
	return base58.Encode(sum), nil
}
