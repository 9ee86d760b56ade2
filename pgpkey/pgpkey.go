// Package pgpkey renders seed-derived key material as OpenPGP armored
// certificates. Key generation is deterministic: the primary EdDSA key is
// generated from the seed itself and the encryption subkey from a fixed
// expansion of it, so a seed and creation time always yield the same key.
package pgpkey

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"golang.org/x/crypto/sha3"
)

var subkeyExpansion = []byte("keyforge pgp subkey v1")

// Armored holds both armored blocks for one entity.
type Armored struct {
	PublicKey  string
	PrivateKey string
}

// entropy returns the deterministic random stream for entity generation:
// the seed itself first (consumed by primary-key generation), then an
// unbounded SHAKE-256 expansion for the subkey.
func entropy(seed []byte) io.Reader {
	shake := sha3.NewShake256()
	shake.Write(seed)
	shake.Write(subkeyExpansion)
	return io.MultiReader(bytes.NewReader(seed), shake)
}

// Export builds the armored public certificate and secret key for a seed.
// name must be non-empty; email may be empty. created fixes all packet
// timestamps, keeping the export reproducible.
func Export(seed []byte, name, email string, created time.Time) (Armored, error) {
	if len(seed) != ed25519.SeedSize {
		return Armored{}, fmt.Errorf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	if name == "" {
		return Armored{}, errors.New("name cannot be empty")
	}

	cfg := &packet.Config{
		Algorithm: packet.PubKeyAlgoEdDSA,
		Rand:      entropy(seed),
		Time:      func() time.Time { return created },
	}
	entity, err := openpgp.NewEntity(name, "", email, cfg)
	if err != nil {
		return Armored{}, fmt.Errorf("build entity: %w", err)
	}

	sigCfg := &packet.Config{Time: func() time.Time { return created }}
	priv, err := armored(openpgp.PrivateKeyType, func(w io.Writer) error {
		return entity.SerializePrivate(w, sigCfg)
	})
	if err != nil {
		return Armored{}, fmt.Errorf("serialize private key: %w", err)
	}
	pub, err := armored(openpgp.PublicKeyType, entity.Serialize)
	if err != nil {
		return Armored{}, fmt.Errorf("serialize public key: %w", err)
	}
	return Armored{PublicKey: pub, PrivateKey: priv}, nil
}

func armored(blockType string, write func(io.Writer) error) (string, error) {
	var buf bytes.Buffer
	w, err := armor.Encode(&buf, blockType, nil)
	if err != nil {
		return "", err
	}
	if err := write(w); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}
