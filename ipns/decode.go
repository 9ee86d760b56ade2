package ipns

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	base32 "github.com/multiformats/go-base32"
)

// b32ci decodes the RFC 4648 alphabet case-insensitively and encodes
// lower-case, with no padding, matching the multibase "b" rendering.
var b32ci = base32.NewEncodingCI("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

var base36Radix = big.NewInt(36)

// Decode parses an address string back into the 40-byte tagged public key.
//
// The scheme marker is optional and, like the payload, case-insensitive.
// Every base branch produces an intermediate hex string so the two
// structural invariants (80 hex chars, fixed prefix) are enforced in one
// place regardless of which base carried the payload.
func Decode(address string) (TaggedPublicKey, error) {
	s := address
	if len(s) >= len(Scheme) && strings.EqualFold(s[:len(Scheme)], Scheme) {
		s = s[len(Scheme):]
	}
	s = strings.ToLower(s)
	if s == "" {
		return nil, newError(KindFormat, "KF-DEC-001", "empty address")
	}

	var payload string
	switch s[0] {
	case 'k':
		h, err := base36ToHex(s[1:])
		if err != nil {
			return nil, err
		}
		payload = h
	case 'b':
		raw, err := b32ci.DecodeString(s[1:])
		if err != nil {
			return nil, wrapError(KindFormat, "KF-DEC-102", "invalid base32 payload", err)
		}
		payload = hex.EncodeToString(raw)
	case 'f':
		payload = s[1:]
	default:
		return nil, newError(KindFormat, "KF-DEC-101",
			fmt.Sprintf("unsupported multibase indicator %q", s[0]))
	}

	if len(payload) != 2*TaggedPublicKeySize || !strings.HasPrefix(payload, publicKeyTagHex) {
		return nil, newError(KindPrefix, "KF-DEC-301",
			fmt.Sprintf("not a tagged ed25519 key: %s", payload))
	}
	raw, err := hex.DecodeString(payload)
	if err != nil {
		return nil, wrapError(KindPrefix, "KF-DEC-302", "invalid hex payload", err)
	}
	return TaggedPublicKey(raw), nil
}

// base36ToHex accumulates base-36 digits into a 320-bit integer and
// renders it as hex, left-padded to 80 nibbles. Padding is required
// because leading zero bytes are not recoverable from the integer form.
func base36ToHex(digits string) (string, error) {
	v := new(big.Int)
	d := new(big.Int)
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		switch {
		case c >= '0' && c <= '9':
			d.SetInt64(int64(c - '0'))
		case c >= 'a' && c <= 'z':
			d.SetInt64(int64(c-'a') + 10)
		default:
			return "", newError(KindDigit, "KF-DEC-201",
				fmt.Sprintf("invalid base36 digit %q at offset %d", c, i))
		}
		v.Mul(v, base36Radix)
		v.Add(v, d)
	}
	return fmt.Sprintf("%080x", v), nil
}
