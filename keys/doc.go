// Package keys provides the ed25519 key-material primitive the exporters
// share: seed parsing, seed-to-keypair derivation, and a small
// filesystem-backed keystore.
//
// Stable:
//   - Pure, deterministic primitives (FromSeed, ParseSeedHex, IPNSName).
//
// Experimental:
//   - Filesystem-backed key storage (KeyStore and related functions).
//     These are local-first utilities, not part of any protocol contract.
package keys
