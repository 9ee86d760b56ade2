// vectorgen prints the conformance vectors the package tests assert
// against. Rerun it after any codec change to refresh expected values.
package main

import (
	"encoding/hex"
	"fmt"

	"keyforge.dev/keyforge/hdkey"
	"keyforge.dev/keyforge/ipns"
	"keyforge.dev/keyforge/keys"
	"keyforge.dev/keyforge/onion"
)

func mustSeed(seedHex string) []byte {
	seed, err := keys.ParseSeedHex(seedHex)
	if err != nil {
		panic(err)
	}
	return seed
}

func printBundle(label string, seed []byte) {
	pub, _, err := keys.FromSeed(seed)
	if err != nil {
		panic(err)
	}
	bundle, err := ipns.Bundle(seed, pub)
	if err != nil {
		panic(err)
	}
	peerID, err := ipns.PeerID(pub)
	if err != nil {
		panic(err)
	}
	onionAddr, err := onion.Address(pub)
	if err != nil {
		panic(err)
	}

	fmt.Printf("# %s\n", label)
	fmt.Printf("seed:        %s\n", hex.EncodeToString(seed))
	fmt.Printf("publicKey:   %s\n", bundle.PublicKey)
	fmt.Printf("privateKey:  %s\n", bundle.PrivateKey)
	fmt.Printf("base36:      %s\n", bundle.Base36)
	fmt.Printf("base32:      %s\n", bundle.Base32)
	fmt.Printf("base16:      %s\n", bundle.Base16)
	fmt.Printf("contenthash: %s\n", bundle.ContentHash)
	fmt.Printf("peerID:      %s\n", peerID)
	fmt.Printf("onion:       %s\n", onionAddr)
	fmt.Println()
}

func main() {
	printBundle("reference vector", mustSeed("0681d6420abb1ba47acd5c03c8e5ee84185a2673576b262e234e50c46d86f597"))

	fill := make([]byte, 32)
	for i := range fill {
		fill[i] = 0x42
	}
	printBundle("fill 0x42", fill)

	slipSeed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	if err != nil {
		panic(err)
	}
	for _, path := range []string{"m", "m/0'", "m/0'/1'"} {
		var k hdkey.Key
		if path == "m" {
			k, err = hdkey.NewMaster(slipSeed)
		} else {
			k, err = hdkey.DerivePath(slipSeed, path)
		}
		if err != nil {
			panic(err)
		}
		fmt.Printf("# slip10 %s\n", path)
		fmt.Printf("key:       %s\n", hex.EncodeToString(k.Seed()))
		fmt.Printf("chainCode: %s\n", hex.EncodeToString(k.ChainCode()))
		fmt.Printf("publicKey: %s\n", hex.EncodeToString(k.PublicKey()))
		fmt.Println()
	}
}
