package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"keyforge.dev/keyforge/hdkey"
	"keyforge.dev/keyforge/ipns"
	"keyforge.dev/keyforge/keys"
	"keyforge.dev/keyforge/onion"
	"keyforge.dev/keyforge/pgpkey"
	"keyforge.dev/keyforge/sshkey"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "gen":
		return cmdGen(args[1:], out, errOut)
	case "decode":
		return cmdDecode(args[1:], out, errOut)
	case "ssh":
		return cmdSSH(args[1:], out, errOut)
	case "pgp":
		return cmdPGP(args[1:], out, errOut)
	case "onion":
		return cmdOnion(args[1:], out, errOut)
	case "hd":
		return cmdHD(args[1:], out, errOut)
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "keyforge: deterministic ed25519 identity toolkit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  keyforge gen [--seed-hex <64hex>] [--json]")
	fmt.Fprintln(w, "  keyforge decode <address>")
	fmt.Fprintln(w, "  keyforge ssh (--seed-hex <64hex> | --key <name> [--label <label>]) [--comment <text>] [--private]")
	fmt.Fprintln(w, "  keyforge pgp (--seed-hex <64hex> | --key <name> [--label <label>]) --name <name> [--email <email>] [--created <RFC3339>]")
	fmt.Fprintln(w, "  keyforge onion (--seed-hex <64hex> | --key <name> [--label <label>])")
	fmt.Fprintln(w, "  keyforge hd derive (--seed-hex <64hex> | --key <name>) --path <m/44'/.../0'>")
	fmt.Fprintln(w, "  keyforge key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  keyforge key derive --from <name> --label <label> --path <m/...'> [--force]")
	fmt.Fprintln(w, "  keyforge key list")
	fmt.Fprintln(w, "  keyforge key export --name <name> [--label <label>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - --seed-hex must be 32 bytes (64 hex chars), optionally 0x-prefixed")
	fmt.Fprintln(w, "  - keys are stored under ~/.keyforge/keys/<name> (0600 seed files)")
	fmt.Fprintln(w, "  - decode accepts ipns:// addresses and bare k/b/f payloads, case-insensitively")
	fmt.Fprintln(w, "  - hd paths are SLIP-0010 ed25519: every segment hardened (' or h)")
}

// resolveSeed loads a seed from --seed-hex or the keystore; random when
// allowRandom and nothing is provided.
func resolveSeed(seedHex, keyName, label string, allowRandom bool) ([]byte, error) {
	if seedHex != "" {
		return keys.ParseSeedHex(seedHex)
	}
	if keyName == "" {
		if allowRandom {
			return keys.NewSeed(nil)
		}
		return nil, fmt.Errorf("provide --seed-hex or --key")
	}
	ks, err := keys.CreateKeyStore("")
	if err != nil {
		return nil, err
	}
	return ks.LoadSeed("", keyName, label, "")
}

func cmdGen(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(errOut)
	seedHex := fs.String("seed-hex", "", "32-byte seed as 64 hex chars (random if omitted)")
	jsonOut := fs.Bool("json", false, "print the bundle as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	seed, err := resolveSeed(*seedHex, "", "", true)
	if err != nil {
		fmt.Fprintf(errOut, "gen: %v\n", err)
		return 1
	}
	pub, _, err := keys.FromSeed(seed)
	if err != nil {
		fmt.Fprintf(errOut, "gen: %v\n", err)
		return 1
	}
	bundle, err := ipns.Bundle(seed, pub)
	if err != nil {
		fmt.Fprintf(errOut, "gen: %v\n", err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(bundle); err != nil {
			fmt.Fprintf(errOut, "gen: %v\n", err)
			return 1
		}
		return 0
	}

	peerID, err := ipns.PeerID(pub)
	if err != nil {
		fmt.Fprintf(errOut, "gen: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "publicKey:   %s\n", bundle.PublicKey)
	fmt.Fprintf(out, "privateKey:  %s\n", bundle.PrivateKey)
	fmt.Fprintf(out, "base36:      %s\n", bundle.Base36)
	fmt.Fprintf(out, "base32:      %s\n", bundle.Base32)
	fmt.Fprintf(out, "base16:      %s\n", bundle.Base16)
	fmt.Fprintf(out, "contenthash: %s\n", bundle.ContentHash)
	fmt.Fprintf(out, "peerID:      %s\n", peerID)
	return 0
}

func cmdDecode(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: keyforge decode <address>")
		return 2
	}
	address := fs.Arg(0)
	if strings.HasPrefix(address, "0x") {
		fmt.Fprintln(errOut, "decode: private-key exports are not decodable; pass an ipns address")
		return 1
	}

	tagged, err := ipns.Decode(address)
	if err != nil {
		fmt.Fprintf(errOut, "decode: %v\n", err)
		return 1
	}
	addrs, err := ipns.EncodeAddresses(tagged)
	if err != nil {
		fmt.Fprintf(errOut, "decode: %v\n", err)
		return 1
	}
	peerID, err := ipns.PeerID(tagged.PublicKey())
	if err != nil {
		fmt.Fprintf(errOut, "decode: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "tagged:      0x%s\n", tagged.Hex())
	fmt.Fprintf(out, "publicKey:   %s\n", hex.EncodeToString(tagged.PublicKey()))
	fmt.Fprintf(out, "base36:      %s\n", addrs.Base36)
	fmt.Fprintf(out, "base32:      %s\n", addrs.Base32)
	fmt.Fprintf(out, "base16:      %s\n", addrs.Base16)
	fmt.Fprintf(out, "contenthash: %s\n", ipns.ContentHash(tagged))
	fmt.Fprintf(out, "peerID:      %s\n", peerID)
	return 0
}

func cmdSSH(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("ssh", flag.ContinueOnError)
	fs.SetOutput(errOut)
	seedHex := fs.String("seed-hex", "", "32-byte seed as 64 hex chars")
	keyName := fs.String("key", "", "stored key name")
	label := fs.String("label", "", "stored derived-key label")
	comment := fs.String("comment", "", "key comment")
	private := fs.Bool("private", false, "print the OpenSSH private key instead of the public line")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	seed, err := resolveSeed(*seedHex, *keyName, *label, false)
	if err != nil {
		fmt.Fprintf(errOut, "ssh: %v\n", err)
		return 1
	}
	pub, priv, err := keys.FromSeed(seed)
	if err != nil {
		fmt.Fprintf(errOut, "ssh: %v\n", err)
		return 1
	}

	if *private {
		pemStr, err := sshkey.PrivateKeyPEM(priv, *comment)
		if err != nil {
			fmt.Fprintf(errOut, "ssh: %v\n", err)
			return 1
		}
		fmt.Fprint(out, pemStr)
		return 0
	}
	line, err := sshkey.AuthorizedKey(pub, *comment)
	if err != nil {
		fmt.Fprintf(errOut, "ssh: %v\n", err)
		return 1
	}
	fmt.Fprint(out, line)
	fp, err := sshkey.Fingerprint(pub)
	if err != nil {
		fmt.Fprintf(errOut, "ssh: %v\n", err)
		return 1
	}
	fmt.Fprintf(errOut, "fingerprint: %s\n", fp)
	return 0
}

func cmdPGP(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("pgp", flag.ContinueOnError)
	fs.SetOutput(errOut)
	seedHex := fs.String("seed-hex", "", "32-byte seed as 64 hex chars")
	keyName := fs.String("key", "", "stored key name")
	label := fs.String("label", "", "stored derived-key label")
	name := fs.String("name", "", "user id name (required)")
	email := fs.String("email", "", "user id email")
	created := fs.String("created", "", "key creation time, RFC3339 (default: now)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *name == "" {
		fmt.Fprintln(errOut, "pgp: --name is required")
		return 2
	}
	createdAt := time.Now()
	if *created != "" {
		t, err := time.Parse(time.RFC3339, *created)
		if err != nil {
			fmt.Fprintf(errOut, "pgp: invalid --created: %v\n", err)
			return 2
		}
		createdAt = t
	}

	seed, err := resolveSeed(*seedHex, *keyName, *label, false)
	if err != nil {
		fmt.Fprintf(errOut, "pgp: %v\n", err)
		return 1
	}
	armored, err := pgpkey.Export(seed, *name, *email, createdAt)
	if err != nil {
		fmt.Fprintf(errOut, "pgp: %v\n", err)
		return 1
	}
	fmt.Fprint(out, armored.PublicKey)
	fmt.Fprint(out, armored.PrivateKey)
	return 0
}

func cmdOnion(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("onion", flag.ContinueOnError)
	fs.SetOutput(errOut)
	seedHex := fs.String("seed-hex", "", "32-byte seed as 64 hex chars")
	keyName := fs.String("key", "", "stored key name")
	label := fs.String("label", "", "stored derived-key label")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	seed, err := resolveSeed(*seedHex, *keyName, *label, false)
	if err != nil {
		fmt.Fprintf(errOut, "onion: %v\n", err)
		return 1
	}
	pub, _, err := keys.FromSeed(seed)
	if err != nil {
		fmt.Fprintf(errOut, "onion: %v\n", err)
		return 1
	}
	addr, err := onion.Address(pub)
	if err != nil {
		fmt.Fprintf(errOut, "onion: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, addr)
	return 0
}

func cmdHD(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 || args[0] != "derive" {
		fmt.Fprintln(errOut, "usage: keyforge hd derive (--seed-hex <64hex> | --key <name>) --path <m/...'>")
		return 2
	}
	fs := flag.NewFlagSet("hd derive", flag.ContinueOnError)
	fs.SetOutput(errOut)
	seedHex := fs.String("seed-hex", "", "32-byte master seed as 64 hex chars")
	keyName := fs.String("key", "", "stored key name")
	path := fs.String("path", "", "SLIP-0010 derivation path (required)")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if *path == "" {
		fmt.Fprintln(errOut, "hd derive: --path is required")
		return 2
	}

	seed, err := resolveSeed(*seedHex, *keyName, "", false)
	if err != nil {
		fmt.Fprintf(errOut, "hd derive: %v\n", err)
		return 1
	}
	child, err := hdkey.DerivePath(seed, *path)
	if err != nil {
		fmt.Fprintf(errOut, "hd derive: %v\n", err)
		return 1
	}
	name, err := keys.IPNSName(child.Seed())
	if err != nil {
		fmt.Fprintf(errOut, "hd derive: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "seed:      %s\n", hex.EncodeToString(child.Seed()))
	fmt.Fprintf(out, "chainCode: %s\n", hex.EncodeToString(child.ChainCode()))
	fmt.Fprintf(out, "publicKey: %s\n", hex.EncodeToString(child.PublicKey()))
	fmt.Fprintf(out, "ipns:      %s\n", name)
	return 0
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: keyforge key <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: init, derive, list, export")
		return 2
	}
	switch args[0] {
	case "init":
		return cmdKeyInit(args[1:], out, errOut)
	case "derive":
		return cmdKeyDerive(args[1:], out, errOut)
	case "list":
		return cmdKeyList(args[1:], out, errOut)
	case "export":
		return cmdKeyExport(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n", args[0])
		return 2
	}
}

func cmdKeyInit(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key init", flag.ContinueOnError)
	fs.SetOutput(errOut)
	name := fs.String("name", "", "key name (required)")
	seedHex := fs.String("seed-hex", "", "32-byte seed as 64 hex chars (random if omitted)")
	force := fs.Bool("force", false, "overwrite an existing key")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *name == "" {
		fmt.Fprintln(errOut, "key init: --name is required")
		return 2
	}

	var seed []byte
	var err error
	if *seedHex == "" {
		seed, err = keys.NewSeed(nil)
	} else {
		seed, err = keys.ParseSeedHex(*seedHex)
	}
	if err != nil {
		fmt.Fprintf(errOut, "key init: %v\n", err)
		return 1
	}

	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "key init: %v\n", err)
		return 1
	}
	ipnsName, path, err := ks.InitializeRootKey(*name, seed, *force)
	if err != nil {
		fmt.Fprintf(errOut, "key init: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "%s\t%s\t%s\n", *name, ipnsName, path)
	return 0
}

func cmdKeyDerive(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key derive", flag.ContinueOnError)
	fs.SetOutput(errOut)
	from := fs.String("from", "", "root key name (required)")
	label := fs.String("label", "", "derived key label (required)")
	path := fs.String("path", "", "SLIP-0010 derivation path (required)")
	force := fs.Bool("force", false, "overwrite an existing derived key")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *from == "" || *label == "" || *path == "" {
		fmt.Fprintln(errOut, "key derive: --from, --label and --path are required")
		return 2
	}

	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "key derive: %v\n", err)
		return 1
	}
	ipnsName, filePath, err := ks.DeriveChildKey(*from, *label, *path, *force)
	if err != nil {
		fmt.Fprintf(errOut, "key derive: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "%s/%s\t%s\t%s\n", *from, *label, ipnsName, filePath)
	return 0
}

func cmdKeyList(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key list", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "key list: %v\n", err)
		return 1
	}
	entries, err := ks.ListKeys()
	if err != nil {
		fmt.Fprintf(errOut, "key list: %v\n", err)
		return 1
	}
	for _, entry := range entries {
		fmt.Fprintln(out, entry.Identifier)
		for _, child := range entry.Children {
			fmt.Fprintf(out, "  %s/%s\n", entry.Identifier, child)
		}
	}
	return 0
}

func cmdKeyExport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key export", flag.ContinueOnError)
	fs.SetOutput(errOut)
	name := fs.String("name", "", "key name (required)")
	label := fs.String("label", "", "derived key label")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *name == "" {
		fmt.Fprintln(errOut, "key export: --name is required")
		return 2
	}

	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "key export: %v\n", err)
		return 1
	}
	ipnsName, err := ks.ExportKey(*name, *label)
	if err != nil {
		fmt.Fprintf(errOut, "key export: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, ipnsName)
	return 0
}
