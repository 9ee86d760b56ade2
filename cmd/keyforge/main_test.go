package main

import (
	"bytes"
	"strings"
	"testing"
)

const (
	vectorSeedHex   = "0681d6420abb1ba47acd5c03c8e5ee84185a2673576b262e234e50c46d86f597"
	vectorTaggedHex = "017200240801122012c8299ec2c51dffbbcb4f9fccadcee1424cb237e9b30d3cd72d47c18103689d"
	vectorBase32    = "bafzaajaiaejcaewifgpmfri57654wt47zsw45ykcjszdp2ntbu6nolkhygaqg2e5"
)

func TestRunGenKnownVector(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"gen", "--seed-hex", vectorSeedHex}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut.String())
	}
	got := out.String()
	if !strings.Contains(got, "0x"+vectorTaggedHex) {
		t.Fatalf("missing tagged public key in output:\n%s", got)
	}
	if !strings.Contains(got, "ipns://"+vectorBase32) {
		t.Fatalf("missing base32 address in output:\n%s", got)
	}
	if !strings.Contains(got, "0xe501"+vectorTaggedHex) {
		t.Fatalf("missing contenthash in output:\n%s", got)
	}
}

func TestRunGenJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"gen", "--seed-hex", vectorSeedHex, "--json"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut.String())
	}
	for _, field := range []string{`"publicKey"`, `"privateKey"`, `"base36"`, `"base32"`, `"base16"`, `"contenthash"`} {
		if !strings.Contains(out.String(), field) {
			t.Fatalf("missing %s in JSON output:\n%s", field, out.String())
		}
	}
}

func TestRunDecode(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"decode", "ipns://" + vectorBase32}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "0x"+vectorTaggedHex) {
		t.Fatalf("missing tagged hex in output:\n%s", out.String())
	}
}

func TestRunDecodeRejectsPrivateExport(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"decode", "0x08011240" + strings.Repeat("00", 64)}, &out, &errOut)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRunSSH(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"ssh", "--seed-hex", vectorSeedHex, "--comment", "t@kf"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut.String())
	}
	if !strings.HasPrefix(out.String(), "ssh-ed25519 ") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if !strings.Contains(errOut.String(), "SHA256:") {
		t.Fatalf("missing fingerprint on stderr:\n%s", errOut.String())
	}
}

func TestRunOnion(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"onion", "--seed-hex", vectorSeedHex}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut.String())
	}
	if !strings.HasSuffix(strings.TrimSpace(out.String()), ".onion") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunHDDerive(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"hd", "derive", "--seed-hex", vectorSeedHex, "--path", "m/44'/0'"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "ipns://k") {
		t.Fatalf("missing derived ipns name:\n%s", out.String())
	}

	out.Reset()
	errOut.Reset()
	if code := run([]string{"hd", "derive", "--seed-hex", vectorSeedHex, "--path", "m/44/0"}, &out, &errOut); code != 1 {
		t.Fatalf("expected exit 1 for non-hardened path, got %d", code)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"bogus"}, &out, &errOut); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if code := run(nil, &out, &errOut); code != 2 {
		t.Fatalf("expected exit 2 for no args, got %d", code)
	}
}
