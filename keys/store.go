package keys

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"keyforge.dev/keyforge/hdkey"
)

// KeyStore is a simple local-first seed store.
//
// Features:
// - Ed25519 seeds only, stored as hex files on the local filesystem
// - Deterministic child seeds derived along SLIP-0010 paths
// - No external dependencies
//
// This surface is designed to be straightforward and explicit.
type KeyStore struct {
	Directory string
}

type KeyEntry struct {
	Identifier string
	Children   []string
}

func GetDefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".keyforge", "keys"), nil
}

func CreateKeyStore(directory string) (*KeyStore, error) {
	if directory == "" {
		var err error
		directory, err = GetDefaultDirectory()
		if err != nil {
			return nil, err
		}
	}
	return &KeyStore{Directory: directory}, nil
}

func (ks *KeyStore) rootKeyFilePath(identifier string) string {
	return filepath.Join(ks.Directory, identifier, "root.key")
}

func (ks *KeyStore) childKeyFilePath(identifier, label string) string {
	return filepath.Join(ks.Directory, identifier, "derived", label+".key")
}

func CheckKeyName(identifier string) error {
	if identifier == "" {
		return errors.New("identifier cannot be empty")
	}
	for _, char := range identifier {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in identifier", char)
	}
	return nil
}

// CheckLabel validates a derived-key label. Same alphabet as key names.
func CheckLabel(label string) error {
	if label == "" {
		return errors.New("label cannot be empty")
	}
	for _, char := range label {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in label", char)
	}
	return nil
}

func (ks *KeyStore) saveSeedToFile(filePath string, seed []byte, overwrite bool) error {
	if len(seed) != ed25519.SeedSize {
		return fmt.Errorf("expected seed length of %d bytes", ed25519.SeedSize)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o700); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(filePath, flags, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.WriteString(hex.EncodeToString(seed) + "\n"); err != nil {
		return err
	}
	return file.Close()
}

func (ks *KeyStore) loadSeedFromFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseSeedHex(strings.TrimSpace(string(data)))
}

// InitializeRootKey stores seed under the identifier and returns the key's
// IPNS name and file path.
func (ks *KeyStore) InitializeRootKey(identifier string, seed []byte, overwrite bool) (name string, filePath string, err error) {
	if err := CheckKeyName(identifier); err != nil {
		return "", "", err
	}
	filePath = ks.rootKeyFilePath(identifier)
	if err := ks.saveSeedToFile(filePath, seed, overwrite); err != nil {
		return "", "", err
	}
	name, err = IPNSName(seed)
	if err != nil {
		return "", "", err
	}
	return name, filePath, nil
}

// DeriveChildKey derives a child seed from a stored root along a SLIP-0010
// path and stores it under the label.
func (ks *KeyStore) DeriveChildKey(from, label, path string, overwrite bool) (name string, filePath string, err error) {
	if err := CheckKeyName(from); err != nil {
		return "", "", err
	}
	if err := CheckLabel(label); err != nil {
		return "", "", err
	}
	rootSeed, err := ks.loadSeedFromFile(ks.rootKeyFilePath(from))
	if err != nil {
		return "", "", err
	}
	child, err := hdkey.DerivePath(rootSeed, path)
	if err != nil {
		return "", "", err
	}
	childSeed := child.Seed()
	filePath = ks.childKeyFilePath(from, label)
	if err := ks.saveSeedToFile(filePath, childSeed, overwrite); err != nil {
		return "", "", err
	}
	name, err = IPNSName(childSeed)
	if err != nil {
		return "", "", err
	}
	return name, filePath, nil
}

// ExportKey returns the IPNS name for a stored root or derived key.
func (ks *KeyStore) ExportKey(identifier string, label string) (string, error) {
	if err := CheckKeyName(identifier); err != nil {
		return "", err
	}
	var seed []byte
	var err error
	if label == "" {
		seed, err = ks.loadSeedFromFile(ks.rootKeyFilePath(identifier))
	} else {
		if err := CheckLabel(label); err != nil {
			return "", err
		}
		seed, err = ks.loadSeedFromFile(ks.childKeyFilePath(identifier, label))
	}
	if err != nil {
		return "", err
	}
	return IPNSName(seed)
}

// LoadSeed resolves a seed from the first provided source: literal hex,
// an explicit key file, or a stored key by name and optional label.
func (ks *KeyStore) LoadSeed(seedHex, keyName, label, keyFile string) ([]byte, error) {
	if seedHex != "" {
		return ParseSeedHex(seedHex)
	}
	if keyFile != "" {
		return ks.loadSeedFromFile(keyFile)
	}
	if keyName != "" {
		if err := CheckKeyName(keyName); err != nil {
			return nil, err
		}
		if label == "" {
			return ks.loadSeedFromFile(ks.rootKeyFilePath(keyName))
		}
		if err := CheckLabel(label); err != nil {
			return nil, err
		}
		return ks.loadSeedFromFile(ks.childKeyFilePath(keyName, label))
	}
	return nil, errors.New("no key source provided")
}

func (ks *KeyStore) ListKeys() ([]KeyEntry, error) {
	entries, err := os.ReadDir(ks.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var identifiers []string
	for _, entry := range entries {
		if entry.IsDir() {
			identifiers = append(identifiers, entry.Name())
		}
	}
	sort.Strings(identifiers)

	var result []KeyEntry
	for _, identifier := range identifiers {
		derivedDir := filepath.Join(ks.Directory, identifier, "derived")
		childEntries, cerr := os.ReadDir(derivedDir)
		var children []string
		if cerr == nil {
			for _, childEntry := range childEntries {
				if childEntry.IsDir() {
					continue
				}
				if strings.HasSuffix(childEntry.Name(), ".key") {
					children = append(children, strings.TrimSuffix(childEntry.Name(), ".key"))
				}
			}
			sort.Strings(children)
		}
		result = append(result, KeyEntry{Identifier: identifier, Children: children})
	}
	return result, nil
}
