package solana

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"
)

const DefaultKeypairPath = "~/.config/solana/id.json"

// ExpandPath resolves a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// LoadKeypair reads a solana-keygen JSON keyfile (an array of 64 byte values)
func LoadKeypair(path string) (solana.PrivateKey, error) {
	if path == "" {
		path = DefaultKeypairPath
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	key, err := solana.PrivateKeyFromSolanaKeygenFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("unable to load keypair from %s: %w", expanded, err)
	}
	if len(key) != 64 {
		return nil, fmt.Errorf("keypair %s must hold 64 bytes, got %d", expanded, len(key))
	}
	// solana-go trusts the stored public half, so derive it from the seed
	derived := ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], key[ed25519.SeedSize:]) {
		return nil, fmt.Errorf("keypair %s public key does not match its secret key", expanded)
	}
	return key, nil
}
