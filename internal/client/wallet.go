package client

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// DefaultKeypairPath is where the Solana CLI keeps its default keypair.
const DefaultKeypairPath = "~/.config/solana/id.json"

// KeypairPath resolves the keypair location: an explicit value wins, then
// ANCHOR_WALLET, then the Solana CLI default.
func KeypairPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("ANCHOR_WALLET"); env != "" {
		return env
	}
	return DefaultKeypairPath
}

// LoadWallet reads a signer from a solana-keygen JSON file or from a base58
// encoded 64 byte secret key.
func LoadWallet(keypair string) (solana.PrivateKey, error) {
	keypair = strings.TrimSpace(keypair)
	if keypair == "" {
		return nil, errors.New("keypair not set")
	}

	path, err := expandHome(keypair)
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read keypair %s", path)
		}
		return key, nil
	}

	raw, err := base58.Decode(keypair)
	if err != nil || len(raw) != 64 {
		return nil, errors.Errorf("keypair %q is neither a readable file nor a base58 secret key", keypair)
	}
	return solana.PrivateKey(raw), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
