package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/otimlabs/wormhole-admin/types"
)

// Signed VAAs used by the admin scripts on devnet
const (
	AssetMetaVAA           = "asset_meta_vaa.hex"
	TransferWithPayloadVAA = "transfer_with_payload_vaa.hex"
)

// GetEnvOrDefault returns the environment variable value or a default if not set
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func init() {
	// Try to load .env file if it exists
	if err := godotenv.Load(".env"); err != nil {
		_ = godotenv.Load("../.env")
	}
}

// WriteKeypair writes a fresh solana-keygen style keyfile into dir
func WriteKeypair(t *testing.T, dir string) (string, solana.PrivateKey) {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	values := make([]int, len(key))
	for i, b := range key {
		values[i] = int(b)
	}
	content, err := json.Marshal(values)
	require.NoError(t, err)

	path := filepath.Join(dir, "id.json")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path, key
}

// VAAFixtureHex reads a hex VAA from the repository testdata directory
func VAAFixtureHex(t *testing.T, name string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "testdata", name))
	require.NoError(t, err)
	return strings.TrimSpace(string(raw))
}

func LoadVAAFixture(t *testing.T, name string) *types.SignedVAA {
	t.Helper()
	v, err := types.ParseSignedVAAHex(VAAFixtureHex(t, name))
	require.NoError(t, err)
	return v
}

// ConfigSetup returns a devnet config with a fresh keypair. rpcURL may be a
// local fake; empty falls back to SOLANA_RPC or the public devnet endpoint.
func ConfigSetup(t *testing.T, rpcURL string) *types.Config {
	t.Helper()

	if rpcURL == "" {
		rpcURL = GetEnvOrDefault("SOLANA_RPC", "https://api.devnet.solana.com")
	}
	keypairPath, _ := WriteKeypair(t, t.TempDir())

	return &types.Config{
		Solana: types.SolanaSettings{
			RPC:                    rpcURL,
			Commitment:             "processed",
			KeypairPath:            keypairPath,
			CoreBridge:             "3u8hJUVTA4jH1wYAyUur7FFZVQ8H635K3tSHHF4ssjQ5",
			TokenBridge:            "DZnkkTmCiFWfYTfT41X3Rd1kDgozqzxWaHqsw6W4x2oe",
			Mint:                   "AwcKdvJMfwYWTGY4TJzX8XgjY8kk97izi7zrxTseWTAT",
			BroadcastRetries:       0,
			BroadcastRetryInterval: 0,
			ConfirmTimeout:         5,
		},
		Wormhole: types.WormholeSettings{
			APISource:          "guardian",
			FetchRetries:       0,
			FetchRetryInterval: 0,
		},
	}
}
