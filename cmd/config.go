package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/otimlabs/wormhole-admin/solana"
	"github.com/otimlabs/wormhole-admin/types"
)

const (
	defaultConfigPath = "config.yaml"
	defaultRPC        = "https://api.devnet.solana.com"
)

// DefaultConfig targets the Wormhole devnet deployment on Solana
func DefaultConfig() *types.Config {
	return &types.Config{
		Solana: types.SolanaSettings{
			RPC:                    defaultRPC,
			Commitment:             "processed",
			KeypairPath:            solana.DefaultKeypairPath,
			CoreBridge:             solana.DevnetCoreBridge.String(),
			TokenBridge:            solana.DevnetTokenBridge.String(),
			Mint:                   solana.DevnetMint.String(),
			BroadcastRetries:       2,
			BroadcastRetryInterval: 5,
			ConfirmTimeout:         60,
		},
		// empty api-base-url picks the public endpoint for the api-source
		Wormhole: types.WormholeSettings{
			APISource:          types.VAASourceGuardian.String(),
			FetchRetries:       3,
			FetchRetryInterval: 5,
		},
	}
}

// ParseConfig layers the YAML file at path and then the environment over
// DefaultConfig. A missing file is only tolerated at the default location.
func ParseConfig(path string) (*types.Config, error) {
	// a local .env is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()

	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && path == defaultConfigPath:
	case err != nil:
		return nil, fmt.Errorf("error reading file: %w", err)
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("error unmarshalling config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *types.Config) {
	if v := os.Getenv("SOLANA_RPC"); v != "" {
		cfg.Solana.RPC = v
	}
	if v := os.Getenv("SOLANA_KEYPAIR"); v != "" {
		cfg.Solana.KeypairPath = v
	}
	if v := os.Getenv("WORMHOLE_API_URL"); v != "" {
		cfg.Wormhole.APIBaseURL = v
	}
	if v := os.Getenv("PUSHGATEWAY_URL"); v != "" {
		cfg.Metrics.PushgatewayURL = v
	}
}
