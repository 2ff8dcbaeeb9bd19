package types

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Solana   SolanaSettings   `yaml:"solana"`
	Wormhole WormholeSettings `yaml:"wormhole"`
	Metrics  MetricsSettings  `yaml:"metrics"`
	Filters  []FilterConfig   `yaml:"filters" validate:"dive"`
}

type SolanaSettings struct {
	RPC         string `yaml:"rpc" validate:"required,url"`
	Commitment  string `yaml:"commitment" validate:"required,oneof=processed confirmed finalized"`
	KeypairPath string `yaml:"keypair-path" validate:"required"`

	CoreBridge  string `yaml:"core-bridge" validate:"required"`
	TokenBridge string `yaml:"token-bridge" validate:"required"`
	Mint        string `yaml:"mint"`

	BroadcastRetries       int `yaml:"broadcast-retries" validate:"gte=0"`
	BroadcastRetryInterval int `yaml:"broadcast-retry-interval" validate:"gte=0"`
	ConfirmTimeout         int `yaml:"confirm-timeout" validate:"gt=0"`
}

type WormholeSettings struct {
	APIBaseURL         string `yaml:"api-base-url" validate:"omitempty,url"`
	APISource          string `yaml:"api-source"`
	FetchRetries       int    `yaml:"fetch-retries" validate:"gte=0"`
	FetchRetryInterval int    `yaml:"fetch-retry-interval" validate:"gte=0"`
}

type MetricsSettings struct {
	PushgatewayURL string `yaml:"pushgateway-url" validate:"omitempty,url"`
	Job            string `yaml:"job"`
}

// FilterConfig enables a VAA filter plugin by name.
type FilterConfig struct {
	Name    string                 `yaml:"name" validate:"required"`
	Enabled bool                   `yaml:"enabled"`
	Config  map[string]interface{} `yaml:"config"`
}

// GetVAASource returns the parsed signed VAA source
func (w *WormholeSettings) GetVAASource() (VAASource, error) {
	return ParseVAASource(w.APISource)
}

// Validate checks struct constraints and that every configured program
// address is a valid base58 public key.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	addresses := map[string]string{
		"core-bridge":  c.Solana.CoreBridge,
		"token-bridge": c.Solana.TokenBridge,
	}
	if c.Solana.Mint != "" {
		addresses["mint"] = c.Solana.Mint
	}
	for field, addr := range addresses {
		if _, err := solana.PublicKeyFromBase58(addr); err != nil {
			return fmt.Errorf("invalid %s address %q: %w", field, addr, err)
		}
	}

	if _, err := c.Wormhole.GetVAASource(); err != nil {
		return fmt.Errorf("invalid api-source: %w", err)
	}

	return nil
}
