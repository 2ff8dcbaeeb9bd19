package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otimlabs/wormhole-admin/types"
)

func validConfig() types.Config {
	return types.Config{
		Solana: types.SolanaSettings{
			RPC:            "https://api.devnet.solana.com",
			Commitment:     "processed",
			KeypairPath:    "~/.config/solana/id.json",
			CoreBridge:     "3u8hJUVTA4jH1wYAyUur7FFZVQ8H635K3tSHHF4ssjQ5",
			TokenBridge:    "DZnkkTmCiFWfYTfT41X3Rd1kDgozqzxWaHqsw6W4x2oe",
			Mint:           "AwcKdvJMfwYWTGY4TJzX8XgjY8kk97izi7zrxTseWTAT",
			ConfirmTimeout: 60,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfig_ValidateErrors(t *testing.T) {
	tests := map[string]func(c *types.Config){
		"missing rpc":        func(c *types.Config) { c.Solana.RPC = "" },
		"rpc not url":        func(c *types.Config) { c.Solana.RPC = "devnet" },
		"unknown commitment": func(c *types.Config) { c.Solana.Commitment = "max" },
		"bad core bridge":    func(c *types.Config) { c.Solana.CoreBridge = "0xdeadbeef" },
		"bad mint":           func(c *types.Config) { c.Solana.Mint = "mint" },
		"negative retries":   func(c *types.Config) { c.Solana.BroadcastRetries = -1 },
		"zero timeout":       func(c *types.Config) { c.Solana.ConfirmTimeout = 0 },
		"bad source":         func(c *types.Config) { c.Wormhole.APISource = "bigtable" },
		"bad pushgateway":    func(c *types.Config) { c.Metrics.PushgatewayURL = "nope" },
		"unnamed filter":     func(c *types.Config) { c.Filters = []types.FilterConfig{{Enabled: true}} },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestParseVAASource(t *testing.T) {
	tests := []struct {
		input   string
		want    types.VAASource
		wantErr bool
	}{
		{"", types.VAASourceGuardian, false},
		{"guardian", types.VAASourceGuardian, false},
		{"Wormholescan", types.VAASourceWormholescan, false},
		{"scan", types.VAASourceWormholescan, false},
		{"bigtable", 0, true},
	}
	for _, tt := range tests {
		got, err := types.ParseVAASource(tt.input)
		if tt.wantErr {
			require.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		require.Equal(t, tt.want, got)
	}

	require.Equal(t, "wormholescan", types.VAASourceWormholescan.String())
}
