package cmd

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"

	sol "github.com/otimlabs/wormhole-admin/solana"
	testutil "github.com/otimlabs/wormhole-admin/test_util"
	"github.com/otimlabs/wormhole-admin/types"
)

func testAppState(t *testing.T, cfg *types.Config) *AppState {
	t.Helper()
	return &AppState{
		Config: cfg,
		Logger: log.NewLogger(os.Stderr, log.LevelOption(zerolog.DebugLevel)),
	}
}

// execute runs the root command with args and returns stdout
func execute(t *testing.T, a *AppState, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func payerOf(t *testing.T, cfg *types.Config) solana.PublicKey {
	t.Helper()
	key, err := sol.LoadKeypair(cfg.Solana.KeypairPath)
	require.NoError(t, err)
	return key.PublicKey()
}

func fakeSolanaConfig(t *testing.T) (*testutil.FakeSolanaRPC, *types.Config) {
	t.Helper()
	f := testutil.NewFakeSolanaRPC(t)
	return f, testutil.ConfigSetup(t, f.URL)
}
