package solana

import (
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"

	testutil "github.com/otimlabs/wormhole-admin/test_util"
	"github.com/otimlabs/wormhole-admin/types"
)

func TestNewClientFromSettings(t *testing.T) {
	path, key := testutil.WriteKeypair(t, t.TempDir())

	c, err := NewClientFromSettings(types.SolanaSettings{
		RPC:         "http://localhost:8899",
		Commitment:  "confirmed",
		KeypairPath: path,
	})
	require.NoError(t, err)
	require.Equal(t, key.PublicKey(), c.Payer())
	require.Equal(t, rpc.CommitmentConfirmed, c.Commitment())
	require.Equal(t, DevnetCoreBridge, c.CoreBridge())
	require.Equal(t, DevnetTokenBridge, c.TokenBridge())
	require.Equal(t, DevnetMint, c.Mint())
}

func TestNewClientFromSettings_Errors(t *testing.T) {
	path, _ := testutil.WriteKeypair(t, t.TempDir())

	tests := map[string]types.SolanaSettings{
		"missing keyfile": {KeypairPath: filepath.Join(t.TempDir(), "none.json")},
		"bad commitment":  {KeypairPath: path, Commitment: "eventually"},
		"bad core bridge": {KeypairPath: path, CoreBridge: "0xnot-base58"},
		"bad mint":        {KeypairPath: path, Mint: "O0O0"},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewClientFromSettings(cfg)
			require.Error(t, err)
		})
	}
}

func TestParseCommitment(t *testing.T) {
	c, err := ParseCommitment("")
	require.NoError(t, err)
	require.Equal(t, rpc.CommitmentProcessed, c)

	c, err = ParseCommitment("finalized")
	require.NoError(t, err)
	require.Equal(t, rpc.CommitmentFinalized, c)
}
