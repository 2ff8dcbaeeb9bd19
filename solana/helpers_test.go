package solana

import (
	"os"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
)

func testLogger() log.Logger {
	return log.NewLogger(os.Stdout, log.LevelOption(zerolog.DebugLevel))
}

func testClient(t *testing.T, url string) *Client {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	c := NewClient(url, key, rpc.CommitmentProcessed, DevnetCoreBridge, DevnetTokenBridge, DevnetMint, 0, 0, 5)
	c.pollInterval = 10 * time.Millisecond
	return c
}
