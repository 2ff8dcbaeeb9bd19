package solana

import (
	"context"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/otimlabs/wormhole-admin/metrics"
	testutil "github.com/otimlabs/wormhole-admin/test_util"
)

func transferRequest(c *Client) TxRequest {
	return TxRequest{
		Operation: "test",
		Instructions: []solana.Instruction{
			system.NewTransferInstruction(1, c.Payer(), solana.NewWallet().PublicKey()).Build(),
		},
	}
}

func TestCommitmentReached(t *testing.T) {
	require.True(t, commitmentReached("processed", rpc.CommitmentProcessed))
	require.True(t, commitmentReached("finalized", rpc.CommitmentConfirmed))
	require.False(t, commitmentReached("processed", rpc.CommitmentConfirmed))
	require.False(t, commitmentReached("", rpc.CommitmentProcessed))
}

func TestBroadcast_Success(t *testing.T) {
	f := testutil.NewFakeSolanaRPC(t)
	c := testClient(t, f.URL)
	m := metrics.InitPromMetrics()
	c.SetMetrics(m)

	sig, err := c.Broadcast(context.Background(), testLogger(), transferRequest(c))
	require.NoError(t, err)
	require.False(t, sig.IsZero())
	require.Equal(t, 1, f.SentCount())
	require.Equal(t, 1.0, promtestutil.ToFloat64(m.Transactions.WithLabelValues("test", "success")))
}

func TestBroadcast_TransactionErrorRetries(t *testing.T) {
	f := testutil.NewFakeSolanaRPC(t)
	f.SetTxError(map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}})
	c := testClient(t, f.URL)
	c.maxRetries = 1
	m := metrics.InitPromMetrics()
	c.SetMetrics(m)

	_, err := c.Broadcast(context.Background(), testLogger(), transferRequest(c))
	require.ErrorContains(t, err, "max number of broadcast attempts")
	require.Equal(t, 2, f.SentCount())
	require.Equal(t, 1.0, promtestutil.ToFloat64(m.Transactions.WithLabelValues("test", "failed")))
}

func TestBroadcast_ConfirmTimeout(t *testing.T) {
	f := testutil.NewFakeSolanaRPC(t)
	f.SetStatus("processed")
	c := testClient(t, f.URL)
	c.commitment = rpc.CommitmentFinalized
	c.confirmTimeout = 100 * time.Millisecond

	_, err := c.Broadcast(context.Background(), testLogger(), transferRequest(c))
	require.ErrorContains(t, err, "not confirmed")
}

func TestBroadcast_TargetLandedStopsRetry(t *testing.T) {
	f := testutil.NewFakeSolanaRPC(t)
	f.SetStatus("processed")
	c := testClient(t, f.URL)
	c.commitment = rpc.CommitmentFinalized
	c.confirmTimeout = 100 * time.Millisecond
	c.maxRetries = 2
	m := metrics.InitPromMetrics()
	c.SetMetrics(m)

	target := solana.NewWallet().PublicKey()
	f.SetAccount(target, solana.SystemProgramID, nil)

	req := transferRequest(c)
	req.Target = target
	sig, err := c.Broadcast(context.Background(), testLogger(), req)
	require.NoError(t, err)
	require.False(t, sig.IsZero())
	require.Equal(t, 1, f.SentCount())
	require.Equal(t, f.SentTransactions(t)[0].Signatures[0], sig)
	require.Equal(t, 1.0, promtestutil.ToFloat64(m.Transactions.WithLabelValues("test", "success")))
}

func TestBroadcast_MissingTargetRetries(t *testing.T) {
	f := testutil.NewFakeSolanaRPC(t)
	f.SetStatus("processed")
	c := testClient(t, f.URL)
	c.commitment = rpc.CommitmentFinalized
	c.confirmTimeout = 50 * time.Millisecond
	c.maxRetries = 1

	req := transferRequest(c)
	req.Target = solana.NewWallet().PublicKey()
	_, err := c.Broadcast(context.Background(), testLogger(), req)
	require.ErrorContains(t, err, "not confirmed")
	require.Equal(t, 2, f.SentCount())
}

func TestBroadcast_MissingSigner(t *testing.T) {
	f := testutil.NewFakeSolanaRPC(t)
	c := testClient(t, f.URL)
	other := solana.NewWallet()

	req := TxRequest{
		Operation: "test",
		Instructions: []solana.Instruction{
			system.NewTransferInstruction(1, other.PublicKey(), c.Payer()).Build(),
		},
	}
	_, err := c.Broadcast(context.Background(), testLogger(), req)
	require.Error(t, err)

	req.Signers = []solana.PrivateKey{other.PrivateKey}
	_, err = c.Broadcast(context.Background(), testLogger(), req)
	require.NoError(t, err)
}
