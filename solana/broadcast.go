package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"cosmossdk.io/log"
)

// TxRequest is one transaction to sign with the payer plus any extra signers.
// Target, when set, is an account the transaction creates. A failed attempt
// whose Target exists afterwards counts as landed and is not resent.
type TxRequest struct {
	Operation    string
	Instructions []solana.Instruction
	Signers      []solana.PrivateKey
	Target       solana.PublicKey
}

var commitmentRank = map[string]int{
	string(rpc.CommitmentProcessed): 1,
	string(rpc.CommitmentConfirmed): 2,
	string(rpc.CommitmentFinalized): 3,
}

// Broadcast sends req with retry logic and waits for the configured commitment
func (c *Client) Broadcast(ctx context.Context, logger log.Logger, req TxRequest) (solana.Signature, error) {
	logger = logger.With("operation", req.Operation)
	var broadcastErrors error

	var lastSig solana.Signature
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		sig, err := c.attemptBroadcast(ctx, logger, req)
		if err == nil {
			c.incTransaction(req.Operation, "success")
			return sig, nil
		}
		if !sig.IsZero() {
			lastSig = sig
		}
		broadcastErrors = errors.Join(broadcastErrors, fmt.Errorf("attempt %d: %w", attempt+1, err))

		if c.targetLanded(ctx, logger, req.Target) {
			logger.Info("Transaction landed without confirmation", "target", req.Target.String(), "signature", lastSig.String())
			c.incTransaction(req.Operation, "success")
			return lastSig, nil
		}

		if attempt != c.maxRetries {
			logger.Info(fmt.Sprintf("Retrying in %s", c.retryInterval))
			select {
			case <-ctx.Done():
				c.incTransaction(req.Operation, "failed")
				return solana.Signature{}, errors.Join(broadcastErrors, ctx.Err())
			case <-time.After(c.retryInterval):
			}
		}
	}

	c.incTransaction(req.Operation, "failed")
	return solana.Signature{}, fmt.Errorf("reached max number of broadcast attempts: %w", broadcastErrors)
}

func (c *Client) attemptBroadcast(ctx context.Context, logger log.Logger, req TxRequest) (solana.Signature, error) {
	recent, err := c.rpcClient.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		req.Instructions,
		recent.Value.Blockhash,
		solana.TransactionPayer(c.payer),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(c.payer) {
			return &c.privateKey
		}
		for i := range req.Signers {
			if key.Equals(req.Signers[i].PublicKey()) {
				return &req.Signers[i]
			}
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	sig, err := c.rpcClient.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		logger.Error("Error during broadcast", "error", err)
		return solana.Signature{}, err
	}
	logger.Debug("Transaction sent", "signature", sig.String())

	if err := c.awaitConfirmation(ctx, sig); err != nil {
		return sig, err
	}

	logger.Info("Transaction confirmed", "signature", sig.String(), "commitment", c.commitment)
	return sig, nil
}

// awaitConfirmation polls the signature status until the client commitment is
// reached, the transaction fails, or the confirm timeout expires.
func (c *Client) awaitConfirmation(ctx context.Context, sig solana.Signature) error {
	if c.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.confirmTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		out, err := c.rpcClient.GetSignatureStatuses(ctx, false, sig)
		if err == nil && out != nil && len(out.Value) > 0 && out.Value[0] != nil {
			status := out.Value[0]
			if status.Err != nil {
				return fmt.Errorf("transaction %s failed: %v", sig, status.Err)
			}
			if commitmentReached(string(status.ConfirmationStatus), c.commitment) {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("transaction %s not confirmed at %s commitment: %w", sig, c.commitment, ctx.Err())
		case <-ticker.C:
		}
	}
}

// targetLanded reports whether the account a failed attempt was meant to
// create exists anyway. Lookup errors count as not landed.
func (c *Client) targetLanded(ctx context.Context, logger log.Logger, target solana.PublicKey) bool {
	if target.IsZero() {
		return false
	}
	exists, err := c.accountExists(ctx, target)
	if err != nil {
		logger.Error("Failed to check transaction target", "target", target.String(), "error", err)
		return false
	}
	return exists
}

func commitmentReached(status string, want rpc.CommitmentType) bool {
	got, ok := commitmentRank[status]
	if !ok {
		return false
	}
	return got >= commitmentRank[string(want)]
}

func (c *Client) incTransaction(operation, status string) {
	if c.metrics != nil {
		c.metrics.IncTransaction(operation, status)
	}
}
