package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"cosmossdk.io/log"

	"github.com/otimlabs/wormhole-admin/metrics"
)

const defaultPollInterval = 500 * time.Millisecond

// Client holds the RPC connection, fee payer and program addresses shared by every admin operation
type Client struct {
	rpcURL     string
	rpcClient  *rpc.Client
	privateKey solana.PrivateKey
	payer      solana.PublicKey
	commitment rpc.CommitmentType

	coreBridge  solana.PublicKey
	tokenBridge solana.PublicKey
	mint        solana.PublicKey

	maxRetries     int
	retryInterval  time.Duration
	confirmTimeout time.Duration
	pollInterval   time.Duration

	metrics *metrics.PromMetrics
}

func NewClient(
	rpcURL string,
	privateKey solana.PrivateKey,
	commitment rpc.CommitmentType,
	coreBridge solana.PublicKey,
	tokenBridge solana.PublicKey,
	mint solana.PublicKey,
	maxRetries int,
	retryIntervalSeconds int,
	confirmTimeoutSeconds int,
) *Client {
	return &Client{
		rpcURL:         rpcURL,
		rpcClient:      rpc.New(rpcURL),
		privateKey:     privateKey,
		payer:          privateKey.PublicKey(),
		commitment:     commitment,
		coreBridge:     coreBridge,
		tokenBridge:    tokenBridge,
		mint:           mint,
		maxRetries:     maxRetries,
		retryInterval:  time.Duration(retryIntervalSeconds) * time.Second,
		confirmTimeout: time.Duration(confirmTimeoutSeconds) * time.Second,
		pollInterval:   defaultPollInterval,
	}
}

func (c *Client) Payer() solana.PublicKey {
	return c.payer
}

func (c *Client) CoreBridge() solana.PublicKey {
	return c.coreBridge
}

func (c *Client) TokenBridge() solana.PublicKey {
	return c.tokenBridge
}

// Mint is the default mint used by create-ata
func (c *Client) Mint() solana.PublicKey {
	return c.mint
}

func (c *Client) Commitment() rpc.CommitmentType {
	return c.commitment
}

func (c *Client) SetMetrics(m *metrics.PromMetrics) {
	c.metrics = m
}

// Connect checks the RPC endpoint is reachable and healthy
func (c *Client) Connect(ctx context.Context, logger log.Logger) error {
	_, err := c.rpcClient.GetHealth(ctx)
	if err != nil {
		return fmt.Errorf("unable to connect to Solana RPC %s: %w", c.rpcURL, err)
	}

	logger.Info("Successfully connected to Solana RPC", "url", c.rpcURL, "payer", c.payer.String())
	return nil
}

// PayerBalance returns the fee payer's balance in SOL
func (c *Client) PayerBalance(ctx context.Context) (float64, error) {
	balance, err := c.rpcClient.GetBalance(ctx, c.payer, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("failed to get payer balance: %w", err)
	}
	return float64(balance.Value) / float64(solana.LAMPORTS_PER_SOL), nil
}

// RecordPayerBalance reports the payer balance to metrics, if enabled
func (c *Client) RecordPayerBalance(ctx context.Context, logger log.Logger) {
	if c.metrics == nil {
		return
	}
	balance, err := c.PayerBalance(ctx)
	if err != nil {
		logger.Error("Failed to get Solana payer balance", "error", err)
		return
	}
	c.metrics.SetPayerBalance(c.payer.String(), balance)
}

// getAccount returns nil without error when the account does not exist
func (c *Client) getAccount(ctx context.Context, address solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	info, err := c.rpcClient.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", address, err)
	}
	if info == nil || info.Value == nil {
		return nil, nil
	}
	return info, nil
}

func (c *Client) accountExists(ctx context.Context, address solana.PublicKey) (bool, error) {
	info, err := c.getAccount(ctx, address)
	if err != nil {
		return false, err
	}
	return info != nil, nil
}

func (c *Client) Close() error {
	return c.rpcClient.Close()
}
