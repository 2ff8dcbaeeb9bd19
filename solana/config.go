package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/otimlabs/wormhole-admin/types"
)

// NewClientFromSettings loads the fee payer keyfile and builds a Client
func NewClientFromSettings(cfg types.SolanaSettings) (*Client, error) {
	privKey, err := LoadKeypair(cfg.KeypairPath)
	if err != nil {
		return nil, err
	}

	coreBridge, err := publicKeyOrDefault(cfg.CoreBridge, DevnetCoreBridge)
	if err != nil {
		return nil, fmt.Errorf("unable to parse core bridge program address: %w", err)
	}
	tokenBridge, err := publicKeyOrDefault(cfg.TokenBridge, DevnetTokenBridge)
	if err != nil {
		return nil, fmt.Errorf("unable to parse token bridge program address: %w", err)
	}
	mint, err := publicKeyOrDefault(cfg.Mint, DevnetMint)
	if err != nil {
		return nil, fmt.Errorf("unable to parse mint address: %w", err)
	}

	commitment, err := ParseCommitment(cfg.Commitment)
	if err != nil {
		return nil, err
	}

	return NewClient(
		cfg.RPC,
		privKey,
		commitment,
		coreBridge,
		tokenBridge,
		mint,
		cfg.BroadcastRetries,
		cfg.BroadcastRetryInterval,
		cfg.ConfirmTimeout,
	), nil
}

// ParseCommitment maps a config string to an RPC commitment level
func ParseCommitment(s string) (rpc.CommitmentType, error) {
	switch s {
	case "", "processed":
		return rpc.CommitmentProcessed, nil
	case "confirmed":
		return rpc.CommitmentConfirmed, nil
	case "finalized":
		return rpc.CommitmentFinalized, nil
	default:
		return "", fmt.Errorf("unknown commitment %q", s)
	}
}

func publicKeyOrDefault(s string, def solana.PublicKey) (solana.PublicKey, error) {
	if s == "" {
		return def, nil
	}
	return solana.PublicKeyFromBase58(s)
}
