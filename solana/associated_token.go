package solana

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/token"

	"cosmossdk.io/log"
)

// AssociatedTokenResult describes the outcome of get-or-create
type AssociatedTokenResult struct {
	Address   solana.PublicKey
	Created   bool
	Signature solana.Signature
}

// GetOrCreateAssociatedTokenAccount returns the associated token account of
// owner for mint, creating it with the payer funding rent when missing.
func (c *Client) GetOrCreateAssociatedTokenAccount(ctx context.Context, logger log.Logger, mint, owner solana.PublicKey) (*AssociatedTokenResult, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive associated token address: %w", err)
	}
	logger = logger.With("mint", mint.String(), "owner", owner.String(), "ata", ata.String())

	info, err := c.getAccount(ctx, ata)
	if err != nil {
		return nil, err
	}
	if info != nil {
		if err := validateTokenAccount(info.Value.Owner, info.GetBinary(), mint, owner); err != nil {
			return nil, fmt.Errorf("account %s: %w", ata, err)
		}
		logger.Info("Associated token account already exists")
		return &AssociatedTokenResult{Address: ata}, nil
	}

	ix := associatedtokenaccount.NewCreateInstruction(c.payer, owner, mint).Build()
	sig, err := c.Broadcast(ctx, logger, TxRequest{
		Operation:    "create-ata",
		Instructions: []solana.Instruction{ix},
		Target:       ata,
	})
	if err != nil {
		return nil, fmt.Errorf("create associated token account: %w", err)
	}

	logger.Info("Created associated token account", "signature", sig.String())
	return &AssociatedTokenResult{Address: ata, Created: true, Signature: sig}, nil
}

// validateTokenAccount checks an existing account is an SPL token account for mint held by owner
func validateTokenAccount(programOwner solana.PublicKey, data []byte, mint, owner solana.PublicKey) error {
	if !programOwner.Equals(solana.TokenProgramID) {
		return fmt.Errorf("not owned by the token program: %s", programOwner)
	}

	var acct token.Account
	if err := bin.NewBinDecoder(data).Decode(&acct); err != nil {
		return fmt.Errorf("failed to decode token account: %w", err)
	}
	if !acct.Mint.Equals(mint) {
		return fmt.Errorf("token account mint is %s, expected %s", acct.Mint, mint)
	}
	if !acct.Owner.Equals(owner) {
		return fmt.Errorf("token account owner is %s, expected %s", acct.Owner, owner)
	}
	return nil
}
