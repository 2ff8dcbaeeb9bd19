package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"cosmossdk.io/log"

	"github.com/otimlabs/wormhole-admin/types"
)

// ExistingWrappedAsset returns the wrapped asset attested by v when its
// metadata account already exists, or nil when it has not been created.
func (c *Client) ExistingWrappedAsset(ctx context.Context, v *types.SignedVAA) (*CreateWrappedResult, error) {
	_, accounts, err := c.wrappedAccountsFor(v)
	if err != nil {
		return nil, err
	}
	created, err := c.accountExists(ctx, accounts.WrappedMeta)
	if err != nil || !created {
		return nil, err
	}
	return &CreateWrappedResult{
		Mint:           accounts.Mint,
		WrappedMeta:    accounts.WrappedMeta,
		AlreadyCreated: true,
	}, nil
}

func (c *Client) wrappedAccountsFor(v *types.SignedVAA) (*types.AssetMeta, *WrappedAccounts, error) {
	meta, err := types.ParseAssetMeta(v.Payload)
	if err != nil {
		return nil, nil, fmt.Errorf("VAA %s cannot create a wrapped asset: %w", v.ID(), err)
	}
	accounts, err := DeriveWrappedAccounts(c.coreBridge, c.tokenBridge, v.VAA, v.Digest, meta.TokenChain, meta.TokenAddress)
	if err != nil {
		return nil, nil, err
	}
	return meta, accounts, nil
}

// CreateWrapped creates the wrapped mint and metadata for the asset attested
// by v. The VAA must already be posted. An existing wrapped asset is returned
// without sending anything.
func (c *Client) CreateWrapped(ctx context.Context, logger log.Logger, v *types.SignedVAA) (*CreateWrappedResult, error) {
	meta, accounts, err := c.wrappedAccountsFor(v)
	if err != nil {
		return nil, err
	}
	logger = logger.With("vaa", v.ID(), "token_chain", meta.TokenChain.String(), "symbol", meta.Symbol)

	existing, err := c.ExistingWrappedAsset(ctx, v)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Info("Wrapped asset already exists", "mint", existing.Mint.String())
		return existing, nil
	}

	posted, err := c.accountExists(ctx, accounts.PostedVAA)
	if err != nil {
		return nil, err
	}
	if !posted {
		return nil, fmt.Errorf("VAA %s is not posted at %s", v.ID(), accounts.PostedVAA)
	}

	sig, err := c.Broadcast(ctx, logger, TxRequest{
		Operation:    "create-wrapped",
		Instructions: []solana.Instruction{NewCreateWrappedInstruction(c.tokenBridge, c.coreBridge, c.payer, accounts)},
		Target:       accounts.WrappedMeta,
	})
	if err != nil {
		return nil, fmt.Errorf("create wrapped: %w", err)
	}

	logger.Info("Created wrapped asset", "mint", accounts.Mint.String(), "signature", sig.String())
	return &CreateWrappedResult{
		Mint:        accounts.Mint,
		WrappedMeta: accounts.WrappedMeta,
		Signature:   sig,
	}, nil
}

// NewCreateWrappedInstruction builds the token bridge create_wrapped instruction
func NewCreateWrappedInstruction(tokenBridge, coreBridge, payer solana.PublicKey, accounts *WrappedAccounts) solana.Instruction {
	// Account order must match the token bridge CreateWrapped accounts
	accountMetas := solana.AccountMetaSlice{
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: accounts.Config, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Endpoint, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.PostedVAA, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Claim, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.Mint, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.WrappedMeta, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.SPLMetadata, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.MintAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SysVarRentPubkey, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenMetadataProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: coreBridge, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(tokenBridge, accountMetas, []byte{createWrappedInstruction})
}
