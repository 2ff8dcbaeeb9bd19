package solana

import (
	"bytes"
	"context"
	"fmt"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"cosmossdk.io/log"

	"github.com/otimlabs/wormhole-admin/types"
)

// postVAAData is the Borsh argument of the core bridge post_vaa instruction
type postVAAData struct {
	Version          uint8
	GuardianSetIndex uint32
	Timestamp        uint32
	Nonce            uint32
	EmitterChain     uint16
	EmitterAddress   [32]byte
	Sequence         uint64
	ConsistencyLevel uint8
	Payload          []byte
}

// PostVAA verifies the guardian signatures of v on chain and posts it to the
// core bridge. A VAA that is already posted is returned without sending anything.
func (c *Client) PostVAA(ctx context.Context, logger log.Logger, v *types.SignedVAA) (*PostVAAResult, error) {
	logger = logger.With("vaa", v.ID())

	accounts, err := DeriveCoreBridgeAccounts(c.coreBridge, v.GuardianSetIndex, v.Digest)
	if err != nil {
		return nil, err
	}

	posted, err := c.accountExists(ctx, accounts.PostedVAA)
	if err != nil {
		return nil, err
	}
	if posted {
		logger.Info("VAA already posted", "posted_vaa", accounts.PostedVAA.String())
		return &PostVAAResult{PostedVAA: accounts.PostedVAA, AlreadyPosted: true}, nil
	}

	gs, err := c.GetGuardianSet(ctx, v.GuardianSetIndex)
	if err != nil {
		return nil, err
	}
	if gs.Expired(time.Now()) {
		return nil, fmt.Errorf("guardian set %d expired at %d", gs.Index, gs.ExpirationTime)
	}

	signatureSet, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate signature set key: %w", err)
	}
	result := &PostVAAResult{
		PostedVAA:    accounts.PostedVAA,
		SignatureSet: signatureSet.PublicKey(),
	}

	batches, err := BuildVerifySignaturesInstructions(c.coreBridge, c.payer, accounts.GuardianSet, signatureSet.PublicKey(), gs, v)
	if err != nil {
		return nil, err
	}
	for i, ixs := range batches {
		sig, err := c.Broadcast(ctx, logger, TxRequest{
			Operation:    "verify-signatures",
			Instructions: ixs,
			Signers:      []solana.PrivateKey{signatureSet},
		})
		if err != nil {
			return nil, fmt.Errorf("verify signatures batch %d/%d: %w", i+1, len(batches), err)
		}
		logger.Debug("Verified signature batch", "batch", i+1, "signature", sig.String())
		result.Signatures = append(result.Signatures, sig)
	}

	postIx, err := NewPostVAAInstruction(c.coreBridge, c.payer, accounts, signatureSet.PublicKey(), v)
	if err != nil {
		return nil, err
	}
	sig, err := c.Broadcast(ctx, logger, TxRequest{
		Operation:    "post-vaa",
		Instructions: []solana.Instruction{postIx},
		Target:       accounts.PostedVAA,
	})
	if err != nil {
		return nil, fmt.Errorf("post vaa: %w", err)
	}
	result.Signatures = append(result.Signatures, sig)

	logger.Info("Posted VAA", "posted_vaa", accounts.PostedVAA.String(), "signature", sig.String())
	return result, nil
}

// BuildVerifySignaturesInstructions splits the VAA signatures into batches of
// at most seven. Each batch is one transaction: the secp256k1 check followed by
// verify_signatures recording which guardians signed into signatureSet.
func BuildVerifySignaturesInstructions(
	coreBridge solana.PublicKey,
	payer solana.PublicKey,
	guardianSet solana.PublicKey,
	signatureSet solana.PublicKey,
	gs *GuardianSetData,
	v *types.SignedVAA,
) ([][]solana.Instruction, error) {
	if len(v.Signatures) == 0 {
		return nil, fmt.Errorf("VAA %s has no signatures", v.ID())
	}

	var batches [][]solana.Instruction
	for start := 0; start < len(v.Signatures); start += maxSignaturesPerBatch {
		end := start + maxSignaturesPerBatch
		if end > len(v.Signatures) {
			end = len(v.Signatures)
		}
		batch := v.Signatures[start:end]

		var signers [maxGuardians]int8
		for i := range signers {
			signers[i] = -1
		}
		addrs := make([][ethAddressLength]byte, 0, len(batch))
		sigs := make([][secpSignatureLength]byte, 0, len(batch))
		for j, sig := range batch {
			if int(sig.Index) >= len(gs.Keys) || int(sig.Index) >= maxGuardians {
				return nil, fmt.Errorf("signature from guardian %d but guardian set %d has %d keys", sig.Index, gs.Index, len(gs.Keys))
			}
			signers[sig.Index] = int8(j)
			addrs = append(addrs, gs.Keys[sig.Index])
			sigs = append(sigs, sig.Signature)
		}

		secpIx, err := NewSecp256k1Instruction(addrs, sigs, v.Digest.Bytes())
		if err != nil {
			return nil, err
		}
		batches = append(batches, []solana.Instruction{
			secpIx,
			NewVerifySignaturesInstruction(coreBridge, payer, guardianSet, signatureSet, signers),
		})
	}
	return batches, nil
}

// NewVerifySignaturesInstruction builds the core bridge verify_signatures
// instruction. signers maps guardian index to position in the preceding
// secp256k1 instruction, -1 for guardians not in the batch.
func NewVerifySignaturesInstruction(coreBridge, payer, guardianSet, signatureSet solana.PublicKey, signers [maxGuardians]int8) solana.Instruction {
	data := make([]byte, 0, 1+maxGuardians)
	data = append(data, verifySignaturesInstruction)
	for _, s := range signers {
		data = append(data, byte(s))
	}

	accountMetas := solana.AccountMetaSlice{
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: guardianSet, IsSigner: false, IsWritable: false},
		{PublicKey: signatureSet, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SysVarInstructionsPubkey, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SysVarRentPubkey, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
	}
	return solana.NewInstruction(coreBridge, accountMetas, data)
}

// NewPostVAAInstruction builds the core bridge post_vaa instruction
func NewPostVAAInstruction(coreBridge, payer solana.PublicKey, accounts *CoreBridgeAccounts, signatureSet solana.PublicKey, v *types.SignedVAA) (solana.Instruction, error) {
	args := postVAAData{
		Version:          v.Version,
		GuardianSetIndex: v.GuardianSetIndex,
		Timestamp:        uint32(v.Timestamp.Unix()), //nolint:gosec // G115: VAA timestamps are u32 on the wire
		Nonce:            v.Nonce,
		EmitterChain:     uint16(v.EmitterChain),
		EmitterAddress:   v.EmitterAddress,
		Sequence:         v.Sequence,
		ConsistencyLevel: v.ConsistencyLevel,
		Payload:          v.Payload,
	}

	buf := new(bytes.Buffer)
	buf.WriteByte(postVAAInstruction)
	if err := bin.NewBorshEncoder(buf).Encode(args); err != nil {
		return nil, fmt.Errorf("failed to encode post_vaa data: %w", err)
	}

	accountMetas := solana.AccountMetaSlice{
		{PublicKey: accounts.GuardianSet, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Bridge, IsSigner: false, IsWritable: false},
		{PublicKey: signatureSet, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.PostedVAA, IsSigner: false, IsWritable: true},
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SysVarClockPubkey, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SysVarRentPubkey, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
	}
	return solana.NewInstruction(coreBridge, accountMetas, buf.Bytes()), nil
}
