package solana

import (
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"

	testutil "github.com/otimlabs/wormhole-admin/test_util"
	"github.com/otimlabs/wormhole-admin/types"
)

func TestNewPostVAAInstruction(t *testing.T) {
	v := testutil.LoadVAAFixture(t, testutil.TransferWithPayloadVAA)
	payer := solana.NewWallet().PublicKey()
	sigSet := solana.NewWallet().PublicKey()

	accounts, err := DeriveCoreBridgeAccounts(DevnetCoreBridge, v.GuardianSetIndex, v.Digest)
	require.NoError(t, err)

	ix, err := NewPostVAAInstruction(DevnetCoreBridge, payer, accounts, sigSet, v)
	require.NoError(t, err)
	require.Equal(t, DevnetCoreBridge, ix.ProgramID())
	require.Len(t, ix.Accounts(), 8)
	require.Equal(t, accounts.PostedVAA, ix.Accounts()[3].PublicKey)
	require.True(t, ix.Accounts()[3].IsWritable)
	require.True(t, ix.Accounts()[4].IsSigner)

	data, err := ix.Data()
	require.NoError(t, err)
	require.Equal(t, postVAAInstruction, data[0])

	var args postVAAData
	require.NoError(t, bin.NewBorshDecoder(data[1:]).Decode(&args))
	require.Equal(t, uint8(1), args.Version)
	require.Equal(t, uint32(1695981689), args.Timestamp)
	require.Equal(t, uint16(21), args.EmitterChain)
	require.Equal(t, uint64(126), args.Sequence)
	require.Equal(t, [32]byte(v.EmitterAddress), args.EmitterAddress)
	require.Equal(t, v.Payload, args.Payload)
}

func TestBuildVerifySignaturesInstructions_Batches(t *testing.T) {
	gs := &GuardianSetData{Keys: make([][20]byte, 19)}
	for i := range gs.Keys {
		gs.Keys[i][0] = byte(i)
	}

	sigs := make([]*vaa.Signature, 13)
	for i := range sigs {
		sigs[i] = &vaa.Signature{Index: uint8(i)}
		sigs[i].Signature[0] = byte(0x80 + i)
	}
	v := &types.SignedVAA{VAA: &vaa.VAA{Signatures: sigs}}

	payer := solana.NewWallet().PublicKey()
	sigSet := solana.NewWallet().PublicKey()
	batches, err := BuildVerifySignaturesInstructions(DevnetCoreBridge, payer, solana.NewWallet().PublicKey(), sigSet, gs, v)
	require.NoError(t, err)
	require.Len(t, batches, 2)

	for _, batch := range batches {
		require.Len(t, batch, 2)
		require.Equal(t, solana.Secp256k1ProgramID, batch[0].ProgramID())
		require.Equal(t, DevnetCoreBridge, batch[1].ProgramID())
		require.Len(t, batch[1].Accounts(), 6)
		require.True(t, batch[1].Accounts()[2].IsSigner)
	}

	secpData, err := batches[1][0].Data()
	require.NoError(t, err)
	require.Equal(t, byte(6), secpData[0])

	verifyData, err := batches[1][1].Data()
	require.NoError(t, err)
	require.Len(t, verifyData, 1+19)
	require.Equal(t, verifySignaturesInstruction, verifyData[0])
	for i := 0; i < 19; i++ {
		want := int8(-1)
		if i >= 7 && i < 13 {
			want = int8(i - 7)
		}
		require.Equal(t, want, int8(verifyData[1+i]), "guardian %d", i)
	}
}

func TestBuildVerifySignaturesInstructions_UnknownGuardian(t *testing.T) {
	v := testutil.LoadVAAFixture(t, testutil.AssetMetaVAA)
	gs := &GuardianSetData{}
	_, err := BuildVerifySignaturesInstructions(DevnetCoreBridge, solana.PublicKey{}, solana.PublicKey{}, solana.PublicKey{}, gs, v)
	require.Error(t, err)
}

func TestPostVAA(t *testing.T) {
	f := testutil.NewFakeSolanaRPC(t)
	c := testClient(t, f.URL)
	v := testutil.LoadVAAFixture(t, testutil.TransferWithPayloadVAA)

	gsAddr, err := DeriveGuardianSet(DevnetCoreBridge, v.GuardianSetIndex)
	require.NoError(t, err)
	f.SetAccount(gsAddr, DevnetCoreBridge, encodeGuardianSet(t, GuardianSetData{
		Index: v.GuardianSetIndex,
		Keys:  [][20]byte{{0x13, 0x94, 0x7b, 0xd4}},
	}))

	res, err := c.PostVAA(context.Background(), testLogger(), v)
	require.NoError(t, err)
	require.False(t, res.AlreadyPosted)
	require.Len(t, res.Signatures, 2)

	txs := f.SentTransactions(t)
	require.Len(t, txs, 2)

	// verify tx is signed by the payer and the signature set
	require.Len(t, txs[0].Signatures, 2)
	require.Len(t, txs[0].Message.Instructions, 2)
	programs := []solana.PublicKey{}
	for _, ix := range txs[0].Message.Instructions {
		programs = append(programs, txs[0].Message.AccountKeys[ix.ProgramIDIndex])
	}
	require.Equal(t, []solana.PublicKey{solana.Secp256k1ProgramID, DevnetCoreBridge}, programs)
	require.Equal(t, c.Payer(), txs[0].Message.AccountKeys[0])

	require.Len(t, txs[1].Signatures, 1)
	require.Len(t, txs[1].Message.Instructions, 1)
	require.Equal(t, res.Signatures[1], txs[1].Signatures[0])
}

func TestPostVAA_AlreadyPosted(t *testing.T) {
	f := testutil.NewFakeSolanaRPC(t)
	c := testClient(t, f.URL)
	v := testutil.LoadVAAFixture(t, testutil.TransferWithPayloadVAA)

	posted, err := DerivePostedVAA(DevnetCoreBridge, v.Digest)
	require.NoError(t, err)
	f.SetAccount(posted, DevnetCoreBridge, []byte{1})

	res, err := c.PostVAA(context.Background(), testLogger(), v)
	require.NoError(t, err)
	require.True(t, res.AlreadyPosted)
	require.Equal(t, posted, res.PostedVAA)
	require.Zero(t, f.SentCount())
}

func TestPostVAA_MissingGuardianSet(t *testing.T) {
	f := testutil.NewFakeSolanaRPC(t)
	c := testClient(t, f.URL)
	v := testutil.LoadVAAFixture(t, testutil.TransferWithPayloadVAA)

	_, err := c.PostVAA(context.Background(), testLogger(), v)
	require.Error(t, err)
	require.Zero(t, f.SentCount())
}
