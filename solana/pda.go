package solana

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"
)

func findPDA(name string, programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive %s PDA: %w", name, err)
	}
	return addr, nil
}

func u16BE(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u32BE(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func u64BE(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// DeriveBridgeConfig derives the core bridge state account
func DeriveBridgeConfig(coreBridge solana.PublicKey) (solana.PublicKey, error) {
	return findPDA("bridge", coreBridge, []byte("Bridge"))
}

// DeriveGuardianSet derives the account holding guardian set index
func DeriveGuardianSet(coreBridge solana.PublicKey, index uint32) (solana.PublicKey, error) {
	return findPDA("guardian_set", coreBridge, []byte("GuardianSet"), u32BE(index))
}

// DerivePostedVAA derives the account a VAA with the given body digest is posted to
func DerivePostedVAA(coreBridge solana.PublicKey, digest common.Hash) (solana.PublicKey, error) {
	return findPDA("posted_vaa", coreBridge, []byte("PostedVAA"), digest.Bytes())
}

// DeriveCoreBridgeAccounts derives the core bridge accounts needed by post_vaa
func DeriveCoreBridgeAccounts(coreBridge solana.PublicKey, guardianSetIndex uint32, digest common.Hash) (*CoreBridgeAccounts, error) {
	bridge, err := DeriveBridgeConfig(coreBridge)
	if err != nil {
		return nil, err
	}
	guardianSet, err := DeriveGuardianSet(coreBridge, guardianSetIndex)
	if err != nil {
		return nil, err
	}
	postedVAA, err := DerivePostedVAA(coreBridge, digest)
	if err != nil {
		return nil, err
	}
	return &CoreBridgeAccounts{
		Bridge:      bridge,
		GuardianSet: guardianSet,
		PostedVAA:   postedVAA,
	}, nil
}

// DeriveWrappedMint derives the token bridge mint for a foreign token
func DeriveWrappedMint(tokenBridge solana.PublicKey, tokenChain vaa.ChainID, tokenAddress vaa.Address) (solana.PublicKey, error) {
	return findPDA("wrapped_mint", tokenBridge, []byte("wrapped"), u16BE(uint16(tokenChain)), tokenAddress[:])
}

// DeriveWrappedMeta derives the account recording a wrapped mint's origin
func DeriveWrappedMeta(tokenBridge, mint solana.PublicKey) (solana.PublicKey, error) {
	return findPDA("wrapped_meta", tokenBridge, []byte("meta"), mint.Bytes())
}

// DeriveEndpoint derives the registration of a foreign token bridge emitter
func DeriveEndpoint(tokenBridge solana.PublicKey, chain vaa.ChainID, emitter vaa.Address) (solana.PublicKey, error) {
	return findPDA("endpoint", tokenBridge, u16BE(uint16(chain)), emitter[:])
}

// DeriveClaim derives the replay protection account for a VAA consumed by program
func DeriveClaim(program solana.PublicKey, chain vaa.ChainID, emitter vaa.Address, sequence uint64) (solana.PublicKey, error) {
	return findPDA("claim", program, emitter[:], u16BE(uint16(chain)), u64BE(sequence))
}

// DeriveWrappedAccounts derives every token bridge account used by create_wrapped.
// The VAA must carry an asset meta payload.
func DeriveWrappedAccounts(coreBridge, tokenBridge solana.PublicKey, v *vaa.VAA, digest common.Hash, tokenChain vaa.ChainID, tokenAddress vaa.Address) (*WrappedAccounts, error) {
	config, err := findPDA("config", tokenBridge, []byte("config"))
	if err != nil {
		return nil, err
	}
	endpoint, err := DeriveEndpoint(tokenBridge, v.EmitterChain, v.EmitterAddress)
	if err != nil {
		return nil, err
	}
	postedVAA, err := DerivePostedVAA(coreBridge, digest)
	if err != nil {
		return nil, err
	}
	claim, err := DeriveClaim(tokenBridge, v.EmitterChain, v.EmitterAddress, v.Sequence)
	if err != nil {
		return nil, err
	}
	mint, err := DeriveWrappedMint(tokenBridge, tokenChain, tokenAddress)
	if err != nil {
		return nil, err
	}
	wrappedMeta, err := DeriveWrappedMeta(tokenBridge, mint)
	if err != nil {
		return nil, err
	}
	splMetadata, _, err := solana.FindTokenMetadataAddress(mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive spl_metadata PDA: %w", err)
	}
	mintAuthority, err := findPDA("mint_authority", tokenBridge, []byte("mint_signer"))
	if err != nil {
		return nil, err
	}

	return &WrappedAccounts{
		Config:        config,
		Endpoint:      endpoint,
		PostedVAA:     postedVAA,
		Claim:         claim,
		Mint:          mint,
		WrappedMeta:   wrappedMeta,
		SPLMetadata:   splMetadata,
		MintAuthority: mintAuthority,
	}, nil
}
