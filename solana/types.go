package solana

import (
	"github.com/gagliardetto/solana-go"
)

// Devnet deployments used when the config leaves an address empty
var (
	DevnetCoreBridge  = parsePublicKey("3u8hJUVTA4jH1wYAyUur7FFZVQ8H635K3tSHHF4ssjQ5")
	DevnetTokenBridge = parsePublicKey("DZnkkTmCiFWfYTfT41X3Rd1kDgozqzxWaHqsw6W4x2oe")
	DevnetMint        = parsePublicKey("AwcKdvJMfwYWTGY4TJzX8XgjY8kk97izi7zrxTseWTAT")
)

// Core bridge instruction indices
const (
	postVAAInstruction          byte = 2
	verifySignaturesInstruction byte = 7
)

// Token bridge instruction indices
const (
	createWrappedInstruction byte = 7
)

const (
	// guardian signatures checked per verify_signatures transaction
	maxSignaturesPerBatch = 7
	// length of the signers array in verify_signatures
	maxGuardians = 19
)

// CoreBridgeAccounts are the core bridge PDAs touched when posting a VAA
type CoreBridgeAccounts struct {
	Bridge      solana.PublicKey
	GuardianSet solana.PublicKey
	PostedVAA   solana.PublicKey
}

// WrappedAccounts are the token bridge PDAs touched by create_wrapped
type WrappedAccounts struct {
	Config        solana.PublicKey
	Endpoint      solana.PublicKey
	PostedVAA     solana.PublicKey
	Claim         solana.PublicKey
	Mint          solana.PublicKey
	WrappedMeta   solana.PublicKey
	SPLMetadata   solana.PublicKey
	MintAuthority solana.PublicKey
}

// PostVAAResult describes the outcome of posting a VAA
type PostVAAResult struct {
	PostedVAA     solana.PublicKey
	SignatureSet  solana.PublicKey
	Signatures    []solana.Signature
	AlreadyPosted bool
}

// CreateWrappedResult describes the outcome of creating a wrapped asset
type CreateWrappedResult struct {
	Mint           solana.PublicKey
	WrappedMeta    solana.PublicKey
	Signature      solana.Signature
	AlreadyCreated bool
}

func parsePublicKey(s string) solana.PublicKey {
	return solana.MustPublicKeyFromBase58(s)
}
