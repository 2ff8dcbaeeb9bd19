package types

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"
)

const (
	// version (1) + guardian set index (4) + signature count (1)
	vaaHeaderLength = 6
	// guardian index (1) + recoverable secp256k1 signature (65)
	vaaSignatureLength = 66
)

// SignedVAA is a decoded VAA together with the raw bytes it was decoded from.
// Digest is keccak256 of the body; it seeds the PostedVAA account and is the
// message the guardians' secp256k1 signatures are checked against on Solana.
type SignedVAA struct {
	*vaa.VAA

	Raw    []byte
	Body   []byte
	Digest common.Hash
}

// DecodeVAAHex decodes a hex encoded VAA with an optional 0x prefix
func DecodeVAAHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return nil, fmt.Errorf("empty VAA")
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("VAA hex has odd length %d", len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid VAA hex: %w", err)
	}
	return raw, nil
}

// ParseSignedVAAHex decodes and parses a hex encoded signed VAA
func ParseSignedVAAHex(s string) (*SignedVAA, error) {
	raw, err := DecodeVAAHex(s)
	if err != nil {
		return nil, err
	}
	return ParseSignedVAA(raw)
}

// ParseSignedVAA parses raw signed VAA bytes using the Wormhole SDK
func ParseSignedVAA(raw []byte) (*SignedVAA, error) {
	v, err := vaa.Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("unable to decode VAA: %w", err)
	}

	bodyStart := vaaHeaderLength + len(v.Signatures)*vaaSignatureLength
	if len(raw) <= bodyStart {
		return nil, fmt.Errorf("VAA too short for %d signatures: %d bytes", len(v.Signatures), len(raw))
	}
	body := raw[bodyStart:]

	return &SignedVAA{
		VAA:    v,
		Raw:    raw,
		Body:   body,
		Digest: crypto.Keccak256Hash(body),
	}, nil
}

// ID returns the canonical chain/emitter/sequence identifier
func (s *SignedVAA) ID() string {
	return s.VAA.MessageID()
}

// Hex returns the raw VAA as lowercase hex without prefix
func (s *SignedVAA) Hex() string {
	return hex.EncodeToString(s.Raw)
}

// PayloadType returns the leading type byte of the payload
func (s *SignedVAA) PayloadType() (uint8, error) {
	return PayloadType(s.Payload)
}

type GuardianSignatureJSON struct {
	Index     uint8  `json:"index"`
	Signature string `json:"signature"`
}

// VAASummary is the printable form of a signed VAA
type VAASummary struct {
	Version            uint8                   `json:"version"`
	GuardianSetIndex   uint32                  `json:"guardianSetIndex"`
	GuardianSignatures []GuardianSignatureJSON `json:"guardianSignatures"`
	Timestamp          time.Time               `json:"timestamp"`
	Nonce              uint32                  `json:"nonce"`
	EmitterChain       uint16                  `json:"emitterChain"`
	EmitterChainName   string                  `json:"emitterChainName"`
	EmitterAddress     string                  `json:"emitterAddress"`
	Sequence           uint64                  `json:"sequence"`
	ConsistencyLevel   uint8                   `json:"consistencyLevel"`
	Payload            string                  `json:"payload"`
	Digest             string                  `json:"digest"`
}

func (s *SignedVAA) Summary() VAASummary {
	sigs := make([]GuardianSignatureJSON, 0, len(s.Signatures))
	for _, sig := range s.Signatures {
		sigs = append(sigs, GuardianSignatureJSON{
			Index:     sig.Index,
			Signature: "0x" + hex.EncodeToString(sig.Signature[:]),
		})
	}

	return VAASummary{
		Version:            s.Version,
		GuardianSetIndex:   s.GuardianSetIndex,
		GuardianSignatures: sigs,
		Timestamp:          s.Timestamp.UTC(),
		Nonce:              s.Nonce,
		EmitterChain:       uint16(s.EmitterChain),
		EmitterChainName:   s.EmitterChain.String(),
		EmitterAddress:     "0x" + hex.EncodeToString(s.EmitterAddress[:]),
		Sequence:           s.Sequence,
		ConsistencyLevel:   s.ConsistencyLevel,
		Payload:            "0x" + hex.EncodeToString(s.Payload),
		Digest:             s.Digest.Hex(),
	}
}
