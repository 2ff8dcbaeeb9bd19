package types

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"
)

// Token bridge payload types
const (
	PayloadTransfer            uint8 = 1
	PayloadAssetMeta           uint8 = 2
	PayloadTransferWithPayload uint8 = 3
)

const (
	assetMetaLength     = 100
	tokenTransferLength = 133
)

// PayloadType returns the type byte of a token bridge payload
func PayloadType(payload []byte) (uint8, error) {
	if len(payload) == 0 {
		return 0, fmt.Errorf("empty payload")
	}
	return payload[0], nil
}

// PayloadTypeName returns a readable name for a token bridge payload type
func PayloadTypeName(t uint8) string {
	switch t {
	case PayloadTransfer:
		return "transfer"
	case PayloadAssetMeta:
		return "asset-meta"
	case PayloadTransferWithPayload:
		return "transfer-with-payload"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// AssetMeta is the token attestation payload used to create wrapped assets
type AssetMeta struct {
	TokenAddress vaa.Address
	TokenChain   vaa.ChainID
	Decimals     uint8
	Symbol       string
	Name         string
}

// ParseAssetMeta parses a type 2 token bridge payload
func ParseAssetMeta(payload []byte) (*AssetMeta, error) {
	if len(payload) != assetMetaLength {
		return nil, fmt.Errorf("asset meta payload must be %d bytes, got %d", assetMetaLength, len(payload))
	}
	if payload[0] != PayloadAssetMeta {
		return nil, fmt.Errorf("payload type %s is not asset-meta", PayloadTypeName(payload[0]))
	}

	m := &AssetMeta{
		TokenChain: vaa.ChainID(binary.BigEndian.Uint16(payload[33:35])),
		Decimals:   payload[35],
		Symbol:     string(bytes.TrimRight(payload[36:68], "\x00")),
		Name:       string(bytes.TrimRight(payload[68:100], "\x00")),
	}
	copy(m.TokenAddress[:], payload[1:33])
	return m, nil
}

// TokenTransfer is a type 1 or type 3 token bridge payload.
// Fee is set for type 1, FromAddress and Payload for type 3.
type TokenTransfer struct {
	PayloadType  uint8
	Amount       sdkmath.Int
	TokenAddress vaa.Address
	TokenChain   vaa.ChainID
	To           vaa.Address
	ToChain      vaa.ChainID
	Fee          sdkmath.Int
	FromAddress  vaa.Address
	Payload      []byte
}

// ParseTokenTransfer parses a type 1 or type 3 token bridge payload.
// The shared header comes from the SDK; the fee or sender word and any
// trailing payload follow it at offset 101.
func ParseTokenTransfer(payload []byte) (*TokenTransfer, error) {
	if len(payload) > 0 && !vaa.IsTransfer(payload) {
		return nil, fmt.Errorf("payload type %s is not a token transfer", PayloadTypeName(payload[0]))
	}
	if len(payload) < tokenTransferLength {
		return nil, fmt.Errorf("token transfer payload must be at least %d bytes, got %d", tokenTransferLength, len(payload))
	}

	hdr, err := vaa.DecodeTransferPayloadHdr(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to decode token transfer: %w", err)
	}

	t := &TokenTransfer{
		PayloadType:  hdr.Type,
		Amount:       sdkmath.NewIntFromBigInt(hdr.Amount),
		TokenAddress: hdr.OriginAddress,
		TokenChain:   hdr.OriginChain,
		To:           hdr.TargetAddress,
		ToChain:      hdr.TargetChain,
		Fee:          sdkmath.ZeroInt(),
	}

	if t.PayloadType == PayloadTransfer {
		t.Fee = uint256ToInt(payload[101:133])
	} else {
		copy(t.FromAddress[:], payload[101:133])
		t.Payload = payload[133:]
	}

	return t, nil
}

func uint256ToInt(b []byte) sdkmath.Int {
	return sdkmath.NewIntFromBigInt(new(big.Int).SetBytes(b))
}

// PayloadJSON is the printable form of a token bridge payload
type PayloadJSON struct {
	Type         string `json:"type"`
	TokenAddress string `json:"tokenAddress"`
	TokenChain   uint16 `json:"tokenChain"`

	Decimals *uint8 `json:"decimals,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Name     string `json:"name,omitempty"`

	Amount      string `json:"amount,omitempty"`
	To          string `json:"to,omitempty"`
	ToChain     uint16 `json:"toChain,omitempty"`
	Fee         string `json:"fee,omitempty"`
	FromAddress string `json:"fromAddress,omitempty"`
	Payload     string `json:"payload,omitempty"`
}

func (m *AssetMeta) JSON() PayloadJSON {
	decimals := m.Decimals
	return PayloadJSON{
		Type:         PayloadTypeName(PayloadAssetMeta),
		TokenAddress: "0x" + hex.EncodeToString(m.TokenAddress[:]),
		TokenChain:   uint16(m.TokenChain),
		Decimals:     &decimals,
		Symbol:       m.Symbol,
		Name:         m.Name,
	}
}

func (t *TokenTransfer) JSON() PayloadJSON {
	out := PayloadJSON{
		Type:         PayloadTypeName(t.PayloadType),
		TokenAddress: "0x" + hex.EncodeToString(t.TokenAddress[:]),
		TokenChain:   uint16(t.TokenChain),
		Amount:       t.Amount.String(),
		To:           "0x" + hex.EncodeToString(t.To[:]),
		ToChain:      uint16(t.ToChain),
	}
	if t.PayloadType == PayloadTransfer {
		out.Fee = t.Fee.String()
	} else {
		out.FromAddress = "0x" + hex.EncodeToString(t.FromAddress[:])
		out.Payload = "0x" + hex.EncodeToString(t.Payload)
	}
	return out
}

// DecodePayload parses any supported token bridge payload into its printable form
func DecodePayload(payload []byte) (*PayloadJSON, error) {
	t, err := PayloadType(payload)
	if err != nil {
		return nil, err
	}

	switch t {
	case PayloadAssetMeta:
		m, err := ParseAssetMeta(payload)
		if err != nil {
			return nil, err
		}
		out := m.JSON()
		return &out, nil
	case PayloadTransfer, PayloadTransferWithPayload:
		tt, err := ParseTokenTransfer(payload)
		if err != nil {
			return nil, err
		}
		out := tt.JSON()
		return &out, nil
	default:
		return nil, fmt.Errorf("unsupported payload type %d", t)
	}
}
