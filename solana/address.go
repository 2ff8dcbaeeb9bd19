package solana

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"
)

// HexToSolanaPublicKey converts a 32-byte Wormhole universal address in hex to a Solana PublicKey
func HexToSolanaPublicKey(hexAddr string) (solana.PublicKey, error) {
	hexAddr = strings.TrimPrefix(strings.TrimSpace(hexAddr), "0x")

	addrBytes, err := hex.DecodeString(hexAddr)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid hex address: %w", err)
	}

	return BytesToSolanaPublicKey(addrBytes)
}

// BytesToSolanaPublicKey converts 32-byte slices to Solana PublicKeys
func BytesToSolanaPublicKey(addrBytes []byte) (solana.PublicKey, error) {
	if len(addrBytes) != 32 {
		return solana.PublicKey{}, fmt.Errorf("address must be exactly 32 bytes, got %d", len(addrBytes))
	}

	return solana.PublicKeyFromBytes(addrBytes), nil
}

// AddressToSolanaPublicKey reinterprets a Wormhole address as a Solana key
func AddressToSolanaPublicKey(addr vaa.Address) solana.PublicKey {
	return solana.PublicKeyFromBytes(addr[:])
}

// ParseAddress accepts either base58 or 32-byte hex
func ParseAddress(s string) (solana.PublicKey, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || len(s) == 64 {
		return HexToSolanaPublicKey(s)
	}
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return pk, nil
}
