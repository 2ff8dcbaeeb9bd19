package solana

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

var solMint = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")

func TestHexToSolanaPublicKey(t *testing.T) {
	// wrapped SOL mint as a 32-byte Wormhole address
	pk, err := HexToSolanaPublicKey("0x069b8857feab8184fb687f634618c035dac439dc1aeb3b5598a0f00000000001")
	require.NoError(t, err)
	require.Equal(t, solMint, pk)

	_, err = HexToSolanaPublicKey("0x1234")
	require.Error(t, err)

	_, err = HexToSolanaPublicKey("zz")
	require.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	pk, err := ParseAddress("So11111111111111111111111111111111111111112")
	require.NoError(t, err)
	require.Equal(t, solMint, pk)

	pk, err = ParseAddress("069b8857feab8184fb687f634618c035dac439dc1aeb3b5598a0f00000000001")
	require.NoError(t, err)
	require.Equal(t, solMint, pk)

	_, err = ParseAddress("not-an-address")
	require.Error(t, err)
}
