package solana

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestNewSecp256k1Instruction_Layout(t *testing.T) {
	addrs := [][20]byte{{0x01}, {0x02}}
	sigs := [][65]byte{{0xaa}, {0xbb}}
	msg := make([]byte, 32)
	msg[0] = 0xcc

	ix, err := NewSecp256k1Instruction(addrs, sigs, msg)
	require.NoError(t, err)
	require.Equal(t, solana.Secp256k1ProgramID, ix.ProgramID())
	require.Empty(t, ix.Accounts())

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 1+2*11+2*20+2*65+32)
	require.Equal(t, byte(2), data[0])

	const (
		addrStart = 23
		sigStart  = addrStart + 2*20
		msgStart  = sigStart + 2*65
	)
	for i := 0; i < 2; i++ {
		off := data[1+i*11 : 1+(i+1)*11]
		require.Equal(t, uint16(sigStart+i*65), binary.LittleEndian.Uint16(off[0:2]))
		require.Equal(t, byte(0), off[2])
		require.Equal(t, uint16(addrStart+i*20), binary.LittleEndian.Uint16(off[3:5]))
		require.Equal(t, byte(0), off[5])
		require.Equal(t, uint16(msgStart), binary.LittleEndian.Uint16(off[6:8]))
		require.Equal(t, uint16(32), binary.LittleEndian.Uint16(off[8:10]))
		require.Equal(t, byte(0), off[10])
	}

	require.Equal(t, byte(0x01), data[addrStart])
	require.Equal(t, byte(0x02), data[addrStart+20])
	require.Equal(t, byte(0xaa), data[sigStart])
	require.Equal(t, byte(0xbb), data[sigStart+65])
	require.Equal(t, msg, data[msgStart:])
}

func TestNewSecp256k1Instruction_Errors(t *testing.T) {
	_, err := NewSecp256k1Instruction(nil, nil, []byte{1})
	require.Error(t, err)

	_, err = NewSecp256k1Instruction([][20]byte{{}}, [][65]byte{{}, {}}, []byte{1})
	require.Error(t, err)
}
