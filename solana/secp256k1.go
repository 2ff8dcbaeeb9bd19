package solana

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

const (
	secpOffsetsLength   = 11
	ethAddressLength    = 20
	secpSignatureLength = 65
)

// NewSecp256k1Instruction builds a native secp256k1 program instruction that
// checks each signature over message recovers to the matching eth address.
// All data is carried inline and the instruction must be first in its transaction.
func NewSecp256k1Instruction(ethAddresses [][ethAddressLength]byte, signatures [][secpSignatureLength]byte, message []byte) (solana.Instruction, error) {
	n := len(signatures)
	if n == 0 {
		return nil, fmt.Errorf("no signatures")
	}
	if n != len(ethAddresses) {
		return nil, fmt.Errorf("got %d signatures for %d addresses", n, len(ethAddresses))
	}
	if n > 255 {
		return nil, fmt.Errorf("too many signatures: %d", n)
	}

	dataStart := 1 + n*secpOffsetsLength
	addrStart := dataStart
	sigStart := addrStart + n*ethAddressLength
	msgStart := sigStart + n*secpSignatureLength
	total := msgStart + len(message)
	if total > 0xffff {
		return nil, fmt.Errorf("secp256k1 instruction too large: %d bytes", total)
	}

	data := make([]byte, total)
	data[0] = byte(n)
	for i := 0; i < n; i++ {
		off := data[1+i*secpOffsetsLength : 1+(i+1)*secpOffsetsLength]
		binary.LittleEndian.PutUint16(off[0:2], uint16(sigStart+i*secpSignatureLength))
		off[2] = 0
		binary.LittleEndian.PutUint16(off[3:5], uint16(addrStart+i*ethAddressLength))
		off[5] = 0
		binary.LittleEndian.PutUint16(off[6:8], uint16(msgStart))
		binary.LittleEndian.PutUint16(off[8:10], uint16(len(message)))
		off[10] = 0

		copy(data[addrStart+i*ethAddressLength:], ethAddresses[i][:])
		copy(data[sigStart+i*secpSignatureLength:], signatures[i][:])
	}
	copy(data[msgStart:], message)

	return solana.NewInstruction(solana.Secp256k1ProgramID, solana.AccountMetaSlice{}, data), nil
}
