package solana

import (
	"context"
	"fmt"
	"time"

	bin "github.com/gagliardetto/binary"
)

// GuardianSetData mirrors the core bridge guardian set account
type GuardianSetData struct {
	Index          uint32
	Keys           [][ethAddressLength]byte
	CreationTime   uint32
	ExpirationTime uint32
}

// DecodeGuardianSet decodes the Borsh encoded guardian set account
func DecodeGuardianSet(data []byte) (*GuardianSetData, error) {
	var gs GuardianSetData
	if err := bin.NewBorshDecoder(data).Decode(&gs); err != nil {
		return nil, fmt.Errorf("failed to decode guardian set: %w", err)
	}
	return &gs, nil
}

// Expired reports whether the set stopped being accepted before now
func (gs *GuardianSetData) Expired(now time.Time) bool {
	return gs.ExpirationTime != 0 && now.Unix() > int64(gs.ExpirationTime)
}

// GetGuardianSet fetches the guardian set with the given index from the core bridge
func (c *Client) GetGuardianSet(ctx context.Context, index uint32) (*GuardianSetData, error) {
	addr, err := DeriveGuardianSet(c.coreBridge, index)
	if err != nil {
		return nil, err
	}

	info, err := c.getAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("guardian set %d not found at %s", index, addr)
	}

	gs, err := DecodeGuardianSet(info.GetBinary())
	if err != nil {
		return nil, err
	}
	if gs.Index != index {
		return nil, fmt.Errorf("guardian set account %s holds index %d, expected %d", addr, gs.Index, index)
	}
	return gs, nil
}
