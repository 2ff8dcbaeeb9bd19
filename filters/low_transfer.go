package filters

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"

	"github.com/otimlabs/wormhole-admin/types"
)

// LowTransferFilter filters token transfers below a minimum amount.
// Amounts are in the token bridge's normalized 8 decimal units.
type LowTransferFilter struct {
	minAmount math.Int
	logger    log.Logger
}

func NewLowTransferFilter() *LowTransferFilter {
	return &LowTransferFilter{minAmount: math.ZeroInt()}
}

func (f *LowTransferFilter) Name() string {
	return "low-transfer"
}

func (f *LowTransferFilter) Initialize(_ context.Context, config map[string]interface{}, logger log.Logger) error {
	f.logger = logger
	raw, ok := config["min_amount"]
	if !ok {
		return fmt.Errorf("low-transfer filter requires 'min_amount' in config")
	}

	switch v := raw.(type) {
	case int:
		if v < 0 {
			return fmt.Errorf("min_amount must not be negative")
		}
		f.minAmount = math.NewInt(int64(v))
	case string:
		amount, ok := math.NewIntFromString(v)
		if !ok || amount.IsNegative() {
			return fmt.Errorf("invalid min_amount %q", v)
		}
		f.minAmount = amount
	default:
		return fmt.Errorf("min_amount has invalid type %T", raw)
	}

	logger.Info("Low transfer filter initialized", "min_amount", f.minAmount.String())
	return nil
}

func (f *LowTransferFilter) Filter(_ context.Context, v *types.SignedVAA) (bool, string, error) {
	if !vaa.IsTransfer(v.Payload) {
		return false, "", nil
	}

	transfer, err := types.ParseTokenTransfer(v.Payload)
	if err != nil {
		return true, fmt.Sprintf("not a valid token transfer: %v", err), nil
	}

	if transfer.Amount.LT(f.minAmount) {
		reason := fmt.Sprintf("transfer amount too low: amount=%s min_amount=%s",
			transfer.Amount.String(), f.minAmount.String())
		return true, reason, nil
	}
	return false, "", nil
}

func (f *LowTransferFilter) Close() error {
	return nil
}
