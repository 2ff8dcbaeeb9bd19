package filters

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"

	"github.com/otimlabs/wormhole-admin/types"
)

// TargetChainFilter filters token transfers that are not addressed to Solana.
// Other payload types pass through.
type TargetChainFilter struct {
	target vaa.ChainID
}

func NewTargetChainFilter() *TargetChainFilter {
	return &TargetChainFilter{target: vaa.ChainIDSolana}
}

func (f *TargetChainFilter) Name() string {
	return "target-chain"
}

func (f *TargetChainFilter) Initialize(_ context.Context, config map[string]interface{}, logger log.Logger) error {
	if raw, ok := config["chain"]; ok {
		chain, ok := raw.(int)
		if !ok || chain <= 0 || chain > 0xffff {
			return fmt.Errorf("target-chain filter: invalid chain %v", raw)
		}
		f.target = vaa.ChainID(chain)
	}
	logger.Info("Target chain filter initialized", "chain", f.target.String())
	return nil
}

func (f *TargetChainFilter) Filter(_ context.Context, v *types.SignedVAA) (bool, string, error) {
	if !vaa.IsTransfer(v.Payload) {
		return false, "", nil
	}

	transfer, err := types.ParseTokenTransfer(v.Payload)
	if err != nil {
		return true, fmt.Sprintf("not a valid token transfer: %v", err), nil
	}
	if transfer.ToChain != f.target {
		return true, fmt.Sprintf("transfer targets chain %s, expected %s", transfer.ToChain, f.target), nil
	}
	return false, "", nil
}

func (f *TargetChainFilter) Close() error {
	return nil
}
