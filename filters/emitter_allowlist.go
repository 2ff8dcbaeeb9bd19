package filters

import (
	"context"
	"fmt"

	"cosmossdk.io/log"

	"github.com/otimlabs/wormhole-admin/types"
)

// EmitterAllowlistFilter filters VAAs from emitters that are not allowlisted.
// The list comes from "emitters" in the filter config or from a data provider.
type EmitterAllowlistFilter struct {
	allowlist *types.EmitterAllowlist
	provider  types.DataProvider
	cancel    context.CancelFunc
	logger    log.Logger
}

func NewEmitterAllowlistFilter() *EmitterAllowlistFilter {
	return &EmitterAllowlistFilter{}
}

func (f *EmitterAllowlistFilter) Name() string {
	return "emitter-allowlist"
}

func (f *EmitterAllowlistFilter) Initialize(ctx context.Context, config map[string]interface{}, logger log.Logger) error {
	f.logger = logger

	if raw, ok := config["emitters"]; ok {
		provider := types.NewStaticListProvider()
		if err := provider.Initialize(map[string]interface{}{
			"lists": map[string]interface{}{"emitters": raw},
		}); err != nil {
			return fmt.Errorf("emitter-allowlist filter: %w", err)
		}
		f.provider = provider
		f.allowlist = types.NewEmitterAllowlist(provider, "emitters", 0, logger)
		if err := f.allowlist.Load(ctx); err != nil {
			return err
		}
		logger.Info("Emitter allowlist filter initialized", "provider", provider.Name(), "count", f.allowlist.Count())
		return nil
	}

	providerName, ok := config["provider"].(string)
	if !ok {
		return fmt.Errorf("emitter-allowlist filter requires 'emitters' or 'provider' in config")
	}
	providerConfig, ok := config["provider_config"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("emitter-allowlist filter requires 'provider_config' in config")
	}

	switch providerName {
	case "quicknode-kv":
		f.provider = types.NewQuickNodeKVProvider()
	case "static":
		f.provider = types.NewStaticListProvider()
	default:
		return fmt.Errorf("unknown provider: %s", providerName)
	}
	if err := f.provider.Initialize(providerConfig); err != nil {
		return fmt.Errorf("failed to initialize provider: %w", err)
	}

	kvKey, ok := config["kv_key"].(string)
	if !ok || kvKey == "" {
		return fmt.Errorf("emitter-allowlist filter requires 'kv_key' in config")
	}

	var refreshInterval uint
	if val, ok := config["refresh_interval"].(int); ok && val > 0 {
		refreshInterval = uint(val)
	}
	f.allowlist = types.NewEmitterAllowlist(f.provider, kvKey, refreshInterval, logger)

	var refreshCtx context.Context
	refreshCtx, f.cancel = context.WithCancel(ctx)
	if err := f.allowlist.Start(refreshCtx); err != nil {
		logger.Error("Failed to fetch initial allowlist", "error", err)
		f.cancel()
		return err
	}

	logger.Info("Emitter allowlist filter initialized",
		"provider", providerName,
		"kv_key", kvKey,
		"initial_count", f.allowlist.Count())
	return nil
}

func (f *EmitterAllowlistFilter) Filter(_ context.Context, v *types.SignedVAA) (bool, string, error) {
	if f.allowlist.IsAllowed(v.EmitterChain, v.EmitterAddress) {
		return false, "", nil
	}
	reason := fmt.Sprintf("emitter not allowlisted: chain=%d emitter=%x", uint16(v.EmitterChain), v.EmitterAddress[:])
	return true, reason, nil
}

// Close stops the background refresh and releases the provider
func (f *EmitterAllowlistFilter) Close() error {
	if f.cancel != nil {
		f.cancel()
	}
	if f.provider != nil {
		return f.provider.Close()
	}
	return nil
}
