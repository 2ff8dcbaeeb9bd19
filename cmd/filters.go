package cmd

import (
	"context"
	"fmt"

	"cosmossdk.io/log"

	"github.com/otimlabs/wormhole-admin/filters"
	"github.com/otimlabs/wormhole-admin/types"
)

// FilterRegistry holds all registered VAA filters
var FilterRegistry *types.FilterRegistry

// initializeFilters creates the filter registry with the command's base filters
// followed by the filters enabled in config
func initializeFilters(ctx context.Context, cfg *types.Config, logger log.Logger, baseFilters ...types.VAAFilter) error {
	FilterRegistry = types.NewFilterRegistry(logger)

	// Register base filters as plugins
	for _, filter := range baseFilters {
		if err := filter.Initialize(ctx, map[string]interface{}{}, logger); err != nil {
			return fmt.Errorf("failed to initialize %s filter: %w", filter.Name(), err)
		}
		FilterRegistry.Register(filter)
	}

	// Register user-configured filters from config
	for _, filterCfg := range cfg.Filters {
		if !filterCfg.Enabled {
			logger.Debug("Skipping disabled filter", "name", filterCfg.Name)
			continue
		}

		var filter types.VAAFilter
		switch filterCfg.Name {
		case "emitter-allowlist":
			filter = filters.NewEmitterAllowlistFilter()
		case "payload-type":
			filter = filters.NewPayloadTypeFilter()
		case "low-transfer":
			filter = filters.NewLowTransferFilter()
		case "target-chain":
			filter = filters.NewTargetChainFilter()
		default:
			logger.Info("Unknown filter type, skipping", "name", filterCfg.Name)
			continue
		}

		config := filterCfg.Config
		if config == nil {
			config = map[string]interface{}{}
		}
		if err := filter.Initialize(ctx, config, logger); err != nil {
			return fmt.Errorf("failed to initialize filter %s: %w", filterCfg.Name, err)
		}

		FilterRegistry.Register(filter)
		logger.Info("Registered custom filter", "name", filterCfg.Name)
	}

	return nil
}

// closeFilters releases filter resources such as background allowlist refreshes
func closeFilters(logger log.Logger) {
	if FilterRegistry == nil {
		return
	}
	if err := FilterRegistry.Close(); err != nil {
		logger.Error("Error closing filter registry", "error", err)
	}
}

// checkFilters refuses a VAA rejected by any registered filter
func checkFilters(ctx context.Context, logger log.Logger, v *types.SignedVAA, state *types.VAAState) error {
	if FilterRegistry == nil {
		return nil
	}
	if filtered, reason := FilterRegistry.Filter(ctx, v); filtered {
		state.SetStatus(types.Filtered)
		logger.Info("Filtered VAA", "vaa", v.ID(), "reason", reason)
		return fmt.Errorf("%w: %s: %s", errFiltered, v.ID(), reason)
	}
	return nil
}
