package types

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"
)

const (
	// DefaultAllowlistRefreshInterval is the default refresh interval in seconds (5 minutes)
	DefaultAllowlistRefreshInterval = 300

	anyChain = "*"
)

// EmitterAllowlist caches allowed emitters keyed by chain and 32 byte address.
// Entries are either "<chain>/<emitter hex>" or a bare emitter hex that matches any chain.
type EmitterAllowlist struct {
	mu              sync.RWMutex
	allowed         map[string]bool
	provider        DataProvider
	key             string
	refreshInterval time.Duration
	logger          log.Logger
}

func NewEmitterAllowlist(provider DataProvider, key string, refreshInterval uint, logger log.Logger) *EmitterAllowlist {
	if refreshInterval == 0 {
		refreshInterval = DefaultAllowlistRefreshInterval
		logger.Debug("Using default allowlist refresh interval", "interval_seconds", refreshInterval)
	}

	return &EmitterAllowlist{
		allowed:         make(map[string]bool),
		provider:        provider,
		key:             key,
		refreshInterval: time.Duration(refreshInterval) * time.Second, //nolint:gosec // G115: config value
		logger:          logger,
	}
}

// Load performs a single synchronous fetch
func (a *EmitterAllowlist) Load(ctx context.Context) error {
	items, err := a.provider.FetchList(ctx, a.key)
	if err != nil {
		return fmt.Errorf("failed to fetch allowlist %q from %s: %w", a.key, a.provider.Name(), err)
	}
	a.Set(items)
	if a.Count() == 0 {
		a.logger.Info("Emitter allowlist is empty after refresh")
	}
	return nil
}

// Start loads the list once and then refreshes it in the background until
// ctx is done. No refresh loop is started when the first load fails.
func (a *EmitterAllowlist) Start(ctx context.Context) error {
	if err := a.Load(ctx); err != nil {
		return err
	}
	a.logger.Info("Initial allowlist loaded", "count", a.Count())

	ticker := time.NewTicker(a.refreshInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := a.Load(ctx); err != nil {
					a.logger.Error("Failed to refresh allowlist", "error", err)
				}
			}
		}
	}()
	return nil
}

// Set replaces the cached entries. Malformed entries are dropped.
func (a *EmitterAllowlist) Set(items []string) {
	next := make(map[string]bool, len(items))
	for _, item := range items {
		k, err := NormalizeEmitterEntry(item)
		if err != nil {
			a.logger.Error("Skipping invalid allowlist entry", "entry", item, "error", err)
			continue
		}
		next[k] = true
	}

	a.mu.Lock()
	a.allowed = next
	a.mu.Unlock()
}

func (a *EmitterAllowlist) IsAllowed(chain vaa.ChainID, emitter vaa.Address) bool {
	addr := hex.EncodeToString(emitter[:])

	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.allowed[emitterKey(strconv.Itoa(int(chain)), addr)] || a.allowed[emitterKey(anyChain, addr)]
}

func (a *EmitterAllowlist) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.allowed)
}

// NormalizeEmitterEntry converts an allowlist entry into its cache key
func NormalizeEmitterEntry(entry string) (string, error) {
	entry = strings.ToLower(strings.TrimSpace(entry))
	chain := anyChain
	if i := strings.IndexByte(entry, '/'); i >= 0 {
		c, err := strconv.ParseUint(entry[:i], 10, 16)
		if err != nil {
			return "", fmt.Errorf("invalid chain id %q", entry[:i])
		}
		chain = strconv.FormatUint(c, 10)
		entry = entry[i+1:]
	}

	entry = strings.TrimPrefix(entry, "0x")
	b, err := hex.DecodeString(entry)
	if err != nil {
		return "", fmt.Errorf("invalid emitter hex: %w", err)
	}
	if len(b) != 32 {
		return "", fmt.Errorf("emitter must be 32 bytes, got %d", len(b))
	}
	return emitterKey(chain, entry), nil
}

func emitterKey(chain, addr string) string {
	return chain + "/" + addr
}
