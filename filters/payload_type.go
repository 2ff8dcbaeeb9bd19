package filters

import (
	"context"
	"fmt"
	"strings"

	"cosmossdk.io/log"

	"github.com/otimlabs/wormhole-admin/types"
)

// PayloadTypeFilter filters VAAs whose token bridge payload type is not allowed
type PayloadTypeFilter struct {
	allowed map[uint8]bool
}

// NewPayloadTypeFilter allows the given types. With none given, Initialize must supply them.
func NewPayloadTypeFilter(allowed ...uint8) *PayloadTypeFilter {
	f := &PayloadTypeFilter{allowed: make(map[uint8]bool)}
	for _, t := range allowed {
		f.allowed[t] = true
	}
	return f
}

func (f *PayloadTypeFilter) Name() string {
	return "payload-type"
}

// Initialize reads "allowed": a list of payload type numbers or names
func (f *PayloadTypeFilter) Initialize(_ context.Context, config map[string]interface{}, logger log.Logger) error {
	raw, ok := config["allowed"].([]interface{})
	if !ok {
		if len(f.allowed) == 0 {
			return fmt.Errorf("payload-type filter requires 'allowed' in config")
		}
		return nil
	}

	for _, item := range raw {
		t, err := parsePayloadType(item)
		if err != nil {
			return fmt.Errorf("payload-type filter: %w", err)
		}
		f.allowed[t] = true
	}
	logger.Info("Payload type filter initialized", "allowed_count", len(f.allowed))
	return nil
}

func (f *PayloadTypeFilter) Filter(_ context.Context, v *types.SignedVAA) (bool, string, error) {
	t, err := v.PayloadType()
	if err != nil {
		return true, "empty payload", nil
	}
	if f.allowed[t] {
		return false, "", nil
	}
	return true, fmt.Sprintf("payload type %s not allowed", types.PayloadTypeName(t)), nil
}

func (f *PayloadTypeFilter) Close() error {
	return nil
}

func parsePayloadType(v interface{}) (uint8, error) {
	switch val := v.(type) {
	case int:
		if val < 0 || val > 255 {
			return 0, fmt.Errorf("payload type %d out of range", val)
		}
		return uint8(val), nil
	case string:
		for _, t := range []uint8{types.PayloadTransfer, types.PayloadAssetMeta, types.PayloadTransferWithPayload} {
			if strings.EqualFold(val, types.PayloadTypeName(t)) {
				return t, nil
			}
		}
		return 0, fmt.Errorf("unknown payload type %q", val)
	default:
		return 0, fmt.Errorf("invalid payload type %v (%T)", v, v)
	}
}
