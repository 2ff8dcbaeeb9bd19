package types

import (
	"fmt"
	"strings"
)

// VAASource selects the REST API flavor used to fetch signed VAAs
type VAASource int

const (
	VAASourceGuardian     VAASource = iota + 1 // guardian: /v1/signed_vaa/{chain}/{emitter}/{seq}
	VAASourceWormholescan                      // wormholescan: /api/v1/vaas/{chain}/{emitter}/{seq}
)

func (s VAASource) String() string {
	switch s {
	case VAASourceGuardian:
		return "guardian"
	case VAASourceWormholescan:
		return "wormholescan"
	default:
		return "guardian"
	}
}

// ParseVAASource parses a string into VAASource, returns error for invalid values
func ParseVAASource(s string) (VAASource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "guardian", "":
		return VAASourceGuardian, nil
	case "wormholescan", "scan":
		return VAASourceWormholescan, nil
	default:
		return 0, fmt.Errorf("invalid VAA source %q: must be 'guardian' or 'wormholescan'", s)
	}
}
