package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := ParseConfig("../config/sample-config.yaml")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Filters, 4)
}
