package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"

	"cosmossdk.io/log"

	"github.com/otimlabs/wormhole-admin/types"
	"github.com/otimlabs/wormhole-admin/wormhole"
)

// resolveVAA returns the signed VAA given by exactly one of --vaa, --vaa-file
// or --emitter-chain/--emitter/--sequence
func resolveVAA(cmd *cobra.Command, cfg *types.Config, logger log.Logger) (*types.SignedVAA, error) {
	flags := cmd.Flags()
	vaaHex, _ := flags.GetString(flagVAA)
	vaaFile, _ := flags.GetString(flagVAAFile)
	emitter, _ := flags.GetString(flagEmitter)

	sources := 0
	for _, set := range []bool{vaaHex != "", vaaFile != "", emitter != ""} {
		if set {
			sources++
		}
	}
	if sources == 0 {
		return nil, fmt.Errorf("a VAA is required: use --%s, --%s or --%s with --%s and --%s",
			flagVAA, flagVAAFile, flagEmitter, flagEmitterChain, flagSequence)
	}
	if sources > 1 {
		return nil, fmt.Errorf("only one of --%s, --%s or --%s may be used", flagVAA, flagVAAFile, flagEmitter)
	}

	switch {
	case vaaHex != "":
		v, err := types.ParseSignedVAAHex(vaaHex)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", flagVAA, err)
		}
		return v, nil
	case vaaFile != "":
		return readVAAFile(vaaFile)
	default:
		chain, sequence, err := fetchTarget(cmd)
		if err != nil {
			return nil, err
		}
		return wormhole.FetchSignedVAA(cmd.Context(), cfg.Wormhole, logger, chain, emitter, sequence)
	}
}

// readVAAFile accepts hex text or the raw VAA bytes
func readVAAFile(path string) (*types.SignedVAA, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read VAA file: %w", err)
	}

	if v, err := types.ParseSignedVAAHex(string(content)); err == nil {
		return v, nil
	}
	v, err := types.ParseSignedVAA(content)
	if err != nil {
		return nil, fmt.Errorf("VAA file %s is neither hex nor a binary VAA: %w", path, err)
	}
	return v, nil
}

func fetchTarget(cmd *cobra.Command) (vaa.ChainID, uint64, error) {
	chainStr, _ := cmd.Flags().GetString(flagEmitterChain)
	if chainStr == "" {
		return 0, 0, fmt.Errorf("--%s is required with --%s", flagEmitterChain, flagEmitter)
	}
	chain, err := parseChainID(chainStr)
	if err != nil {
		return 0, 0, err
	}

	if !cmd.Flags().Changed(flagSequence) {
		return 0, 0, fmt.Errorf("--%s is required with --%s", flagSequence, flagEmitter)
	}
	sequence, err := cmd.Flags().GetUint64(flagSequence)
	if err != nil {
		return 0, 0, err
	}
	return chain, sequence, nil
}

// parseChainID accepts a numeric wormhole chain id or a chain name
func parseChainID(s string) (vaa.ChainID, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseUint(s, 10, 16); err == nil {
		if n == 0 {
			return 0, errors.New("chain id 0 is unset")
		}
		return vaa.ChainID(n), nil
	}
	chain, err := vaa.ChainIDFromString(s)
	if err != nil {
		return 0, fmt.Errorf("unknown chain %q: %w", s, err)
	}
	return chain, nil
}
