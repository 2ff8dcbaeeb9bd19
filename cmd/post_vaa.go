package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cosmossdk.io/log"

	"github.com/otimlabs/wormhole-admin/filters"
	"github.com/otimlabs/wormhole-admin/metrics"
	"github.com/otimlabs/wormhole-admin/solana"
	"github.com/otimlabs/wormhole-admin/types"
)

func PostVAA(a *AppState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post-vaa",
		Short: "Verify guardian signatures and post a signed VAA to the Solana core bridge",
		Args:  cobra.NoArgs,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.InitAppState()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.Config
			out := cmd.OutOrStdout()

			return runOperation(cmd, a, "post-vaa", func(ctx context.Context, logger log.Logger, m *metrics.PromMetrics) (bool, error) {
				v, err := resolveVAA(cmd, cfg, logger)
				if err != nil {
					return false, err
				}
				state := types.NewVAAState(v)
				logger = logger.With("vaa", state.ID)

				if err := initializeFilters(ctx, cfg, logger, filters.NewTargetChainFilter()); err != nil {
					return false, fmt.Errorf("failed to initialize filters: %w", err)
				}
				defer closeFilters(logger)
				if err := checkFilters(ctx, logger, v, state); err != nil {
					return false, err
				}

				client, err := connectSolana(ctx, out, cfg, logger, m)
				if err != nil {
					return false, err
				}
				defer client.Close()

				res, err := client.PostVAA(ctx, logger, v)
				if err != nil {
					state.SetStatus(types.Failed)
					return false, err
				}
				recordPosted(state, res)

				fmt.Fprintln(out, "postedVAA", res.PostedVAA.String())
				for _, sig := range state.Txs() {
					fmt.Fprintln(out, "txid", sig)
				}
				logger.Info("VAA posted", "status", state.GetStatus(), "already_posted", res.AlreadyPosted, "txs", len(state.Txs()))

				client.RecordPayerBalance(ctx, logger)
				return res.AlreadyPosted, nil
			})
		},
	}

	return addVAAFlags(cmd)
}

// recordPosted moves state through verified to posted. A VAA found already
// posted skips verified since no signature batch was sent.
func recordPosted(state *types.VAAState, res *solana.PostVAAResult) {
	if !res.AlreadyPosted {
		state.SetAccounts(res.PostedVAA.String(), res.SignatureSet.String())
		state.SetStatus(types.Verified)
	} else {
		state.SetAccounts(res.PostedVAA.String(), "")
	}
	for _, sig := range res.Signatures {
		state.AddTx(sig.String())
	}
	state.SetStatus(types.Posted)
}
