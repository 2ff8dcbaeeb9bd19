package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cosmossdk.io/log"

	"github.com/otimlabs/wormhole-admin/filters"
	"github.com/otimlabs/wormhole-admin/metrics"
	"github.com/otimlabs/wormhole-admin/types"
)

func CreateWrapped(a *AppState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-wrapped",
		Short: "Post an asset meta VAA and create the wrapped token on Solana",
		Args:  cobra.NoArgs,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.InitAppState()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.Config
			out := cmd.OutOrStdout()

			return runOperation(cmd, a, "create-wrapped", func(ctx context.Context, logger log.Logger, m *metrics.PromMetrics) (bool, error) {
				v, err := resolveVAA(cmd, cfg, logger)
				if err != nil {
					return false, err
				}
				state := types.NewVAAState(v)
				logger = logger.With("vaa", state.ID)

				if err := initializeFilters(ctx, cfg, logger, filters.NewPayloadTypeFilter(types.PayloadAssetMeta)); err != nil {
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

				wrapped, err := client.ExistingWrappedAsset(ctx, v)
				if err != nil {
					state.SetStatus(types.Failed)
					return false, err
				}

				alreadyPosted := true
				if wrapped == nil {
					posted, err := client.PostVAA(ctx, logger, v)
					if err != nil {
						state.SetStatus(types.Failed)
						return false, fmt.Errorf("failed to post VAA: %w", err)
					}
					recordPosted(state, posted)
					alreadyPosted = posted.AlreadyPosted

					wrapped, err = client.CreateWrapped(ctx, logger, v)
					if err != nil {
						state.SetStatus(types.Failed)
						return false, err
					}
				}
				if !wrapped.AlreadyCreated {
					state.AddTx(wrapped.Signature.String())
					fmt.Fprintln(out, "txid", wrapped.Signature.String())
				}
				state.SetStatus(types.Complete)

				fmt.Fprintln(out, "wrappedMint", wrapped.Mint.String())
				fmt.Fprintln(out, "wrappedMeta", wrapped.WrappedMeta.String())
				logger.Info("Wrapped asset ready", "status", state.GetStatus(), "already_created", wrapped.AlreadyCreated, "txs", len(state.Txs()))

				client.RecordPayerBalance(ctx, logger)
				return alreadyPosted && wrapped.AlreadyCreated, nil
			})
		},
	}

	return addVAAFlags(cmd)
}
