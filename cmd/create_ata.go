package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cosmossdk.io/log"

	"github.com/otimlabs/wormhole-admin/metrics"
	"github.com/otimlabs/wormhole-admin/solana"
)

func CreateATA(a *AppState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-ata",
		Short: "Get or create the associated token account of a wallet for a mint",
		Args:  cobra.NoArgs,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.InitAppState()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.Config
			out := cmd.OutOrStdout()

			return runOperation(cmd, a, "create-ata", func(ctx context.Context, logger log.Logger, m *metrics.PromMetrics) (bool, error) {
				client, err := connectSolana(ctx, out, cfg, logger, m)
				if err != nil {
					return false, err
				}
				defer client.Close()

				mint := client.Mint()
				if s, _ := cmd.Flags().GetString(flagMint); s != "" {
					if mint, err = solana.ParseAddress(s); err != nil {
						return false, fmt.Errorf("invalid --%s: %w", flagMint, err)
					}
				}
				owner := client.Payer()
				if s, _ := cmd.Flags().GetString(flagOwner); s != "" {
					if owner, err = solana.ParseAddress(s); err != nil {
						return false, fmt.Errorf("invalid --%s: %w", flagOwner, err)
					}
				}

				res, err := client.GetOrCreateAssociatedTokenAccount(ctx, logger, mint, owner)
				if err != nil {
					return false, err
				}

				fmt.Fprintln(out, "associatedTokenAccount", res.Address.String())
				if res.Created {
					fmt.Fprintln(out, "txid", res.Signature.String())
				}

				client.RecordPayerBalance(ctx, logger)
				return !res.Created, nil
			})
		},
	}

	cmd.Flags().String(flagMint, "", "token mint, defaults to solana.mint from config")
	cmd.Flags().String(flagOwner, "", "wallet owning the token account, defaults to the payer")
	return cmd
}
