package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otimlabs/wormhole-admin/wormhole"
)

func FetchVAA(a *AppState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch-vaa",
		Short: "Fetch a signed VAA from the Wormhole API and print it in hex",
		Args:  cobra.NoArgs,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.InitAppState()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := a.Logger
			cfg := a.Config

			emitter, _ := cmd.Flags().GetString(flagEmitter)
			if emitter == "" {
				return fmt.Errorf("--%s is required", flagEmitter)
			}
			chain, sequence, err := fetchTarget(cmd)
			if err != nil {
				return err
			}

			v, err := wormhole.FetchSignedVAA(cmd.Context(), cfg.Wormhole, logger, chain, emitter, sequence)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), v.Hex())
			return nil
		},
	}

	return addFetchFlags(cmd)
}
