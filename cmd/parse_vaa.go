package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otimlabs/wormhole-admin/solana"
	"github.com/otimlabs/wormhole-admin/types"
)

// parsedVAA is printed by parse-vaa
type parsedVAA struct {
	VAA     types.VAASummary   `json:"vaa"`
	Payload *types.PayloadJSON `json:"payload,omitempty"`
	Solana  solanaAccounts     `json:"solana"`
}

// solanaAccounts are the addresses the VAA maps to on the configured programs
type solanaAccounts struct {
	PostedVAA   string `json:"postedVAA"`
	WrappedMint string `json:"wrappedMint,omitempty"`
}

func ParseVAA(a *AppState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse-vaa",
		Short: "Decode a signed VAA and its token bridge payload as JSON",
		Args:  cobra.NoArgs,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.InitAppState()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := a.Logger
			cfg := a.Config

			v, err := resolveVAA(cmd, cfg, logger)
			if err != nil {
				return err
			}

			out := parsedVAA{VAA: v.Summary()}
			if payload, err := types.DecodePayload(v.Payload); err != nil {
				logger.Debug("Payload is not a token bridge payload", "error", err)
			} else {
				out.Payload = payload
			}

			coreBridge, err := solana.ParseAddress(cfg.Solana.CoreBridge)
			if err != nil {
				return fmt.Errorf("invalid core bridge address: %w", err)
			}
			postedVAA, err := solana.DerivePostedVAA(coreBridge, v.Digest)
			if err != nil {
				return err
			}
			out.Solana.PostedVAA = postedVAA.String()

			if meta, err := types.ParseAssetMeta(v.Payload); err == nil {
				tokenBridge, err := solana.ParseAddress(cfg.Solana.TokenBridge)
				if err != nil {
					return fmt.Errorf("invalid token bridge address: %w", err)
				}
				mint, err := solana.DeriveWrappedMint(tokenBridge, meta.TokenChain, meta.TokenAddress)
				if err != nil {
					return err
				}
				out.Solana.WrappedMint = mint.String()
			}

			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode VAA: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	return addVAAFlags(cmd)
}
