package cmd

import (
	"github.com/spf13/cobra"
)

const (
	flagConfigPath   = "config"
	flagLogLevel     = "log-level"
	flagRPC          = "rpc"
	flagKeypair      = "keypair"
	flagVAA          = "vaa"
	flagVAAFile      = "vaa-file"
	flagEmitterChain = "emitter-chain"
	flagEmitter      = "emitter"
	flagSequence     = "sequence"
	flagMint         = "mint"
	flagOwner        = "owner"
)

func addAppPersistentFlags(cmd *cobra.Command, a *AppState) *cobra.Command {
	cmd.PersistentFlags().StringVarP(&a.ConfigPath, flagConfigPath, "c", defaultConfigPath, "file path of config file")
	cmd.PersistentFlags().StringVar(&a.LogLevel, flagLogLevel, "info", "log level (debug, info, error)")
	cmd.PersistentFlags().StringVar(&a.RPC, flagRPC, "", "Solana RPC endpoint, overrides config and SOLANA_RPC")
	cmd.PersistentFlags().StringVar(&a.Keypair, flagKeypair, "", "fee payer keyfile, overrides config and SOLANA_KEYPAIR")
	return cmd
}

// addFetchFlags adds the flags identifying a VAA by emitter and sequence
func addFetchFlags(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().String(flagEmitterChain, "", "emitter chain id or name, e.g. 21 or sui")
	cmd.Flags().String(flagEmitter, "", "emitter address in hex")
	cmd.Flags().Uint64(flagSequence, 0, "VAA sequence number")
	return cmd
}

// addVAAFlags adds every way of supplying a signed VAA to a command
func addVAAFlags(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().String(flagVAA, "", "signed VAA in hex")
	cmd.Flags().String(flagVAAFile, "", "file containing a signed VAA in hex or binary")
	return addFetchFlags(cmd)
}
