package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd wires every admin command onto one AppState
func NewRootCmd(a *AppState) *cobra.Command {
	root := &cobra.Command{
		Use:   "wormhole-admin",
		Short: "Administrative Wormhole operations on Solana",

		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addAppPersistentFlags(root, a)

	root.AddCommand(
		CreateATA(a),
		PostVAA(a),
		CreateWrapped(a),
		FetchVAA(a),
		ParseVAA(a),
		VersionCmd(),
	)
	return root
}
