package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/otimlabs/wormhole-admin/cmd.Version=..."
var (
	Version = "dev"
	Commit  = ""
)

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "version:", Version)
			if Commit != "" {
				fmt.Fprintln(out, "commit:", Commit)
			}
			fmt.Fprintln(out, "go:", runtime.Version())
		},
	}
}
