package main

import "github.com/spf13/cobra"

// newRootCmd assembles the fenrirctl command tree: a root command with
// its subcommands registered via AddCommand.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fenrirctl",
		Short: "Replay driver and depth inspector for the fenrir matching core",
	}

	root.AddCommand(newReplayCmd(), newDepthCmd())
	return root
}
