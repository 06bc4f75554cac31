package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voxel-foundry/orbitcap/pkg/orbitcap"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "orbitcap v"+orbitcap.Version)
		},
	}
}
