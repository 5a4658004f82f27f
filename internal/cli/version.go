package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release version of the lurelands binary.
const Version = "0.3.0"

const modulePath = "github.com/mesh-intelligence/lurelands"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lurelands version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "lurelands v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
