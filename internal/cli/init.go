package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lurelands/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and storage",
		Long:  "Create the configuration and data directories, write a default config.yaml,\nthen create the database and seed the catalog.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(a.configDir, 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			dataDir, err := paths.ResolveDataDir(a.dataDir, a.settings.DataDir)
			if err != nil {
				return fmt.Errorf("resolve data dir: %w", err)
			}
			wrote, err := writeConfigIfMissing(a.configDir, dataDir)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.Close(); err != nil {
				return fmt.Errorf("detach store: %w", err)
			}

			out := cmd.OutOrStdout()
			if wrote {
				fmt.Fprintf(out, "wrote %s/%s\n", a.configDir, configFileExt)
			}
			fmt.Fprintf(out, "Lurelands initialized in %s\n", dataDir)
			return nil
		},
	}
}
