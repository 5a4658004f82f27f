package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

// zstdSuffix marks compressed exports; the store compresses by file name.
const zstdSuffix = ".zst"

func newEventsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Work with the audit event log",
	}

	var (
		player    string
		eventType string
		since     string
		limit     int
		compress  bool
	)
	export := &cobra.Command{
		Use:   "export <path>",
		Short: "Write audit events to a JSONL file",
		Long:  "Write audit events to a JSONL file, one event per line. With --zstd, or a\npath ending in .zst, the file is zstd compressed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := types.EventFilter{PlayerID: player, EventType: eventType, Limit: limit}
			if since != "" {
				t, err := time.Parse(time.RFC3339, since)
				if err != nil {
					return fmt.Errorf("%w: --since must be RFC 3339: %v", errUsage, err)
				}
				filter.Since = t
			}
			path := args[0]
			if compress && !strings.HasSuffix(path, zstdSuffix) {
				path += zstdSuffix
			}

			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			exporter, ok := s.store.(types.EventExporter)
			if !ok {
				return fmt.Errorf("backend %q cannot export events", a.settings.Backend)
			}
			n, err := exporter.ExportEvents(cmd.Context(), path, filter)
			if err != nil {
				return err
			}

			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"path": path, "events": n})
			}
			size := "?"
			if info, err := os.Stat(path); err == nil {
				size = humanize.Bytes(uint64(info.Size()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s events to %s (%s)\n", humanize.Comma(int64(n)), path, size)
			return nil
		},
	}
	export.Flags().StringVar(&player, "player", "", "only events for this player")
	export.Flags().StringVar(&eventType, "type", "", "only events of this type")
	export.Flags().StringVar(&since, "since", "", "only events at or after this RFC 3339 time")
	export.Flags().IntVar(&limit, "limit", 0, "maximum number of events (0 for all)")
	export.Flags().BoolVar(&compress, "zstd", false, "zstd compress the output")

	cmd.AddCommand(export)
	return cmd
}
