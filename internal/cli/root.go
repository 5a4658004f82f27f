// Package cli implements the lurelands command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lurelands/internal/engine"
	"github.com/mesh-intelligence/lurelands/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds global flag values and state shared by subcommands.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool

	settings settings
	log      *slog.Logger
}

// NewRootCmd creates the "lurelands" command with its global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	root := &cobra.Command{
		Use:           "lurelands",
		Short:         "Authoritative game-state engine for Lurelands",
		Long:          "Lurelands runs the fishing game's economy, inventory, quests and progression\nover a local SQLite store, from the command line or as an HTTP service.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: ./.lurelands or the user config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: $(CWD)/.lurelands-db)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output as JSON")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newServeCmd(a),
		newPlayerCmd(a),
		newFishCmd(a),
		newShopCmd(a),
		newPoleCmd(a),
		newQuestCmd(a),
		newGoldCmd(a),
		newInventoryCmd(a),
		newStatsCmd(a),
		newEventsCmd(a),
	)
	return root
}

// load reads .env and config.yaml and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = configDir
	s, err := loadSettings(configDir)
	if err != nil {
		return err
	}
	a.settings = s
	a.log, err = newLogger(cmd.ErrOrStderr(), s.LogLevel, s.LogFormat)
	return err
}

// Execute runs the root command and exits with a code that separates
// rejected calls from system failures.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

func exitCode(err error) int {
	var rej *engine.Rejection
	if errors.As(err, &rej) || errors.Is(err, errUsage) {
		return exitUserError
	}
	return exitSysError
}
