package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lurelands/internal/engine"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

func newPlayerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage player presence and identity",
	}

	var color string
	join := &cobra.Command{
		Use:   "join <player-id> <name>",
		Short: "Bring a player online, creating it on first join",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := strconv.ParseUint(color, 0, 32)
			if err != nil {
				return fmt.Errorf("%w: color must be an ARGB integer, got %q", errUsage, color)
			}
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				if err := e.JoinWorld(cmd.Context(), args[0], args[1], uint32(c)); err != nil {
					return err
				}
				return showPlayer(a, cmd, e, args[0])
			})
		},
	}
	join.Flags().StringVar(&color, "color", fmt.Sprintf("%#08x", types.DefaultPlayerColor), "ARGB color for a new player")

	leave := &cobra.Command{
		Use:   "leave <player-id>",
		Short: "Take a player offline and end its session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				return e.LeaveWorld(cmd.Context(), args[0])
			})
		},
	}

	rename := &cobra.Command{
		Use:   "rename <player-id> <name>",
		Short: "Change a player's display name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				return e.UpdatePlayerName(cmd.Context(), args[0], args[1])
			})
		},
	}

	show := &cobra.Command{
		Use:   "show <player-id>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				return showPlayer(a, cmd, e, args[0])
			})
		},
	}

	var source string
	xp := &cobra.Command{
		Use:   "xp <player-id> <amount>",
		Short: "Grant experience",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: amount must be a non-negative integer, got %q", errUsage, args[1])
			}
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				return e.AddXP(cmd.Context(), args[0], amount, source)
			})
		},
	}
	xp.Flags().StringVar(&source, "source", "admin", "xp source label")
	cmd.AddCommand(join, leave, rename, show, xp)
	return cmd
}

func showPlayer(a *app, cmd *cobra.Command, e *engine.Engine, id string) error {
	p, err := e.Player(cmd.Context(), id)
	if err != nil {
		return err
	}
	if a.jsonMode {
		return writeJSON(cmd.OutOrStdout(), p)
	}
	printPlayer(cmd.OutOrStdout(), p)
	return nil
}

func newInventoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inventory <player-id>",
		Short: "List a player's inventory stacks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				stacks, err := e.Inventory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), stacks)
				}
				printInventory(cmd.OutOrStdout(), stacks)
				return nil
			})
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <player-id>",
		Short: "Show a player's level and lifetime statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				st, err := e.Stats(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), st)
				}
				printStats(cmd.OutOrStdout(), st)
				return nil
			})
		},
	}
}
