package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lurelands/internal/engine"
)

func newQuestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Browse, accept and complete quests",
	}

	list := &cobra.Command{
		Use:   "list <player-id>",
		Short: "Show the player's quest board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				board, err := e.AvailableQuests(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), board)
				}
				printBoard(cmd.OutOrStdout(), board)
				return nil
			})
		},
	}

	accept := &cobra.Command{
		Use:   "accept <player-id> <quest-id>",
		Short: "Accept a quest",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				return e.AcceptQuest(cmd.Context(), args[0], args[1])
			})
		},
	}

	complete := &cobra.Command{
		Use:   "complete <player-id> <quest-id>",
		Short: "Turn in a quest and collect its rewards",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				return e.CompleteQuest(cmd.Context(), args[0], args[1])
			})
		},
	}

	cmd.AddCommand(list, accept, complete)
	return cmd
}
