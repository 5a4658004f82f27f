package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lurelands/internal/engine"
)

func newFishCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fish",
		Short: "Record and release catches",
	}

	var c engine.Catch
	var rarity uint8
	catch := &cobra.Command{
		Use:   "catch <player-id> <item-id>",
		Short: "Record a caught fish",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.PlayerID, c.ItemID, c.Rarity = args[0], args[1], rarity
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				id, err := e.CatchFish(cmd.Context(), c)
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"catch_id": id})
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
	catch.Flags().Uint8Var(&rarity, "rarity", 1, "star rating 1-3")
	catch.Flags().StringVar(&c.FishType, "type", "", "species label")
	catch.Flags().Float32Var(&c.Size, "size", 0, "size of the fish")
	catch.Flags().StringVar(&c.WaterBodyID, "water", "", "water body id")

	release := &cobra.Command{
		Use:   "release <catch-id>",
		Short: "Mark a logged catch as released",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				return e.ReleaseFish(cmd.Context(), args[0])
			})
		},
	}

	cmd.AddCommand(catch, release)
	return cmd
}

func newShopCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Buy and sell items",
	}

	buy := &cobra.Command{
		Use:   "buy <player-id> <item-id>",
		Short: "Buy one unit of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				return e.BuyItem(cmd.Context(), args[0], args[1])
			})
		},
	}

	sell := &cobra.Command{
		Use:   "sell <player-id> <item-id> <rarity> <quantity>",
		Short: "Sell items of one rarity",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			rarity, err := parseRarity(args[2])
			if err != nil {
				return err
			}
			qty, err := parseUint32("quantity", args[3])
			if err != nil {
				return err
			}
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				total, err := e.SellItem(cmd.Context(), args[0], args[1], rarity, qty)
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]uint32{"gold": total})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "sold for %s\n", goldText(total))
				return nil
			})
		},
	}

	cmd.AddCommand(buy, sell)
	return cmd
}

func newPoleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pole",
		Short: "Equip and unequip fishing poles",
	}
	equip := &cobra.Command{
		Use:   "equip <player-id> <pole-id>",
		Short: "Equip an owned pole",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				return e.EquipPole(cmd.Context(), args[0], args[1])
			})
		},
	}
	unequip := &cobra.Command{
		Use:   "unequip <player-id>",
		Short: "Unequip the current pole",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
				return e.UnequipPole(cmd.Context(), args[0])
			})
		},
	}
	cmd.AddCommand(equip, unequip)
	return cmd
}

func newGoldCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gold",
		Short: "Adjust a player's gold balance",
	}
	ops := []struct {
		use   string
		short string
		apply func(e *engine.Engine, cmd *cobra.Command, player string, amount uint32) error
	}{
		{"add", "Credit gold and count it as earned", func(e *engine.Engine, cmd *cobra.Command, p string, n uint32) error {
			return e.AddGold(cmd.Context(), p, n)
		}},
		{"spend", "Debit gold and count it as spent", func(e *engine.Engine, cmd *cobra.Command, p string, n uint32) error {
			return e.SpendGold(cmd.Context(), p, n)
		}},
		{"set", "Overwrite the balance", func(e *engine.Engine, cmd *cobra.Command, p string, n uint32) error {
			return e.SetGold(cmd.Context(), p, n)
		}},
	}
	for _, op := range ops {
		cmd.AddCommand(&cobra.Command{
			Use:   op.use + " <player-id> <amount>",
			Short: op.short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := parseUint32("amount", args[1])
				if err != nil {
					return err
				}
				return a.withEngine(cmd.Context(), func(e *engine.Engine) error {
					if err := op.apply(e, cmd, args[0], amount); err != nil {
						return err
					}
					p, err := e.Player(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					if a.jsonMode {
						return writeJSON(cmd.OutOrStdout(), map[string]uint32{"gold": p.Gold})
					}
					fmt.Fprintf(cmd.OutOrStdout(), "balance %s\n", goldText(p.Gold))
					return nil
				})
			},
		})
	}

	return cmd
}
