package engine

import (
	"context"
	"errors"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

// Player returns a player row.
func (e *Engine) Player(ctx context.Context, playerID string) (*types.Player, error) {
	var p *types.Player
	err := e.view(ctx, "player", func(tx types.Tx) error {
		var err error
		p, err = player(tx, "player", playerID)
		return err
	})
	return p, err
}

// Inventory returns the player's stacks ordered by item, rarity and stack.
func (e *Engine) Inventory(ctx context.Context, playerID string) ([]*types.InventoryStack, error) {
	var stacks []*types.InventoryStack
	err := e.view(ctx, "inventory", func(tx types.Tx) error {
		var err error
		stacks, err = tx.ListInventory(playerID)
		return err
	})
	return stacks, err
}

// Stats returns the player's lifetime statistics.
func (e *Engine) Stats(ctx context.Context, playerID string) (*types.PlayerStats, error) {
	var st *types.PlayerStats
	err := e.view(ctx, "stats", func(tx types.Tx) error {
		var err error
		st, err = tx.GetStats(playerID)
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
			return notFound("stats", "no stats for player %q", playerID)
		}
		return err
	})
	return st, err
}

// Events returns audit events, oldest first.
func (e *Engine) Events(ctx context.Context, filter types.EventFilter) ([]*types.GameEvent, error) {
	var events []*types.GameEvent
	err := e.view(ctx, "events", func(tx types.Tx) error {
		var err error
		events, err = tx.ListEvents(filter)
		return err
	})
	return events, err
}
