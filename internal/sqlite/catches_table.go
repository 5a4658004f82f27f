package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

const catchColumns = "catch_id, fish_id, player_id, fish_type, size, rarity, water_body_id, released, caught_at"

func (t *txn) GetCatch(id string) (*types.FishCatch, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	var (
		c      types.FishCatch
		size   float64
		caught string
	)
	err := t.queryRow("SELECT "+catchColumns+" FROM fish_catches WHERE catch_id = ?", id).
		Scan(&c.ID, &c.FishID, &c.PlayerID, &c.FishType, &size, &c.Rarity, &c.WaterBodyID, &c.Released, &caught)
	if err != nil {
		return nil, notFound(err, "catch", id)
	}
	if c.CaughtAt, err = parseTime(caught); err != nil {
		return nil, fmt.Errorf("parsing caught_at: %w", err)
	}
	c.Size = float32(size)
	return &c, nil
}

func (t *txn) InsertCatch(c *types.FishCatch) error {
	if c.ID == "" || c.PlayerID == "" || c.FishID == "" {
		return types.ErrInvalidID
	}
	_, err := t.exec("INSERT INTO fish_catches ("+catchColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		c.ID, c.FishID, c.PlayerID, c.FishType, float64(c.Size), c.Rarity, c.WaterBodyID, c.Released,
		formatTime(c.CaughtAt))
	if err != nil {
		return fmt.Errorf("inserting catch %s: %w", c.ID, err)
	}
	return nil
}

func (t *txn) UpdateCatch(c *types.FishCatch) error {
	res, err := t.exec("UPDATE fish_catches SET released = ? WHERE catch_id = ?", c.Released, c.ID)
	return mustAffect(res, err, "catch "+c.ID)
}
