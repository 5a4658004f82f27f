package catalog

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

// SeedResult counts what Seed wrote.
type SeedResult struct {
	Added   int
	Skipped int
}

// Seed inserts catalog rows the store does not have yet. Existing rows are
// left untouched, so Seed is safe to run on every startup.
func (c *Catalog) Seed(tx types.Tx) (SeedResult, error) {
	var res SeedResult

	for _, item := range c.Items {
		_, err := tx.GetItem(item.ID)
		if err := res.apply(err, func() error { return tx.UpsertItem(item) }); err != nil {
			return res, fmt.Errorf("seeding item %s: %w", item.ID, err)
		}
	}
	for _, n := range c.NPCs {
		_, err := tx.GetNPC(n.ID)
		if err := res.apply(err, func() error { return tx.UpsertNPC(n) }); err != nil {
			return res, fmt.Errorf("seeding npc %s: %w", n.ID, err)
		}
	}
	for _, q := range c.Quests {
		_, err := tx.GetQuest(q.ID)
		if err := res.apply(err, func() error { return tx.UpsertQuest(q) }); err != nil {
			return res, fmt.Errorf("seeding quest %s: %w", q.ID, err)
		}
	}
	return res, nil
}

// apply inserts when lookupErr is ErrNotFound and counts a skip when the row
// already exists.
func (r *SeedResult) apply(lookupErr error, insert func() error) error {
	switch {
	case lookupErr == nil:
		r.Skipped++
		return nil
	case errors.Is(lookupErr, types.ErrNotFound):
		if err := insert(); err != nil {
			return err
		}
		r.Added++
		return nil
	default:
		return lookupErr
	}
}
