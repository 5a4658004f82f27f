package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

const stackColumns = "stack_id, player_id, item_id, rarity, quantity"

func (t *txn) ListStacks(playerID, itemID string, rarity uint8) ([]*types.InventoryStack, error) {
	return t.listStacks(
		"SELECT "+stackColumns+" FROM inventory WHERE player_id = ? AND item_id = ? AND rarity = ? ORDER BY stack_id",
		playerID, itemID, int64(rarity),
	)
}

func (t *txn) ListItemStacks(playerID, itemID string) ([]*types.InventoryStack, error) {
	return t.listStacks(
		"SELECT "+stackColumns+" FROM inventory WHERE player_id = ? AND item_id = ? ORDER BY stack_id",
		playerID, itemID,
	)
}

func (t *txn) ListInventory(playerID string) ([]*types.InventoryStack, error) {
	return t.listStacks(
		"SELECT "+stackColumns+" FROM inventory WHERE player_id = ? ORDER BY item_id, rarity, stack_id",
		playerID,
	)
}

func (t *txn) listStacks(q string, args ...any) ([]*types.InventoryStack, error) {
	rows, err := t.query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing stacks: %w", err)
	}
	defer rows.Close()

	stacks := []*types.InventoryStack{}
	for rows.Next() {
		var s types.InventoryStack
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.ItemID, &s.Rarity, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scanning stack: %w", err)
		}
		stacks = append(stacks, &s)
	}
	return stacks, rows.Err()
}

func (t *txn) InsertStack(s *types.InventoryStack) error {
	if err := s.Validate(); err != nil {
		return err
	}
	res, err := t.exec(
		"INSERT INTO inventory (player_id, item_id, rarity, quantity) VALUES (?, ?, ?, ?)",
		s.PlayerID, s.ItemID, int64(s.Rarity), int64(s.Quantity),
	)
	if err != nil {
		return fmt.Errorf("inserting stack: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading stack id: %w", err)
	}
	s.ID = id
	return nil
}

func (t *txn) UpdateStack(s *types.InventoryStack) error {
	if err := s.Validate(); err != nil {
		return err
	}
	res, err := t.exec("UPDATE inventory SET quantity = ? WHERE stack_id = ?", int64(s.Quantity), s.ID)
	return mustAffect(res, err, fmt.Sprintf("stack %d", s.ID))
}

func (t *txn) DeleteStack(id int64) error {
	res, err := t.exec("DELETE FROM inventory WHERE stack_id = ?", id)
	return mustAffect(res, err, fmt.Sprintf("stack %d", id))
}
