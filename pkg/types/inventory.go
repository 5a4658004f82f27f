package types

// InventoryStack is one bounded-capacity stack of a (player, item, rarity)
// key. A player may hold several stacks for the same key; their sum is the
// owned quantity. Stacks with zero quantity are deleted, never stored.
type InventoryStack struct {
	ID       int64  // Auto-increment; reflects creation order.
	PlayerID string // Owner.
	ItemID   string // Item definition ID.
	Rarity   uint8  // 1..3 for fish, 0 for non-fish by convention.
	Quantity uint32 // 1..Capacity(ItemID).
}

// Validate checks the fields a store requires before insert or update.
func (s *InventoryStack) Validate() error {
	if s.PlayerID == "" || s.ItemID == "" {
		return ErrInvalidID
	}
	if s.Quantity == 0 {
		return ErrInvalidData
	}
	return nil
}
