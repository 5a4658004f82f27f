package engine

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/lurelands/internal/document"
	"github.com/mesh-intelligence/lurelands/internal/ledger"
	"github.com/mesh-intelligence/lurelands/internal/rules"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

// Catch describes a landed fish as reported by the client.
type Catch struct {
	PlayerID    string  `json:"player_id"`
	ItemID      string  `json:"item_id"`
	FishType    string  `json:"fish_type"`
	Size        float32 `json:"size"`
	Rarity      uint8   `json:"rarity"`
	WaterBodyID string  `json:"water_body_id"`
}

// CatchFish logs the catch, stores one fish in the player's inventory,
// awards experience and advances every active quest. It returns the catch
// log ID.
func (e *Engine) CatchFish(ctx context.Context, c Catch) (string, error) {
	const op = "catch_fish"
	if c.PlayerID == "" || c.ItemID == "" {
		return "", precondition(op, "player and item are required")
	}
	var catchID string
	err := e.update(ctx, op, func(tx types.Tx) error {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		rec := &types.FishCatch{
			ID:          id.String(),
			FishID:      c.ItemID,
			PlayerID:    c.PlayerID,
			FishType:    c.FishType,
			Size:        c.Size,
			Rarity:      types.RarityLabel(c.Rarity),
			WaterBodyID: c.WaterBodyID,
			CaughtAt:    tx.Now(),
		}
		if err := tx.InsertCatch(rec); err != nil {
			return err
		}
		if err := e.ledger.Add(tx, c.PlayerID, c.ItemID, c.Rarity, 1); err != nil {
			return err
		}

		meta := document.With(document.Empty, "fish_type", c.FishType)
		meta = document.With(meta, "size", c.Size)
		err = e.emit(tx, &types.GameEvent{
			PlayerID:    c.PlayerID,
			EventType:   types.EventFishCaught,
			ItemID:      ptr(c.ItemID),
			Quantity:    ptr(uint32(1)),
			Rarity:      ptr(c.Rarity),
			WaterBodyID: ptr(c.WaterBodyID),
			Metadata:    &meta,
		})
		if err != nil {
			return err
		}

		st, err := stats(tx, c.PlayerID)
		if err != nil {
			return err
		}
		if st != nil {
			st.TotalFishCaught++
			if err := tx.UpdateStats(st); err != nil {
				return err
			}
		}
		if err := e.addXP(tx, c.PlayerID, rules.FishXP(c.ItemID, c.Rarity), "fish_caught"); err != nil {
			return err
		}
		if err := e.advanceQuests(tx, c.PlayerID, c.ItemID, c.Rarity); err != nil {
			return err
		}
		catchID = rec.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	e.log.Info("fish caught", "player", c.PlayerID, "item", c.ItemID, "rarity", c.Rarity, "catch", catchID)
	return catchID, nil
}

// ReleaseFish marks a logged catch as released back into the water.
func (e *Engine) ReleaseFish(ctx context.Context, catchID string) error {
	const op = "release_fish"
	return e.update(ctx, op, func(tx types.Tx) error {
		rec, err := tx.GetCatch(catchID)
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
			return notFound(op, "catch %q not found", catchID)
		}
		if err != nil {
			return err
		}
		if rec.Released {
			return nil
		}
		rec.Released = true
		return tx.UpdateCatch(rec)
	})
}

// SellItem sells quantity units of (item, rarity) and returns the gold
// credited.
func (e *Engine) SellItem(ctx context.Context, playerID, itemID string, rarity uint8, quantity uint32) (uint32, error) {
	const op = "sell_item"
	if quantity == 0 {
		return 0, precondition(op, "quantity must be positive")
	}
	var total uint32
	err := e.update(ctx, op, func(tx types.Tx) error {
		p, err := player(tx, op, playerID)
		if err != nil {
			return err
		}
		if p.HasEquipped(itemID) {
			return precondition(op, "%s is equipped", itemID)
		}
		owned, err := ledger.TotalOwned(tx, playerID, itemID, rarity)
		if err != nil {
			return err
		}
		if owned < uint64(quantity) {
			return precondition(op, "owns %d of %s, selling %d", owned, itemID, quantity)
		}
		value := uint64(rules.SellPrice(itemID, rarity)) * uint64(quantity)
		gold, ok := credit(p.Gold, value)
		if !ok {
			return precondition(op, "gold balance would overflow")
		}
		if err := e.ledger.Remove(tx, playerID, itemID, rarity, quantity); err != nil {
			return err
		}
		total = uint32(value)
		p.Gold = gold
		p.LastUpdated = tx.Now()
		if err := tx.UpdatePlayer(p); err != nil {
			return err
		}
		if err := recordEarned(tx, playerID, value); err != nil {
			return err
		}
		return e.emit(tx, &types.GameEvent{
			PlayerID:   playerID,
			EventType:  types.EventItemSold,
			ItemID:     ptr(itemID),
			Quantity:   ptr(quantity),
			GoldAmount: ptr(total),
			Rarity:     ptr(rarity),
		})
	})
	if err != nil {
		return 0, err
	}
	e.log.Info("item sold", "player", playerID, "item", itemID, "quantity", quantity, "gold", total)
	return total, nil
}

// BuyItem buys one unit of a shop item at rarity 0.
func (e *Engine) BuyItem(ctx context.Context, playerID, itemID string) error {
	const op = "buy_item"
	if !rules.Purchasable(itemID) {
		return precondition(op, "%s is not for sale", itemID)
	}
	price := rules.BuyPrice(itemID)
	err := e.update(ctx, op, func(tx types.Tx) error {
		p, err := player(tx, op, playerID)
		if err != nil {
			return err
		}
		if p.Gold < price {
			return precondition(op, "has %d gold, needs %d", p.Gold, price)
		}
		p.Gold -= price
		p.LastUpdated = tx.Now()
		if err := tx.UpdatePlayer(p); err != nil {
			return err
		}
		if price > 0 {
			if err := recordSpent(tx, playerID, uint64(price)); err != nil {
				return err
			}
		}
		if err := e.ledger.Add(tx, playerID, itemID, 0, 1); err != nil {
			return err
		}
		return e.emit(tx, &types.GameEvent{
			PlayerID:   playerID,
			EventType:  types.EventItemBought,
			ItemID:     ptr(itemID),
			Quantity:   ptr(uint32(1)),
			GoldAmount: ptr(price),
			Rarity:     ptr(uint8(0)),
		})
	})
	if err != nil {
		return err
	}
	e.log.Info("item bought", "player", playerID, "item", itemID, "price", price)
	return nil
}

// EquipPole equips an owned pole. Equipping the pole already in hand is a
// no-op.
func (e *Engine) EquipPole(ctx context.Context, playerID, poleID string) error {
	const op = "equip_pole"
	if e.catalog.Kind(poleID) != types.KindPole {
		return precondition(op, "%s is not a pole", poleID)
	}
	changed := false
	err := e.update(ctx, op, func(tx types.Tx) error {
		p, err := player(tx, op, playerID)
		if err != nil {
			return err
		}
		owned, err := ledger.TotalOwnedAnyRarity(tx, playerID, poleID)
		if err != nil {
			return err
		}
		if owned == 0 {
			return precondition(op, "does not own %s", poleID)
		}
		if changed = p.Equip(poleID); !changed {
			return nil
		}
		p.LastUpdated = tx.Now()
		if err := tx.UpdatePlayer(p); err != nil {
			return err
		}
		return e.emit(tx, &types.GameEvent{
			PlayerID:  playerID,
			EventType: types.EventPoleEquipped,
			ItemID:    ptr(poleID),
		})
	})
	if err != nil {
		return err
	}
	if changed {
		e.log.Info("pole equipped", "player", playerID, "pole", poleID)
	}
	return nil
}

// UnequipPole clears the equipped pole.
func (e *Engine) UnequipPole(ctx context.Context, playerID string) error {
	const op = "unequip_pole"
	return e.update(ctx, op, func(tx types.Tx) error {
		p, err := player(tx, op, playerID)
		if err != nil {
			return err
		}
		prev := p.Unequip()
		p.LastUpdated = tx.Now()
		if err := tx.UpdatePlayer(p); err != nil {
			return err
		}
		if prev == nil {
			return nil
		}
		return e.emit(tx, &types.GameEvent{
			PlayerID:  playerID,
			EventType: types.EventPoleUnequipped,
			ItemID:    prev,
		})
	})
}

// AddGold credits the player and counts the amount as earned.
func (e *Engine) AddGold(ctx context.Context, playerID string, amount uint32) error {
	const op = "add_gold"
	return e.update(ctx, op, func(tx types.Tx) error {
		p, err := player(tx, op, playerID)
		if err != nil {
			return err
		}
		gold, ok := credit(p.Gold, uint64(amount))
		if !ok {
			return precondition(op, "gold balance would overflow")
		}
		p.Gold = gold
		p.LastUpdated = tx.Now()
		if err := tx.UpdatePlayer(p); err != nil {
			return err
		}
		return recordEarned(tx, playerID, uint64(amount))
	})
}

// SpendGold debits the player and counts the amount as spent.
func (e *Engine) SpendGold(ctx context.Context, playerID string, amount uint32) error {
	const op = "spend_gold"
	return e.update(ctx, op, func(tx types.Tx) error {
		p, err := player(tx, op, playerID)
		if err != nil {
			return err
		}
		if p.Gold < amount {
			return precondition(op, "has %d gold, needs %d", p.Gold, amount)
		}
		p.Gold -= amount
		p.LastUpdated = tx.Now()
		if err := tx.UpdatePlayer(p); err != nil {
			return err
		}
		return recordSpent(tx, playerID, uint64(amount))
	})
}

// SetGold overwrites the balance without touching lifetime counters.
func (e *Engine) SetGold(ctx context.Context, playerID string, amount uint32) error {
	const op = "set_gold"
	return e.update(ctx, op, func(tx types.Tx) error {
		p, err := player(tx, op, playerID)
		if err != nil {
			return err
		}
		p.Gold = amount
		p.LastUpdated = tx.Now()
		return tx.UpdatePlayer(p)
	})
}

// credit adds amount to balance, reporting false if the result does not
// fit a uint32.
func credit(balance uint32, amount uint64) (uint32, bool) {
	sum := uint64(balance) + amount
	if sum > math.MaxUint32 {
		return balance, false
	}
	return uint32(sum), true
}

func recordEarned(tx types.Tx, playerID string, amount uint64) error {
	return touchStats(tx, playerID, func(st *types.PlayerStats) { st.TotalGoldEarned += amount })
}

func recordSpent(tx types.Tx, playerID string, amount uint64) error {
	return touchStats(tx, playerID, func(st *types.PlayerStats) { st.TotalGoldSpent += amount })
}

// touchStats applies fn to the stats row when one exists.
func touchStats(tx types.Tx, playerID string, fn func(st *types.PlayerStats)) error {
	st, err := stats(tx, playerID)
	if err != nil || st == nil {
		return err
	}
	fn(st)
	return tx.UpdateStats(st)
}
