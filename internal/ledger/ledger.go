// Package ledger keeps a player's inventory as bounded-capacity stacks.
//
// A (player, item, rarity) key may be spread over several partially filled
// stacks. The ledger never lets a stack exceed the item's capacity and never
// stores an empty stack, but it does not compact fragments either. Matching
// stacks are always visited in ascending stack ID, so fragmentation is
// deterministic.
package ledger

import (
	"fmt"

	"github.com/mesh-intelligence/lurelands/internal/rules"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

// ErrInsufficientQuantity is returned by Remove when the player holds fewer
// units than requested.
var ErrInsufficientQuantity = types.ErrInsufficientQuantity

// Kinds resolves the kind of an item ID.
type Kinds interface {
	Kind(itemID string) types.ItemKind
}

type prefixKinds struct{}

func (prefixKinds) Kind(itemID string) types.ItemKind { return rules.Classify(itemID) }

// Ledger applies add and remove operations through a transaction.
type Ledger struct {
	kinds Kinds
}

// New returns a Ledger that sizes stacks by the kinds resolver. A nil
// resolver classifies IDs by prefix.
func New(kinds Kinds) *Ledger {
	if kinds == nil {
		kinds = prefixKinds{}
	}
	return &Ledger{kinds: kinds}
}

// Capacity is the stack capacity of itemID.
func (l *Ledger) Capacity(itemID string) uint32 {
	return rules.KindCapacity(l.kinds.Kind(itemID))
}

// Add puts quantity units into the player's inventory. Existing stacks with
// spare room are topped up first; the rest goes into new stacks of at most
// Capacity units.
func (l *Ledger) Add(tx types.Tx, playerID, itemID string, rarity uint8, quantity uint32) error {
	if quantity == 0 {
		return nil
	}
	capacity := l.Capacity(itemID)
	remaining := quantity

	stacks, err := tx.ListStacks(playerID, itemID, rarity)
	if err != nil {
		return err
	}
	for _, s := range stacks {
		if remaining == 0 {
			break
		}
		if s.Quantity >= capacity {
			continue
		}
		n := min(capacity-s.Quantity, remaining)
		s.Quantity += n
		if err := tx.UpdateStack(s); err != nil {
			return fmt.Errorf("topping up stack %d: %w", s.ID, err)
		}
		remaining -= n
	}

	for remaining > 0 {
		n := min(capacity, remaining)
		s := &types.InventoryStack{PlayerID: playerID, ItemID: itemID, Rarity: rarity, Quantity: n}
		if err := tx.InsertStack(s); err != nil {
			return fmt.Errorf("creating stack: %w", err)
		}
		remaining -= n
	}
	return nil
}

// Remove takes quantity units out of the player's inventory. When the
// player owns fewer units than requested nothing is changed and the error
// wraps ErrInsufficientQuantity.
func (l *Ledger) Remove(tx types.Tx, playerID, itemID string, rarity uint8, quantity uint32) error {
	if quantity == 0 {
		return nil
	}
	stacks, err := tx.ListStacks(playerID, itemID, rarity)
	if err != nil {
		return err
	}
	if have := sum(stacks); have < uint64(quantity) {
		return fmt.Errorf("removing %d %s (rarity %d), have %d: %w",
			quantity, itemID, rarity, have, ErrInsufficientQuantity)
	}

	need := quantity
	for _, s := range stacks {
		if need == 0 {
			break
		}
		if s.Quantity <= need {
			if err := tx.DeleteStack(s.ID); err != nil {
				return fmt.Errorf("deleting stack %d: %w", s.ID, err)
			}
			need -= s.Quantity
			continue
		}
		s.Quantity -= need
		if err := tx.UpdateStack(s); err != nil {
			return fmt.Errorf("shrinking stack %d: %w", s.ID, err)
		}
		need = 0
	}
	return nil
}

// TotalOwned sums the player's stacks of itemID at rarity.
func TotalOwned(tx types.Tx, playerID, itemID string, rarity uint8) (uint64, error) {
	stacks, err := tx.ListStacks(playerID, itemID, rarity)
	if err != nil {
		return 0, err
	}
	return sum(stacks), nil
}

// TotalOwnedAnyRarity sums the player's stacks of itemID across rarities.
func TotalOwnedAnyRarity(tx types.Tx, playerID, itemID string) (uint64, error) {
	stacks, err := tx.ListItemStacks(playerID, itemID)
	if err != nil {
		return 0, err
	}
	return sum(stacks), nil
}

func sum(stacks []*types.InventoryStack) uint64 {
	var total uint64
	for _, s := range stacks {
		total += uint64(s.Quantity)
	}
	return total
}
