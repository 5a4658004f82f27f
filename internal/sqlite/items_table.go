package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

const itemColumns = `item_id, name, kind, water_type, tier, buy_price, sell_price, stack_size,
    sprite_id, description, is_active`

func (t *txn) GetItem(id string) (*types.ItemDefinition, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	item, err := hydrateItem(t.queryRow("SELECT "+itemColumns+" FROM item_definitions WHERE item_id = ?", id))
	if err != nil {
		return nil, notFound(err, "item", id)
	}
	return item, nil
}

func (t *txn) ListItems() ([]*types.ItemDefinition, error) {
	rows, err := t.query("SELECT " + itemColumns + " FROM item_definitions ORDER BY item_id")
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := []*types.ItemDefinition{}
	for rows.Next() {
		item, err := hydrateItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (t *txn) UpsertItem(item *types.ItemDefinition) error {
	if item.ID == "" {
		return types.ErrInvalidID
	}
	_, err := t.exec(`INSERT INTO item_definitions (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    ON CONFLICT(item_id) DO UPDATE SET name = excluded.name, kind = excluded.kind,
    water_type = excluded.water_type, tier = excluded.tier, buy_price = excluded.buy_price,
    sell_price = excluded.sell_price, stack_size = excluded.stack_size, sprite_id = excluded.sprite_id,
    description = excluded.description, is_active = excluded.is_active`,
		item.ID, item.Name, string(item.Kind), nullable(item.WaterType), int64(item.Tier),
		int64(item.BuyPrice), int64(item.SellPrice), int64(item.StackSize), item.SpriteID,
		item.Description, item.IsActive,
	)
	if err != nil {
		return fmt.Errorf("upserting item %s: %w", item.ID, err)
	}
	return nil
}

func hydrateItem(s scanner) (*types.ItemDefinition, error) {
	var (
		item      types.ItemDefinition
		kind      string
		waterType sql.NullString
	)
	if err := s.Scan(&item.ID, &item.Name, &kind, &waterType, &item.Tier, &item.BuyPrice,
		&item.SellPrice, &item.StackSize, &item.SpriteID, &item.Description, &item.IsActive); err != nil {
		return nil, err
	}
	item.Kind = types.ItemKind(kind)
	item.WaterType = stringPtr(waterType)
	return &item, nil
}
