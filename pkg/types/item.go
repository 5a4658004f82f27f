package types

// ItemKind classifies an item ID. Pricing and capacity dispatch on it.
type ItemKind string

// Item kinds.
const (
	KindFish  ItemKind = "fish"
	KindPole  ItemKind = "pole"
	KindLure  ItemKind = "lure"
	KindOther ItemKind = "other"
)

// ItemDefinition is catalog reference data for one item.
type ItemDefinition struct {
	ID          string
	Name        string
	Kind        ItemKind // Resolved from ID at catalog load.
	WaterType   *string  // pond, river, ocean or night; fish only.
	Tier        uint8
	BuyPrice    uint32
	SellPrice   uint32
	StackSize   uint32
	SpriteID    string
	Description string
	IsActive    bool
}
