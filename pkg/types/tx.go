package types

import (
	"errors"
	"time"
)

// Tx provides typed row access for one transaction. Finders return
// ErrNotFound when no row matches; list methods return an empty slice.
// Rows that carry a surrogate integer ID get it assigned on insert.
type Tx interface {
	// Now returns the transaction timestamp. Every row written by one
	// transaction shares it.
	Now() time.Time

	GetPlayer(id string) (*Player, error)
	ListPlayers(filter PlayerFilter) ([]*Player, error)
	InsertPlayer(p *Player) error
	UpdatePlayer(p *Player) error

	// ListStacks returns the stacks for the exact (player, item, rarity)
	// key in ascending stack ID order.
	ListStacks(playerID, itemID string, rarity uint8) ([]*InventoryStack, error)
	// ListItemStacks returns every stack of itemID the player holds,
	// across all rarities, in ascending stack ID order.
	ListItemStacks(playerID, itemID string) ([]*InventoryStack, error)
	// ListInventory returns all of a player's stacks ordered by item,
	// rarity, then stack ID.
	ListInventory(playerID string) ([]*InventoryStack, error)
	InsertStack(s *InventoryStack) error
	UpdateStack(s *InventoryStack) error
	DeleteStack(id int64) error

	GetItem(id string) (*ItemDefinition, error)
	ListItems() ([]*ItemDefinition, error)
	UpsertItem(item *ItemDefinition) error

	GetQuest(id string) (*Quest, error)
	ListQuests() ([]*Quest, error)
	UpsertQuest(q *Quest) error
	DeleteQuest(id string) error

	// FindPlayerQuest returns the newest row for (player, quest).
	FindPlayerQuest(playerID, questID string) (*PlayerQuest, error)
	// ListPlayerQuests returns a player's quest rows, optionally filtered
	// by status (empty status matches all), in ascending row ID order.
	ListPlayerQuests(playerID string, status QuestStatus) ([]*PlayerQuest, error)
	InsertPlayerQuest(pq *PlayerQuest) error
	UpdatePlayerQuest(pq *PlayerQuest) error
	DeletePlayerQuest(id int64) error

	GetStats(playerID string) (*PlayerStats, error)
	InsertStats(s *PlayerStats) error
	UpdateStats(s *PlayerStats) error

	ListActiveSessions(playerID string) ([]*PlayerSession, error)
	InsertSession(s *PlayerSession) error
	UpdateSession(s *PlayerSession) error

	InsertEvent(e *GameEvent) error
	ListEvents(filter EventFilter) ([]*GameEvent, error)

	GetCatch(id string) (*FishCatch, error)
	InsertCatch(c *FishCatch) error
	UpdateCatch(c *FishCatch) error

	GetNPC(id string) (*NPC, error)
	UpsertNPC(n *NPC) error
	FindNPCInteraction(playerID, npcID string) (*PlayerNPCInteraction, error)
	InsertNPCInteraction(i *PlayerNPCInteraction) error
	UpdateNPCInteraction(i *PlayerNPCInteraction) error
}

// PlayerFilter narrows ListPlayers. Zero values match everything.
type PlayerFilter struct {
	OnlineOnly    bool
	UpdatedBefore time.Time
}

// EventFilter narrows ListEvents. Zero values match everything. Events are
// returned oldest first.
type EventFilter struct {
	PlayerID  string
	EventType string
	Since     time.Time
	Limit     int
}

// Row access errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
)

// Entity method errors.
var (
	ErrInvalidTransition    = errors.New("invalid state transition")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)
