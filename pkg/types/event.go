package types

import "time"

// Audit event types.
const (
	EventFishCaught     = "fish_caught"
	EventItemBought     = "item_bought"
	EventItemSold       = "item_sold"
	EventSessionStarted = "session_started"
	EventSessionEnded   = "session_ended"
	EventPoleEquipped   = "pole_equipped"
	EventPoleUnequipped = "pole_unequipped"
	EventQuestAccepted  = "quest_accepted"
	EventQuestCompleted = "quest_completed"
)

// GameEvent is an append-only audit record. ID is a UUID v7, so ID order is
// creation order. Metadata, when present, is document text.
type GameEvent struct {
	ID          string    `json:"id"`
	PlayerID    string    `json:"player_id"`
	SessionID   *string   `json:"session_id,omitempty"`
	EventType   string    `json:"event_type"`
	ItemID      *string   `json:"item_id,omitempty"`
	Quantity    *uint32   `json:"quantity,omitempty"`
	GoldAmount  *uint32   `json:"gold_amount,omitempty"`
	Rarity      *uint8    `json:"rarity,omitempty"`
	WaterBodyID *string   `json:"water_body_id,omitempty"`
	Metadata    *string   `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
