package types

import "time"

// NPC interaction kinds.
const (
	InteractionTalked = "talked"
	InteractionTraded = "traded"
)

// NPC is catalog reference data for a non-player character.
type NPC struct {
	ID            string
	Name          string
	Title         string
	CanGiveQuests bool
	CanTrade      bool
	IsActive      bool
}

// PlayerNPCInteraction records what a player has done with an NPC.
type PlayerNPCInteraction struct {
	ID                 int64
	PlayerID           string
	NPCID              string
	HasTalked          bool
	HasTraded          bool
	TalkCount          uint32
	Reputation         int32
	FirstInteractionAt time.Time
	LastInteractionAt  time.Time
}

// Record applies one interaction of the given kind at now. It returns
// ErrInvalidData for an unknown kind.
func (i *PlayerNPCInteraction) Record(kind string, now time.Time) error {
	switch kind {
	case InteractionTalked:
		i.HasTalked = true
		i.TalkCount++
	case InteractionTraded:
		i.HasTraded = true
	default:
		return ErrInvalidData
	}
	if i.FirstInteractionAt.IsZero() {
		i.FirstInteractionAt = now
	}
	i.LastInteractionAt = now
	return nil
}

// SpawnPoint is a fixed location where new players appear.
type SpawnPoint struct {
	ID   string  `yaml:"id"`
	Name string  `yaml:"name"`
	X    float32 `yaml:"x"`
	Y    float32 `yaml:"y"`
}
