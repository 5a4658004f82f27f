package types

import (
	"fmt"
	"time"
)

// FishCatch is a row of the catch log.
type FishCatch struct {
	ID          string // UUID v7.
	FishID      string // Item definition ID.
	PlayerID    string
	FishType    string
	Size        float32
	Rarity      string // "<n>star".
	WaterBodyID string
	Released    bool
	CaughtAt    time.Time
}

// RarityLabel formats a star rating the way the catch log stores it.
func RarityLabel(rarity uint8) string {
	return fmt.Sprintf("%dstar", rarity)
}
