package types

import "time"

// PlayerStats holds lifetime counters and progression for one player.
type PlayerStats struct {
	PlayerID             string
	TotalPlaytimeSeconds uint64
	TotalSessions        uint32
	TotalFishCaught      uint32
	TotalGoldEarned      uint64
	TotalGoldSpent       uint64
	FirstSeenAt          time.Time
	LastSeenAt           time.Time
	Level                uint32
	XP                   uint64 // Progress within the current level.
	XPToNextLevel        uint64
}
