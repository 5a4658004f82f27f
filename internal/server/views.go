package server

import (
	"time"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

type playerView struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	X              float32   `json:"x"`
	Y              float32   `json:"y"`
	FacingAngle    float32   `json:"facing_angle"`
	IsCasting      bool      `json:"is_casting"`
	CastTargetX    *float32  `json:"cast_target_x,omitempty"`
	CastTargetY    *float32  `json:"cast_target_y,omitempty"`
	Color          uint32    `json:"color"`
	IsOnline       bool      `json:"is_online"`
	Gold           uint32    `json:"gold"`
	EquippedPoleID *string   `json:"equipped_pole_id,omitempty"`
	LastUpdated    time.Time `json:"last_updated"`
}

func playerJSON(p *types.Player) *playerView {
	if p == nil {
		return nil
	}
	return &playerView{
		ID:             p.ID,
		Name:           p.Name,
		X:              p.X,
		Y:              p.Y,
		FacingAngle:    p.FacingAngle,
		IsCasting:      p.IsCasting,
		CastTargetX:    p.CastTargetX,
		CastTargetY:    p.CastTargetY,
		Color:          p.Color,
		IsOnline:       p.IsOnline,
		Gold:           p.Gold,
		EquippedPoleID: p.EquippedPoleID,
		LastUpdated:    p.LastUpdated,
	}
}

type stackView struct {
	ID       int64  `json:"stack_id"`
	ItemID   string `json:"item_id"`
	Rarity   uint8  `json:"rarity"`
	Quantity uint32 `json:"quantity"`
}

type statsView struct {
	PlayerID             string    `json:"player_id"`
	Level                uint32    `json:"level"`
	XP                   uint64    `json:"xp"`
	XPToNextLevel        uint64    `json:"xp_to_next_level"`
	TotalPlaytimeSeconds uint64    `json:"total_playtime_seconds"`
	TotalSessions        uint32    `json:"total_sessions"`
	TotalFishCaught      uint32    `json:"total_fish_caught"`
	TotalGoldEarned      uint64    `json:"total_gold_earned"`
	TotalGoldSpent       uint64    `json:"total_gold_spent"`
	FirstSeenAt          time.Time `json:"first_seen_at"`
	LastSeenAt           time.Time `json:"last_seen_at"`
}

func statsJSON(st *types.PlayerStats) *statsView {
	if st == nil {
		return nil
	}
	return &statsView{
		PlayerID:             st.PlayerID,
		Level:                st.Level,
		XP:                   st.XP,
		XPToNextLevel:        st.XPToNextLevel,
		TotalPlaytimeSeconds: st.TotalPlaytimeSeconds,
		TotalSessions:        st.TotalSessions,
		TotalFishCaught:      st.TotalFishCaught,
		TotalGoldEarned:      st.TotalGoldEarned,
		TotalGoldSpent:       st.TotalGoldSpent,
		FirstSeenAt:          st.FirstSeenAt,
		LastSeenAt:           st.LastSeenAt,
	}
}
