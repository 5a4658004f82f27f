package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

const statsColumns = `player_id, total_playtime_seconds, total_sessions, total_fish_caught,
    total_gold_earned, total_gold_spent, first_seen_at, last_seen_at, level, xp, xp_to_next_level`

func (t *txn) GetStats(playerID string) (*types.PlayerStats, error) {
	if playerID == "" {
		return nil, types.ErrInvalidID
	}
	row := t.queryRow("SELECT "+statsColumns+" FROM player_stats WHERE player_id = ?", playerID)
	var (
		s                   types.PlayerStats
		firstSeen, lastSeen string
	)
	err := row.Scan(&s.PlayerID, &s.TotalPlaytimeSeconds, &s.TotalSessions, &s.TotalFishCaught,
		&s.TotalGoldEarned, &s.TotalGoldSpent, &firstSeen, &lastSeen, &s.Level, &s.XP, &s.XPToNextLevel)
	if err != nil {
		return nil, notFound(err, "stats", playerID)
	}
	if s.FirstSeenAt, err = parseTime(firstSeen); err != nil {
		return nil, fmt.Errorf("parsing first_seen_at: %w", err)
	}
	if s.LastSeenAt, err = parseTime(lastSeen); err != nil {
		return nil, fmt.Errorf("parsing last_seen_at: %w", err)
	}
	return &s, nil
}

func (t *txn) InsertStats(s *types.PlayerStats) error {
	if s.PlayerID == "" {
		return types.ErrInvalidID
	}
	_, err := t.exec("INSERT INTO player_stats ("+statsColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		statsArgs(s)...)
	if err != nil {
		return fmt.Errorf("inserting stats %s: %w", s.PlayerID, err)
	}
	return nil
}

func (t *txn) UpdateStats(s *types.PlayerStats) error {
	args := statsArgs(s)
	res, err := t.exec(`UPDATE player_stats SET total_playtime_seconds = ?, total_sessions = ?,
    total_fish_caught = ?, total_gold_earned = ?, total_gold_spent = ?, first_seen_at = ?,
    last_seen_at = ?, level = ?, xp = ?, xp_to_next_level = ? WHERE player_id = ?`,
		append(args[1:], s.PlayerID)...)
	return mustAffect(res, err, "stats "+s.PlayerID)
}

func statsArgs(s *types.PlayerStats) []any {
	return []any{
		s.PlayerID, int64(s.TotalPlaytimeSeconds), int64(s.TotalSessions), int64(s.TotalFishCaught),
		int64(s.TotalGoldEarned), int64(s.TotalGoldSpent), formatTime(s.FirstSeenAt),
		formatTime(s.LastSeenAt), int64(s.Level), int64(s.XP), int64(s.XPToNextLevel),
	}
}
