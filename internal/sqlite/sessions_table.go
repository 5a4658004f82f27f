package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

const sessionColumns = "session_id, player_id, started_at, ended_at, duration_seconds, is_active"

func (t *txn) ListActiveSessions(playerID string) ([]*types.PlayerSession, error) {
	rows, err := t.query(
		"SELECT "+sessionColumns+" FROM player_sessions WHERE player_id = ? AND is_active = 1 ORDER BY started_at, session_id",
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*types.PlayerSession{}
	for rows.Next() {
		var (
			s       types.PlayerSession
			started string
			ended   sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.PlayerID, &started, &ended, &s.DurationSeconds, &s.IsActive); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if s.StartedAt, err = parseTime(started); err != nil {
			return nil, fmt.Errorf("parsing started_at: %w", err)
		}
		if s.EndedAt, err = parseNullTime(ended); err != nil {
			return nil, fmt.Errorf("parsing ended_at: %w", err)
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

func (t *txn) InsertSession(s *types.PlayerSession) error {
	if s.ID == "" || s.PlayerID == "" {
		return types.ErrInvalidID
	}
	_, err := t.exec("INSERT INTO player_sessions ("+sessionColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		s.ID, s.PlayerID, formatTime(s.StartedAt), nullableTime(s.EndedAt), int64(s.DurationSeconds), s.IsActive)
	if err != nil {
		return fmt.Errorf("inserting session %s: %w", s.ID, err)
	}
	return nil
}

func (t *txn) UpdateSession(s *types.PlayerSession) error {
	res, err := t.exec(
		"UPDATE player_sessions SET ended_at = ?, duration_seconds = ?, is_active = ? WHERE session_id = ?",
		nullableTime(s.EndedAt), int64(s.DurationSeconds), s.IsActive, s.ID,
	)
	return mustAffect(res, err, "session "+s.ID)
}
