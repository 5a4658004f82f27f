package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/lurelands/internal/document"
	"github.com/mesh-intelligence/lurelands/internal/rules"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

// Fallback position for new players when the catalog has no spawn points.
const (
	fallbackSpawnX = 1000
	fallbackSpawnY = 1000
)

// JoinWorld brings a player online, creating the row on first join, and
// starts a session. A returning player keeps its stored name and color.
func (e *Engine) JoinWorld(ctx context.Context, playerID, name string, color uint32) error {
	const op = "join_world"
	if playerID == "" {
		return notFound(op, "empty player id")
	}
	created := false
	err := e.update(ctx, op, func(tx types.Tx) error {
		p, err := tx.GetPlayer(playerID)
		switch {
		case err == nil:
			p.IsOnline = true
			p.LastUpdated = tx.Now()
			if err := tx.UpdatePlayer(p); err != nil {
				return err
			}
		case errors.Is(err, types.ErrNotFound):
			p = e.spawn(playerID, name, color, tx.Now())
			p.IsOnline = true
			if err := tx.InsertPlayer(p); err != nil {
				return err
			}
			created = true
		default:
			return err
		}
		return e.startSession(tx, playerID)
	})
	if err != nil {
		return err
	}
	e.log.Info("player joined", "player", playerID, "new", created)
	return nil
}

// spawn builds a fresh offline player at its deterministic spawn point.
func (e *Engine) spawn(playerID, name string, color uint32, now time.Time) *types.Player {
	p := &types.Player{
		ID:          playerID,
		Name:        name,
		Color:       color,
		LastUpdated: now,
	}
	if sp, ok := e.catalog.SpawnFor(playerID); ok {
		p.X, p.Y = sp.X, sp.Y
	} else {
		e.log.Warn("no spawn points, using fallback", "player", playerID)
		p.X, p.Y = fallbackSpawnX, fallbackSpawnY
	}
	return p
}

// LeaveWorld marks a player offline and ends its session.
func (e *Engine) LeaveWorld(ctx context.Context, playerID string) error {
	const op = "leave_world"
	err := e.update(ctx, op, func(tx types.Tx) error {
		p, err := player(tx, op, playerID)
		if err != nil {
			return err
		}
		p.IsOnline = false
		p.LastUpdated = tx.Now()
		if err := tx.UpdatePlayer(p); err != nil {
			return err
		}
		return e.endSession(tx, playerID)
	})
	if err != nil {
		return err
	}
	e.log.Info("player left", "player", playerID)
	return nil
}

// UpdatePlayerName renames a player. An unknown ID creates an offline
// player with the default color.
func (e *Engine) UpdatePlayerName(ctx context.Context, playerID, name string) error {
	const op = "update_player_name"
	if playerID == "" {
		return notFound(op, "empty player id")
	}
	return e.update(ctx, op, func(tx types.Tx) error {
		p, err := tx.GetPlayer(playerID)
		if errors.Is(err, types.ErrNotFound) {
			return tx.InsertPlayer(e.spawn(playerID, name, types.DefaultPlayerColor, tx.Now()))
		}
		if err != nil {
			return err
		}
		p.Name = name
		p.LastUpdated = tx.Now()
		return tx.UpdatePlayer(p)
	})
}

// UpdatePosition replicates a player's position and facing.
func (e *Engine) UpdatePosition(ctx context.Context, playerID string, x, y, facing float32) error {
	return e.replicate(ctx, "update_position", playerID, func(p *types.Player) {
		p.X, p.Y = x, y
		p.FacingAngle = facing
	})
}

// StartCasting records that the player's line is out at (x, y).
func (e *Engine) StartCasting(ctx context.Context, playerID string, x, y float32) error {
	return e.replicate(ctx, "start_casting", playerID, func(p *types.Player) {
		p.IsCasting = true
		p.CastTargetX = ptr(x)
		p.CastTargetY = ptr(y)
	})
}

// StopCasting clears the casting state.
func (e *Engine) StopCasting(ctx context.Context, playerID string) error {
	return e.replicate(ctx, "stop_casting", playerID, func(p *types.Player) {
		p.IsCasting = false
		p.CastTargetX = nil
		p.CastTargetY = nil
	})
}

func (e *Engine) replicate(ctx context.Context, op, playerID string, apply func(p *types.Player)) error {
	return e.update(ctx, op, func(tx types.Tx) error {
		p, err := player(tx, op, playerID)
		if err != nil {
			return err
		}
		apply(p)
		p.LastUpdated = tx.Now()
		return tx.UpdatePlayer(p)
	})
}

// StartSession opens a play session for the player. Sessions left active
// by an earlier connection are closed first.
func (e *Engine) StartSession(ctx context.Context, playerID string) error {
	return e.update(ctx, "start_session", func(tx types.Tx) error {
		return e.startSession(tx, playerID)
	})
}

func (e *Engine) startSession(tx types.Tx, playerID string) error {
	now := tx.Now()
	orphans, err := tx.ListActiveSessions(playerID)
	if err != nil {
		return err
	}
	for _, s := range orphans {
		d := s.End(now)
		if err := tx.UpdateSession(s); err != nil {
			return err
		}
		e.log.Warn("closed orphaned session", "player", playerID, "session", s.ID, "duration_seconds", d)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	session := &types.PlayerSession{
		ID:        id.String(),
		PlayerID:  playerID,
		StartedAt: now,
		IsActive:  true,
	}
	if err := tx.InsertSession(session); err != nil {
		return err
	}

	st, err := stats(tx, playerID)
	if err != nil {
		return err
	}
	if st == nil {
		err = tx.InsertStats(&types.PlayerStats{
			PlayerID:      playerID,
			TotalSessions: 1,
			FirstSeenAt:   now,
			LastSeenAt:    now,
			Level:         1,
			XPToNextLevel: rules.XPForLevel(2),
		})
	} else {
		st.TotalSessions++
		st.LastSeenAt = now
		err = tx.UpdateStats(st)
	}
	if err != nil {
		return err
	}

	return e.emit(tx, &types.GameEvent{
		PlayerID:  playerID,
		SessionID: &session.ID,
		EventType: types.EventSessionStarted,
	})
}

// EndSession closes the player's active session. Without one it does
// nothing.
func (e *Engine) EndSession(ctx context.Context, playerID string) error {
	return e.update(ctx, "end_session", func(tx types.Tx) error {
		return e.endSession(tx, playerID)
	})
}

func (e *Engine) endSession(tx types.Tx, playerID string) error {
	now := tx.Now()
	active, err := tx.ListActiveSessions(playerID)
	if err != nil {
		return err
	}
	if len(active) == 0 {
		return nil
	}
	st, err := stats(tx, playerID)
	if err != nil {
		return err
	}
	for _, s := range active {
		d := s.End(now)
		if err := tx.UpdateSession(s); err != nil {
			return err
		}
		if st != nil {
			st.TotalPlaytimeSeconds += d
		}
		err := e.emit(tx, &types.GameEvent{
			PlayerID:  playerID,
			SessionID: &s.ID,
			EventType: types.EventSessionEnded,
			Metadata:  ptr(document.With(document.Empty, "duration_seconds", d)),
		})
		if err != nil {
			return err
		}
		e.log.Debug("session ended", "player", playerID, "session", s.ID, "duration_seconds", d)
	}
	if st == nil {
		return nil
	}
	st.LastSeenAt = now
	return tx.UpdateStats(st)
}

// SweepIdle takes offline every online player not updated since cutoff and
// returns how many were swept.
func (e *Engine) SweepIdle(ctx context.Context, cutoff time.Time) (int, error) {
	var swept int
	err := e.update(ctx, "sweep_idle", func(tx types.Tx) error {
		idle, err := tx.ListPlayers(types.PlayerFilter{OnlineOnly: true, UpdatedBefore: cutoff})
		if err != nil {
			return err
		}
		for _, p := range idle {
			p.IsOnline = false
			p.LastUpdated = tx.Now()
			if err := tx.UpdatePlayer(p); err != nil {
				return err
			}
			if err := e.endSession(tx, p.ID); err != nil {
				return err
			}
		}
		swept = len(idle)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if swept > 0 {
		e.log.Info("swept idle players", "count", swept, "cutoff", cutoff)
	}
	return swept, nil
}

// RecordNPCInteraction notes that the player talked or traded with an NPC.
func (e *Engine) RecordNPCInteraction(ctx context.Context, playerID, npcID, kind string) error {
	const op = "record_npc_interaction"
	return e.update(ctx, op, func(tx types.Tx) error {
		if _, err := tx.GetNPC(npcID); err != nil {
			if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
				return notFound(op, "npc %q not found", npcID)
			}
			return err
		}
		in, err := tx.FindNPCInteraction(playerID, npcID)
		insert := errors.Is(err, types.ErrNotFound)
		switch {
		case insert:
			in = &types.PlayerNPCInteraction{PlayerID: playerID, NPCID: npcID}
		case err != nil:
			return err
		}
		if err := in.Record(kind, tx.Now()); err != nil {
			return precondition(op, "unknown interaction kind %q", kind)
		}
		if insert {
			return tx.InsertNPCInteraction(in)
		}
		return tx.UpdateNPCInteraction(in)
	})
}
