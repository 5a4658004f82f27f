package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

const playerColumns = `player_id, name, x, y, facing_angle, is_casting, cast_target_x, cast_target_y,
    color, is_online, gold, equipped_pole_id, last_updated`

func (t *txn) GetPlayer(id string) (*types.Player, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	row := t.queryRow("SELECT "+playerColumns+" FROM players WHERE player_id = ?", id)
	p, err := hydratePlayer(row)
	if err != nil {
		return nil, notFound(err, "player", id)
	}
	return p, nil
}

func (t *txn) ListPlayers(filter types.PlayerFilter) ([]*types.Player, error) {
	var (
		where []string
		args  []any
	)
	if filter.OnlineOnly {
		where = append(where, "is_online = 1")
	}
	if !filter.UpdatedBefore.IsZero() {
		where = append(where, "last_updated < ?")
		args = append(args, formatTime(filter.UpdatedBefore))
	}
	q := "SELECT " + playerColumns + " FROM players"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY player_id"

	rows, err := t.query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	players := []*types.Player{}
	for rows.Next() {
		p, err := hydratePlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (t *txn) InsertPlayer(p *types.Player) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := t.exec(
		"INSERT INTO players ("+playerColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		playerArgs(p)...,
	)
	if err != nil {
		return fmt.Errorf("inserting player %s: %w", p.ID, err)
	}
	return nil
}

func (t *txn) UpdatePlayer(p *types.Player) error {
	if err := p.Validate(); err != nil {
		return err
	}
	args := playerArgs(p)
	res, err := t.exec(`UPDATE players SET name = ?, x = ?, y = ?, facing_angle = ?, is_casting = ?,
    cast_target_x = ?, cast_target_y = ?, color = ?, is_online = ?, gold = ?,
    equipped_pole_id = ?, last_updated = ? WHERE player_id = ?`,
		append(args[1:], p.ID)...,
	)
	return mustAffect(res, err, "player "+p.ID)
}

func playerArgs(p *types.Player) []any {
	return []any{
		p.ID, p.Name, float64(p.X), float64(p.Y), float64(p.FacingAngle), p.IsCasting,
		nullableFloat32(p.CastTargetX), nullableFloat32(p.CastTargetY),
		int64(p.Color), p.IsOnline, int64(p.Gold), nullable(p.EquippedPoleID),
		formatTime(p.LastUpdated),
	}
}

func hydratePlayer(s scanner) (*types.Player, error) {
	var (
		p            types.Player
		x, y, facing float64
		castX, castY sql.NullFloat64
		color, gold  int64
		pole         sql.NullString
		lastUpdated  string
	)
	if err := s.Scan(&p.ID, &p.Name, &x, &y, &facing, &p.IsCasting, &castX, &castY,
		&color, &p.IsOnline, &gold, &pole, &lastUpdated); err != nil {
		return nil, err
	}
	ts, err := parseTime(lastUpdated)
	if err != nil {
		return nil, fmt.Errorf("parsing last_updated: %w", err)
	}
	p.X, p.Y, p.FacingAngle = float32(x), float32(y), float32(facing)
	p.CastTargetX, p.CastTargetY = float32Ptr(castX), float32Ptr(castY)
	p.Color = uint32(color)
	p.Gold = uint32(gold)
	p.EquippedPoleID = stringPtr(pole)
	p.LastUpdated = ts
	return &p, nil
}
