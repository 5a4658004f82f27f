package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

const eventColumns = `event_id, player_id, session_id, event_type, item_id, quantity, gold_amount,
    rarity, water_body_id, metadata, created_at`

func (t *txn) InsertEvent(e *types.GameEvent) error {
	if e.ID == "" || e.PlayerID == "" {
		return types.ErrInvalidID
	}
	if e.EventType == "" {
		return types.ErrInvalidData
	}
	var qty, gold, rarity any
	if e.Quantity != nil {
		qty = int64(*e.Quantity)
	}
	if e.GoldAmount != nil {
		gold = int64(*e.GoldAmount)
	}
	if e.Rarity != nil {
		rarity = int64(*e.Rarity)
	}
	_, err := t.exec("INSERT INTO game_events ("+eventColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		e.ID, e.PlayerID, nullable(e.SessionID), e.EventType, nullable(e.ItemID), qty, gold, rarity,
		nullable(e.WaterBodyID), nullable(e.Metadata), formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting event %s: %w", e.ID, err)
	}
	return nil
}

func (t *txn) ListEvents(filter types.EventFilter) ([]*types.GameEvent, error) {
	var (
		where []string
		args  []any
	)
	if filter.PlayerID != "" {
		where = append(where, "player_id = ?")
		args = append(args, filter.PlayerID)
	}
	if filter.EventType != "" {
		where = append(where, "event_type = ?")
		args = append(args, filter.EventType)
	}
	if !filter.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, formatTime(filter.Since))
	}
	q := "SELECT " + eventColumns + " FROM game_events"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY rowid"
	if filter.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := t.query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	events := []*types.GameEvent{}
	for rows.Next() {
		e, err := hydrateEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func hydrateEvent(s scanner) (*types.GameEvent, error) {
	var (
		e                              types.GameEvent
		session, item, water, metadata sql.NullString
		qty, gold, rarity              sql.NullInt64
		created                        string
	)
	if err := s.Scan(&e.ID, &e.PlayerID, &session, &e.EventType, &item, &qty, &gold, &rarity,
		&water, &metadata, &created); err != nil {
		return nil, err
	}
	ts, err := parseTime(created)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.SessionID = stringPtr(session)
	e.ItemID = stringPtr(item)
	e.Quantity = uint32Ptr(qty)
	e.GoldAmount = uint32Ptr(gold)
	e.Rarity = uint8Ptr(rarity)
	e.WaterBodyID = stringPtr(water)
	e.Metadata = stringPtr(metadata)
	e.CreatedAt = ts
	return &e, nil
}
