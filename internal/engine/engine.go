// Package engine runs the game's entry points: world presence, catching,
// trading, quests and progression. Each entry point is validated and applied
// inside one store transaction while holding the engine lock, so calls are
// serialized and a rejected call leaves no trace.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/lurelands/internal/catalog"
	"github.com/mesh-intelligence/lurelands/internal/ledger"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

// Engine is the authoritative game-state engine.
type Engine struct {
	mu      sync.Mutex
	store   types.Store
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	log     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an Engine over an attached store. A nil catalog behaves as an
// empty one: item kinds come from ID prefixes and new players spawn at the
// map center.
func New(store types.Store, cat *catalog.Catalog, opts ...Option) *Engine {
	if cat == nil {
		cat = &catalog.Catalog{}
	}
	e := &Engine{
		store:   store,
		catalog: cat,
		ledger:  ledger.New(cat),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Bootstrap seeds the catalog into the store.
func (e *Engine) Bootstrap(ctx context.Context) (catalog.SeedResult, error) {
	var res catalog.SeedResult
	err := e.update(ctx, "bootstrap", func(tx types.Tx) error {
		var err error
		res, err = e.catalog.Seed(tx)
		return err
	})
	if err != nil {
		return res, err
	}
	level := slog.LevelDebug
	if res.Added > 0 {
		level = slog.LevelInfo
	}
	e.log.Log(ctx, level, "catalog seeded", "added", res.Added, "skipped", res.Skipped)
	return res, nil
}

// update runs fn as one serialized read-write transaction. Rejections are
// logged and returned as-is; other failures are wrapped with op.
func (e *Engine) update(ctx context.Context, op string, fn func(tx types.Tx) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.store.Update(ctx, fn)
	if err == nil {
		return nil
	}
	var rej *Rejection
	if errors.As(err, &rej) {
		level := slog.LevelWarn
		if rej.Kind == KindDataIntegrity {
			level = slog.LevelError
		}
		e.log.Log(ctx, level, "call rejected", "op", rej.Op, "kind", string(rej.Kind), "reason", rej.Reason)
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (e *Engine) view(ctx context.Context, op string, fn func(tx types.Tx) error) error {
	if err := e.store.View(ctx, fn); err != nil {
		var rej *Rejection
		if errors.As(err, &rej) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// emit appends an audit event. Events without an explicit session are
// attributed to the player's active session, if any.
func (e *Engine) emit(tx types.Tx, ev *types.GameEvent) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating event id: %w", err)
	}
	ev.ID = id.String()
	ev.CreatedAt = tx.Now()
	if ev.SessionID == nil {
		active, err := tx.ListActiveSessions(ev.PlayerID)
		if err != nil {
			return err
		}
		if len(active) > 0 {
			ev.SessionID = &active[0].ID
		}
	}
	return tx.InsertEvent(ev)
}

// player loads a player row, turning a miss into a not-found rejection.
func player(tx types.Tx, op, id string) (*types.Player, error) {
	p, err := tx.GetPlayer(id)
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
		return nil, notFound(op, "player %q not found", id)
	}
	return p, err
}

// stats loads a stats row. A missing row is reported as nil, nil.
func stats(tx types.Tx, playerID string) (*types.PlayerStats, error) {
	s, err := tx.GetStats(playerID)
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
		return nil, nil
	}
	return s, err
}

func ptr[T any](v T) *T { return &v }
