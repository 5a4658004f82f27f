package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/lurelands/internal/catalog"
	"github.com/mesh-intelligence/lurelands/internal/engine"
	"github.com/mesh-intelligence/lurelands/internal/paths"
	"github.com/mesh-intelligence/lurelands/pkg/sqlite"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

// errUsage marks bad command-line input.
var errUsage = errors.New("invalid usage")

// session is an attached store with an engine over it.
type session struct {
	store  types.Store
	engine *engine.Engine
}

// open resolves the data directory, attaches the store and seeds the
// catalog. The caller must Close the session.
func (a *app) open(ctx context.Context) (*session, error) {
	dataDir, err := paths.ResolveDataDir(a.dataDir, a.settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	store := sqlite.NewBackend()
	cfg := types.Config{Backend: a.settings.Backend, DataDir: dataDir}
	if err := store.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	cat, err := catalog.Default()
	if err != nil {
		store.Detach()
		return nil, err
	}
	e := engine.New(store, cat, engine.WithLogger(a.log))
	if _, err := e.Bootstrap(ctx); err != nil {
		store.Detach()
		return nil, err
	}
	return &session{store: store, engine: e}, nil
}

func (s *session) Close() error {
	return s.store.Detach()
}

// withEngine runs fn against a freshly opened session.
func (a *app) withEngine(ctx context.Context, fn func(e *engine.Engine) error) error {
	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s.engine)
}

func parseUint32(name, v string) (uint32, error) {
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %q", errUsage, name, v)
	}
	return uint32(n), nil
}

func parseRarity(v string) (uint8, error) {
	n, err := strconv.ParseUint(v, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: rarity must be 0-255, got %q", errUsage, v)
	}
	return uint8(n), nil
}
