// Package sqlite provides the public API for the SQLite Lurelands store.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"time"

	"github.com/mesh-intelligence/lurelands/internal/sqlite"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

// NewBackend creates a new SQLite store.
// The store is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".lurelands-db",
//	})
//	defer store.Detach()
//
// The returned store also implements types.EventExporter.
func NewBackend() types.Store {
	return sqlite.NewBackend()
}

// NewBackendWithClock creates a store whose transaction timestamps come from
// clock instead of the wall clock.
func NewBackendWithClock(clock func() time.Time) types.Store {
	return sqlite.NewBackend(sqlite.WithClock(clock))
}
