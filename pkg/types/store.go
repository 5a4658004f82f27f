package types

import (
	"context"
	"errors"
)

// Store defines backend-agnostic access to the game state. Callers attach to
// a backend, run work inside transactions, and detach when done.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Update and View return ErrStoreDetached.
	Detach() error

	// Update runs fn inside a read-write transaction. The transaction
	// commits when fn returns nil and rolls back on any error, so a failed
	// fn leaves no trace in the store.
	Update(ctx context.Context, fn func(tx Tx) error) error

	// View runs fn inside a read-only transaction.
	View(ctx context.Context, fn func(tx Tx) error) error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// EventExporter is implemented by stores that can write the audit log to a
// file. It returns the number of events written.
type EventExporter interface {
	ExportEvents(ctx context.Context, path string, filter EventFilter) (int, error)
}
