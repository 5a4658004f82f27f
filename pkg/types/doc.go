// Package types defines the Store and Tx interfaces, the entity types, and
// the standard error values for the Lurelands game-state engine.
//
// Every entity is a row owned by the store. Callers never hold rows across
// transactions: they read through a Tx, mutate the struct, and write it back
// through the same Tx before it commits.
package types
