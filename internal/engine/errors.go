package engine

import (
	"errors"
	"fmt"
)

// Rejection sentinels. Every *Rejection unwraps to exactly one of them.
var (
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrDataIntegrity      = errors.New("data integrity violation")
)

// Kind classifies a rejection.
type Kind string

// Rejection kinds.
const (
	KindNotFound      Kind = "not_found"
	KindPrecondition  Kind = "precondition_failed"
	KindDataIntegrity Kind = "data_integrity"
)

// Rejection is returned when an entry point refuses a call. The store
// transaction has been rolled back, so nothing the call did is visible.
type Rejection struct {
	Op     string
	Kind   Kind
	Reason string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s: %s", r.Op, r.Kind, r.Reason)
}

func (r *Rejection) Unwrap() error {
	switch r.Kind {
	case KindNotFound:
		return ErrNotFound
	case KindDataIntegrity:
		return ErrDataIntegrity
	default:
		return ErrPreconditionFailed
	}
}

func notFound(op, format string, args ...any) error {
	return &Rejection{Op: op, Kind: KindNotFound, Reason: fmt.Sprintf(format, args...)}
}

func precondition(op, format string, args ...any) error {
	return &Rejection{Op: op, Kind: KindPrecondition, Reason: fmt.Sprintf(format, args...)}
}

func integrity(op, format string, args ...any) error {
	return &Rejection{Op: op, Kind: KindDataIntegrity, Reason: fmt.Sprintf(format, args...)}
}
