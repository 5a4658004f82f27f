package types

import "time"

// PlayerSession is one connected span of a player.
type PlayerSession struct {
	ID              string // UUID v7.
	PlayerID        string
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationSeconds uint64
	IsActive        bool
}

// End closes the session at now and returns the duration in whole seconds.
// Clock skew never produces a negative duration.
func (s *PlayerSession) End(now time.Time) uint64 {
	var d uint64
	if now.After(s.StartedAt) {
		d = uint64(now.Sub(s.StartedAt) / time.Second)
	}
	s.EndedAt = &now
	s.DurationSeconds = d
	s.IsActive = false
	return d
}
