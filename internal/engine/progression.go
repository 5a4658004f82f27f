package engine

import (
	"context"

	"github.com/mesh-intelligence/lurelands/internal/rules"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

// AddXP grants experience from source. Players without a stats row are
// skipped.
func (e *Engine) AddXP(ctx context.Context, playerID string, amount uint64, source string) error {
	return e.update(ctx, "add_xp", func(tx types.Tx) error {
		return e.addXP(tx, playerID, amount, source)
	})
}

func (e *Engine) addXP(tx types.Tx, playerID string, amount uint64, source string) error {
	st, err := stats(tx, playerID)
	if err != nil || st == nil {
		return err
	}
	if st.Level == 0 {
		st.Level = 1
		st.XPToNextLevel = rules.XPForLevel(2)
	}
	from := st.Level
	levelUp(st, amount)
	if err := tx.UpdateStats(st); err != nil {
		return err
	}
	if st.Level > from {
		e.log.Info("level up", "player", playerID, "from", from, "to", st.Level, "source", source)
	} else {
		e.log.Debug("xp gained", "player", playerID, "amount", amount, "xp", st.XP, "source", source)
	}
	return nil
}

// levelUp adds amount and carries overflow across as many levels as it
// covers.
func levelUp(st *types.PlayerStats, amount uint64) {
	st.XP += amount
	for st.XPToNextLevel > 0 && st.XP >= st.XPToNextLevel {
		st.XP -= st.XPToNextLevel
		st.Level++
		st.XPToNextLevel = rules.XPForLevel(st.Level + 1)
	}
}
