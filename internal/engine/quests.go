package engine

import (
	"context"
	"errors"
	"sort"

	"github.com/mesh-intelligence/lurelands/internal/document"
	"github.com/mesh-intelligence/lurelands/internal/rules"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

// Progress document keys written on every catch.
const (
	progressTotal     = "total"
	progressMaxRarity = "max_rarity"
)

// Requirement document keys.
const (
	requireFish      = "fish"
	requireTotalFish = "total_fish"
	requireMinRarity = "min_rarity"
)

// Quest board states reported by AvailableQuests.
const (
	BoardAvailable = "available"
	BoardLocked    = "locked"
	BoardActive    = "active"
	BoardCompleted = "completed"
)

// QuestView is one row of a player's quest board.
type QuestView struct {
	Quest    *types.Quest `json:"quest"`
	Status   string       `json:"status"`
	Progress string       `json:"progress,omitempty"`
}

// AcceptQuest starts a quest for the player. Story quests can be accepted
// once; a completed daily quest is reset and accepted again.
func (e *Engine) AcceptQuest(ctx context.Context, playerID, questID string) error {
	const op = "accept_quest"
	err := e.update(ctx, op, func(tx types.Tx) error {
		q, err := tx.GetQuest(questID)
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
			return notFound(op, "quest %q not found", questID)
		}
		if err != nil {
			return err
		}

		prev, err := tx.FindPlayerQuest(playerID, questID)
		switch {
		case errors.Is(err, types.ErrNotFound):
		case err != nil:
			return err
		case prev.Status == types.QuestActive:
			return precondition(op, "quest %s already active", questID)
		case q.Type == types.QuestStory:
			return precondition(op, "story quest %s already completed", questID)
		default:
			if err := tx.DeletePlayerQuest(prev.ID); err != nil {
				return err
			}
		}

		if q.PrerequisiteQuestID != nil {
			done, err := completed(tx, playerID, *q.PrerequisiteQuestID)
			if err != nil {
				return err
			}
			if !done {
				return precondition(op, "prerequisite %s not completed", *q.PrerequisiteQuestID)
			}
		}

		now := tx.Now()
		err = tx.InsertPlayerQuest(&types.PlayerQuest{
			PlayerID:   playerID,
			QuestID:    questID,
			Status:     types.QuestActive,
			Progress:   document.Empty,
			AcceptedAt: &now,
		})
		if err != nil {
			return err
		}
		return e.emit(tx, &types.GameEvent{
			PlayerID:  playerID,
			EventType: types.EventQuestAccepted,
			ItemID:    ptr(questID),
		})
	})
	if err != nil {
		return err
	}
	e.log.Info("quest accepted", "player", playerID, "quest", questID)
	return nil
}

// completed reports whether the player holds a completed row for questID.
func completed(tx types.Tx, playerID, questID string) (bool, error) {
	rows, err := tx.ListPlayerQuests(playerID, types.QuestCompleted)
	if err != nil {
		return false, err
	}
	for _, pq := range rows {
		if pq.QuestID == questID {
			return true, nil
		}
	}
	return false, nil
}

// advanceQuests records one caught fish against every active quest.
func (e *Engine) advanceQuests(tx types.Tx, playerID, itemID string, rarity uint8) error {
	active, err := tx.ListPlayerQuests(playerID, types.QuestActive)
	if err != nil {
		return err
	}
	for _, pq := range active {
		progress := document.Increment(pq.Progress, itemID, 1)
		progress = document.Increment(progress, progressTotal, 1)
		progress = document.Raise(progress, progressMaxRarity, uint32(rarity))
		pq.Progress = progress
		if err := tx.UpdatePlayerQuest(pq); err != nil {
			return err
		}
		e.log.Debug("quest progress", "player", playerID, "quest", pq.QuestID, "progress", progress)
	}
	return nil
}

// CompleteQuest turns in an active quest whose requirements are met and
// grants its rewards.
func (e *Engine) CompleteQuest(ctx context.Context, playerID, questID string) error {
	const op = "complete_quest"
	err := e.update(ctx, op, func(tx types.Tx) error {
		pq, err := tx.FindPlayerQuest(playerID, questID)
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
			return notFound(op, "quest %s was never accepted", questID)
		}
		if err != nil {
			return err
		}
		if pq.Status != types.QuestActive {
			return precondition(op, "quest %s is not active", questID)
		}
		q, err := tx.GetQuest(questID)
		if errors.Is(err, types.ErrNotFound) {
			return integrity(op, "active quest %s has no definition", questID)
		}
		if err != nil {
			return err
		}
		if !MeetsRequirements(q.Requirements, pq.Progress) {
			return precondition(op, "requirements for %s not met", questID)
		}
		if err := pq.Complete(tx.Now()); err != nil {
			return err
		}
		if err := tx.UpdatePlayerQuest(pq); err != nil {
			return err
		}
		if err := e.grantRewards(tx, op, playerID, q.Rewards); err != nil {
			return err
		}
		if err := e.addXP(tx, playerID, rules.QuestXP(q.Type), "quest_completed"); err != nil {
			return err
		}
		meta := document.With(document.Empty, "rewards", document.Raw(rewardsDoc(q.Rewards)))
		return e.emit(tx, &types.GameEvent{
			PlayerID:  playerID,
			EventType: types.EventQuestCompleted,
			ItemID:    ptr(questID),
			Metadata:  &meta,
		})
	})
	if err != nil {
		return err
	}
	e.log.Info("quest completed", "player", playerID, "quest", questID)
	return nil
}

// rewardsDoc returns doc, or the empty document if doc is not an object.
func rewardsDoc(doc string) string {
	if doc, ok := document.Normalize(doc); ok {
		return doc
	}
	return document.Empty
}

// grantRewards credits reward gold to the balance and stores reward items
// at rarity 0, capped at one full stack per entry.
func (e *Engine) grantRewards(tx types.Tx, op, playerID, rewards string) error {
	if gold := document.Count(rewards, "gold"); gold > 0 {
		p, err := tx.GetPlayer(playerID)
		switch {
		case errors.Is(err, types.ErrNotFound):
		case err != nil:
			return err
		default:
			balance, ok := credit(p.Gold, uint64(gold))
			if !ok {
				return precondition(op, "gold balance would overflow")
			}
			p.Gold = balance
			p.LastUpdated = tx.Now()
			if err := tx.UpdatePlayer(p); err != nil {
				return err
			}
		}
	}
	for _, item := range document.Objects(rewards, "items") {
		itemID, ok := document.String(item, "item_id")
		if !ok || itemID == "" {
			continue
		}
		qty, ok := document.Number(item, "quantity")
		if !ok {
			qty = 1
		}
		qty = min(qty, e.ledger.Capacity(itemID))
		if qty == 0 {
			continue
		}
		if err := e.ledger.Add(tx, playerID, itemID, 0, qty); err != nil {
			return err
		}
	}
	return nil
}

// MeetsRequirements reports whether progress satisfies every clause of a
// requirements document: per-fish counts under "fish", "total_fish" against
// the running total and "min_rarity" against the best rarity caught.
// Missing or unreadable counters count as zero.
func MeetsRequirements(requirements, progress string) bool {
	if fish, ok := document.Object(requirements, requireFish); ok {
		for _, need := range document.Counts(fish) {
			if document.Count(progress, need.Key) < need.Count {
				return false
			}
		}
	}
	if n := document.Count(requirements, requireTotalFish); document.Count(progress, progressTotal) < n {
		return false
	}
	if n := document.Count(requirements, requireMinRarity); document.Count(progress, progressMaxRarity) < n {
		return false
	}
	return true
}

// AvailableQuests returns the player's quest board: every quest with its
// status, story quests first by storyline and order, then dailies.
func (e *Engine) AvailableQuests(ctx context.Context, playerID string) ([]QuestView, error) {
	var views []QuestView
	err := e.view(ctx, "available_quests", func(tx types.Tx) error {
		quests, err := tx.ListQuests()
		if err != nil {
			return err
		}
		rows, err := tx.ListPlayerQuests(playerID, "")
		if err != nil {
			return err
		}
		latest := make(map[string]*types.PlayerQuest, len(rows))
		done := make(map[string]bool, len(rows))
		for _, pq := range rows {
			latest[pq.QuestID] = pq
			if pq.Status == types.QuestCompleted {
				done[pq.QuestID] = true
			}
		}

		views = make([]QuestView, 0, len(quests))
		for _, q := range quests {
			v := QuestView{Quest: q, Status: BoardAvailable}
			pq := latest[q.ID]
			switch {
			case pq != nil && pq.Status == types.QuestActive:
				v.Status = BoardActive
				v.Progress = pq.Progress
			case pq != nil && q.Type == types.QuestStory:
				v.Status = BoardCompleted
			case q.PrerequisiteQuestID != nil && !done[*q.PrerequisiteQuestID]:
				v.Status = BoardLocked
			}
			views = append(views, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(views, func(i, j int) bool { return boardLess(views[i].Quest, views[j].Quest) })
	return views, nil
}

func boardLess(a, b *types.Quest) bool {
	if (a.StorylineID == nil) != (b.StorylineID == nil) {
		return a.StorylineID != nil
	}
	if a.StorylineID != nil && *a.StorylineID != *b.StorylineID {
		return *a.StorylineID < *b.StorylineID
	}
	ao, bo := order(a), order(b)
	if ao != bo {
		return ao < bo
	}
	return a.ID < b.ID
}

func order(q *types.Quest) uint32 {
	if q.StoryOrder == nil {
		return 0
	}
	return *q.StoryOrder
}
