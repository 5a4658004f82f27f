package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

const questColumns = `quest_id, title, description, quest_type, storyline_id, story_order,
    prerequisite_quest_id, requirements, rewards, giver_type, giver_id`

const playerQuestColumns = "player_quest_id, player_id, quest_id, status, progress, accepted_at, completed_at"

func (t *txn) GetQuest(id string) (*types.Quest, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	q, err := hydrateQuest(t.queryRow("SELECT "+questColumns+" FROM quests WHERE quest_id = ?", id))
	if err != nil {
		return nil, notFound(err, "quest", id)
	}
	return q, nil
}

func (t *txn) ListQuests() ([]*types.Quest, error) {
	rows, err := t.query("SELECT " + questColumns + " FROM quests ORDER BY quest_id")
	if err != nil {
		return nil, fmt.Errorf("listing quests: %w", err)
	}
	defer rows.Close()

	quests := []*types.Quest{}
	for rows.Next() {
		q, err := hydrateQuest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning quest: %w", err)
		}
		quests = append(quests, q)
	}
	return quests, rows.Err()
}

func (t *txn) UpsertQuest(q *types.Quest) error {
	if q.ID == "" {
		return types.ErrInvalidID
	}
	var order any
	if q.StoryOrder != nil {
		order = int64(*q.StoryOrder)
	}
	_, err := t.exec(`INSERT INTO quests (`+questColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    ON CONFLICT(quest_id) DO UPDATE SET title = excluded.title, description = excluded.description,
    quest_type = excluded.quest_type, storyline_id = excluded.storyline_id,
    story_order = excluded.story_order, prerequisite_quest_id = excluded.prerequisite_quest_id,
    requirements = excluded.requirements, rewards = excluded.rewards,
    giver_type = excluded.giver_type, giver_id = excluded.giver_id`,
		q.ID, q.Title, q.Description, string(q.Type), nullable(q.StorylineID), order,
		nullable(q.PrerequisiteQuestID), q.Requirements, q.Rewards,
		nullable(q.GiverType), nullable(q.GiverID),
	)
	if err != nil {
		return fmt.Errorf("upserting quest %s: %w", q.ID, err)
	}
	return nil
}

func (t *txn) DeleteQuest(id string) error {
	res, err := t.exec("DELETE FROM quests WHERE quest_id = ?", id)
	return mustAffect(res, err, "quest "+id)
}

func (t *txn) FindPlayerQuest(playerID, questID string) (*types.PlayerQuest, error) {
	row := t.queryRow(
		"SELECT "+playerQuestColumns+" FROM player_quests WHERE player_id = ? AND quest_id = ? ORDER BY player_quest_id DESC LIMIT 1",
		playerID, questID,
	)
	pq, err := hydratePlayerQuest(row)
	if err != nil {
		return nil, notFound(err, "player quest", playerID+"/"+questID)
	}
	return pq, nil
}

func (t *txn) ListPlayerQuests(playerID string, status types.QuestStatus) ([]*types.PlayerQuest, error) {
	q := "SELECT " + playerQuestColumns + " FROM player_quests WHERE player_id = ?"
	args := []any{playerID}
	if status != "" {
		q += " AND status = ?"
		args = append(args, string(status))
	}
	q += " ORDER BY player_quest_id"

	rows, err := t.query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing player quests: %w", err)
	}
	defer rows.Close()

	out := []*types.PlayerQuest{}
	for rows.Next() {
		pq, err := hydratePlayerQuest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning player quest: %w", err)
		}
		out = append(out, pq)
	}
	return out, rows.Err()
}

func (t *txn) InsertPlayerQuest(pq *types.PlayerQuest) error {
	if pq.PlayerID == "" || pq.QuestID == "" {
		return types.ErrInvalidID
	}
	res, err := t.exec(
		"INSERT INTO player_quests (player_id, quest_id, status, progress, accepted_at, completed_at) VALUES (?, ?, ?, ?, ?, ?)",
		pq.PlayerID, pq.QuestID, string(pq.Status), pq.Progress,
		nullableTime(pq.AcceptedAt), nullableTime(pq.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting player quest: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading player quest id: %w", err)
	}
	pq.ID = id
	return nil
}

func (t *txn) UpdatePlayerQuest(pq *types.PlayerQuest) error {
	res, err := t.exec(
		"UPDATE player_quests SET status = ?, progress = ?, accepted_at = ?, completed_at = ? WHERE player_quest_id = ?",
		string(pq.Status), pq.Progress, nullableTime(pq.AcceptedAt), nullableTime(pq.CompletedAt), pq.ID,
	)
	return mustAffect(res, err, fmt.Sprintf("player quest %d", pq.ID))
}

func (t *txn) DeletePlayerQuest(id int64) error {
	res, err := t.exec("DELETE FROM player_quests WHERE player_quest_id = ?", id)
	return mustAffect(res, err, fmt.Sprintf("player quest %d", id))
}

func hydrateQuest(s scanner) (*types.Quest, error) {
	var (
		q                                     types.Quest
		questType                             string
		storyline, prereq, giverType, giverID sql.NullString
		order                                 sql.NullInt64
	)
	if err := s.Scan(&q.ID, &q.Title, &q.Description, &questType, &storyline, &order,
		&prereq, &q.Requirements, &q.Rewards, &giverType, &giverID); err != nil {
		return nil, err
	}
	q.Type = types.QuestType(questType)
	q.StorylineID = stringPtr(storyline)
	q.StoryOrder = uint32Ptr(order)
	q.PrerequisiteQuestID = stringPtr(prereq)
	q.GiverType = stringPtr(giverType)
	q.GiverID = stringPtr(giverID)
	return &q, nil
}

func hydratePlayerQuest(s scanner) (*types.PlayerQuest, error) {
	var (
		pq                  types.PlayerQuest
		status              string
		accepted, completed sql.NullString
	)
	if err := s.Scan(&pq.ID, &pq.PlayerID, &pq.QuestID, &status, &pq.Progress, &accepted, &completed); err != nil {
		return nil, err
	}
	pq.Status = types.QuestStatus(status)
	var err error
	if pq.AcceptedAt, err = parseNullTime(accepted); err != nil {
		return nil, fmt.Errorf("parsing accepted_at: %w", err)
	}
	if pq.CompletedAt, err = parseNullTime(completed); err != nil {
		return nil, fmt.Errorf("parsing completed_at: %w", err)
	}
	return &pq, nil
}
