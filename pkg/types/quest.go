package types

import "time"

// QuestType distinguishes one-time story quests from repeatable dailies.
type QuestType string

// Quest types.
const (
	QuestStory QuestType = "story"
	QuestDaily QuestType = "daily"
)

// QuestStatus is the state of a PlayerQuest. Story quests end in completed
// forever; a completed daily may be deleted and accepted again.
type QuestStatus string

// Quest statuses.
const (
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
)

// Quest is catalog reference data. Requirements and Rewards are documents
// in the restricted JSON shape read by the document package.
type Quest struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Type                QuestType `json:"type"`
	StorylineID         *string   `json:"storyline_id,omitempty"`
	StoryOrder          *uint32   `json:"story_order,omitempty"`
	PrerequisiteQuestID *string   `json:"prerequisite_quest_id,omitempty"`
	Requirements        string    `json:"requirements"`
	Rewards             string    `json:"rewards"`
	GiverType           *string   `json:"giver_type,omitempty"`
	GiverID             *string   `json:"giver_id,omitempty"`
}

// PlayerQuest tracks one player's attempt at a quest.
type PlayerQuest struct {
	ID          int64
	PlayerID    string
	QuestID     string
	Status      QuestStatus
	Progress    string // Document of counters, starts as "{}".
	AcceptedAt  *time.Time
	CompletedAt *time.Time
}

// Complete moves an active quest to completed.
func (pq *PlayerQuest) Complete(now time.Time) error {
	if pq.Status != QuestActive {
		return ErrInvalidTransition
	}
	pq.Status = QuestCompleted
	pq.CompletedAt = &now
	return nil
}
