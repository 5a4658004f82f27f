package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

const interactionColumns = `interaction_id, player_id, npc_id, has_talked, has_traded, talk_count,
    reputation, first_interaction_at, last_interaction_at`

func (t *txn) GetNPC(id string) (*types.NPC, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	var n types.NPC
	err := t.queryRow("SELECT npc_id, name, title, can_give_quests, can_trade, is_active FROM npcs WHERE npc_id = ?", id).
		Scan(&n.ID, &n.Name, &n.Title, &n.CanGiveQuests, &n.CanTrade, &n.IsActive)
	if err != nil {
		return nil, notFound(err, "npc", id)
	}
	return &n, nil
}

func (t *txn) UpsertNPC(n *types.NPC) error {
	if n.ID == "" {
		return types.ErrInvalidID
	}
	_, err := t.exec(`INSERT INTO npcs (npc_id, name, title, can_give_quests, can_trade, is_active)
    VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT(npc_id) DO UPDATE SET name = excluded.name,
    title = excluded.title, can_give_quests = excluded.can_give_quests,
    can_trade = excluded.can_trade, is_active = excluded.is_active`,
		n.ID, n.Name, n.Title, n.CanGiveQuests, n.CanTrade, n.IsActive)
	if err != nil {
		return fmt.Errorf("upserting npc %s: %w", n.ID, err)
	}
	return nil
}

func (t *txn) FindNPCInteraction(playerID, npcID string) (*types.PlayerNPCInteraction, error) {
	var (
		i           types.PlayerNPCInteraction
		first, last string
	)
	err := t.queryRow("SELECT "+interactionColumns+" FROM player_npc_interactions WHERE player_id = ? AND npc_id = ?",
		playerID, npcID).
		Scan(&i.ID, &i.PlayerID, &i.NPCID, &i.HasTalked, &i.HasTraded, &i.TalkCount, &i.Reputation, &first, &last)
	if err != nil {
		return nil, notFound(err, "npc interaction", playerID+"/"+npcID)
	}
	if i.FirstInteractionAt, err = parseTime(first); err != nil {
		return nil, fmt.Errorf("parsing first_interaction_at: %w", err)
	}
	if i.LastInteractionAt, err = parseTime(last); err != nil {
		return nil, fmt.Errorf("parsing last_interaction_at: %w", err)
	}
	return &i, nil
}

func (t *txn) InsertNPCInteraction(i *types.PlayerNPCInteraction) error {
	if i.PlayerID == "" || i.NPCID == "" {
		return types.ErrInvalidID
	}
	res, err := t.exec(`INSERT INTO player_npc_interactions (player_id, npc_id, has_talked, has_traded,
    talk_count, reputation, first_interaction_at, last_interaction_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		i.PlayerID, i.NPCID, i.HasTalked, i.HasTraded, int64(i.TalkCount), int64(i.Reputation),
		formatTime(i.FirstInteractionAt), formatTime(i.LastInteractionAt))
	if err != nil {
		return fmt.Errorf("inserting npc interaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading npc interaction id: %w", err)
	}
	i.ID = id
	return nil
}

func (t *txn) UpdateNPCInteraction(i *types.PlayerNPCInteraction) error {
	res, err := t.exec(`UPDATE player_npc_interactions SET has_talked = ?, has_traded = ?, talk_count = ?,
    reputation = ?, last_interaction_at = ? WHERE interaction_id = ?`,
		i.HasTalked, i.HasTraded, int64(i.TalkCount), int64(i.Reputation), formatTime(i.LastInteractionAt), i.ID)
	return mustAffect(res, err, fmt.Sprintf("npc interaction %d", i.ID))
}
