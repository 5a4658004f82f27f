package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

func strPtr(s string) *string { return &s }

func TestPlayersTable(t *testing.T) {
	b := setupBackend(t)
	cx, cy := float32(10.5), float32(-3)

	update(t, b, func(tx types.Tx) error {
		require.NoError(t, tx.InsertPlayer(&types.Player{
			ID: "p1", Name: "Ada", X: 400, Y: 300, FacingAngle: 1.5, IsCasting: true,
			CastTargetX: &cx, CastTargetY: &cy, Color: types.DefaultPlayerColor, IsOnline: true,
			Gold: 250, EquippedPoleID: strPtr("pole_2"), LastUpdated: testNow,
		}))
		require.NoError(t, tx.InsertPlayer(&types.Player{ID: "p2", Name: "Bo", LastUpdated: testNow.Add(-time.Hour)}))
		assert.ErrorIs(t, tx.InsertPlayer(&types.Player{}), types.ErrInvalidID)
		return nil
	})

	require.NoError(t, b.View(context.Background(), func(tx types.Tx) error {
		p, err := tx.GetPlayer("p1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", p.Name)
		assert.Equal(t, float32(400), p.X)
		assert.True(t, p.IsCasting)
		require.NotNil(t, p.CastTargetX)
		assert.Equal(t, cx, *p.CastTargetX)
		assert.Equal(t, types.DefaultPlayerColor, p.Color)
		assert.Equal(t, uint32(250), p.Gold)
		require.NotNil(t, p.EquippedPoleID)
		assert.Equal(t, "pole_2", *p.EquippedPoleID)
		assert.True(t, p.LastUpdated.Equal(testNow))

		_, err = tx.GetPlayer("nobody")
		assert.ErrorIs(t, err, types.ErrNotFound)

		online, err := tx.ListPlayers(types.PlayerFilter{OnlineOnly: true})
		require.NoError(t, err)
		require.Len(t, online, 1)
		assert.Equal(t, "p1", online[0].ID)

		stale, err := tx.ListPlayers(types.PlayerFilter{UpdatedBefore: testNow.Add(-time.Minute)})
		require.NoError(t, err)
		require.Len(t, stale, 1)
		assert.Equal(t, "p2", stale[0].ID)
		return nil
	}))

	update(t, b, func(tx types.Tx) error {
		p, err := tx.GetPlayer("p1")
		require.NoError(t, err)
		p.Gold = 10
		p.EquippedPoleID = nil
		p.CastTargetX, p.CastTargetY = nil, nil
		require.NoError(t, tx.UpdatePlayer(p))

		got, err := tx.GetPlayer("p1")
		require.NoError(t, err)
		assert.Equal(t, uint32(10), got.Gold)
		assert.Nil(t, got.EquippedPoleID)
		assert.Nil(t, got.CastTargetX)

		assert.ErrorIs(t, tx.UpdatePlayer(&types.Player{ID: "ghost"}), types.ErrNotFound)
		return nil
	})
}

func TestInventoryTable(t *testing.T) {
	b := setupBackend(t)

	update(t, b, func(tx types.Tx) error {
		for _, s := range []*types.InventoryStack{
			{PlayerID: "p1", ItemID: "fish_pond_1", Rarity: 1, Quantity: 5},
			{PlayerID: "p1", ItemID: "fish_pond_1", Rarity: 2, Quantity: 1},
			{PlayerID: "p1", ItemID: "fish_pond_1", Rarity: 1, Quantity: 2},
			{PlayerID: "p1", ItemID: "lure_1", Quantity: 30},
			{PlayerID: "p2", ItemID: "fish_pond_1", Rarity: 1, Quantity: 4},
		} {
			require.NoError(t, tx.InsertStack(s))
			assert.NotZero(t, s.ID)
		}

		stacks, err := tx.ListStacks("p1", "fish_pond_1", 1)
		require.NoError(t, err)
		require.Len(t, stacks, 2)
		assert.Less(t, stacks[0].ID, stacks[1].ID)
		assert.Equal(t, uint32(5), stacks[0].Quantity)

		all, err := tx.ListItemStacks("p1", "fish_pond_1")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		inv, err := tx.ListInventory("p1")
		require.NoError(t, err)
		require.Len(t, inv, 4)
		assert.Equal(t, "lure_1", inv[3].ItemID)

		stacks[1].Quantity = 4
		require.NoError(t, tx.UpdateStack(stacks[1]))
		require.NoError(t, tx.DeleteStack(stacks[0].ID))
		assert.ErrorIs(t, tx.DeleteStack(stacks[0].ID), types.ErrNotFound)

		left, err := tx.ListStacks("p1", "fish_pond_1", 1)
		require.NoError(t, err)
		require.Len(t, left, 1)
		assert.Equal(t, uint32(4), left[0].Quantity)

		assert.ErrorIs(t, tx.InsertStack(&types.InventoryStack{PlayerID: "p1", ItemID: "lure_1"}), types.ErrInvalidData)
		return nil
	})
}

func TestQuestTables(t *testing.T) {
	b := setupBackend(t)
	order := uint32(2)

	update(t, b, func(tx types.Tx) error {
		require.NoError(t, tx.UpsertQuest(&types.Quest{
			ID: "guild_2", Title: "Know Your Waters", Type: types.QuestStory,
			StorylineID: strPtr("fishermans_guild"), StoryOrder: &order,
			PrerequisiteQuestID: strPtr("guild_1"), Requirements: `{"fish":{"fish_pond_1":1}}`,
			Rewards: `{"gold":100}`, GiverType: strPtr("npc"), GiverID: strPtr("guild_master"),
		}))
		require.NoError(t, tx.UpsertQuest(&types.Quest{ID: "guild_2", Title: "Renamed", Type: types.QuestStory,
			Requirements: "{}", Rewards: "{}"}))

		q, err := tx.GetQuest("guild_2")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", q.Title)
		assert.Nil(t, q.StoryOrder)

		first := &types.PlayerQuest{PlayerID: "p1", QuestID: "daily_haul", Status: types.QuestCompleted, Progress: "{}"}
		require.NoError(t, tx.InsertPlayerQuest(first))
		now := tx.Now()
		second := &types.PlayerQuest{PlayerID: "p1", QuestID: "daily_haul", Status: types.QuestActive,
			Progress: `{"total":1}`, AcceptedAt: &now}
		require.NoError(t, tx.InsertPlayerQuest(second))

		found, err := tx.FindPlayerQuest("p1", "daily_haul")
		require.NoError(t, err)
		assert.Equal(t, second.ID, found.ID)
		require.NotNil(t, found.AcceptedAt)
		assert.True(t, found.AcceptedAt.Equal(now))

		active, err := tx.ListPlayerQuests("p1", types.QuestActive)
		require.NoError(t, err)
		assert.Len(t, active, 1)
		all, err := tx.ListPlayerQuests("p1", "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		require.NoError(t, found.Complete(now))
		require.NoError(t, tx.UpdatePlayerQuest(found))
		require.NoError(t, tx.DeletePlayerQuest(first.ID))

		_, err = tx.FindPlayerQuest("p1", "guild_1")
		assert.ErrorIs(t, err, types.ErrNotFound)

		require.NoError(t, tx.DeleteQuest("guild_2"))
		_, err = tx.GetQuest("guild_2")
		assert.ErrorIs(t, err, types.ErrNotFound)
		return nil
	})
}

func TestStatsSessionsAndEvents(t *testing.T) {
	b := setupBackend(t)

	update(t, b, func(tx types.Tx) error {
		now := tx.Now()
		require.NoError(t, tx.InsertStats(&types.PlayerStats{PlayerID: "p1", TotalSessions: 1,
			FirstSeenAt: now, LastSeenAt: now, Level: 1, XPToNextLevel: 283}))
		s, err := tx.GetStats("p1")
		require.NoError(t, err)
		s.XP = 120
		s.TotalGoldEarned = 1 << 40
		require.NoError(t, tx.UpdateStats(s))
		got, err := tx.GetStats("p1")
		require.NoError(t, err)
		assert.Equal(t, uint64(120), got.XP)
		assert.Equal(t, uint64(1<<40), got.TotalGoldEarned)

		sess := &types.PlayerSession{ID: "s1", PlayerID: "p1", StartedAt: now.Add(-time.Minute), IsActive: true}
		require.NoError(t, tx.InsertSession(sess))
		active, err := tx.ListActiveSessions("p1")
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, uint64(60), active[0].End(now))
		require.NoError(t, tx.UpdateSession(active[0]))
		active, err = tx.ListActiveSessions("p1")
		require.NoError(t, err)
		assert.Empty(t, active)

		qty, gold, rarity := uint32(2), uint32(60), uint8(3)
		require.NoError(t, tx.InsertEvent(&types.GameEvent{ID: "e1", PlayerID: "p1", EventType: types.EventItemSold,
			ItemID: strPtr("fish_pond_3"), Quantity: &qty, GoldAmount: &gold, Rarity: &rarity, CreatedAt: now}))
		require.NoError(t, tx.InsertEvent(&types.GameEvent{ID: "e0", PlayerID: "p1", EventType: types.EventSessionEnded,
			Metadata: strPtr(`{"duration_seconds":60}`), CreatedAt: now}))
		require.NoError(t, tx.InsertEvent(&types.GameEvent{ID: "e2", PlayerID: "p2", EventType: types.EventItemSold, CreatedAt: now}))

		events, err := tx.ListEvents(types.EventFilter{PlayerID: "p1"})
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "e1", events[0].ID, "events come back in insertion order")
		require.NotNil(t, events[0].Rarity)
		assert.Equal(t, uint8(3), *events[0].Rarity)
		assert.Nil(t, events[1].Quantity)

		sold, err := tx.ListEvents(types.EventFilter{EventType: types.EventItemSold, Limit: 1})
		require.NoError(t, err)
		assert.Len(t, sold, 1)

		assert.ErrorIs(t, tx.InsertEvent(&types.GameEvent{ID: "e3", PlayerID: "p1"}), types.ErrInvalidData)
		return nil
	})
}

func TestCatchesAndNPCs(t *testing.T) {
	b := setupBackend(t)

	update(t, b, func(tx types.Tx) error {
		now := tx.Now()
		c := &types.FishCatch{ID: "c1", FishID: "fish_pond_2", PlayerID: "p1", FishType: "perch",
			Size: 12.5, Rarity: types.RarityLabel(2), WaterBodyID: "pond_1", CaughtAt: now}
		require.NoError(t, tx.InsertCatch(c))
		c.Released = true
		require.NoError(t, tx.UpdateCatch(c))
		got, err := tx.GetCatch("c1")
		require.NoError(t, err)
		assert.True(t, got.Released)
		assert.Equal(t, "2star", got.Rarity)
		assert.Equal(t, float32(12.5), got.Size)

		require.NoError(t, tx.UpsertNPC(&types.NPC{ID: "guild_master", Name: "Marina", Title: "Guild Master",
			CanGiveQuests: true, IsActive: true}))
		n, err := tx.GetNPC("guild_master")
		require.NoError(t, err)
		assert.True(t, n.CanGiveQuests)
		assert.False(t, n.CanTrade)

		i := &types.PlayerNPCInteraction{PlayerID: "p1", NPCID: "guild_master"}
		require.NoError(t, i.Record(types.InteractionTalked, now))
		require.NoError(t, tx.InsertNPCInteraction(i))
		require.NoError(t, i.Record(types.InteractionTalked, now.Add(time.Second)))
		require.NoError(t, tx.UpdateNPCInteraction(i))

		found, err := tx.FindNPCInteraction("p1", "guild_master")
		require.NoError(t, err)
		assert.Equal(t, uint32(2), found.TalkCount)
		assert.True(t, found.LastInteractionAt.After(found.FirstInteractionAt))

		_, err = tx.FindNPCInteraction("p1", "dock_worker")
		assert.ErrorIs(t, err, types.ErrNotFound)
		return nil
	})

	err := b.Update(context.Background(), func(tx types.Tx) error {
		return tx.InsertNPCInteraction(&types.PlayerNPCInteraction{PlayerID: "p1", NPCID: "ghost",
			FirstInteractionAt: testNow, LastInteractionAt: testNow})
	})
	assert.Error(t, err, "interactions must reference an existing npc")
}
