package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerQuestComplete(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		status  QuestStatus
		wantErr error
	}{
		{name: "active completes", status: QuestActive},
		{name: "completed is terminal", status: QuestCompleted, wantErr: ErrInvalidTransition},
		{name: "unknown status rejected", status: "abandoned", wantErr: ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pq := &PlayerQuest{Status: tt.status, Progress: "{}"}
			err := pq.Complete(now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, pq.Status)
				assert.Nil(t, pq.CompletedAt)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, QuestCompleted, pq.Status)
			require.NotNil(t, pq.CompletedAt)
			assert.Equal(t, now, *pq.CompletedAt)
		})
	}
}

func TestPlayerEquip(t *testing.T) {
	p := &Player{ID: "p1"}
	assert.False(t, p.HasEquipped("pole_2"))

	assert.True(t, p.Equip("pole_2"))
	assert.True(t, p.HasEquipped("pole_2"))
	assert.False(t, p.Equip("pole_2"), "re-equipping the same pole is not a change")
	assert.True(t, p.Equip("pole_3"))

	prev := p.Unequip()
	require.NotNil(t, prev)
	assert.Equal(t, "pole_3", *prev)
	assert.Nil(t, p.Unequip())
}

func TestSessionEnd(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := &PlayerSession{ID: "s1", StartedAt: start, IsActive: true}
	d := s.End(start.Add(90*time.Second + 500*time.Millisecond))
	assert.Equal(t, uint64(90), d)
	assert.False(t, s.IsActive)
	require.NotNil(t, s.EndedAt)

	skewed := &PlayerSession{ID: "s2", StartedAt: start, IsActive: true}
	assert.Equal(t, uint64(0), skewed.End(start.Add(-time.Minute)))
}

func TestNPCInteractionRecord(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	var i PlayerNPCInteraction
	require.NoError(t, i.Record(InteractionTalked, t0))
	require.NoError(t, i.Record(InteractionTalked, t1))
	require.NoError(t, i.Record(InteractionTraded, t1))

	assert.True(t, i.HasTalked)
	assert.True(t, i.HasTraded)
	assert.Equal(t, uint32(2), i.TalkCount)
	assert.Equal(t, t0, i.FirstInteractionAt)
	assert.Equal(t, t1, i.LastInteractionAt)

	assert.ErrorIs(t, i.Record("waved", t1), ErrInvalidData)
}

func TestRarityLabel(t *testing.T) {
	assert.Equal(t, "3star", RarityLabel(3))
	assert.Equal(t, "0star", RarityLabel(0))
}

func TestInventoryStackValidate(t *testing.T) {
	assert.NoError(t, (&InventoryStack{PlayerID: "p", ItemID: "lure_1", Quantity: 1}).Validate())
	assert.ErrorIs(t, (&InventoryStack{ItemID: "lure_1", Quantity: 1}).Validate(), ErrInvalidID)
	assert.ErrorIs(t, (&InventoryStack{PlayerID: "p", ItemID: "lure_1"}).Validate(), ErrInvalidData)
	assert.ErrorIs(t, (&Player{}).Validate(), ErrInvalidID)
}
