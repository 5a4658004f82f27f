package rules

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		id   string
		want types.ItemKind
	}{
		{"fish_pond_1", types.KindFish},
		{"pole_4", types.KindPole},
		{"lure_2", types.KindLure},
		{"bait_worm", types.KindOther},
		{"", types.KindOther},
		{"Fish_pond_1", types.KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.id))
		})
	}
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, uint32(1), Capacity("pole_2"))
	assert.Equal(t, uint32(5), Capacity("fish_river_3"))
	assert.Equal(t, uint32(math.MaxUint32), Capacity("lure_1"))
	assert.Equal(t, uint32(math.MaxUint32), Capacity("mystery"))
}

func TestSellPrice(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		rarity uint8
		want   uint32
	}{
		{"ocean tier 3 at three stars", "fish_ocean_3", 3, 320},
		{"ocean tier 3 at one star", "fish_ocean_3", 1, 80},
		{"rarity zero is base", "fish_pond_1", 0, 10},
		{"two stars doubles", "fish_night_4", 2, 600},
		{"out of range rarity is base", "fish_river_2", 9, 30},
		{"starter pole is worthless", "pole_1", 0, 0},
		{"lure", "lure_4", 0, 250},
		{"unknown id defaults", "old_boot", 1, 5},
		{"unknown id scales", "old_boot", 3, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SellPrice(tt.id, tt.rarity))
		})
	}
}

func TestBuyPrice(t *testing.T) {
	assert.Equal(t, uint32(200), BuyPrice("pole_2"))
	assert.Equal(t, uint32(500), BuyPrice("lure_4"))
	assert.Equal(t, uint32(0), BuyPrice("fish_pond_1"))
	assert.True(t, Purchasable(StarterPoleID))
	assert.True(t, Purchasable("lure_1"))
	assert.False(t, Purchasable("fish_pond_1"))
}

func TestXPForLevel(t *testing.T) {
	assert.Equal(t, uint64(0), XPForLevel(0))
	assert.Equal(t, uint64(0), XPForLevel(1))
	assert.Equal(t, uint64(283), XPForLevel(2))
	assert.Equal(t, uint64(520), XPForLevel(3))
	assert.Equal(t, uint64(800), XPForLevel(4))

	prev := XPForLevel(0)
	for level := uint32(1); level <= 200; level++ {
		cur := XPForLevel(level)
		assert.GreaterOrEqual(t, cur, prev, "level %d", level)
		prev = cur
	}
}

func TestFishXP(t *testing.T) {
	tests := []struct {
		id     string
		rarity uint8
		want   uint64
	}{
		{"fish_pond_1", 1, 20},
		{"fish_pond_2", 1, 30},
		{"fish_ocean_4", 3, 60},
		{"fish_river_1", 0, 20},
		{"fish_mystery", 2, 25},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, FishXP(tt.id, tt.rarity))
		})
	}
}

func TestQuestXP(t *testing.T) {
	assert.Equal(t, uint64(150), QuestXP(types.QuestStory))
	assert.Equal(t, uint64(50), QuestXP(types.QuestDaily))
}
