// Package rules holds the pricing and progression formulas. Every function
// is pure.
package rules

import (
	"math"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/lurelands/pkg/types"
)

// StarterPoleID is the one pole given away for free.
const StarterPoleID = "pole_1"

// Progression constants.
const (
	levelBase       = 100.0
	levelExponent   = 1.5
	fishBaseXP      = 10
	fishTierXP      = 10
	fishRarityXP    = 5
	dailyQuestXP    = 50
	storyQuestBonus = 100
	defaultSell     = 5
)

var baseSellPrices = map[string]uint32{
	"fish_pond_1": 10, "fish_pond_2": 25, "fish_pond_3": 50, "fish_pond_4": 150,
	"fish_river_1": 12, "fish_river_2": 30, "fish_river_3": 60, "fish_river_4": 180,
	"fish_ocean_1": 15, "fish_ocean_2": 40, "fish_ocean_3": 80, "fish_ocean_4": 250,
	"fish_night_1": 20, "fish_night_2": 45, "fish_night_3": 90, "fish_night_4": 300,
	"pole_1": 0, "pole_2": 200, "pole_3": 500, "pole_4": 1500,
	"lure_1": 10, "lure_2": 30, "lure_3": 80, "lure_4": 250,
}

var buyPrices = map[string]uint32{
	"pole_1": 0, "pole_2": 200, "pole_3": 500, "pole_4": 1500,
	"lure_1": 20, "lure_2": 60, "lure_3": 160, "lure_4": 500,
}

// Classify resolves the kind of an item from its ID prefix.
func Classify(itemID string) types.ItemKind {
	switch {
	case strings.HasPrefix(itemID, "fish_"):
		return types.KindFish
	case strings.HasPrefix(itemID, "pole_"):
		return types.KindPole
	case strings.HasPrefix(itemID, "lure_"):
		return types.KindLure
	default:
		return types.KindOther
	}
}

// Capacity is the most units one inventory stack of itemID may hold.
func Capacity(itemID string) uint32 {
	return KindCapacity(Classify(itemID))
}

// KindCapacity is the stack capacity shared by every item of kind.
func KindCapacity(kind types.ItemKind) uint32 {
	switch kind {
	case types.KindPole:
		return 1
	case types.KindFish:
		return 5
	default:
		return math.MaxUint32
	}
}

// BaseSellPrice is the rarity-1 sell price of itemID. Unknown IDs sell for 5.
func BaseSellPrice(itemID string) uint32 {
	if p, ok := baseSellPrices[itemID]; ok {
		return p
	}
	return defaultSell
}

// BuyPrice is the shop price of itemID, or 0 when the shop does not sell it.
func BuyPrice(itemID string) uint32 {
	return buyPrices[itemID]
}

// Purchasable reports whether the shop sells itemID.
func Purchasable(itemID string) bool {
	return BuyPrice(itemID) > 0 || itemID == StarterPoleID
}

// RarityMultiplier scales sell prices by star rating.
func RarityMultiplier(rarity uint8) float64 {
	switch rarity {
	case 2:
		return 2.0
	case 3:
		return 4.0
	default:
		return 1.0
	}
}

// SellPrice is the unit price the shop pays for itemID at rarity.
func SellPrice(itemID string, rarity uint8) uint32 {
	return uint32(math.Round(float64(BaseSellPrice(itemID)) * RarityMultiplier(rarity)))
}

// XPForLevel is the XP needed to advance out of level-1 into level.
func XPForLevel(level uint32) uint64 {
	if level <= 1 {
		return 0
	}
	return uint64(math.Round(levelBase * math.Pow(float64(level), levelExponent)))
}

// FishXP is the XP granted for catching itemID at rarity. The tier is the
// trailing numeric suffix of the ID, defaulting to 1.
func FishXP(itemID string, rarity uint8) uint64 {
	tier := uint64(1)
	if i := strings.LastIndexByte(itemID, '_'); i >= 0 {
		if n, err := strconv.ParseUint(itemID[i+1:], 10, 32); err == nil {
			tier = n
		}
	}
	var bonus uint64
	if rarity > 1 {
		bonus = uint64(rarity-1) * fishRarityXP
	}
	return fishBaseXP + fishTierXP*tier + bonus
}

// QuestXP is the XP granted for completing a quest of type qt.
func QuestXP(qt types.QuestType) uint64 {
	if qt == types.QuestStory {
		return dailyQuestXP + storyQuestBonus
	}
	return dailyQuestXP
}
