// Package catalog loads the reference data of the game world: item
// definitions, quests, NPCs and spawn points. The default catalog is
// embedded in the binary and seeded into the store at startup.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/lurelands/internal/document"
	"github.com/mesh-intelligence/lurelands/internal/rules"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

//go:embed catalog.yaml
var defaultYAML []byte

// ErrInvalidCatalog wraps every validation failure reported by Load.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is validated reference data.
type Catalog struct {
	Items       []*types.ItemDefinition
	Quests      []*types.Quest
	NPCs        []*types.NPC
	SpawnPoints []types.SpawnPoint

	kinds  map[string]types.ItemKind
	quests map[string]*types.Quest
}

type itemEntry struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	WaterType   *string `yaml:"water_type"`
	Tier        uint8   `yaml:"tier"`
	BuyPrice    uint32  `yaml:"buy_price"`
	SellPrice   uint32  `yaml:"sell_price"`
	StackSize   uint32  `yaml:"stack_size"`
	SpriteID    string  `yaml:"sprite_id"`
	Description string  `yaml:"description"`
	Inactive    bool    `yaml:"inactive"`
}

type questEntry struct {
	ID           string  `yaml:"id"`
	Title        string  `yaml:"title"`
	Description  string  `yaml:"description"`
	Type         string  `yaml:"type"`
	Storyline    *string `yaml:"storyline"`
	StoryOrder   *uint32 `yaml:"story_order"`
	Prerequisite *string `yaml:"prerequisite"`
	Requirements string  `yaml:"requirements"`
	Rewards      string  `yaml:"rewards"`
	GiverType    *string `yaml:"giver_type"`
	GiverID      *string `yaml:"giver_id"`
}

type npcEntry struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Title         string `yaml:"title"`
	CanGiveQuests bool   `yaml:"can_give_quests"`
	CanTrade      bool   `yaml:"can_trade"`
	Inactive      bool   `yaml:"inactive"`
}

type file struct {
	Items       []itemEntry        `yaml:"items"`
	Quests      []questEntry       `yaml:"quests"`
	NPCs        []npcEntry         `yaml:"npcs"`
	SpawnPoints []types.SpawnPoint `yaml:"spawn_points"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Load(defaultYAML)
}

// Load parses and validates a catalog document.
func Load(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		SpawnPoints: f.SpawnPoints,
		kinds:       make(map[string]types.ItemKind, len(f.Items)),
		quests:      make(map[string]*types.Quest, len(f.Quests)),
	}

	for _, e := range f.Items {
		if e.ID == "" {
			return nil, fmt.Errorf("%w: item without id", ErrInvalidCatalog)
		}
		if _, dup := c.kinds[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item %s", ErrInvalidCatalog, e.ID)
		}
		sprite := e.SpriteID
		if sprite == "" {
			sprite = e.ID
		}
		item := &types.ItemDefinition{
			ID: e.ID, Name: e.Name, Kind: rules.Classify(e.ID), WaterType: e.WaterType,
			Tier: e.Tier, BuyPrice: e.BuyPrice, SellPrice: e.SellPrice, StackSize: e.StackSize,
			SpriteID: sprite, Description: e.Description, IsActive: !e.Inactive,
		}
		c.kinds[item.ID] = item.Kind
		c.Items = append(c.Items, item)
	}

	for _, e := range f.NPCs {
		if e.ID == "" {
			return nil, fmt.Errorf("%w: npc without id", ErrInvalidCatalog)
		}
		c.NPCs = append(c.NPCs, &types.NPC{
			ID: e.ID, Name: e.Name, Title: e.Title,
			CanGiveQuests: e.CanGiveQuests, CanTrade: e.CanTrade, IsActive: !e.Inactive,
		})
	}

	for _, e := range f.Quests {
		q, err := c.buildQuest(e)
		if err != nil {
			return nil, err
		}
		c.quests[q.ID] = q
		c.Quests = append(c.Quests, q)
	}
	for _, q := range c.Quests {
		if p := q.PrerequisiteQuestID; p != nil {
			if _, ok := c.quests[*p]; !ok {
				return nil, fmt.Errorf("%w: quest %s requires unknown quest %s", ErrInvalidCatalog, q.ID, *p)
			}
		}
	}
	if err := checkCycles(c.quests); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) buildQuest(e questEntry) (*types.Quest, error) {
	if e.ID == "" {
		return nil, fmt.Errorf("%w: quest without id", ErrInvalidCatalog)
	}
	if _, dup := c.quests[e.ID]; dup {
		return nil, fmt.Errorf("%w: duplicate quest %s", ErrInvalidCatalog, e.ID)
	}
	qt := types.QuestType(e.Type)
	if qt != types.QuestStory && qt != types.QuestDaily {
		return nil, fmt.Errorf("%w: quest %s has unknown type %q", ErrInvalidCatalog, e.ID, e.Type)
	}
	if e.Requirements == "" {
		e.Requirements = document.Empty
	}
	if e.Rewards == "" {
		e.Rewards = document.Empty
	}
	if err := validateDocument(requirements, e.Requirements); err != nil {
		return nil, fmt.Errorf("%w: quest %s requirements: %v", ErrInvalidCatalog, e.ID, err)
	}
	if err := validateDocument(rewards, e.Rewards); err != nil {
		return nil, fmt.Errorf("%w: quest %s rewards: %v", ErrInvalidCatalog, e.ID, err)
	}
	for _, obj := range document.Objects(e.Rewards, "items") {
		id, _ := document.String(obj, "item_id")
		if _, ok := c.kinds[id]; !ok {
			return nil, fmt.Errorf("%w: quest %s rewards unknown item %s", ErrInvalidCatalog, e.ID, id)
		}
	}
	return &types.Quest{
		ID: e.ID, Title: e.Title, Description: e.Description, Type: qt,
		StorylineID: e.Storyline, StoryOrder: e.StoryOrder, PrerequisiteQuestID: e.Prerequisite,
		Requirements: e.Requirements, Rewards: e.Rewards, GiverType: e.GiverType, GiverID: e.GiverID,
	}, nil
}

// checkCycles rejects prerequisite chains that loop back on themselves.
func checkCycles(quests map[string]*types.Quest) error {
	ids := make([]string, 0, len(quests))
	for id := range quests {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		seen := map[string]bool{}
		for cur := quests[id]; cur != nil && cur.PrerequisiteQuestID != nil; cur = quests[*cur.PrerequisiteQuestID] {
			if seen[cur.ID] {
				return fmt.Errorf("%w: prerequisite cycle through quest %s", ErrInvalidCatalog, cur.ID)
			}
			seen[cur.ID] = true
		}
	}
	return nil
}

// Kind resolves an item's kind from the catalog, falling back to the ID
// prefix for items the catalog does not define.
func (c *Catalog) Kind(itemID string) types.ItemKind {
	if k, ok := c.kinds[itemID]; ok {
		return k
	}
	return rules.Classify(itemID)
}

// Quest returns the catalog definition of a quest.
func (c *Catalog) Quest(id string) (*types.Quest, bool) {
	q, ok := c.quests[id]
	return q, ok
}

// SpawnFor picks the spawn point for a new player: the byte sum of the ID
// modulo the number of spawn points. The second result is false when the
// catalog has no spawn points.
func (c *Catalog) SpawnFor(playerID string) (types.SpawnPoint, bool) {
	if len(c.SpawnPoints) == 0 {
		return types.SpawnPoint{}, false
	}
	var sum uint64
	for i := 0; i < len(playerID); i++ {
		sum += uint64(playerID[i])
	}
	return c.SpawnPoints[sum%uint64(len(c.SpawnPoints))], true
}
