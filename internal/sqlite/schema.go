package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL. Statements are idempotent so Attach can run them against an
// existing database.
const (
	createPlayers = `CREATE TABLE IF NOT EXISTS players (
    player_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    x REAL NOT NULL,
    y REAL NOT NULL,
    facing_angle REAL NOT NULL,
    is_casting INTEGER NOT NULL,
    cast_target_x REAL,
    cast_target_y REAL,
    color INTEGER NOT NULL,
    is_online INTEGER NOT NULL,
    gold INTEGER NOT NULL CHECK (gold >= 0),
    equipped_pole_id TEXT,
    last_updated TEXT NOT NULL
);`

	createInventory = `CREATE TABLE IF NOT EXISTS inventory (
    stack_id INTEGER PRIMARY KEY AUTOINCREMENT,
    player_id TEXT NOT NULL,
    item_id TEXT NOT NULL,
    rarity INTEGER NOT NULL,
    quantity INTEGER NOT NULL CHECK (quantity > 0)
);`

	createItems = `CREATE TABLE IF NOT EXISTS item_definitions (
    item_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    kind TEXT NOT NULL,
    water_type TEXT,
    tier INTEGER NOT NULL,
    buy_price INTEGER NOT NULL,
    sell_price INTEGER NOT NULL,
    stack_size INTEGER NOT NULL,
    sprite_id TEXT NOT NULL,
    description TEXT NOT NULL,
    is_active INTEGER NOT NULL
);`

	createQuests = `CREATE TABLE IF NOT EXISTS quests (
    quest_id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    quest_type TEXT NOT NULL,
    storyline_id TEXT,
    story_order INTEGER,
    prerequisite_quest_id TEXT,
    requirements TEXT NOT NULL,
    rewards TEXT NOT NULL,
    giver_type TEXT,
    giver_id TEXT
);`

	createPlayerQuests = `CREATE TABLE IF NOT EXISTS player_quests (
    player_quest_id INTEGER PRIMARY KEY AUTOINCREMENT,
    player_id TEXT NOT NULL,
    quest_id TEXT NOT NULL,
    status TEXT NOT NULL,
    progress TEXT NOT NULL,
    accepted_at TEXT,
    completed_at TEXT
);`

	createPlayerStats = `CREATE TABLE IF NOT EXISTS player_stats (
    player_id TEXT PRIMARY KEY,
    total_playtime_seconds INTEGER NOT NULL,
    total_sessions INTEGER NOT NULL,
    total_fish_caught INTEGER NOT NULL,
    total_gold_earned INTEGER NOT NULL,
    total_gold_spent INTEGER NOT NULL,
    first_seen_at TEXT NOT NULL,
    last_seen_at TEXT NOT NULL,
    level INTEGER NOT NULL,
    xp INTEGER NOT NULL,
    xp_to_next_level INTEGER NOT NULL
);`

	createSessions = `CREATE TABLE IF NOT EXISTS player_sessions (
    session_id TEXT PRIMARY KEY,
    player_id TEXT NOT NULL,
    started_at TEXT NOT NULL,
    ended_at TEXT,
    duration_seconds INTEGER NOT NULL,
    is_active INTEGER NOT NULL
);`

	createEvents = `CREATE TABLE IF NOT EXISTS game_events (
    event_id TEXT PRIMARY KEY,
    player_id TEXT NOT NULL,
    session_id TEXT,
    event_type TEXT NOT NULL,
    item_id TEXT,
    quantity INTEGER,
    gold_amount INTEGER,
    rarity INTEGER,
    water_body_id TEXT,
    metadata TEXT,
    created_at TEXT NOT NULL
);`

	createCatches = `CREATE TABLE IF NOT EXISTS fish_catches (
    catch_id TEXT PRIMARY KEY,
    fish_id TEXT NOT NULL,
    player_id TEXT NOT NULL,
    fish_type TEXT NOT NULL,
    size REAL NOT NULL,
    rarity TEXT NOT NULL,
    water_body_id TEXT NOT NULL,
    released INTEGER NOT NULL,
    caught_at TEXT NOT NULL
);`

	createNPCs = `CREATE TABLE IF NOT EXISTS npcs (
    npc_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    title TEXT NOT NULL,
    can_give_quests INTEGER NOT NULL,
    can_trade INTEGER NOT NULL,
    is_active INTEGER NOT NULL
);`

	createNPCInteractions = `CREATE TABLE IF NOT EXISTS player_npc_interactions (
    interaction_id INTEGER PRIMARY KEY AUTOINCREMENT,
    player_id TEXT NOT NULL,
    npc_id TEXT NOT NULL,
    has_talked INTEGER NOT NULL,
    has_traded INTEGER NOT NULL,
    talk_count INTEGER NOT NULL,
    reputation INTEGER NOT NULL,
    first_interaction_at TEXT NOT NULL,
    last_interaction_at TEXT NOT NULL,
    FOREIGN KEY (npc_id) REFERENCES npcs(npc_id)
);`
)

// Index DDL for the lookups the engine performs on every call.
const (
	idxInventoryKey       = `CREATE INDEX IF NOT EXISTS idx_inventory_key ON inventory(player_id, item_id, rarity);`
	idxPlayerQuestsPlayer = `CREATE INDEX IF NOT EXISTS idx_player_quests_player ON player_quests(player_id, quest_id);`
	idxSessionsActive     = `CREATE INDEX IF NOT EXISTS idx_sessions_active ON player_sessions(player_id, is_active);`
	idxEventsPlayer       = `CREATE INDEX IF NOT EXISTS idx_events_player ON game_events(player_id);`
	idxEventsType         = `CREATE INDEX IF NOT EXISTS idx_events_type ON game_events(event_type);`
	idxPlayersOnline      = `CREATE INDEX IF NOT EXISTS idx_players_online ON players(is_online, last_updated);`
	idxInteractionsKey    = `CREATE UNIQUE INDEX IF NOT EXISTS idx_interactions_key ON player_npc_interactions(player_id, npc_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createPlayers,
	createInventory,
	createItems,
	createQuests,
	createPlayerQuests,
	createPlayerStats,
	createSessions,
	createEvents,
	createCatches,
	createNPCs,
	createNPCInteractions,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxInventoryKey,
	idxPlayerQuestsPlayer,
	idxSessionsActive,
	idxEventsPlayer,
	idxEventsType,
	idxPlayersOnline,
	idxInteractionsKey,
}

func applySchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
