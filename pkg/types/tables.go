package types

// Standard table names.
const (
	TablePlayers         = "players"
	TableInventory       = "inventory"
	TableItems           = "item_definitions"
	TableQuests          = "quests"
	TablePlayerQuests    = "player_quests"
	TablePlayerStats     = "player_stats"
	TableSessions        = "player_sessions"
	TableEvents          = "game_events"
	TableCatches         = "fish_catches"
	TableNPCs            = "npcs"
	TableNPCInteractions = "player_npc_interactions"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	TablePlayers,
	TableInventory,
	TableItems,
	TableQuests,
	TablePlayerQuests,
	TablePlayerStats,
	TableSessions,
	TableEvents,
	TableCatches,
	TableNPCs,
	TableNPCInteractions,
}
