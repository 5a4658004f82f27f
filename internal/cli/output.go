package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mesh-intelligence/lurelands/internal/engine"
	"github.com/mesh-intelligence/lurelands/pkg/types"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func goldText(g uint32) string {
	return humanize.Comma(int64(g)) + "g"
}

func printPlayer(w io.Writer, p *types.Player) {
	status := "offline"
	if p.IsOnline {
		status = "online"
	}
	fmt.Fprintf(w, "%s (%s) %s\n", p.Name, p.ID, status)
	fmt.Fprintf(w, "  gold:     %s\n", goldText(p.Gold))
	fmt.Fprintf(w, "  position: (%.1f, %.1f) facing %.2f\n", p.X, p.Y, p.FacingAngle)
	if p.IsCasting && p.CastTargetX != nil && p.CastTargetY != nil {
		fmt.Fprintf(w, "  casting:  (%.1f, %.1f)\n", *p.CastTargetX, *p.CastTargetY)
	}
	pole := "none"
	if p.EquippedPoleID != nil {
		pole = *p.EquippedPoleID
	}
	fmt.Fprintf(w, "  pole:     %s\n", pole)
	fmt.Fprintf(w, "  updated:  %s\n", humanize.Time(p.LastUpdated))
}

func printInventory(w io.Writer, stacks []*types.InventoryStack) {
	if len(stacks) == 0 {
		fmt.Fprintln(w, "inventory is empty")
		return
	}
	for _, s := range stacks {
		fmt.Fprintf(w, "%-14s %-6s x%s\n", s.ItemID, types.RarityLabel(s.Rarity), humanize.Comma(int64(s.Quantity)))
	}
}

func printStats(w io.Writer, st *types.PlayerStats) {
	fmt.Fprintf(w, "level %d (%s / %s xp)\n", st.Level, humanize.Comma(int64(st.XP)), humanize.Comma(int64(st.XPToNextLevel)))
	fmt.Fprintf(w, "  fish caught: %s\n", humanize.Comma(int64(st.TotalFishCaught)))
	fmt.Fprintf(w, "  gold earned: %s\n", humanize.Comma(int64(st.TotalGoldEarned)))
	fmt.Fprintf(w, "  gold spent:  %s\n", humanize.Comma(int64(st.TotalGoldSpent)))
	fmt.Fprintf(w, "  sessions:    %d, %s played\n", st.TotalSessions, time.Duration(st.TotalPlaytimeSeconds)*time.Second)
	fmt.Fprintf(w, "  first seen:  %s\n", humanize.Time(st.FirstSeenAt))
	fmt.Fprintf(w, "  last seen:   %s\n", humanize.Time(st.LastSeenAt))
}

func printBoard(w io.Writer, board []engine.QuestView) {
	for _, v := range board {
		fmt.Fprintf(w, "%-10s %-12s %s\n", v.Status, v.Quest.ID, v.Quest.Title)
	}
}
