// Package football implements the ESPN fantasy football per-sport
// handlers and its two disjoint ID tables: lineup position and roster
// slot are separate id spaces with overlapping numbers.
package football

import (
	"go.uber.org/zap"

	"github.com/flaim/fantasy-mcp-gateway/internal/idmap"
)

// positionNames is defaultPositionId -> natural position name.
var positionNames = map[int]string{
	1: "QB", 2: "RB", 3: "WR", 4: "TE", 5: "K", 16: "D/ST",
}

// slotNames is lineupSlotId/eligibleSlots member -> roster slot name.
// Disjoint from positionNames by construction: slot ids use ESPN's
// lineup-slot numbering, not the position numbering above, and the two
// only coincide by accident of small integers (for football ids 2, 4 and
// 16 appear in both; 4 is TE as a position but WR as a slot).
var slotNames = map[int]string{
	0: "QB", 2: "RB", 4: "WR", 6: "TE", 16: "D/ST", 17: "K",
	20: "BENCH", 21: "IR", 23: "FLEX",
}

// positionSlots exists for table symmetry with other sports; football
// has no multi-slot named groups for free-agent filtering beyond FLEX.
var positionSlots = map[string][]int{
	"FLEX": {2, 4, 6},
}

// NewTables builds this sport's ID tables, wiring a shared logger so
// unknown-id warnings land in the same structured log stream as every
// other event.
func NewTables(logger *zap.Logger) idmap.Tables {
	return idmap.Tables{
		Position: idmap.New("football.position", "POS", positionNames, logger),
		Slot:     idmap.New("football.slot", "SLOT", slotNames, logger),
	}
}

// PositionSlots resolves a free-agent filter's position name to ESPN
// lineup-slot ids, defaulting to "ALL" (no filter) for unknown names.
func PositionSlots(position string) ([]int, bool) {
	if position == "" || position == "ALL" {
		return nil, false
	}
	ids, ok := positionSlots[position]
	return ids, ok
}
