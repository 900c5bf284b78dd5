// Package baseball implements the ESPN fantasy baseball per-sport
// handlers and ID tables.
package baseball

import (
	"go.uber.org/zap"

	"github.com/flaim/fantasy-mcp-gateway/internal/idmap"
)

// positionNames is defaultPositionId -> natural position name.
var positionNames = map[int]string{
	0: "C", 1: "1B", 2: "2B", 3: "3B", 4: "SS", 5: "OF",
	6: "SS", 7: "OF", 8: "OF", 9: "OF", 10: "OF",
	11: "DH", 12: "UTIL", 13: "P", 14: "SP", 15: "RP",
}

// slotNames is lineupSlotId/eligibleSlots member -> roster slot name.
// Deliberately disjoint in meaning from positionNames even where an id
// numerically coincides: slot 6 is "MI" (middle infield), not the "SS"
// that positionNames assigns to position id 6. Same id, different concept.
// Slots 18, 21, 22 have no known upstream meaning and are intentionally
// absent; idmap.Table.Name falls back to SLOT_<n> for them.
var slotNames = map[int]string{
	0: "C", 1: "1B", 2: "2B", 3: "3B", 4: "SS", 5: "OF",
	6: "MI", 7: "CI", 9: "UTIL", 10: "P",
	12: "BENCH", 13: "IL", 16: "SP", 17: "RP", 19: "DH",
}

// positionSlots holds the OUTFIELD and INFIELD position-group filters for
// free-agent searches.
var positionSlots = map[string][]int{
	"OUTFIELD": {5, 8, 9, 10},
	"INFIELD":  {1, 2, 3, 4},
}

// excludedSlotIDs lists roster slots whose upstream meaning is unknown:
// they must be absent from slotNames, fall back to SLOT_<n>, and be
// filtered out of transformEligiblePositions.
var excludedSlotIDs = map[int]bool{18: true, 21: true, 22: true}

// NewTables builds the football-mirrored Tables value for baseball.
func NewTables(logger *zap.Logger) idmap.Tables {
	return idmap.Tables{
		Position: idmap.New("baseball.position", "POS", positionNames, logger),
		Slot:     idmap.New("baseball.slot", "SLOT", slotNames, logger),
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

// TransformEligiblePositions maps a player's raw eligibleSlots ids to
// display names, dropping the slots with unknown upstream meaning.
func TransformEligiblePositions(t idmap.Tables, slotIDs []int) []string {
	out := make([]string, 0, len(slotIDs))
	for _, id := range slotIDs {
		if excludedSlotIDs[id] {
			continue
		}
		out = append(out, t.Slot.Name(id))
	}
	return out
}
