// Package hockey implements the ESPN fantasy hockey per-sport handlers
// and ID tables.
package hockey

import (
	"go.uber.org/zap"

	"github.com/flaim/fantasy-mcp-gateway/internal/idmap"
)

var positionNames = map[int]string{
	0: "C", 1: "LW", 2: "RW", 3: "D", 4: "G",
}

var slotNames = map[int]string{
	0: "C", 1: "LW", 2: "RW", 3: "D", 4: "G",
	5: "F", 6: "UTIL", 7: "BENCH", 8: "IR",
}

var positionSlots = map[string][]int{
	"FORWARD":  {0, 1, 2, 5},
	"DEFENSE":  {3},
	"GOALIE":   {4},
}

// NewTables builds this sport's ID tables.
func NewTables(logger *zap.Logger) idmap.Tables {
	return idmap.Tables{
		Position: idmap.New("hockey.position", "POS", positionNames, logger),
		Slot:     idmap.New("hockey.slot", "SLOT", slotNames, logger),
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
