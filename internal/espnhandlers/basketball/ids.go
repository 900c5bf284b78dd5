// Package basketball implements the ESPN fantasy basketball per-sport
// handlers and ID tables.
package basketball

import (
	"go.uber.org/zap"

	"github.com/flaim/fantasy-mcp-gateway/internal/idmap"
)

var positionNames = map[int]string{
	0: "PG", 1: "SG", 2: "SF", 3: "PF", 4: "C",
}

var slotNames = map[int]string{
	0: "PG", 1: "SG", 2: "SF", 3: "PF", 4: "C",
	5: "G", 6: "F", 7: "SG/SF", 8: "G/F", 9: "PF/C", 10: "F/C",
	11: "UTIL", 12: "BENCH", 13: "IR",
}

var positionSlots = map[string][]int{
	"GUARD":   {0, 1, 5},
	"FORWARD": {2, 3, 6},
}

// NewTables builds this sport's ID tables.
func NewTables(logger *zap.Logger) idmap.Tables {
	return idmap.Tables{
		Position: idmap.New("basketball.position", "POS", positionNames, logger),
		Slot:     idmap.New("basketball.slot", "SLOT", slotNames, logger),
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
