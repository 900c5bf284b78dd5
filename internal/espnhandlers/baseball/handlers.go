package baseball

import (
	"go.uber.org/zap"

	"github.com/flaim/fantasy-mcp-gateway/internal/authclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnhandlers/common"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
	"github.com/flaim/fantasy-mcp-gateway/internal/playercache"
)

// NewDeps builds the common.Deps value for baseball, overriding the
// default eligible-slot mapping with TransformEligiblePositions so the
// unknown-meaning slots 18/21/22 are dropped instead of surfaced as
// SLOT_<n> noise on every roster/free-agent player.
func NewDeps(auth *authclient.Client, espn *espnclient.Client, cache *playercache.Cache, logger *zap.Logger) common.Deps {
	tables := NewTables(logger)
	d := common.Deps{
		Auth:          auth,
		ESPN:          espn,
		Cache:         cache,
		Tables:        tables,
		Sport:         model.SportBaseball,
		Logger:        logger,
		PositionSlots: PositionSlots,
	}
	d.EligibleSlotNames = func(ids []int) []string {
		return TransformEligiblePositions(tables, ids)
	}
	return d
}
