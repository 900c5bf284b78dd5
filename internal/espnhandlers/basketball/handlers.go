package basketball

import (
	"go.uber.org/zap"

	"github.com/flaim/fantasy-mcp-gateway/internal/authclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnhandlers/common"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
	"github.com/flaim/fantasy-mcp-gateway/internal/playercache"
)

// NewDeps builds the common.Deps value for basketball.
func NewDeps(auth *authclient.Client, espn *espnclient.Client, cache *playercache.Cache, logger *zap.Logger) common.Deps {
	return common.Deps{
		Auth:          auth,
		ESPN:          espn,
		Cache:         cache,
		Tables:        NewTables(logger),
		Sport:         model.SportBasketball,
		Logger:        logger,
		PositionSlots: PositionSlots,
	}
}
