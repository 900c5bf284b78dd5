// Package adapter implements the ESPN platform adapter's HTTP surface:
// POST /execute dispatches (sport, tool) to a per-sport handler;
// /onboarding/initialize and /onboarding/discover-seasons front the
// historical season discovery engine.
package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/flaim/fantasy-mcp-gateway/internal/discovery"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnhandlers/common"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
	"github.com/flaim/fantasy-mcp-gateway/internal/obs"
)

// paramsValidator enforces the validate tags on model.ToolParams:
// required platform/sport/league_id and season_year range. count is not
// validated here; the handlers clamp it to 1-100 via common.ClampCount.
// A single validator.Validate is safe for concurrent use.
var paramsValidator = validator.New()

// Router dispatches ESPN adapter calls to the per-sport handler set.
// Unknown sport -> SPORT_NOT_SUPPORTED; unknown tool -> UNKNOWN_TOOL.
type Router struct {
	Logger    *zap.Logger
	Discovery *discovery.Engine
	bySport   map[model.Sport]common.Deps
}

// New builds the router, wiring one common.Deps per sport plus the
// discovery engine shared by /onboarding/discover-seasons. A zero Deps
// (no Sport set) leaves that sport unwired, so it answers
// SPORT_NOT_SUPPORTED.
func New(logger *zap.Logger, football, baseball, basketball, hockey common.Deps, disc *discovery.Engine) *Router {
	bySport := make(map[model.Sport]common.Deps)
	for _, d := range []common.Deps{football, baseball, basketball, hockey} {
		if d.Sport != "" {
			bySport[d.Sport] = d
		}
	}
	return &Router{
		Logger:    logger,
		Discovery: disc,
		bySport:   bySport,
	}
}

// ExecuteRequest is the POST /execute body.
type ExecuteRequest struct {
	Tool       string           `json:"tool"`
	Params     model.ToolParams `json:"params"`
	AuthHeader string           `json:"authHeader,omitempty"`
}

// ServeExecute handles POST /execute.
func (r *Router) ServeExecute(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	var body ExecuteRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeResult(w, model.Err(model.CodeRoutingError, "malformed /execute body"))
		return
	}

	if err := paramsValidator.Struct(body.Params); err != nil {
		writeResult(w, model.Err(model.CodeValidationError, err.Error()))
		return
	}

	deps, ok := r.bySport[body.Params.Sport]
	if !ok {
		writeResult(w, model.Err(model.CodeSportNotSupported, "sport not supported by this adapter"))
		return
	}

	bearer := bearerFromHeader(body.AuthHeader, req)
	start := obs.ToolStart(r.Logger, ctx, body.Tool, string(model.PlatformESPN), string(body.Params.Sport), body.Params.LeagueID)
	result := dispatch(ctx, deps, body.Tool, bearer, body.Params)
	if result.Success {
		obs.ToolEnd(r.Logger, ctx, body.Tool, string(model.PlatformESPN), string(body.Params.Sport), body.Params.LeagueID, start)
	} else {
		obs.ToolError(r.Logger, ctx, body.Tool, string(model.PlatformESPN), string(body.Params.Sport), body.Params.LeagueID, start, &adapterError{code: result.Code, message: result.Error})
	}
	writeResult(w, result)
}

func dispatch(ctx context.Context, deps common.Deps, tool, bearer string, params model.ToolParams) model.AdapterResult {
	switch tool {
	case "get_league_info":
		return deps.LeagueInfo(ctx, bearer, params)
	case "get_standings":
		return deps.Standings(ctx, bearer, params)
	case "get_matchups":
		return deps.Matchups(ctx, bearer, params)
	case "get_roster":
		return deps.Roster(ctx, bearer, params)
	case "get_free_agents":
		return deps.FreeAgents(ctx, bearer, params)
	case "get_transactions":
		return deps.Transactions(ctx, bearer, params)
	default:
		return model.Err(model.CodeUnknownTool, "unknown tool: "+tool)
	}
}

func bearerFromHeader(authHeader string, req *http.Request) string {
	if authHeader != "" {
		return trimBearer(authHeader)
	}
	return trimBearer(req.Header.Get("Authorization"))
}

func trimBearer(v string) string {
	return strings.TrimPrefix(v, "Bearer ")
}

func writeResult(w http.ResponseWriter, result model.AdapterResult) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

type adapterError struct {
	code    string
	message string
}

func (e *adapterError) Error() string { return e.code + ": " + e.message }
