package gateway

import (
	"context"

	"go.uber.org/zap"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/flaim/fantasy-mcp-gateway/internal/authclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
	"github.com/flaim/fantasy-mcp-gateway/internal/obs"
)

// scopeRead is the required scope for every tool in the registry today;
// all eight are read-only.
const scopeRead = "mcp:read"

// ToolMeta is the registry entry tools/list rewriting reads to attach
// title/annotations/_meta.securitySchemes to the go-sdk's generated
// tool listing.
type ToolMeta struct {
	Name          string
	Title         string
	Description   string
	RequiredScope string
}

// Deps is what every registered tool handler needs: the auth-service
// client for get_user_session/get_ancient_history, the platform router
// for everything else, and the logger for the instrumentation decorator.
type Deps struct {
	Auth   *authclient.Client
	Router *PlatformRouter
	Logger *zap.Logger

	// ResourceMetadataURL is embedded in the in-band scope-insufficiency
	// payload: the gateway's external base URL + the canonical
	// .well-known path.
	ResourceMetadataURL string
}

// CanonicalArgs is the parameter shape shared by every platform-routed
// tool.
type CanonicalArgs struct {
	Platform   string `json:"platform" jsonschema:"Fantasy platform: espn, yahoo, or sleeper. Use values from get_user_session."`
	Sport      string `json:"sport" jsonschema:"Sport: football, baseball, basketball, or hockey."`
	LeagueID   string `json:"league_id" jsonschema:"League id, exactly as returned by get_user_session."`
	SeasonYear int    `json:"season_year" jsonschema:"Canonical season start year (e.g. 2024), from get_user_session's current_seasons."`
}

func (a CanonicalArgs) toolParams() model.ToolParams {
	return model.ToolParams{
		Platform:   model.Platform(a.Platform),
		Sport:      model.Sport(a.Sport),
		LeagueID:   a.LeagueID,
		SeasonYear: a.SeasonYear,
	}
}

type UserSessionArgs struct{}

type AncientHistoryArgs struct {
	Platform string `json:"platform,omitempty" jsonschema:"Optional platform filter: espn, yahoo, or sleeper."`
}

type LeagueInfoArgs struct {
	CanonicalArgs
}

type StandingsArgs struct {
	CanonicalArgs
}

type MatchupsArgs struct {
	CanonicalArgs
	Week *int `json:"week,omitempty" jsonschema:"Week/scoring period; defaults to the current week."`
}

type RosterArgs struct {
	CanonicalArgs
	TeamID string `json:"team_id,omitempty" jsonschema:"Team id within the league; required to fetch a roster."`
	Week   *int   `json:"week,omitempty" jsonschema:"Week/scoring period; defaults to the current week."`
}

type FreeAgentsArgs struct {
	CanonicalArgs
	Position string `json:"position,omitempty" jsonschema:"Position filter (e.g. QB, OUTFIELD); unknown names fall back to all."`
	Count    *int   `json:"count,omitempty" jsonschema:"Max results, 1-100 (default 25)."`
}

type TransactionsArgs struct {
	CanonicalArgs
	Week  *int   `json:"week,omitempty" jsonschema:"Restrict to one week/scoring period."`
	Type  string `json:"type,omitempty" jsonschema:"Transaction type filter: add, drop, trade, or waiver."`
	Count *int   `json:"count,omitempty" jsonschema:"Max results to return."`
}

// RegisterTools builds the static tool registry and wires every handler
// into server via mcp.AddTool.
func RegisterTools(server *mcp.Server, deps *Deps) []ToolMeta {
	registry := make([]ToolMeta, 0, 8)
	add := func(meta ToolMeta) ToolMeta { registry = append(registry, meta); return meta }

	userSession := add(ToolMeta{Name: "get_user_session", Title: "Get user session", RequiredScope: scopeRead,
		Description: "Bootstrap call: lists the caller's leagues across all platforms (active only, up to two most-recent seasons per league), the current date, each sport's current season, and resolved defaults. Call this first."})
	mcp.AddTool(server, &mcp.Tool{Name: userSession.Name, Description: userSession.Description},
		func(ctx context.Context, req *mcp.CallToolRequest, args UserSessionArgs) (*mcp.CallToolResult, any, error) {
			return deps.run(ctx, "get_user_session", "", "", "", func(bearer string, _ model.CorrelationContext) model.AdapterResult {
				return model.OK(GetUserSession(ctx, deps.Auth, bearer, deps.Logger))
			})
		})

	ancientHistory := add(ToolMeta{Name: "get_ancient_history", Title: "Get ancient history", RequiredScope: scopeRead,
		Description: "Lists leagues and seasons excluded from get_user_session by the two-most-recent-seasons / active-league filter."})
	mcp.AddTool(server, &mcp.Tool{Name: ancientHistory.Name, Description: ancientHistory.Description},
		func(ctx context.Context, req *mcp.CallToolRequest, args AncientHistoryArgs) (*mcp.CallToolResult, any, error) {
			return deps.run(ctx, "get_ancient_history", args.Platform, "", "", func(bearer string, _ model.CorrelationContext) model.AdapterResult {
				return model.OK(GetAncientHistory(ctx, deps.Auth, bearer, deps.Logger, model.Platform(args.Platform)))
			})
		})

	leagueInfo := add(ToolMeta{Name: "get_league_info", Title: "Get league info", RequiredScope: scopeRead,
		Description: "League settings, scoring type, and roster slot layout. Use values from get_user_session for platform/sport/league_id/season_year."})
	mcp.AddTool(server, &mcp.Tool{Name: leagueInfo.Name, Description: leagueInfo.Description},
		func(ctx context.Context, req *mcp.CallToolRequest, args LeagueInfoArgs) (*mcp.CallToolResult, any, error) {
			return deps.routed(ctx, "get_league_info", args.CanonicalArgs, args.toolParams())
		})

	standings := add(ToolMeta{Name: "get_standings", Title: "Get standings", RequiredScope: scopeRead,
		Description: "Team records, sorted and ranked. Use values from get_user_session for platform/sport/league_id/season_year."})
	mcp.AddTool(server, &mcp.Tool{Name: standings.Name, Description: standings.Description},
		func(ctx context.Context, req *mcp.CallToolRequest, args StandingsArgs) (*mcp.CallToolResult, any, error) {
			return deps.routed(ctx, "get_standings", args.CanonicalArgs, args.toolParams())
		})

	matchups := add(ToolMeta{Name: "get_matchups", Title: "Get matchups", RequiredScope: scopeRead,
		Description: "Weekly matchups with scores; defaults to the current week when week is omitted. Use values from get_user_session."})
	mcp.AddTool(server, &mcp.Tool{Name: matchups.Name, Description: matchups.Description},
		func(ctx context.Context, req *mcp.CallToolRequest, args MatchupsArgs) (*mcp.CallToolResult, any, error) {
			params := args.toolParams()
			params.Week = args.Week
			return deps.routed(ctx, "get_matchups", args.CanonicalArgs, params)
		})

	roster := add(ToolMeta{Name: "get_roster", Title: "Get roster", RequiredScope: scopeRead,
		Description: "A specific team's roster, with players mapped to position/lineup-slot names. Requires credentials on file; use values from get_user_session."})
	mcp.AddTool(server, &mcp.Tool{Name: roster.Name, Description: roster.Description},
		func(ctx context.Context, req *mcp.CallToolRequest, args RosterArgs) (*mcp.CallToolResult, any, error) {
			params := args.toolParams()
			params.TeamID = args.TeamID
			params.Week = args.Week
			return deps.routed(ctx, "get_roster", args.CanonicalArgs, params)
		})

	freeAgents := add(ToolMeta{Name: "get_free_agents", Title: "Get free agents", RequiredScope: scopeRead,
		Description: "Available players filtered by position, sorted by ownership. count is clamped to 1-100 (default 25). Use values from get_user_session."})
	mcp.AddTool(server, &mcp.Tool{Name: freeAgents.Name, Description: freeAgents.Description},
		func(ctx context.Context, req *mcp.CallToolRequest, args FreeAgentsArgs) (*mcp.CallToolResult, any, error) {
			params := args.toolParams()
			params.Position = args.Position
			params.Count = args.Count
			return deps.routed(ctx, "get_free_agents", args.CanonicalArgs, params)
		})

	transactions := add(ToolMeta{Name: "get_transactions", Title: "Get transactions", RequiredScope: scopeRead,
		Description: "Recent adds/drops/waivers/trades, de-duplicated by upstream message id. With week set, only that week's transactions are returned; without it, no week window is applied. Use values from get_user_session."})
	mcp.AddTool(server, &mcp.Tool{Name: transactions.Name, Description: transactions.Description},
		func(ctx context.Context, req *mcp.CallToolRequest, args TransactionsArgs) (*mcp.CallToolResult, any, error) {
			params := args.toolParams()
			params.Week = args.Week
			params.Type = args.Type
			params.Count = args.Count
			return deps.routed(ctx, "get_transactions", args.CanonicalArgs, params)
		})

	return registry
}

// routed is the common path for the six canonical-params tools: dispatch
// through the platform router, instrumented identically to run.
func (d *Deps) routed(ctx context.Context, tool string, common CanonicalArgs, params model.ToolParams) (*mcp.CallToolResult, any, error) {
	return d.run(ctx, tool, common.Platform, common.Sport, common.LeagueID, func(bearer string, cc model.CorrelationContext) model.AdapterResult {
		return d.Router.Execute(ctx, tool, params, bearer, cc)
	})
}

// run is the instrumentation decorator every tool goes through: checks
// per-tool scope, emits tool_start/tool_end/tool_error, and converts the
// adapter's tagged AdapterResult into the MCP content envelope.
func (d *Deps) run(ctx context.Context, tool, platform, sport, leagueID string, call func(bearer string, cc model.CorrelationContext) model.AdapterResult) (*mcp.CallToolResult, any, error) {
	if !scopeAllows(ctx, scopeRead) {
		return insufficientScopeResult(tool, scopeRead, d.ResourceMetadataURL), nil, nil
	}

	start := obs.ToolStart(d.Logger, ctx, tool, platform, sport, leagueID)
	bearer := BearerFromContext(ctx)
	cc := obs.FromContext(ctx)

	result := call(bearer, cc)
	if result.Success {
		obs.ToolEnd(d.Logger, ctx, tool, platform, sport, leagueID, start)
	} else {
		obs.ToolError(d.Logger, ctx, tool, platform, sport, leagueID, start, toolErr{result.Code, result.Error})
	}
	return toolResultFrom(result), nil, nil
}
