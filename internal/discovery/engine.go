// Package discovery implements the Historical Season Discovery Engine: a
// bounded sequential walk backward through season years, probing ESPN's
// basic league info for each, persisting newly found seasons via the
// external auth service, and applying precise stop/skip/backoff policies.
package discovery

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/flaim/fantasy-mcp-gateway/internal/authclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/config"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnhandlers/common"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
	"github.com/flaim/fantasy-mcp-gateway/internal/obs"
)

// Engine runs discovery for one sport, using that sport's common.Deps for
// upstream probes and a shared authclient.Client for registry writes.
type Engine struct {
	Auth   *authclient.Client
	Logger *zap.Logger
	Config config.DiscoveryConfig

	// sleep is overridden by tests to avoid real pacing delays.
	sleep func(time.Duration)
	// now is overridden by tests for deterministic CURRENT_YEAR.
	now func() time.Time
}

// New builds a discovery Engine with the given pacing/halt constants.
func New(auth *authclient.Client, logger *zap.Logger, cfg config.DiscoveryConfig) *Engine {
	return &Engine{
		Auth:   auth,
		Logger: logger,
		Config: cfg,
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// DiscoveredSeason is one hit pushed onto the result set.
type DiscoveredSeason struct {
	SeasonYear int    `json:"seasonYear"`
	LeagueName string `json:"leagueName"`
	TeamCount  int    `json:"teamCount"`
	TeamID     string `json:"teamId"`
	TeamName   string `json:"teamName,omitempty"`
}

// Result is the shaped output of a discovery run.
type Result struct {
	Success        bool               `json:"success"`
	LeagueID       string             `json:"leagueId"`
	Sport          model.Sport        `json:"sport"`
	StartYear      int                `json:"startYear"`
	MinYearReached bool               `json:"minYearReached"`
	RateLimited    bool               `json:"rateLimited"`
	LimitExceeded  bool               `json:"limitExceeded"`
	Discovered     []DiscoveredSeason `json:"discovered"`
	Skipped        int                `json:"skipped"`
	Error          string             `json:"error,omitempty"`
}

// Request describes one discovery run.
type Request struct {
	LeagueID        string
	Sport           model.Sport
	Credentials     *model.ESPNCredentials
	BaseTeamID      string
	ExistingSeasons map[int]bool
	BearerToken     string // forwarded to the auth service for leagues/add
}

// Run walks CURRENT_YEAR down to MIN_YEAR applying the skip/force-probe/
// backoff policy. deps must be the common.Deps for req.Sport.
func (e *Engine) Run(ctx context.Context, deps common.Deps, req Request) Result {
	if req.BaseTeamID == "" {
		return Result{Success: false, LeagueID: req.LeagueID, Sport: req.Sport, Error: model.CodeTeamIDMissing}
	}

	currentYear := e.now().Year()
	result := Result{Success: true, LeagueID: req.LeagueID, Sport: req.Sport, StartYear: currentYear}

	haveHit := hasAnyHit(req.ExistingSeasons)
	consecutiveMisses := 0
	first := true
	haltedEarly := false

	for year := currentYear; year >= e.Config.MinYear; year-- {
		if req.ExistingSeasons[year] {
			result.Skipped++
			continue
		}

		forced := year == currentYear || year == currentYear-1
		if !forced && consecutiveMisses >= e.Config.MaxConsecutiveMisses {
			haltedEarly = true
			break
		}

		if !first {
			e.sleep(e.Config.ProbeDelay)
		}
		first = false

		outcome, info := e.probeWithRetry(ctx, deps, req, year, haveHit)
		obs.DiscoveryProbe(e.Logger, ctx, req.LeagueID, year, string(outcome))

		switch outcome {
		case outcomeRateLimited:
			result.RateLimited = true
			return result
		case outcomeAuthFailed:
			result.Success = false
			result.Error = model.CodeAuthFailed
			return result
		case outcomeAPIError:
			result.Success = false
			result.Error = model.CodeESPNAPIError
			return result
		case outcomeMiss:
			consecutiveMisses++
			continue
		case outcomeHit:
			consecutiveMisses = 0
			haveHit = true
			teamName := ""
			for _, t := range info.Teams {
				if t.ID == req.BaseTeamID {
					teamName = t.Name
					break
				}
			}
			result.Discovered = append(result.Discovered, DiscoveredSeason{
				SeasonYear: year,
				LeagueName: info.LeagueName,
				TeamCount:  len(info.Teams),
				TeamID:     req.BaseTeamID,
				TeamName:   teamName,
			})

			if stop := e.persist(ctx, req, year, teamName, &result); stop {
				return result
			}
		}
	}

	result.MinYearReached = !haltedEarly
	return result
}

func hasAnyHit(existing map[int]bool) bool {
	for _, present := range existing {
		if present {
			return true
		}
	}
	return false
}

// persist registers a newly discovered season with the auth service,
// backfilling the team on conflict. Returns true if the caller should
// stop the walk (LIMIT_EXCEEDED).
func (e *Engine) persist(ctx context.Context, req Request, year int, teamName string, result *Result) bool {
	cfg := model.LeagueConfig{
		Platform:   model.PlatformESPN,
		Sport:      req.Sport,
		LeagueID:   req.LeagueID,
		SeasonYear: year,
		TeamID:     req.BaseTeamID,
		TeamName:   teamName,
	}
	add, err := e.Auth.AddLeague(ctx, req.BearerToken, cfg)
	if err != nil {
		e.Logger.Warn("discovery: leagues/add failed", zap.Error(err), zap.Int("year", year))
		return false
	}
	if add.LimitExceeded {
		result.LimitExceeded = true
		return true
	}
	if add.Conflict && add.LeagueRowID != "" {
		if err := e.Auth.PatchLeagueTeam(ctx, req.BearerToken, add.LeagueRowID, req.BaseTeamID, teamName); err != nil {
			e.Logger.Warn("discovery: leagues/{id}/team backfill failed", zap.Error(err), zap.Int("year", year))
		}
	}
	return false
}
