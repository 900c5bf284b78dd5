// Package gateway implements the MCP Gateway: the JSON-RPC transport, the
// auth/scope gate, the static tool registry, and the platform-fan-out
// router that forwards tool calls to platform adapters over an internal
// HTTP transport.
package gateway

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/flaim/fantasy-mcp-gateway/internal/authclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
	"github.com/flaim/fantasy-mcp-gateway/internal/season"
)

// allPlatforms is fanned out to on every get_user_session /
// get_ancient_history call. ESPN is wired today; Yahoo/Sleeper are
// envisioned future platforms.
var allPlatforms = []model.Platform{model.PlatformESPN, model.PlatformYahoo, model.PlatformSleeper}

// activeThresholdYears is how many years back a league's newest season may
// be and still count as "active".
const activeThresholdYears = 2

// SessionLeague is one (platform, league) group surfaced to the caller,
// already reduced to its most-recent seasons.
type SessionLeague struct {
	Platform   model.Platform `json:"platform"`
	Sport      model.Sport    `json:"sport"`
	LeagueID   string         `json:"league_id"`
	LeagueName string         `json:"league_name,omitempty"`
	TeamID     string         `json:"team_id,omitempty"`
	TeamName   string         `json:"team_name,omitempty"`
	Seasons    []int          `json:"seasons"` // descending, most-recent first

	// Reason explains why a row surfaced on get_ancient_history rather than
	// get_user_session: "league_inactive" when the whole league's newest
	// season fell outside the active threshold, "season_too_old" when only
	// its older seasons did. Empty on get_user_session rows.
	Reason string `json:"reason,omitempty"`
}

const (
	reasonLeagueInactive = "league_inactive"
	reasonSeasonTooOld   = "season_too_old"
)

// SeasonInfo is one sport's current-season pointer.
type SeasonInfo struct {
	Year  int    `json:"year"`
	Label string `json:"label"`
}

// UserSessionResult is the get_user_session payload.
type UserSessionResult struct {
	CurrentDate     string                       `json:"current_date"`
	Leagues         []SessionLeague              `json:"leagues"`
	CurrentSeasons  map[model.Sport]SeasonInfo   `json:"current_seasons"`
	DefaultLeagueID string                       `json:"default_league_id,omitempty"`
	DefaultSport    model.Sport                  `json:"default_sport,omitempty"`
	Instructions    string                       `json:"instructions"`
}

// AncientHistoryResult is the get_ancient_history payload: whole leagues
// the active-threshold filter dropped, plus the older seasons of
// otherwise-active leagues.
type AncientHistoryResult struct {
	InactiveLeagues []SessionLeague `json:"inactive_leagues"`
	OlderSeasons    []SessionLeague `json:"older_seasons"`
}

var trackedSports = []model.Sport{model.SportFootball, model.SportBaseball, model.SportBasketball, model.SportHockey}

// fetchAllLeagues fans the auth service's /leagues call out across every
// supported platform in parallel, tolerating per-platform failure: a
// failed platform is logged and simply contributes nothing. Parallelism via
// errgroup; per-platform failures are collected with go-multierror purely
// so one log line names every platform that failed, instead of only the
// first.
func fetchAllLeagues(ctx context.Context, auth *authclient.Client, bearerToken string, logger *zap.Logger, platformFilter model.Platform) []model.LeagueConfig {
	platforms := allPlatforms
	if platformFilter != "" {
		platforms = []model.Platform{platformFilter}
	}

	var mu sync.Mutex
	var all []model.LeagueConfig
	var errs error

	var g errgroup.Group
	for _, p := range platforms {
		p := p
		g.Go(func() error {
			leagues, err := auth.Leagues(ctx, bearerToken, p)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierror.Append(errs, err)
				return nil
			}
			all = append(all, leagues...)
			return nil
		})
	}
	_ = g.Wait()

	if errs != nil && logger != nil {
		logger.Warn("get_user_session: one or more platforms failed to return leagues", zap.Error(errs))
	}
	return all
}

// groupLeagues groups by DedupKey, sorts each group by season descending,
// then splits into (active leagues reduced to their two most-recent
// seasons) and (everything the active-threshold filter excludes).
func groupLeagues(leagues []model.LeagueConfig, now time.Time) (active []SessionLeague, inactive []SessionLeague, olderSeasons []SessionLeague) {
	groups := make(map[string][]model.LeagueConfig)
	order := make([]string, 0)
	for _, l := range leagues {
		key := l.DedupKey()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], l)
	}

	activeThreshold := now.Year() - activeThresholdYears

	for _, key := range order {
		rows := groups[key]
		sort.Slice(rows, func(i, j int) bool { return rows[i].SeasonYear > rows[j].SeasonYear })
		newest := rows[0]

		seasons := make([]int, len(rows))
		for i, r := range rows {
			seasons[i] = r.SeasonYear
		}

		sl := SessionLeague{
			Platform:   newest.Platform,
			Sport:      newest.Sport,
			LeagueID:   newest.LeagueID,
			LeagueName: newest.LeagueName,
			TeamID:     newest.TeamID,
			TeamName:   newest.TeamName,
		}

		if newest.SeasonYear < activeThreshold {
			sl.Seasons = seasons
			sl.Reason = reasonLeagueInactive
			inactive = append(inactive, sl)
			continue
		}

		keep := seasons
		if len(keep) > activeThresholdYears {
			keep = keep[:activeThresholdYears]
		}
		sl.Seasons = keep
		active = append(active, sl)

		if len(seasons) > len(keep) {
			older := sl
			older.Seasons = seasons[len(keep):]
			older.Reason = reasonSeasonTooOld
			olderSeasons = append(olderSeasons, older)
		}
	}

	return active, inactive, olderSeasons
}

// currentSeasonsBySport builds the sport -> {year, label} map every
// get_user_session response carries.
func currentSeasonsBySport(now time.Time) map[model.Sport]SeasonInfo {
	out := make(map[model.Sport]SeasonInfo, len(trackedSports))
	for _, sp := range trackedSports {
		year := season.CurrentSeason(sp, now)
		out[sp] = SeasonInfo{Year: year, Label: season.Label(year, sp)}
	}
	return out
}

// resolveDefaults resolves each of the caller's per-sport default league
// pointers against the surviving (active) league set, then picks the
// primary default.
func resolveDefaults(active []SessionLeague, prefs authclient.Preferences) (defaultLeagueID string, defaultSport model.Sport) {
	bySport := make(map[model.Sport]string)
	for sp, leagueID := range prefs.DefaultLeagues {
		for _, l := range active {
			if l.Sport == sp && l.LeagueID == leagueID {
				bySport[sp] = leagueID
				break
			}
		}
	}

	if id, ok := bySport[prefs.DefaultSport]; ok {
		return id, prefs.DefaultSport
	}
	for _, l := range active {
		if id, ok := bySport[l.Sport]; ok {
			return id, l.Sport
		}
	}
	if len(active) > 0 {
		return active[0].LeagueID, active[0].Sport
	}
	return "", ""
}

// GetUserSession runs the full get_user_session algorithm.
func GetUserSession(ctx context.Context, auth *authclient.Client, bearerToken string, logger *zap.Logger) UserSessionResult {
	now := time.Now()
	leagues := fetchAllLeagues(ctx, auth, bearerToken, logger, "")
	active, _, _ := groupLeagues(leagues, now)

	prefs, err := auth.UserPreferences(ctx, bearerToken)
	if err != nil && logger != nil {
		logger.Warn("get_user_session: preferences fetch failed, continuing without defaults", zap.Error(err))
	}
	defaultLeagueID, defaultSport := resolveDefaults(active, prefs)

	return UserSessionResult{
		CurrentDate:     now.Format("2006-01-02"),
		Leagues:         active,
		CurrentSeasons:  currentSeasonsBySport(now),
		DefaultLeagueID: defaultLeagueID,
		DefaultSport:    defaultSport,
		Instructions: "Use league_id/team_id/season_year values exactly as returned here when calling other tools. " +
			"If the caller has more than one league, ask which one before assuming. " +
			"Seasons older than the two most recent per league are not included here; call get_ancient_history to reach them.",
	}
}

// GetAncientHistory runs the get_ancient_history algorithm: reuse the same
// league-fetch/group pass, optionally platform-filtered, and return what
// the active-threshold filter excluded.
func GetAncientHistory(ctx context.Context, auth *authclient.Client, bearerToken string, logger *zap.Logger, platformFilter model.Platform) AncientHistoryResult {
	leagues := fetchAllLeagues(ctx, auth, bearerToken, logger, platformFilter)
	_, inactive, olderSeasons := groupLeagues(leagues, time.Now())
	return AncientHistoryResult{InactiveLeagues: inactive, OlderSeasons: olderSeasons}
}
