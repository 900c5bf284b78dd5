package common

import (
	"context"

	"github.com/flaim/fantasy-mcp-gateway/internal/espnclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

type upstreamSettings struct {
	Name            string `json:"name"`
	Size            int    `json:"size"`
	ScoringSettings struct {
		ScoringType string `json:"scoringType"`
	} `json:"scoringSettings"`
	RosterSettings struct {
		LineupSlotCounts map[string]int `json:"lineupSlotCounts"`
	} `json:"rosterSettings"`
}

type upstreamLeagueInfoResponse struct {
	ID       int              `json:"id"`
	SeasonID int              `json:"seasonId"`
	Settings upstreamSettings `json:"settings"`
	Teams    []upstreamTeam   `json:"teams"`
}

// LeagueInfoResult is the shaped output of get_league_info.
type LeagueInfoResult struct {
	LeagueID    string         `json:"league_id"`
	LeagueName  string         `json:"league_name"`
	Season      int            `json:"season_year"`
	Size        int            `json:"size"`
	ScoringType string         `json:"scoring_type"`
	RosterSlots map[string]int `json:"roster_slots"`
}

// LeagueInfo builds the get_league_info payload. Absent credentials are
// not fatal here: a public league still answers mSettings/mTeam queries.
func (d Deps) LeagueInfo(ctx context.Context, bearerToken string, params model.ToolParams) model.AdapterResult {
	creds, err := d.Credentials(ctx, bearerToken)
	if err != nil {
		return AsAdapterError(err)
	}

	var out upstreamLeagueInfoResponse
	req := espnclient.Request{
		Sport:       d.Sport,
		Path:        d.LeaguePath(params.SeasonYear, params.LeagueID),
		Query:       "view=mSettings&view=mTeam",
		Credentials: creds,
	}
	if err := d.ESPN.DecodeJSON(ctx, req, &out); err != nil {
		return AsAdapterError(err)
	}

	roster := make(map[string]int, len(out.Settings.RosterSettings.LineupSlotCounts))
	for slotID, count := range out.Settings.RosterSettings.LineupSlotCounts {
		roster[slotID] = count
	}

	return model.OK(LeagueInfoResult{
		LeagueID:    params.LeagueID,
		LeagueName:  out.Settings.Name,
		Season:      params.SeasonYear,
		Size:        out.Settings.Size,
		ScoringType: out.Settings.ScoringSettings.ScoringType,
		RosterSlots: roster,
	})
}

// BasicTeamRef is the minimal per-team shape the discovery engine needs
// to resolve a baseTeamId's display name.
type BasicTeamRef struct {
	ID   string
	Name string
}

// BasicInfo is the lightweight probe used by the discovery engine: a
// 200 with zero teams counts as an implicit miss.
type BasicInfo struct {
	Success    bool
	LeagueName string
	SeasonYear int
	Teams      []BasicTeamRef
	Error      string
}

// ProbeBasicInfo issues the mStandings&mTeam&mSettings probe used by the
// discovery engine, distinguishing 404/401/403 from a zero-team miss.
func (d Deps) ProbeBasicInfo(ctx context.Context, creds *model.ESPNCredentials, canonicalYear int, leagueID string) BasicInfo {
	var out upstreamLeagueInfoResponse
	req := espnclient.Request{
		Sport:       d.Sport,
		Path:        d.LeaguePath(canonicalYear, leagueID),
		Query:       "view=mStandings&view=mTeam&view=mSettings",
		Credentials: creds,
	}
	if err := d.ESPN.DecodeJSON(ctx, req, &out); err != nil {
		if espnErr, ok := err.(*espnclient.Error); ok {
			return BasicInfo{Success: false, Error: espnErr.Code}
		}
		return BasicInfo{Success: false, Error: err.Error()}
	}
	if len(out.Teams) == 0 {
		return BasicInfo{Success: true, LeagueName: out.Settings.Name, SeasonYear: canonicalYear}
	}
	teams := make([]BasicTeamRef, 0, len(out.Teams))
	for _, t := range out.Teams {
		teams = append(teams, BasicTeamRef{ID: itoa(t.ID), Name: TeamName(t.Location, t.Nickname, t.Name, itoa(t.ID))})
	}
	return BasicInfo{
		Success:    true,
		LeagueName: out.Settings.Name,
		SeasonYear: canonicalYear,
		Teams:      teams,
	}
}
