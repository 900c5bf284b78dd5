package common

import (
	"context"

	"github.com/flaim/fantasy-mcp-gateway/internal/espnclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

type upstreamMatchup struct {
	MatchupPeriodID int `json:"matchupPeriodId"`
	Home            struct {
		TeamID      int     `json:"teamId"`
		TotalPoints float64 `json:"totalPoints"`
	} `json:"home"`
	Away struct {
		TeamID      int     `json:"teamId"`
		TotalPoints float64 `json:"totalPoints"`
	} `json:"away"`
	Winner string `json:"winner"`
}

type upstreamMatchupsResponse struct {
	Teams    []upstreamTeam    `json:"teams"`
	Schedule []upstreamMatchup `json:"schedule"`
	Status   struct {
		CurrentMatchupPeriod int `json:"currentMatchupPeriod"`
	} `json:"status"`
}

// MatchupRow is one shaped matchup.
type MatchupRow struct {
	Week          int     `json:"week"`
	HomeTeamID    string  `json:"home_team_id"`
	HomeTeamName  string  `json:"home_team_name"`
	HomeScore     float64 `json:"home_score"`
	AwayTeamID    string  `json:"away_team_id"`
	AwayTeamName  string  `json:"away_team_name"`
	AwayScore     float64 `json:"away_score"`
	Winner        string  `json:"winner"`
}

// MatchupsResult is the shaped output of get_matchups.
type MatchupsResult struct {
	LeagueID string       `json:"league_id"`
	Season   int          `json:"season_year"`
	Week     int          `json:"week"`
	Matchups []MatchupRow `json:"matchups"`
}

// Matchups builds the get_matchups payload, defaulting to the current
// week when params.Week is omitted.
func (d Deps) Matchups(ctx context.Context, bearerToken string, params model.ToolParams) model.AdapterResult {
	creds, err := d.Credentials(ctx, bearerToken)
	if err != nil {
		return AsAdapterError(err)
	}

	var out upstreamMatchupsResponse
	req := espnclient.Request{
		Sport:       d.Sport,
		Path:        d.LeaguePath(params.SeasonYear, params.LeagueID),
		Query:       "view=mMatchupScore&view=mScoreboard&view=mTeam",
		Credentials: creds,
	}
	if err := d.ESPN.DecodeJSON(ctx, req, &out); err != nil {
		return AsAdapterError(err)
	}

	week := out.Status.CurrentMatchupPeriod
	if params.Week != nil {
		week = *params.Week
	}

	names := make(map[int]string, len(out.Teams))
	for _, t := range out.Teams {
		names[t.ID] = TeamName(t.Location, t.Nickname, t.Name, itoa(t.ID))
	}

	rows := make([]MatchupRow, 0)
	for _, m := range out.Schedule {
		if m.MatchupPeriodID != week {
			continue
		}
		rows = append(rows, MatchupRow{
			Week:         m.MatchupPeriodID,
			HomeTeamID:   itoa(m.Home.TeamID),
			HomeTeamName: names[m.Home.TeamID],
			HomeScore:    m.Home.TotalPoints,
			AwayTeamID:   itoa(m.Away.TeamID),
			AwayTeamName: names[m.Away.TeamID],
			AwayScore:    m.Away.TotalPoints,
			Winner:       m.Winner,
		})
	}

	return model.OK(MatchupsResult{LeagueID: params.LeagueID, Season: params.SeasonYear, Week: week, Matchups: rows})
}
