package common

import (
	"context"
	"sort"
	"strconv"

	"github.com/flaim/fantasy-mcp-gateway/internal/espnclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

func itoa(n int) string { return strconv.Itoa(n) }

// upstreamTeam is the subset of ESPN's mTeam view fields every standings/
// league-info/roster call needs.
type upstreamTeam struct {
	ID       int    `json:"id"`
	Location string `json:"location"`
	Nickname string `json:"nickname"`
	Name     string `json:"name"`
	Record   struct {
		Overall struct {
			Wins         int     `json:"wins"`
			Losses       int     `json:"losses"`
			Ties         int     `json:"ties"`
			PointsFor    float64 `json:"pointsFor"`
			PointsAgainst float64 `json:"pointsAgainst"`
		} `json:"overall"`
	} `json:"record"`
}

type upstreamLeagueTeamsResponse struct {
	ID       int            `json:"id"`
	SeasonID int            `json:"seasonId"`
	Settings struct {
		Name string `json:"name"`
	} `json:"settings"`
	Teams  []upstreamTeam `json:"teams"`
	Status struct {
		CurrentMatchupPeriod int `json:"currentMatchupPeriod"`
	} `json:"status"`
}

// StandingsRow is one team's row in a computed standings table.
type StandingsRow struct {
	Rank      int     `json:"rank"`
	TeamID    string  `json:"team_id"`
	TeamName  string  `json:"team_name"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Ties      int     `json:"ties"`
	WinPct    float64 `json:"win_pct"`
	PointsFor float64 `json:"points_for"`
}

// StandingsResult is the shaped output of get_standings.
type StandingsResult struct {
	LeagueID string         `json:"league_id"`
	Season   int            `json:"season_year"`
	Teams    []StandingsRow `json:"standings"`
}

// Standings builds the get_standings payload: client-side sort winPct
// desc, wins desc, dense rank.
func (d Deps) Standings(ctx context.Context, bearerToken string, params model.ToolParams) model.AdapterResult {
	creds, err := d.Credentials(ctx, bearerToken)
	if err != nil {
		return AsAdapterError(err)
	}

	var out upstreamLeagueTeamsResponse
	req := espnclient.Request{
		Sport:       d.Sport,
		Path:        d.LeaguePath(params.SeasonYear, params.LeagueID),
		Query:       "view=mStandings&view=mTeam",
		Credentials: creds,
	}
	if err := d.ESPN.DecodeJSON(ctx, req, &out); err != nil {
		return AsAdapterError(err)
	}

	rows := make([]StandingsRow, 0, len(out.Teams))
	for _, t := range out.Teams {
		ov := t.Record.Overall
		played := ov.Wins + ov.Losses + ov.Ties
		winPct := 0.0
		if played > 0 {
			winPct = (float64(ov.Wins) + 0.5*float64(ov.Ties)) / float64(played)
		}
		rows = append(rows, StandingsRow{
			TeamID:    itoa(t.ID),
			TeamName:  TeamName(t.Location, t.Nickname, t.Name, itoa(t.ID)),
			Wins:      ov.Wins,
			Losses:    ov.Losses,
			Ties:      ov.Ties,
			WinPct:    winPct,
			PointsFor: ov.PointsFor,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WinPct != rows[j].WinPct {
			return rows[i].WinPct > rows[j].WinPct
		}
		return rows[i].Wins > rows[j].Wins
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return model.OK(StandingsResult{LeagueID: params.LeagueID, Season: params.SeasonYear, Teams: rows})
}
