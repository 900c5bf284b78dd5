package common

import (
	"context"

	"github.com/flaim/fantasy-mcp-gateway/internal/espnclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

type upstreamPlayer struct {
	ID                int      `json:"id"`
	FullName          string   `json:"fullName"`
	DefaultPositionID int      `json:"defaultPositionId"`
	ProTeamID         int      `json:"proTeamId"`
	EligibleSlots     []int    `json:"eligibleSlots"`
	InjuryStatus      string   `json:"injuryStatus"`
	Ownership         struct {
		PercentOwned   float64 `json:"percentOwned"`
		PercentStarted float64 `json:"percentStarted"`
	} `json:"ownership"`
}

type upstreamRosterEntry struct {
	PlayerPoolEntry struct {
		Player upstreamPlayer `json:"player"`
	} `json:"playerPoolEntry"`
	LineupSlotID int `json:"lineupSlotId"`
}

type upstreamRosterTeam struct {
	upstreamTeam
	Roster struct {
		Entries []upstreamRosterEntry `json:"entries"`
	} `json:"roster"`
}

type upstreamRosterResponse struct {
	Teams []upstreamRosterTeam `json:"teams"`
}

// RosterPlayer is one shaped roster entry.
type RosterPlayer struct {
	model.Player
	LineupSlot string `json:"lineup_slot"`
}

// RosterResult is the shaped output of get_roster.
type RosterResult struct {
	LeagueID string         `json:"league_id"`
	Season   int            `json:"season_year"`
	TeamID   string         `json:"team_id"`
	TeamName string         `json:"team_name"`
	Players  []RosterPlayer `json:"players"`
}

// Roster builds the get_roster payload. Credentials are required: roster
// is a credential-required op.
func (d Deps) Roster(ctx context.Context, bearerToken string, params model.ToolParams) model.AdapterResult {
	if params.TeamID == "" {
		return model.Err(model.CodeTeamIDMissing, "team_id is required for get_roster")
	}
	creds, err := d.RequireCredentials(ctx, bearerToken)
	if err != nil {
		return AsAdapterError(err)
	}

	query := "view=mRoster&view=mTeam"
	if params.Week != nil {
		query += fmtScoringPeriod(*params.Week)
	}

	var out upstreamRosterResponse
	req := espnclient.Request{
		Sport:       d.Sport,
		Path:        d.LeaguePath(params.SeasonYear, params.LeagueID),
		Query:       query,
		Credentials: creds,
	}
	if err := d.ESPN.DecodeJSON(ctx, req, &out); err != nil {
		return AsAdapterError(err)
	}

	for _, t := range out.Teams {
		if itoa(t.ID) != params.TeamID {
			continue
		}
		players := make([]RosterPlayer, 0, len(t.Roster.Entries))
		for _, e := range t.Roster.Entries {
			p := e.PlayerPoolEntry.Player
			players = append(players, RosterPlayer{
				Player: model.Player{
					ID:                itoa(p.ID),
					Name:              p.FullName,
					Position:          d.Tables.Position.Name(p.DefaultPositionID),
					EligiblePositions: d.SlotNames(p.EligibleSlots),
					ProTeam:           itoa(p.ProTeamID),
					InjuryStatus:      p.InjuryStatus,
					PercentOwned:      &p.Ownership.PercentOwned,
					PercentStarted:    &p.Ownership.PercentStarted,
				},
				LineupSlot: d.Tables.Slot.Name(e.LineupSlotID),
			})
		}
		return model.OK(RosterResult{
			LeagueID: params.LeagueID,
			Season:   params.SeasonYear,
			TeamID:   params.TeamID,
			TeamName: TeamName(t.Location, t.Nickname, t.Name, itoa(t.ID)),
			Players:  players,
		})
	}
	return model.Err(model.CodeESPNNotFound, "team_id not found in this league")
}

func fmtScoringPeriod(week int) string {
	return "&scoringPeriodId=" + itoa(week)
}
