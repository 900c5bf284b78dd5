package common

import (
	"context"
	"encoding/json"

	"github.com/flaim/fantasy-mcp-gateway/internal/espnclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

type upstreamPlayersResponse struct {
	Players []struct {
		Player upstreamPlayer `json:"player"`
	} `json:"players"`
}

// FreeAgentsResult is the shaped output of get_free_agents.
type FreeAgentsResult struct {
	LeagueID string        `json:"league_id"`
	Season   int           `json:"season_year"`
	Position string        `json:"position,omitempty"`
	Players  []model.Player `json:"players"`
}

// freeAgentFilterPayload is the X-Fantasy-Filter JSON header for a
// free-agent query, built by buildFreeAgentFilter.
type freeAgentFilterPayload struct {
	Players struct {
		FilterStatus struct {
			Value []string `json:"value"`
		} `json:"filterStatus"`
		FilterSlotIDs *struct {
			Value []int `json:"value"`
		} `json:"filterSlotIds,omitempty"`
		SortPercOwned struct {
			SortPriority int  `json:"sortPriority"`
			SortAsc      bool `json:"sortAsc"`
		} `json:"sortPercOwned"`
		SortDraftRanks struct {
			SortPriority int    `json:"sortPriority"`
			SortAsc      bool   `json:"sortAsc"`
			Value        string `json:"value"`
		} `json:"sortDraftRanks"`
		Limit int `json:"limit"`
	} `json:"players"`
}

func (d Deps) buildFreeAgentFilter(position string, count int) string {
	var f freeAgentFilterPayload
	f.Players.FilterStatus.Value = []string{"FREEAGENT", "WAIVERS"}
	if d.PositionSlots != nil {
		if slots, ok := d.PositionSlots(position); ok {
			f.Players.FilterSlotIDs = &struct {
				Value []int `json:"value"`
			}{Value: slots}
		}
	}
	f.Players.SortPercOwned.SortPriority = 1
	f.Players.SortPercOwned.SortAsc = false
	f.Players.SortDraftRanks.SortPriority = 100
	f.Players.SortDraftRanks.SortAsc = true
	f.Players.SortDraftRanks.Value = "STANDARD"
	f.Players.Limit = count

	body, _ := json.Marshal(f)
	return string(body)
}

// FreeAgents builds the get_free_agents payload.
func (d Deps) FreeAgents(ctx context.Context, bearerToken string, params model.ToolParams) model.AdapterResult {
	creds, err := d.RequireCredentials(ctx, bearerToken)
	if err != nil {
		return AsAdapterError(err)
	}

	count := ClampCount(params.Count)
	filter := d.buildFreeAgentFilter(params.Position, count)

	var out upstreamPlayersResponse
	req := espnclient.Request{
		Sport:       d.Sport,
		Path:        d.LeaguePath(params.SeasonYear, params.LeagueID),
		Query:       "view=kona_player_info",
		Credentials: creds,
		Filter:      filter,
	}
	if err := d.ESPN.DecodeJSON(ctx, req, &out); err != nil {
		return AsAdapterError(err)
	}

	players := make([]model.Player, 0, len(out.Players))
	for _, entry := range out.Players {
		p := entry.Player
		players = append(players, model.Player{
			ID:                itoa(p.ID),
			Name:              p.FullName,
			Position:          d.Tables.Position.Name(p.DefaultPositionID),
			EligiblePositions: d.SlotNames(p.EligibleSlots),
			ProTeam:           itoa(p.ProTeamID),
			InjuryStatus:      p.InjuryStatus,
			PercentOwned:      &p.Ownership.PercentOwned,
			PercentStarted:    &p.Ownership.PercentStarted,
		})
	}

	return model.OK(FreeAgentsResult{
		LeagueID: params.LeagueID,
		Season:   params.SeasonYear,
		Position: params.Position,
		Players:  players,
	})
}
