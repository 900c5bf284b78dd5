package adapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/flaim/fantasy-mcp-gateway/internal/discovery"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnhandlers/common"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

// initializeRequest is the POST /onboarding/initialize body: a simple
// credential-reachability check used before a client attempts discovery.
type initializeRequest struct {
	Sport    model.Sport `json:"sport"`
	LeagueID string      `json:"leagueId"`
}

// ServeInitialize probes basic league info once, surfacing whether
// credentials and the league id are usable at all.
func (r *Router) ServeInitialize(w http.ResponseWriter, req *http.Request) {
	if req.Header.Get("Authorization") == "" {
		writeResult(w, model.Err(model.CodeAuthMissing, "Authorization header is required"))
		return
	}
	var body initializeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeResult(w, model.Err(model.CodeRoutingError, "malformed /onboarding/initialize body"))
		return
	}
	deps, ok := r.bySport[body.Sport]
	if !ok {
		writeResult(w, model.Err(model.CodeSportNotSupported, "sport not supported by this adapter"))
		return
	}

	ctx := req.Context()
	bearer := trimBearer(req.Header.Get("Authorization"))
	creds, err := deps.Credentials(ctx, bearer)
	if err != nil {
		writeResult(w, common.AsAdapterError(err))
		return
	}

	currentYear := time.Now().Year()
	info := deps.ProbeBasicInfo(ctx, creds, currentYear, body.LeagueID)
	if !info.Success {
		writeResult(w, model.Err(info.Error, "initialize probe failed"))
		return
	}
	writeResult(w, model.OK(info))
}

// discoverSeasonsRequest is the POST /onboarding/discover-seasons body.
type discoverSeasonsRequest struct {
	Sport           model.Sport `json:"sport"`
	LeagueID        string      `json:"leagueId"`
	BaseTeamID      string      `json:"baseTeamId"`
	ExistingSeasons []int       `json:"existingSeasons"`
}

// ServeDiscoverSeasons runs the discovery engine for one league.
func (r *Router) ServeDiscoverSeasons(w http.ResponseWriter, req *http.Request) {
	if req.Header.Get("Authorization") == "" {
		writeResult(w, model.Err(model.CodeAuthMissing, "Authorization header is required"))
		return
	}
	var body discoverSeasonsRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeResult(w, model.Err(model.CodeRoutingError, "malformed /onboarding/discover-seasons body"))
		return
	}
	deps, ok := r.bySport[body.Sport]
	if !ok {
		writeResult(w, model.Err(model.CodeSportNotSupported, "sport not supported by this adapter"))
		return
	}
	if r.Discovery == nil {
		writeResult(w, model.Err(model.CodeInternalError, "discovery engine not wired"))
		return
	}

	ctx := req.Context()
	bearer := trimBearer(req.Header.Get("Authorization"))
	creds, err := deps.Credentials(ctx, bearer)
	if err != nil {
		writeResult(w, common.AsAdapterError(err))
		return
	}

	existing := make(map[int]bool, len(body.ExistingSeasons))
	for _, y := range body.ExistingSeasons {
		existing[y] = true
	}

	result := r.Discovery.Run(ctx, deps, discovery.Request{
		LeagueID:        body.LeagueID,
		Sport:           body.Sport,
		Credentials:     creds,
		BaseTeamID:      body.BaseTeamID,
		ExistingSeasons: existing,
		BearerToken:     bearer,
	})
	writeResult(w, model.OK(result))
}
