// Package model holds the wire-level data shapes shared by the gateway
// and the platform adapters: tool parameters, league configuration,
// normalized players/transactions, and the correlation context threaded
// through every request.
package model

import "time"

// Platform is one of the fantasy platforms the gateway fans out to.
type Platform string

const (
	PlatformESPN    Platform = "espn"
	PlatformYahoo   Platform = "yahoo"
	PlatformSleeper Platform = "sleeper"
)

// Sport is one of the four sports the adapters understand.
type Sport string

const (
	SportFootball  Sport = "football"
	SportBaseball  Sport = "baseball"
	SportBasketball Sport = "basketball"
	SportHockey    Sport = "hockey"
)

// ToolParams is the canonical parameter bag every public tool accepts a
// subset of. Optional fields are pointers so "not supplied" is
// distinguishable from the zero value.
type ToolParams struct {
	Platform   Platform `json:"platform" validate:"required,oneof=espn yahoo sleeper"`
	Sport      Sport    `json:"sport" validate:"required,oneof=football baseball basketball hockey"`
	LeagueID   string   `json:"league_id" validate:"required"`
	SeasonYear int      `json:"season_year" validate:"required,gte=2000,lte=2100"`
	TeamID     string   `json:"team_id,omitempty"`
	Week       *int     `json:"week,omitempty"`
	Position   string   `json:"position,omitempty"`
	Count      *int     `json:"count,omitempty"`
	Query      string   `json:"query,omitempty"`
	Type       string   `json:"type,omitempty"`
}

// LeagueConfig is one season-row of a user's league, as surfaced by the
// external auth service's league registry. One physical league may appear
// as several rows, one per season.
type LeagueConfig struct {
	Platform   Platform `json:"platform"`
	Sport      Sport    `json:"sport"`
	LeagueID   string   `json:"leagueId"`
	SeasonYear int      `json:"seasonYear"`
	TeamID     string   `json:"teamId,omitempty"`
	TeamName   string   `json:"teamName,omitempty"`
	LeagueName string   `json:"leagueName,omitempty"`
}

// DedupKey returns the grouping key for get_user_session's league-group
// pass: (platform, leagueId) for ESPN/Sleeper, (platform, leagueName) for
// Yahoo's legacy keying.
func (l LeagueConfig) DedupKey() string {
	if l.Platform == PlatformYahoo {
		return string(l.Platform) + "|" + l.LeagueName
	}
	return string(l.Platform) + "|" + l.LeagueID
}

// Credentials is an opaque per-platform token blob, fetched on demand and
// never persisted or logged by the core.
type Credentials struct {
	Platform Platform
	ESPN     *ESPNCredentials
}

// ESPNCredentials is the ESPN-specific credential shape.
type ESPNCredentials struct {
	SWID string
	S2   string
}

// TransactionType enumerates the normalized transaction kinds.
type TransactionType string

const (
	TxnAdd    TransactionType = "add"
	TxnDrop   TransactionType = "drop"
	TxnTrade  TransactionType = "trade"
	TxnWaiver TransactionType = "waiver"
)

// TransactionStatus enumerates the normalized transaction statuses.
type TransactionStatus string

const (
	TxnComplete TransactionStatus = "complete"
	TxnFailed   TransactionStatus = "failed"
	TxnPending  TransactionStatus = "pending"
	TxnUnknown  TransactionStatus = "unknown"
)

// Transaction is the normalized shape every adapter's transactions
// handler produces. Identity is the upstream message id; de-duplication
// happens on that id across pages.
type Transaction struct {
	TransactionID   string            `json:"transaction_id"`
	Type            TransactionType   `json:"type"`
	Status          TransactionStatus `json:"status"`
	Timestamp       time.Time         `json:"timestamp"`
	Week            *int              `json:"week,omitempty"`
	TeamIDs         []string          `json:"team_ids"`
	PlayersAdded    []string          `json:"players_added"`
	PlayersDropped  []string          `json:"players_dropped"`
	FAABBid         *int              `json:"faab_bid,omitempty"`
}

// Player is the normalized per-platform player shape. The identity space
// (Id) is platform-scoped.
type Player struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Position           string   `json:"position"`
	EligiblePositions  []string `json:"eligiblePositions"`
	ProTeam            string   `json:"proTeam"`
	InjuryStatus       string   `json:"injuryStatus,omitempty"`
	PercentOwned       *float64 `json:"percentOwned,omitempty"`
	PercentStarted     *float64 `json:"percentStarted,omitempty"`
	Stats              map[string]float64 `json:"stats,omitempty"`
}

// CorrelationContext is propagated end-to-end as headers and included in
// every structured log event. EvalRunID/EvalTraceID are opaque ids
// tagging an offline evaluation run and are never altered, only
// forwarded.
type CorrelationContext struct {
	CorrelationID string
	EvalRunID     string
	EvalTraceID   string
}

// Headers returns the propagation headers for an outbound request.
func (c CorrelationContext) Headers() map[string]string {
	h := map[string]string{"X-Correlation-ID": c.CorrelationID}
	if c.EvalRunID != "" {
		h["X-Eval-Run-ID"] = c.EvalRunID
	}
	if c.EvalTraceID != "" {
		h["X-Eval-Trace-ID"] = c.EvalTraceID
	}
	return h
}

// AdapterResult is the tagged result every platform adapter handler
// returns across the /execute boundary: no exceptions for control flow.
type AdapterResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Err builds a failed AdapterResult carrying the stable error code.
func Err(code, message string) AdapterResult {
	return AdapterResult{Success: false, Error: message, Code: code}
}

// OK builds a successful AdapterResult.
func OK(data any) AdapterResult {
	return AdapterResult{Success: true, Data: data}
}
