// Package common implements the sport-agnostic half of the per-sport
// handlers: the "acquire credentials → build URL → shape response" shape
// every concrete handler follows, as a set of helpers each sport
// package's handlers.go calls with its own idmap.Tables and upstream view
// parameters.
package common

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/flaim/fantasy-mcp-gateway/internal/authclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/idmap"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
	"github.com/flaim/fantasy-mcp-gateway/internal/playercache"
	"github.com/flaim/fantasy-mcp-gateway/internal/season"
)

// Deps bundles everything a sport's handler set needs, threaded
// explicitly through every call rather than held in package globals.
type Deps struct {
	Auth   *authclient.Client
	ESPN   *espnclient.Client
	Cache  *playercache.Cache
	Tables idmap.Tables
	Sport  model.Sport
	Logger *zap.Logger

	// EligibleSlotNames overrides the default eligible-slot name mapping
	// (SlotNames) when a sport needs extra rules — baseball wires its
	// TransformEligiblePositions here to drop the unknown-meaning slots
	// 18/21/22.
	EligibleSlotNames func(ids []int) []string

	// PositionSlots resolves a free-agent filter's position name to ESPN
	// lineup-slot ids. Each sport package supplies its own table (e.g.
	// baseball's OUTFIELD=[5,8,9,10]).
	PositionSlots func(position string) ([]int, bool)
}

// Credentials fetches the caller's ESPN credentials, returning (nil, nil)
// when none are on file so callers can decide whether that's a hard
// failure (roster/FA/transactions) or an opportunity to fall back to a
// public-league attempt (info/standings/matchups).
func (d Deps) Credentials(ctx context.Context, bearerToken string) (*model.ESPNCredentials, error) {
	creds, err := d.Auth.Credentials(ctx, bearerToken, model.PlatformESPN)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, nil
	}
	return creds.ESPN, nil
}

// RequireCredentials is Credentials but treats "none on file" as a hard
// failure, for ops that cannot proceed without them.
func (d Deps) RequireCredentials(ctx context.Context, bearerToken string) (*model.ESPNCredentials, error) {
	creds, err := d.Credentials(ctx, bearerToken)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, espnclient.MissingCredentials()
	}
	return creds, nil
}

// LeaguePath builds the seasons/<platformYear>/segments/0/leagues/<id>
// path segment shared by every league-scoped call.
func (d Deps) LeaguePath(canonicalYear int, leagueID string) string {
	platformYear := season.ToPlatformYear(canonicalYear, d.Sport)
	return fmt.Sprintf("seasons/%d/segments/0/leagues/%s", platformYear, leagueID)
}

// AsAdapterError translates an espnclient.Error (or any other error) into
// a model.AdapterResult, preserving the stable code when one is present.
func AsAdapterError(err error) model.AdapterResult {
	if espnErr, ok := err.(*espnclient.Error); ok {
		return model.Err(espnErr.Code, espnErr.Message)
	}
	return model.Err(model.CodeESPNAPIError, err.Error())
}

// TeamName prefers "<location> <nickname>", falling back to name, then
// "Team <id>".
func TeamName(location, nickname, name, id string) string {
	loc := location
	nick := nickname
	if loc != "" && nick != "" {
		return loc + " " + nick
	}
	if name != "" {
		return name
	}
	return "Team " + id
}

// SlotNames maps a player's raw eligibleSlots ids to display names. Sport
// packages with slot ids that need exclusion filtering (e.g. baseball's
// 18/21/22) override this by calling their own TransformEligiblePositions
// instead.
func (d Deps) SlotNames(ids []int) []string {
	if d.EligibleSlotNames != nil {
		return d.EligibleSlotNames(ids)
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.Tables.Slot.Name(id))
	}
	return out
}

// ClampCount applies the [1,100] clamp with default 25 used by
// free-agent/transaction counts.
func ClampCount(count *int) int {
	if count == nil {
		return 25
	}
	n := *count
	if n < 1 {
		return 1
	}
	if n > 100 {
		return 100
	}
	return n
}
