// Package authclient is the single entry point for calls to the external
// auth/credential/league-registry service. It never persists anything;
// every call forwards the caller's bearer token and returns a
// freshly-fetched result.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

// Client talks to the auth service over HTTP: a base URL, an http.Client
// with a fixed timeout, and nothing else — the auth service, not this
// gateway, owns persistence.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New builds an auth-service client with the given request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: baseURL,
	}
}

// IntrospectResult is the shape returned by GET /auth/introspect.
type IntrospectResult struct {
	Valid  bool   `json:"valid"`
	Scope  string `json:"scope"`
	UserID string `json:"userId,omitempty"`
}

// Introspect validates a bearer token against the auth service, binding
// it to the resource URL the gateway advertises for the current path.
func (c *Client) Introspect(ctx context.Context, bearerToken, expectedResource string) (IntrospectResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/auth/introspect", nil)
	if err != nil {
		return IntrospectResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	req.Header.Set("X-Flaim-Expected-Resource", expectedResource)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return IntrospectResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return IntrospectResult{}, fmt.Errorf("introspect: upstream status %d", resp.StatusCode)
	}

	var out IntrospectResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return IntrospectResult{}, fmt.Errorf("introspect: decode response: %w", err)
	}
	return out, nil
}

// Credentials fetches the caller's raw credentials for a platform
// (GET /credentials/<platform>?raw=true). A 404 means "no credentials on
// file" and is surfaced as (nil, nil) — callers decide whether that is
// fatal.
func (c *Client) Credentials(ctx context.Context, bearerToken string, platform model.Platform) (*model.Credentials, error) {
	url := fmt.Sprintf("%s/credentials/%s?raw=true", c.BaseURL, platform)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("credentials: upstream status %d", resp.StatusCode)
	}

	switch platform {
	case model.PlatformESPN:
		var raw struct {
			SWID string `json:"swid"`
			S2   string `json:"s2"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return nil, fmt.Errorf("credentials: decode espn response: %w", err)
		}
		return &model.Credentials{Platform: platform, ESPN: &model.ESPNCredentials{SWID: raw.SWID, S2: raw.S2}}, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("credentials: unsupported platform %q (body=%s)", platform, body)
	}
}

// Leagues fetches the caller's leagues, optionally filtered by platform
// (GET /leagues[?platform=...]).
func (c *Client) Leagues(ctx context.Context, bearerToken string, platform model.Platform) ([]model.LeagueConfig, error) {
	url := c.BaseURL + "/leagues"
	if platform != "" {
		url += "?platform=" + string(platform)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("leagues: upstream status %d", resp.StatusCode)
	}

	var out struct {
		Leagues []model.LeagueConfig `json:"leagues"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("leagues: decode response: %w", err)
	}
	return out.Leagues, nil
}

// Preferences is the shape returned by GET /user/preferences.
type Preferences struct {
	DefaultSport    model.Sport            `json:"defaultSport"`
	DefaultLeagues  map[model.Sport]string `json:"defaultLeagues"` // sport -> leagueId
}

// UserPreferences fetches the caller's stored defaults.
func (c *Client) UserPreferences(ctx context.Context, bearerToken string) (Preferences, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/user/preferences", nil)
	if err != nil {
		return Preferences{}, err
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Preferences{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Preferences{}, fmt.Errorf("preferences: upstream status %d", resp.StatusCode)
	}

	var out Preferences
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Preferences{}, fmt.Errorf("preferences: decode response: %w", err)
	}
	return out, nil
}

// AddLeagueResult distinguishes the three outcomes POST /leagues/add can
// report back to the discovery engine.
type AddLeagueResult struct {
	Conflict      bool   // 409: league+season already registered
	LimitExceeded bool   // 400 with {code:"LIMIT_EXCEEDED"}
	LeagueRowID   string // the registry's row id, used for the PATCH backfill
}

// AddLeague registers a newly-discovered season with the league registry.
func (c *Client) AddLeague(ctx context.Context, bearerToken string, cfg model.LeagueConfig) (AddLeagueResult, error) {
	body, err := json.Marshal(cfg)
	if err != nil {
		return AddLeagueResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/leagues/add", bytes.NewReader(body))
	if err != nil {
		return AddLeagueResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return AddLeagueResult{}, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusConflict:
		var row struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(respBody, &row)
		return AddLeagueResult{Conflict: true, LeagueRowID: row.ID}, nil
	case http.StatusBadRequest:
		var errBody struct {
			Code string `json:"code"`
		}
		_ = json.Unmarshal(respBody, &errBody)
		if errBody.Code == "LIMIT_EXCEEDED" {
			return AddLeagueResult{LimitExceeded: true}, nil
		}
		return AddLeagueResult{}, fmt.Errorf("leagues/add: bad request: %s", respBody)
	default:
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return AddLeagueResult{}, fmt.Errorf("leagues/add: upstream status %d", resp.StatusCode)
		}
		var row struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(respBody, &row)
		return AddLeagueResult{LeagueRowID: row.ID}, nil
	}
}

// PatchLeagueTeam backfills the team id/name on an existing league row
// after a 409 conflict from AddLeague.
func (c *Client) PatchLeagueTeam(ctx context.Context, bearerToken, leagueRowID, teamID, teamName string) error {
	payload, _ := json.Marshal(map[string]string{"teamId": teamID, "teamName": teamName})
	url := fmt.Sprintf("%s/leagues/%s/team", c.BaseURL, leagueRowID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("leagues/%s/team: upstream status %d", leagueRowID, resp.StatusCode)
	}
	return nil
}
