// Package espnclient is the sole entry point for outbound calls to ESPN's
// fantasy API. Its shape — a *http.Client plus a fixed base URL and a
// Get-style helper — returns bytes directly to callers, who decode the
// shape they need; ESPN responses are per-request and per-credential, so
// nothing here is cached on disk.
package espnclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

// gameID maps a sport to ESPN's internal per-sport game segment used in
// every apis/v3/games/<gameId>/... URL.
var gameID = map[model.Sport]string{
	model.SportFootball:   "ffl",
	model.SportBaseball:   "flb",
	model.SportBasketball: "fba",
	model.SportHockey:     "fhl",
}

const userAgent = "flaim-fantasy-adapter/1.0"

// Client issues authenticated/unauthenticated GET requests against ESPN's
// fantasy API for one sport's game segment.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New builds an ESPN client with the given upstream timeout (default 7s).
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Request describes one upstream call.
type Request struct {
	Sport       model.Sport
	Path        string // e.g. "seasons/2024/segments/0/leagues/12345"
	Query       string // raw query string, e.g. "view=mRoster&view=mSettings"
	Credentials *model.ESPNCredentials
	Filter      string // optional X-Fantasy-Filter JSON payload
}

// url builds the full apis/v3/games/<gameId>/<path>?<query> URL.
func (c *Client) url(req Request) (string, error) {
	id, ok := gameID[req.Sport]
	if !ok {
		return "", fmt.Errorf("espnclient: unsupported sport %q", req.Sport)
	}
	u := fmt.Sprintf("%s/apis/v3/games/%s/%s", c.BaseURL, id, strings.TrimLeft(req.Path, "/"))
	if req.Query != "" {
		u += "?" + req.Query
	}
	return u, nil
}

// Get issues the request and returns the raw response body, classifying
// any failure into one of the stable ESPN_* error codes.
func (c *Client) Get(ctx context.Context, req Request) ([]byte, error) {
	u, err := c.url(req)
	if err != nil {
		return nil, &Error{Code: model.CodeESPNAPIError, Message: err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &Error{Code: model.CodeESPNAPIError, Message: err.Error()}
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Fantasy-Source", "kona")
	httpReq.Header.Set("X-Fantasy-Platform", "kona-PROD-"+strings.ToUpper(string(req.Sport)))
	if req.Credentials != nil {
		httpReq.Header.Set("Cookie", fmt.Sprintf("SWID=%s; espn_s2=%s", req.Credentials.SWID, req.Credentials.S2))
	}
	if req.Filter != "" {
		httpReq.Header.Set("X-Fantasy-Filter", req.Filter)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Code: model.CodeESPNAPIError, Message: "timed out — try again", Timeout: true}
		}
		return nil, &Error{Code: model.CodeESPNAPIError, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return body, classify(resp.StatusCode, body)
}

// DecodeJSON performs Get and decodes the body into out, surfacing
// HTML-instead-of-JSON (ESPN's login redirect) as ESPN_AUTH_FAILED.
func (c *Client) DecodeJSON(ctx context.Context, req Request, out any) error {
	body, err := c.Get(ctx, req)
	if err != nil {
		return err
	}
	if looksLikeHTML(body) {
		return &Error{Code: model.CodeESPNAuthFailed, Message: "upstream returned an HTML login page"}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Code: model.CodeESPNInvalidResponse, Message: "decode upstream response: " + err.Error()}
	}
	return nil
}

func looksLikeHTML(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.HasPrefix(trimmed, "<html")
}

// Error is the stable, coded error every espnclient call returns on
// failure.
type Error struct {
	Code    string
	Message string
	Timeout bool
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

func classify(status int, body []byte) error {
	switch {
	case status >= 200 && status <= 299:
		if looksLikeHTML(body) {
			return &Error{Code: model.CodeESPNAuthFailed, Message: "upstream returned an HTML login page"}
		}
		return nil
	case status == http.StatusUnauthorized:
		return &Error{Code: model.CodeESPNCookiesExpired, Message: "espn session cookies expired"}
	case status == http.StatusForbidden:
		return &Error{Code: model.CodeESPNAccessDenied, Message: "espn denied access to this resource"}
	case status == http.StatusNotFound:
		return &Error{Code: model.CodeESPNNotFound, Message: "espn resource not found"}
	case status == http.StatusTooManyRequests:
		return &Error{Code: model.CodeESPNRateLimit, Message: "espn rate limit exceeded"}
	case status >= 500:
		return &Error{Code: model.CodeESPNAPIError, Message: fmt.Sprintf("espn upstream status %d", status)}
	default:
		return &Error{Code: model.CodeESPNAPIError, Message: fmt.Sprintf("espn upstream status %d", status)}
	}
}

// MissingCredentials is returned by handlers (not this package) when a
// credential-required op has no ESPN credentials on file.
func MissingCredentials() error {
	return &Error{Code: model.CodeESPNCredentialsNotFound, Message: "no espn credentials on file"}
}
