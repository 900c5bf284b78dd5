package discovery

import (
	"context"
	"time"

	"github.com/flaim/fantasy-mcp-gateway/internal/espnhandlers/common"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

// outcome classifies one year's probe result.
type outcome string

const (
	outcomeHit         outcome = "hit"
	outcomeMiss        outcome = "miss"
	outcomeRateLimited outcome = "rate_limited"
	outcomeAuthFailed  outcome = "auth_failed"
	outcomeAPIError    outcome = "api_error"
)

// probeWithRetry calls ProbeBasicInfo for year, applying the one-shot
// sleep(1s)-then-retry policy for non-miss, non-rate-limit, non-auth
// errors.
func (e *Engine) probeWithRetry(ctx context.Context, deps common.Deps, req Request, year int, haveHit bool) (outcome, common.BasicInfo) {
	info := deps.ProbeBasicInfo(ctx, req.Credentials, year, req.LeagueID)
	out := classify(info, haveHit)
	if out != outcomeAPIError {
		return out, info
	}

	e.sleepRetry()
	retryInfo := deps.ProbeBasicInfo(ctx, req.Credentials, year, req.LeagueID)
	return classify(retryInfo, haveHit), retryInfo
}

func (e *Engine) sleepRetry() {
	delay := e.Config.RetryDelay
	if delay <= 0 {
		delay = time.Second
	}
	e.sleep(delay)
}

// classify maps one probe result to an outcome: success+teams -> hit;
// success+zero-teams or 404 -> miss; 429 -> rate-limited; 401/403 ->
// auth_failed only if no prior hit exists, otherwise miss; any other
// failure -> api_error (subject to retry by the caller).
func classify(info common.BasicInfo, haveHit bool) outcome {
	if info.Success {
		if len(info.Teams) == 0 {
			return outcomeMiss
		}
		return outcomeHit
	}
	switch info.Error {
	case model.CodeESPNNotFound:
		return outcomeMiss
	case model.CodeESPNRateLimit:
		return outcomeRateLimited
	case model.CodeESPNCookiesExpired, model.CodeESPNAuthFailed, model.CodeESPNAccessDenied:
		if haveHit {
			return outcomeMiss
		}
		return outcomeAuthFailed
	default:
		return outcomeAPIError
	}
}
