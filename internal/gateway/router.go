package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

// adapterExecuteRequest mirrors internal/adapter.ExecuteRequest; kept as
// its own type so the gateway package does not import the adapter
// package. The two talk only over HTTP.
type adapterExecuteRequest struct {
	Tool       string           `json:"tool"`
	Params     model.ToolParams `json:"params"`
	AuthHeader string           `json:"authHeader,omitempty"`
}

/// PlatformRouter is the gateway's platform router: pure dispatch by
// params.Platform, forwarding to the selected adapter's /execute over an
// internal HTTP transport.
type PlatformRouter struct {
	HTTP     *http.Client
	BaseURLs map[model.Platform]string
}

// NewPlatformRouter builds a router from a platform -> adapter base URL
// map (config.Gateway.AdapterBaseURLs, keyed by platform name).
func NewPlatformRouter(baseURLs map[string]string, timeout time.Duration) *PlatformRouter {
	typed := make(map[model.Platform]string, len(baseURLs))
	for k, v := range baseURLs {
		typed[model.Platform(k)] = v
	}
	return &PlatformRouter{
		HTTP:     &http.Client{Timeout: timeout},
		BaseURLs: typed,
	}
}

// Execute forwards one tool call to the adapter selected by
// params.Platform, attaching Authorization and the correlation headers.
// A non-2xx or transport failure yields PLATFORM_ERROR / ROUTING_ERROR.
func (r *PlatformRouter) Execute(ctx context.Context, tool string, params model.ToolParams, bearerToken string, cc model.CorrelationContext) model.AdapterResult {
	base, ok := r.BaseURLs[params.Platform]
	if !ok {
		return model.Err(model.CodePlatformNotSupported, fmt.Sprintf("platform %q is not wired to an adapter", params.Platform))
	}

	payload, err := json.Marshal(adapterExecuteRequest{Tool: tool, Params: params})
	if err != nil {
		return model.Err(model.CodeRoutingError, "failed to encode adapter request: "+err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/execute", bytes.NewReader(payload))
	if err != nil {
		return model.Err(model.CodeRoutingError, "failed to build adapter request: "+err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	for k, v := range cc.Headers() {
		req.Header.Set(k, v)
	}

	resp, err := r.HTTP.Do(req)
	if err != nil {
		return model.Err(model.CodeRoutingError, "adapter call failed: "+err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Err(model.CodePlatformError, fmt.Sprintf("adapter returned status %d", resp.StatusCode))
	}

	var result model.AdapterResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.Err(model.CodePlatformError, "failed to decode adapter response: "+err.Error())
	}
	return result
}
