package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flaim/fantasy-mcp-gateway/internal/config"
)

func TestServeHealth_AllAdaptersOK(t *testing.T) {
	adapter := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer adapter.Close()

	handler := ServeHealth("1.2.3", map[string]string{"espn": adapter.URL}, http.DefaultClient)
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var out HealthStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "ok", out.Bindings["espn_status"])
}

func TestServeHealth_UnreachableAdapterIsDegraded(t *testing.T) {
	handler := ServeHealth("1.2.3", map[string]string{"espn": "http://127.0.0.1:1"}, &http.Client{})
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var out HealthStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Equal(t, "degraded", out.Status)
	assert.Equal(t, "unreachable", out.Bindings["espn_status"])
}

func TestServeProtectedResource_MCPPath(t *testing.T) {
	cfg := config.Gateway{
		MCPPath:            "/mcp",
		FantasyMCPPath:     "/fantasy/mcp",
		ExternalBaseURL:    "https://mcp.flaim.app",
		AuthServiceBaseURL: "https://auth.flaim.internal",
	}
	handler := ServeProtectedResource(cfg, false)
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/.well-known/oauth-protected-resource", nil))

	var doc protectedResourceDoc
	require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
	assert.Equal(t, "https://mcp.flaim.app/mcp", doc.Resource)
	assert.Contains(t, doc.ScopesSupported, "mcp:read")
}

func TestServeProtectedResource_FantasyPath(t *testing.T) {
	cfg := config.Gateway{
		MCPPath:         "/mcp",
		FantasyMCPPath:  "/fantasy/mcp",
		ExternalBaseURL: "https://mcp.flaim.app",
	}
	handler := ServeProtectedResource(cfg, true)
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/fantasy/.well-known/oauth-protected-resource", nil))

	var doc protectedResourceDoc
	require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
	assert.Equal(t, "https://mcp.flaim.app/fantasy/mcp", doc.Resource)
}

func TestServeAuthServerProxy_ForwardsToAuthService(t *testing.T) {
	var gotPath string
	authSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"issuer":"https://auth.flaim.internal"}`))
	}))
	defer authSrv.Close()

	handler := ServeAuthServerProxy(authSrv.URL, http.DefaultClient)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/mcp/.well-known/oauth-authorization-server", nil)
	handler(w, req)

	assert.Equal(t, "/.well-known/oauth-authorization-server", gotPath)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "auth.flaim.internal")
}

func TestServeOpenAIChallenge_EmptyTokenIs404(t *testing.T) {
	handler := ServeOpenAIChallenge("")
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/.well-known/openai-apps-challenge", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeOpenAIChallenge_ReturnsToken(t *testing.T) {
	handler := ServeOpenAIChallenge("verify-me")
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/.well-known/openai-apps-challenge", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "verify-me", w.Body.String())
}

func TestServeRedirectToSite_Redirects(t *testing.T) {
	handler := ServeRedirectToSite("https://flaim.app/", "/favicon.ico")
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://flaim.app/favicon.ico", w.Header().Get("Location"))
}

func TestMethodNotAllowedPOST(t *testing.T) {
	handler := MethodNotAllowedPOST()
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/mcp", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "POST", w.Header().Get("Allow"))
}
