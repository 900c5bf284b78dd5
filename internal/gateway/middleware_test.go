package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flaim/fantasy-mcp-gateway/internal/authclient"
)

func newTestGate(t *testing.T, introspect http.HandlerFunc) (*AuthGate, *bool) {
	t.Helper()
	nextCalled := false
	var next http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	var authSrv *httptest.Server
	if introspect != nil {
		authSrv = httptest.NewServer(introspect)
		t.Cleanup(authSrv.Close)
	}

	gate := &AuthGate{
		Auth:            authclient.New("", 0),
		ExternalBaseURL: "https://mcp.flaim.app",
		MCPPath:         "/mcp",
		FantasyMCPPath:  "/fantasy/mcp",
		Next:            next,
	}
	if authSrv != nil {
		gate.Auth.BaseURL = authSrv.URL
	}
	return gate, &nextCalled
}

func doPost(gate *AuthGate, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, req)
	return w
}

func TestAuthGate_GetAlwaysPassesThrough(t *testing.T) {
	gate, called := newTestGate(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	w := httptest.NewRecorder()

	gate.ServeHTTP(w, req)

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthGate_PublicHandshakeMethodsBypassAuth(t *testing.T) {
	gate, called := newTestGate(t, nil)

	w := doPost(gate, "/mcp", `{"jsonrpc":"2.0","id":1,"method":"initialize"}`, "")

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthGate_MissingBearerIsDeniedClosed(t *testing.T) {
	gate, called := newTestGate(t, nil)

	w := doPost(gate, "/mcp", `{"jsonrpc":"2.0","id":1,"method":"tools/call"}`, "")

	assert.False(t, *called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), `resource="https://mcp.flaim.app/mcp"`)
}

func TestAuthGate_InvalidIntrospectionIsDeniedClosed(t *testing.T) {
	gate, called := newTestGate(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(authclient.IntrospectResult{Valid: false})
	})

	w := doPost(gate, "/mcp", `{"jsonrpc":"2.0","id":1,"method":"tools/call"}`, "bad-token")

	assert.False(t, *called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGate_ValidIntrospectionAttachesScopeAndPasses(t *testing.T) {
	gate, called := newTestGate(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(authclient.IntrospectResult{Valid: true, Scope: "mcp:read"})
	})

	w := doPost(gate, "/mcp", `{"jsonrpc":"2.0","id":1,"method":"tools/call"}`, "good-token")

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthGate_FantasyPathAdvertisesFantasyResource(t *testing.T) {
	gate, _ := newTestGate(t, nil)

	w := doPost(gate, "/fantasy/mcp", `{"jsonrpc":"2.0","id":1,"method":"tools/call"}`, "")

	assert.Contains(t, w.Header().Get("WWW-Authenticate"), `resource="https://mcp.flaim.app/fantasy/mcp"`)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "/fantasy/.well-known/oauth-protected-resource")
}
