package gateway

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected a TextContent entry")
	return tc.Text
}

func TestToolResultFrom_Success(t *testing.T) {
	result := toolResultFrom(model.OK(map[string]string{"league_id": "123"}))
	assert.False(t, result.IsError)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &decoded))
	assert.Equal(t, true, decoded["success"])
}

func TestToolResultFrom_Failure(t *testing.T) {
	result := toolResultFrom(model.Err(model.CodeESPNNotFound, "league not found"))
	assert.True(t, result.IsError)
	assert.Equal(t, "ESPN_NOT_FOUND: league not found", textOf(t, result))
}

func TestInsufficientScopeResult_CarriesWWWAuthenticatePointer(t *testing.T) {
	result := insufficientScopeResult("get_roster", "mcp:read", "https://mcp.flaim.app/.well-known/oauth-protected-resource")
	assert.True(t, result.IsError)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &body))
	assert.Equal(t, "insufficient_scope", body["error"])
	assert.Equal(t, "get_roster", body["tool"])
	meta, ok := body["_meta"].(map[string]any)
	require.True(t, ok, "expected a _meta object")
	assert.Contains(t, meta["mcp/www_authenticate"], "resource_metadata=")
}

func TestScopeAllows_ReadsSpaceSeparatedGrantedScopes(t *testing.T) {
	ctx := WithAuth(context.Background(), "token-123", "mcp:read mcp:write")

	assert.True(t, scopeAllows(ctx, "mcp:read"))
	assert.True(t, scopeAllows(ctx, "mcp:write"))
	assert.False(t, scopeAllows(ctx, "mcp:admin"))
	assert.Equal(t, "token-123", BearerFromContext(ctx))
}

func TestScopeAllows_EmptyContextDeniesEverything(t *testing.T) {
	assert.False(t, scopeAllows(context.Background(), "mcp:read"))
	assert.Empty(t, BearerFromContext(context.Background()))
}
