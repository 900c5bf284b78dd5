package gateway

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

func toolResultFrom(result model.AdapterResult) *mcp.CallToolResult {
	if result.Success {
		return toolJSONBytes(mustMarshal(map[string]any{"success": true, "data": result.Data}))
	}
	return toolErrorText(result.Code + ": " + result.Error)
}

func toolJSONBytes(b []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}
}

func toolErrorText(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
	}
}

// insufficientScopeResult builds the in-band scope-insufficiency payload:
// an isError result whose JSON body carries a _meta["mcp/www_authenticate"]
// pointer the caller can use to re-auth, since the failure happens mid
// tools/call rather than at the transport gate.
func insufficientScopeResult(toolName, requiredScope, resourceMetadataURL string) *mcp.CallToolResult {
	body := map[string]any{
		"error":          "insufficient_scope",
		"tool":           toolName,
		"required_scope": requiredScope,
		"_meta": map[string]any{
			"mcp/www_authenticate": `Bearer resource_metadata="` + resourceMetadataURL + `"`,
		},
	}
	return toolErrorText(string(mustMarshal(body)))
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"success":false,"error":"failed to encode tool result","code":"INTERNAL_ERROR"}`)
	}
	return b
}

type toolErr struct{ code, message string }

func (e toolErr) Error() string { return e.code + ": " + e.message }
