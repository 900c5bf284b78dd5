package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServer builds the go-sdk MCP server and registers the static tool
// registry on it.
func NewMCPServer(name, version string, deps *Deps) (*mcp.Server, []ToolMeta) {
	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)
	registry := RegisterTools(server, deps)
	return server, registry
}

// NewMCPHandler wraps the go-sdk streamable HTTP handler with:
//   - content negotiation: an Accept header missing both application/json
//     and text/event-stream is rewritten to carry both;
//   - a tools/list rewrite that attaches title/annotations/_meta.securitySchemes
//     per registry entry, since those aren't expressed by mcp.AddTool's
//     minimal Name/Description registration.
func NewMCPHandler(server *mcp.Server, registry []ToolMeta) http.Handler {
	base := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server { return server }, &mcp.StreamableHTTPOptions{Stateless: true})
	byName := make(map[string]ToolMeta, len(registry))
	for _, t := range registry {
		byName[t.Name] = t
	}
	return &mcpTransport{base: base, registry: byName}
}

type mcpTransport struct {
	base     http.Handler
	registry map[string]ToolMeta
}

func (t *mcpTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		t.base.ServeHTTP(w, r)
		return
	}

	negotiateAccept(r)

	bodyBytes, err := io.ReadAll(r.Body)
	if err == nil {
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	}

	var peek struct {
		Method string `json:"method"`
	}
	_ = json.Unmarshal(bodyBytes, &peek)
	if peek.Method != "tools/list" {
		t.base.ServeHTTP(w, r)
		return
	}

	capture := newResponseCapture()
	t.base.ServeHTTP(capture, r)
	t.rewriteToolsList(w, capture)
}

// negotiateAccept ensures the request advertises both framings the MCP
// transport supports, so a client that only asked for one still gets a
// response it understands.
func negotiateAccept(r *http.Request) {
	accept := r.Header.Get("Accept")
	hasJSON := strings.Contains(accept, "application/json")
	hasSSE := strings.Contains(accept, "text/event-stream")
	if hasJSON && hasSSE {
		return
	}
	r.Header.Set("Accept", "application/json, text/event-stream")
}

// rewriteToolsList attaches annotations and _meta.securitySchemes to each
// tool entry in a captured tools/list response before forwarding it to
// the real client, preserving whatever JSON/SSE framing the base handler
// chose.
func (t *mcpTransport) rewriteToolsList(w http.ResponseWriter, capture *responseCapture) {
	raw := capture.body.Bytes()
	wasSSE := sseFramed(raw)
	jsonBody := raw
	if wasSSE {
		if extracted := extractJSONFromSSE(raw); extracted != nil {
			jsonBody = extracted
		}
	}

	var envelope struct {
		JSONRPC string `json:"jsonrpc"`
		ID      any    `json:"id"`
		Result  struct {
			Tools      []map[string]any `json:"tools"`
			NextCursor string           `json:"nextCursor,omitempty"`
		} `json:"result"`
		Error any `json:"error,omitempty"`
	}
	if err := json.Unmarshal(jsonBody, &envelope); err != nil {
		t.forward(w, capture, raw)
		return
	}

	for _, tool := range envelope.Result.Tools {
		name, _ := tool["name"].(string)
		meta, ok := t.registry[name]
		if !ok {
			continue
		}
		tool["title"] = meta.Title
		tool["annotations"] = map[string]any{
			"readOnlyHint":    true,
			"destructiveHint": false,
			"idempotentHint":  true,
			"openWorldHint":   true,
		}
		tool["_meta"] = map[string]any{
			"securitySchemes": []map[string]any{
				{"type": "oauth2", "scopes": []string{meta.RequiredScope}},
			},
		}
	}

	rewritten, err := json.Marshal(envelope)
	if err != nil {
		t.forward(w, capture, raw)
		return
	}
	if wasSSE {
		rewritten = reframeAsSSE(rewritten)
	}
	t.forward(w, capture, rewritten)
}

func (t *mcpTransport) forward(w http.ResponseWriter, capture *responseCapture, body []byte) {
	for k, v := range capture.header {
		w.Header()[k] = v
	}
	w.Header().Del("Content-Length")
	if capture.statusCode == 0 {
		capture.statusCode = http.StatusOK
	}
	w.WriteHeader(capture.statusCode)
	_, _ = w.Write(body)
}
