package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/flaim/fantasy-mcp-gateway/internal/authclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/obs"
)

// publicHandshakeMethods are the JSON-RPC methods allowed without
// Authorization (any GET is public too, handled separately).
var publicHandshakeMethods = map[string]bool{
	"initialize":                 true,
	"notifications/initialized":  true,
	"tools/list":                 true,
}

// AuthGate is the C10 Auth/Scope Gate: it peeks the JSON-RPC method out of
// every POST body, lets public handshake requests and all GETs through
// unauthenticated, and otherwise fails closed on anything but a valid,
// scoped bearer token. Generalizes a peek-body-then-restore method guard
// from a method allowlist into an auth decision.
type AuthGate struct {
	Auth            *authclient.Client
	Logger          *zap.Logger
	ExternalBaseURL string
	MCPPath         string
	FantasyMCPPath  string
	Next            http.Handler
}

func (g *AuthGate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		g.Next.ServeHTTP(w, r)
		return
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONRPCError(w, nil, -32700, "failed to read request body")
		return
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var peek struct {
		ID     json.RawMessage `json:"id"`
		Method string          `json:"method"`
	}
	_ = json.Unmarshal(bodyBytes, &peek)

	if publicHandshakeMethods[peek.Method] {
		ctx := WithAuth(r.Context(), "", "")
		g.Next.ServeHTTP(w, r.WithContext(ctx))
		return
	}

	bearer := bearerToken(r)
	resource := g.resourceURL(r.URL.Path)
	if bearer == "" {
		g.deny(w, peek.ID, resource, "authorization required")
		return
	}

	cc := obs.FromContext(r.Context())
	introspectCtx := obs.WithCorrelation(r.Context(), cc)
	result, err := g.Auth.Introspect(introspectCtx, bearer, resource)
	if err != nil || !result.Valid || strings.TrimSpace(result.Scope) == "" {
		if g.Logger != nil {
			g.Logger.Warn("auth gate: introspection failed closed", zap.Error(err), zap.Bool("valid", result.Valid))
		}
		g.deny(w, peek.ID, resource, "invalid or insufficient token")
		return
	}

	ctx := WithAuth(r.Context(), bearer, result.Scope)
	g.Next.ServeHTTP(w, r.WithContext(ctx))
}

func (g *AuthGate) resourceURL(reqPath string) string {
	path := g.MCPPath
	if strings.HasPrefix(reqPath, "/fantasy/") {
		path = g.FantasyMCPPath
	}
	return strings.TrimRight(g.ExternalBaseURL, "/") + path
}

func (g *AuthGate) deny(w http.ResponseWriter, id json.RawMessage, resource, message string) {
	metadataPath := "/.well-known/oauth-protected-resource"
	if strings.HasSuffix(resource, "/fantasy/mcp") {
		metadataPath = "/fantasy/.well-known/oauth-protected-resource"
	}
	metadata := strings.TrimRight(g.ExternalBaseURL, "/") + metadataPath
	w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Bearer resource=%q, resource_metadata=%q`, resource, metadata))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(jsonRPCErrorBody(id, -32001, message))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("bearer "):])
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type jsonRPCErrorResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Error   jsonRPCError    `json:"error"`
}

func jsonRPCErrorBody(id json.RawMessage, code int, message string) jsonRPCErrorResponse {
	if id == nil {
		id = json.RawMessage("null")
	}
	return jsonRPCErrorResponse{JSONRPC: "2.0", ID: id, Error: jsonRPCError{Code: code, Message: message}}
}

func writeJSONRPCError(w http.ResponseWriter, id json.RawMessage, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(jsonRPCErrorBody(id, code, message))
}
