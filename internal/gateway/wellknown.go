package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flaim/fantasy-mcp-gateway/internal/config"
)

// HealthStatus is the GET /health payload.
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Bindings  map[string]string `json:"bindings"`
}

// ServeHealth answers GET /health. Bindings reports each wired adapter's
// own /health check so a degraded adapter surfaces here too.
func ServeHealth(version string, adapterBaseURLs map[string]string, client *http.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bindings := make(map[string]string, len(adapterBaseURLs))
		degraded := false
		for platform, base := range adapterBaseURLs {
			status := "ok"
			resp, err := client.Get(base + "/health")
			if err != nil || resp.StatusCode != http.StatusOK {
				status = "unreachable"
				degraded = true
			}
			if resp != nil {
				_ = resp.Body.Close()
			}
			bindings[platform+"_status"] = status
		}

		out := HealthStatus{
			Status:    "ok",
			Service:   "fantasy-mcp-gateway",
			Version:   version,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Bindings:  bindings,
		}
		w.Header().Set("Content-Type", "application/json")
		if degraded {
			out.Status = "degraded"
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

// protectedResourceDoc is the RFC 9728 document shape.
type protectedResourceDoc struct {
	Resource              string   `json:"resource"`
	AuthorizationServers  []string `json:"authorization_servers"`
	BearerMethodsSupported []string `json:"bearer_methods_supported"`
	ScopesSupported       []string `json:"scopes_supported"`
}

// ServeProtectedResource answers GET /.well-known/oauth-protected-resource
// and its /fantasy/ sibling.
func ServeProtectedResource(cfg config.Gateway, fantasy bool) http.HandlerFunc {
	path := cfg.MCPPath
	if fantasy {
		path = cfg.FantasyMCPPath
	}
	doc := protectedResourceDoc{
		Resource:               strings.TrimRight(cfg.ExternalBaseURL, "/") + path,
		AuthorizationServers:   []string{cfg.AuthServiceBaseURL},
		BearerMethodsSupported: []string{"header"},
		ScopesSupported:        []string{"mcp:read", "mcp:write"},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// ServeAuthServerProxy proxies GET <prefix>/.well-known/oauth-authorization-server[/*]
// to the external auth service's identical path.
func ServeAuthServerProxy(authServiceBaseURL string, client *http.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx := strings.Index(r.URL.Path, "/.well-known/oauth-authorization-server")
		suffix := r.URL.Path
		if idx >= 0 {
			suffix = r.URL.Path[idx:]
		}
		upstream := authServiceBaseURL + suffix
		if r.URL.RawQuery != "" {
			upstream += "?" + r.URL.RawQuery
		}

		resp, err := client.Get(upstream)
		if err != nil {
			http.Error(w, "auth service unreachable", http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()

		for k, vs := range resp.Header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = io.Copy(w, resp.Body)
	}
}

// ServeOpenAIChallenge answers GET /.well-known/openai-apps-challenge with
// the configured verification token, when one is set.
func ServeOpenAIChallenge(token string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token == "" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(token))
	}
}

// ServeRedirectToSite 302s favicon/apple-icon requests to the public site.
func ServeRedirectToSite(publicSiteURL, assetPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, strings.TrimRight(publicSiteURL, "/")+assetPath, http.StatusFound)
	}
}

// MethodNotAllowedPOST answers a GET on a POST-only MCP path with 405 and
// Allow: POST.
func MethodNotAllowedPOST() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
