// Command gateway runs the federated Fantasy Sports MCP Gateway:
// JSON-RPC transport, auth/scope gate, tool registry, and platform
// fan-out router, with viper/pflag config loading and chi routing.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/flaim/fantasy-mcp-gateway/internal/authclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/config"
	"github.com/flaim/fantasy-mcp-gateway/internal/gateway"
	"github.com/flaim/fantasy-mcp-gateway/internal/obs"
)

const (
	serverName    = "flaim-fantasy-mcp"
	serverVersion = "1.0.0"
)

func main() {
	cfg, err := config.LoadGateway(os.Args[1:])
	if err != nil {
		log.Fatalf("gateway: failed to load config: %v", err)
	}

	logger, err := obs.NewLogger(os.Getenv("FLAIM_ENV") == "development")
	if err != nil {
		log.Fatalf("gateway: failed to build logger: %v", err)
	}
	defer logger.Sync()

	introspectAuth := authclient.New(cfg.AuthServiceBaseURL, cfg.IntrospectTimeout)
	leagueAuth := authclient.New(cfg.AuthServiceBaseURL, cfg.LeagueFetchTimeout)

	router := gateway.NewPlatformRouter(cfg.AdapterBaseURLs, cfg.IntrospectTimeout)
	deps := &gateway.Deps{
		Auth:                leagueAuth,
		Router:              router,
		Logger:              logger,
		ResourceMetadataURL: cfg.ExternalBaseURL + "/.well-known/oauth-protected-resource",
	}

	server, registry := gateway.NewMCPServer(serverName, serverVersion, deps)
	mcpHandler := gateway.NewMCPHandler(server, registry)

	gate := &gateway.AuthGate{
		Auth:            introspectAuth,
		Logger:          logger,
		ExternalBaseURL: cfg.ExternalBaseURL,
		MCPPath:         cfg.MCPPath,
		FantasyMCPPath:  cfg.FantasyMCPPath,
		Next:            mcpHandler,
	}

	httpClient := &http.Client{Timeout: cfg.IntrospectTimeout}

	r := chi.NewRouter()
	r.Get("/health", gateway.ServeHealth(serverVersion, cfg.AdapterBaseURLs, httpClient))

	r.Get("/.well-known/oauth-protected-resource", gateway.ServeProtectedResource(cfg, false))
	r.Get("/fantasy/.well-known/oauth-protected-resource", gateway.ServeProtectedResource(cfg, true))

	authProxy := gateway.ServeAuthServerProxy(cfg.AuthServiceBaseURL, httpClient)
	r.Get("/mcp/.well-known/oauth-authorization-server", authProxy)
	r.Get("/mcp/.well-known/oauth-authorization-server/*", authProxy)
	r.Get("/fantasy/mcp/.well-known/oauth-authorization-server", authProxy)
	r.Get("/fantasy/mcp/.well-known/oauth-authorization-server/*", authProxy)

	r.Method(http.MethodPost, cfg.MCPPath, gate)
	r.Method(http.MethodGet, cfg.MCPPath, gateway.MethodNotAllowedPOST())
	r.Method(http.MethodPost, cfg.FantasyMCPPath, gate)
	r.Method(http.MethodGet, cfg.FantasyMCPPath, gateway.MethodNotAllowedPOST())

	r.Get("/.well-known/openai-apps-challenge", gateway.ServeOpenAIChallenge(cfg.OpenAIChallenge))
	r.Get("/favicon.ico", gateway.ServeRedirectToSite(cfg.PublicSiteURL, "/favicon.ico"))
	r.Get("/apple-icon.png", gateway.ServeRedirectToSite(cfg.PublicSiteURL, "/apple-icon.png"))

	logger.Info("gateway: listening", zap.String("addr", cfg.Addr), zap.Int("tools_registered", len(registry)))
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		logger.Fatal("gateway: server exited", zap.Error(err))
	}
}
