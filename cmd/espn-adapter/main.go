// Command espn-adapter runs the ESPN platform adapter: POST /execute
// dispatches (sport, tool) to per-sport handlers; /onboarding/* fronts the
// historical season discovery engine.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/flaim/fantasy-mcp-gateway/internal/adapter"
	"github.com/flaim/fantasy-mcp-gateway/internal/authclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/config"
	"github.com/flaim/fantasy-mcp-gateway/internal/discovery"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnhandlers/baseball"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnhandlers/basketball"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnhandlers/football"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnhandlers/hockey"
	"github.com/flaim/fantasy-mcp-gateway/internal/idmap"
	"github.com/flaim/fantasy-mcp-gateway/internal/obs"
	"github.com/flaim/fantasy-mcp-gateway/internal/playercache"
)

func main() {
	cfg, err := config.LoadAdapter(os.Args[1:])
	if err != nil {
		log.Fatalf("espn-adapter: failed to load config: %v", err)
	}

	logger, err := obs.NewLogger(os.Getenv("FLAIM_ENV") == "development")
	if err != nil {
		log.Fatalf("espn-adapter: failed to build logger: %v", err)
	}
	defer logger.Sync()

	auth := authclient.New(cfg.AuthServiceBaseURL, cfg.UpstreamTimeout)
	espn := espnclient.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	cache := playercache.New(cfg.PlayerCacheTTL)

	footballDeps := football.NewDeps(auth, espn, cache, logger)
	baseballDeps := baseball.NewDeps(auth, espn, cache, logger)
	basketballDeps := basketball.NewDeps(auth, espn, cache, logger)
	hockeyDeps := hockey.NewDeps(auth, espn, cache, logger)

	for _, sc := range []struct {
		sport  string
		tables idmap.Tables
	}{
		{"football", footballDeps.Tables},
		{"baseball", baseballDeps.Tables},
		{"basketball", basketballDeps.Tables},
		{"hockey", hockeyDeps.Tables},
	} {
		if err := sc.tables.SelfCheck(sc.sport, logger); err != nil {
			logger.Fatal("espn-adapter: id-map self-check failed", zap.String("sport", sc.sport), zap.Error(err))
		}
	}

	disc := discovery.New(auth, logger, cfg.Discovery)
	router := adapter.New(logger, footballDeps, baseballDeps, basketballDeps, hockeyDeps, disc)

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"espn-adapter"}`))
	})
	r.Post("/execute", router.ServeExecute)
	r.Route("/onboarding", func(r chi.Router) {
		r.Post("/initialize", router.ServeInitialize)
		r.Post("/discover-seasons", router.ServeDiscoverSeasons)
	})

	logger.Info("espn-adapter: listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		logger.Fatal("espn-adapter: server exited", zap.Error(err))
	}
}
