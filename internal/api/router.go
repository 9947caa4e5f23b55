package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aristotle-me/fightmatch/internal/config"
	"github.com/aristotle-me/fightmatch/internal/events"
	"github.com/aristotle-me/fightmatch/internal/matching"
	"github.com/aristotle-me/fightmatch/internal/stats"
	"github.com/aristotle-me/fightmatch/internal/store"
	"github.com/aristotle-me/fightmatch/internal/upstream"
)

func NewRouter(s store.Store, u upstream.Client, p events.Publisher, engine *matching.Engine, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(CORS(cfg.Gateway.AllowedOrigins))
	r.Use(RateLimit(s, RateLimitConfig{
		Window:     cfg.RateWindow(),
		MaxGeneral: cfg.Gateway.RateMaxRequests,
		MaxRecord:  cfg.Gateway.RateRecordMax,
		RecordPath: "/api/stats/record",
	}, logger))

	roster := NewRosterSource(s, u, p, cfg.RosterCacheTTL(), cfg.Upstream.RosterLimit, logger)
	match := NewMatchHandler(roster, engine)
	fightersH := NewFightersHandler(roster, cfg.Upstream.CacheTTLSeconds)
	statsH := NewStatsHandler(stats.NewService(s), p, cfg.Gateway.StatsCacheSeconds)

	r.Route("/api", func(r chi.Router) {
		r.Get("/quiz/questions", match.Questions)
		r.Post("/match", match.Match)
		r.Get("/fighters", fightersH.List)

		r.Post("/stats/record", statsH.Record)
		r.Get("/stats", statsH.Global)
		r.Get("/stats/fighter/{slug}", statsH.Fighter)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
