package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/swaggest/swgui/v5emb"

	"github.com/stadtaev/sixdegrees/internal/game"
)

func addRoutes(r chi.Router, logger *slog.Logger, eng *game.Engine, db *sql.DB, rdb *redis.Client) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Six Degrees API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db, rdb))
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/api/games", func(r chi.Router) {
		r.With(playerIdentity).Post("/", handleNewGame(eng))
		r.Get("/{gameID}", handleGameDetails(eng))
		r.Get("/{gameID}/exists", handleGameExists(eng))
		r.Head("/{gameID}/exists", handleGameExists(eng))
		r.Get("/{gameID}/question", handleQuestion(eng))
		r.Post("/{gameID}/answer", handleAnswer(eng))
		r.Post("/{gameID}/interrupt", handleInterrupt(eng))
	})

	r.Get("/api/stats", handleStats(eng))
}
