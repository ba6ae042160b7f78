package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/stadtaev/sixdegrees/internal/metrics"
)

type ctxKey int

const ctxKeyPlayerID ctxKey = iota

// playerIdentity resolves the caller's player ID from the X-Player-ID
// header, minting a fresh UUID for first-time players. The create-game
// response echoes the ID back so clients can persist it.
func playerIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := r.Header.Get("X-Player-ID")
		if playerID == "" {
			playerID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), ctxKeyPlayerID, playerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func playerFrom(r *http.Request) string {
	id, _ := r.Context().Value(ctxKeyPlayerID).(string)
	return id
}

// requestMetrics feeds the Prometheus request counter and latency
// histogram. The chi route pattern is used as the path label so game IDs
// don't explode the label cardinality.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}
