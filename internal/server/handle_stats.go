package server

import (
	"net/http"

	"github.com/stadtaev/sixdegrees/internal/game"
)

type StatsResponse struct {
	Games *game.Stats `json:"games"`
}

func handleStats(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := eng.GlobalStats(r.Context())
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, StatsResponse{Games: st})
	}
}
