package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stadtaev/sixdegrees/internal/game"
)

func handleInterrupt(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := eng.Interrupt(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
