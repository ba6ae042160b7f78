package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stadtaev/sixdegrees/internal/game"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
// UnknownGame is distinct from GameOver so clients know whether to start
// a new game or show the summary.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrUnknownGame):
		writeError(w, http.StatusNotFound, "unknown game")
	case errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, "game is already over")
	case errors.Is(err, game.ErrNoQuestion):
		writeError(w, http.StatusConflict, "no question is pending")
	case errors.Is(err, game.ErrUpstream):
		writeError(w, http.StatusBadGateway, "upstream failure")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
