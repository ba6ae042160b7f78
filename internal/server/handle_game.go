package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stadtaev/sixdegrees/internal/game"
)

type NewGameResponse struct {
	GameID   string `json:"gameID"`
	PlayerID string `json:"playerID"`
}

func handleNewGame(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := playerFrom(r)

		gameID, err := eng.NewGame(r.Context(), playerID)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, NewGameResponse{
			GameID:   gameID,
			PlayerID: playerID,
		})
	}
}

func handleGameDetails(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := eng.Details(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

func handleGameExists(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exists, err := eng.Exists(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ExistsResponse{Exists: exists})
	}
}
