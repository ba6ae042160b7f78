package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stadtaev/sixdegrees/internal/game"
)

// QuestionResponse carries either the next question or, when the game
// just ran out of candidates, the end-of-game summary.
type QuestionResponse struct {
	Question *game.QuestionView `json:"question,omitempty"`
	Summary  *game.GameSummary  `json:"summary,omitempty"`
}

func handleQuestion(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		question, summary, err := eng.Question(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, QuestionResponse{Question: question, Summary: summary})
	}
}
