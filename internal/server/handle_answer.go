package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stadtaev/sixdegrees/internal/game"
)

type AnswerRequest struct {
	Answer string `json:"answer"`
}

func handleAnswer(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Answer = strings.TrimSpace(req.Answer)
		if req.Answer == "" {
			writeError(w, http.StatusBadRequest, "answer is required")
			return
		}

		view, err := eng.Answer(r.Context(), chi.URLParam(r, "gameID"), req.Answer)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
