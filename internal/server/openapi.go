package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/stadtaev/sixdegrees/internal/game"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Six Degrees API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the six-degrees connections trivia game.")

	// POST /api/games
	postGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	postGame.SetSummary("Start a new game")
	postGame.SetDescription("Creates a game session. Send X-Player-ID to resume an identity; a fresh one is minted otherwise and echoed back.")
	postGame.AddRespStructure(NewGameResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(postGame)

	// GET /api/games/{gameID}/question
	getQuestion, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/question")
	getQuestion.SetSummary("Get the current question")
	getQuestion.SetDescription("Returns the pending question, generating one if needed. Asking again repeats the same question. When no further question can be built the game finishes and the summary is returned instead.")
	getQuestion.AddRespStructure(QuestionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(getQuestion)

	// POST /api/games/{gameID}/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/answer")
	postAnswer.SetSummary("Submit an answer")
	postAnswer.SetDescription("Checks the answer against the pending question. Matching is case- and punctuation-insensitive. A wrong answer ends the game.")
	postAnswer.AddReqStructure(AnswerRequest{})
	postAnswer.AddRespStructure(game.AnswerView{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postAnswer)

	// POST /api/games/{gameID}/interrupt
	postInterrupt, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/interrupt")
	postInterrupt.SetSummary("Stop a game")
	postInterrupt.SetDescription("Force-finishes a running game and returns its summary.")
	postInterrupt.AddRespStructure(game.GameSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	postInterrupt.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postInterrupt)

	// GET /api/games/{gameID}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}")
	getGame.SetSummary("Get game details")
	getGame.AddRespStructure(game.Session{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	// GET /api/games/{gameID}/exists
	getExists, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/exists")
	getExists.SetSummary("Check whether a game can continue")
	getExists.AddRespStructure(ExistsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getExists)

	// GET /api/stats
	getStats, _ := r.NewOperationContext(http.MethodGet, "/api/stats")
	getStats.SetSummary("Global game statistics")
	getStats.AddRespStructure(StatsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getStats)

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.AddRespStructure(map[string]struct {
		Status string `json:"status"`
	}{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHealthz)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	data, err := json.Marshal(newOpenAPISpec())

	return func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(data)
	}
}
