package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stadtaev/sixdegrees/internal/metrics"
)

// Options are the per-session tuning knobs, fixed at session creation.
type Options struct {
	Variant          Variant
	DistanceOfWrong1 int
	DistanceOfWrong2 int
	MaxCandidates    int
	FirstFewMax      int
}

// Engine drives game sessions: it owns no state of its own, loading every
// session from the store and writing it back after each operation.
type Engine struct {
	store  Store
	graph  GraphService
	denied []string
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// NewEngine wires the engine to its collaborators. denied is the static
// policy list applied to every new session's pool.
func NewEngine(store Store, graph GraphService, denied []string, opts Options, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		graph:  graph,
		denied: denied,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// QuestionView is the in-progress question payload for front ends. It
// deliberately omits which option is correct.
type QuestionView struct {
	Seed               string   `json:"seed"`
	Options            []string `json:"options"`
	IntervalDays       int      `json:"intervalDays"`
	QuestionNum        int      `json:"questionNum"`
	GlobalHighestScore int      `json:"globalHighestScore"`
}

// GameSummary is the end-of-game payload. LimitReached distinguishes
// running out of candidates from answering wrongly.
type GameSummary struct {
	LimitReached              bool       `json:"limitReached"`
	Score                     int        `json:"score"`
	History                   []Question `json:"history"`
	AchievedHighestScore      bool       `json:"achievedHighestScore"`
	AchievedHighestScoreFirst bool       `json:"achievedHighestScoreFirst"`
	GlobalHighestScore        int        `json:"globalHighestScore"`
}

// AnswerView reports the outcome of one submitted answer. Summary is set
// only when the submission ended the game.
type AnswerView struct {
	Correct   bool            `json:"correct"`
	Score     int             `json:"score"`
	Expected  string          `json:"expected"`
	Seed      string          `json:"seed"`
	Submitted string          `json:"submitted"`
	Evidence  json.RawMessage `json:"evidence,omitempty"`
	History   []Question      `json:"history"`
	Summary   *GameSummary    `json:"summary,omitempty"`
}

// NewGame creates and persists a session for player, seeding its candidate
// pool from the graph service. It returns the new game's ID.
func (e *Engine) NewGame(ctx context.Context, player string) (string, error) {
	if player == "" {
		return "", fmt.Errorf("%w: missing player id", ErrInvalidInput)
	}

	s := NewSession(uuid.NewString(), player, e.opts, e.denied)

	if _, err := e.store.UpdateStats(ctx, func(st *Stats) { st.Counts.Created++ }); err != nil {
		return "", fmt.Errorf("%w: counting created game: %v", ErrUpstream, err)
	}

	candidates, err := e.graph.TopCandidates(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: fetching candidates: %v", ErrUpstream, err)
	}
	s.Pool.Seed(candidates, s.MaxCandidates)

	summary, err := e.graph.Summary(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: fetching graph summary: %v", ErrUpstream, err)
	}
	s.IntervalDays = summary.CoverageHours / 24

	if err := e.store.WriteGame(ctx, s); err != nil {
		return "", fmt.Errorf("%w: storing new game: %v", ErrUpstream, err)
	}

	metrics.GamesCreated.Inc()
	e.logger.Info("game created", "game", s.ID, "player", player, "candidates", s.Pool.Len())
	return s.ID, nil
}

// Question returns the session's pending question, generating one if none
// is set. When the pool cannot yield another question the session finishes
// and the summary is returned instead.
func (e *Engine) Question(ctx context.Context, gameID string) (*QuestionView, *GameSummary, error) {
	s, err := e.readGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	if s.State == StateFinished {
		return nil, nil, ErrGameOver
	}
	if s.State == StateNew {
		s.State = StateCurrent
	}

	// Idempotent re-read: asking again (e.g. "repeat") returns the pending
	// question unchanged.
	if s.Current != nil {
		st, err := e.store.ReadStats(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: reading stats: %v", ErrUpstream, err)
		}
		return e.questionView(s, st), nil, nil
	}

	q, err := nextQuestion(ctx, e.graph, s, e.logger)
	if err != nil {
		return nil, nil, err
	}

	if q == nil {
		st, err := e.finish(ctx, s)
		if err != nil {
			return nil, nil, err
		}
		if err := e.store.WriteGame(ctx, s); err != nil {
			return nil, nil, fmt.Errorf("%w: storing finished game: %v", ErrUpstream, err)
		}
		e.logger.Info("game out of candidates", "game", s.ID, "score", s.Score)
		return nil, e.summary(s, st, true), nil
	}

	s.AcceptQuestion(q)
	st, err := e.store.ReadStats(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading stats: %v", ErrUpstream, err)
	}
	if err := e.store.WriteGame(ctx, s); err != nil {
		return nil, nil, fmt.Errorf("%w: storing game: %v", ErrUpstream, err)
	}
	return e.questionView(s, st), nil, nil
}

// Answer checks a submitted answer. A correct answer bumps the score and
// clears the pending question; a wrong one finishes the game. Answering a
// finished session replays its summary without touching the stats.
func (e *Engine) Answer(ctx context.Context, gameID, submitted string) (*AnswerView, error) {
	if submitted == "" {
		return nil, fmt.Errorf("%w: missing answer", ErrInvalidInput)
	}

	s, err := e.readGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if s.Current == nil {
		if s.State == StateFinished {
			return nil, fmt.Errorf("%w: no answer was pending", ErrGameOver)
		}
		return nil, ErrNoQuestion
	}

	view := &AnswerView{
		Score:     s.Score,
		Expected:  s.Current.Answer,
		Seed:      s.Current.Seed,
		Submitted: submitted,
		Evidence:  s.Current.Evidence,
		History:   s.History,
	}
	view.Correct = AnswersMatch(submitted, s.Current.Answer)

	if s.State == StateFinished {
		// Repeated submission after the game ended: echo the stored
		// outcome, reporting to stats exactly once means not here.
		st, err := e.store.ReadStats(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: reading stats: %v", ErrUpstream, err)
		}
		view.Correct = false
		view.Summary = e.summary(s, st, false)
		return view, nil
	}

	if view.Correct {
		s.Score++
		s.ClearQuestion()
		if err := e.store.WriteGame(ctx, s); err != nil {
			return nil, fmt.Errorf("%w: storing game: %v", ErrUpstream, err)
		}
		view.Score = s.Score
		return view, nil
	}

	st, err := e.finish(ctx, s)
	if err != nil {
		return nil, err
	}
	if err := e.store.WriteGame(ctx, s); err != nil {
		return nil, fmt.Errorf("%w: storing finished game: %v", ErrUpstream, err)
	}
	e.logger.Info("game finished", "game", s.ID, "score", s.Score)
	view.Summary = e.summary(s, st, false)
	return view, nil
}

// Interrupt force-finishes a running session, reporting to stats exactly
// as a normal completion. Interrupting a finished session replays its
// summary.
func (e *Engine) Interrupt(ctx context.Context, gameID string) (*GameSummary, error) {
	s, err := e.readGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if s.State == StateFinished {
		st, err := e.store.ReadStats(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: reading stats: %v", ErrUpstream, err)
		}
		return e.summary(s, st, false), nil
	}

	st, err := e.finish(ctx, s)
	if err != nil {
		return nil, err
	}
	if err := e.store.WriteGame(ctx, s); err != nil {
		return nil, fmt.Errorf("%w: storing interrupted game: %v", ErrUpstream, err)
	}
	e.logger.Info("game interrupted", "game", s.ID, "score", s.Score)
	return e.summary(s, st, false), nil
}

// Exists reports whether gameID names a session that can still make
// progress. Absent, corrupt, and finished sessions all count as false.
func (e *Engine) Exists(ctx context.Context, gameID string) (bool, error) {
	if gameID == "" {
		return false, nil
	}
	s, err := e.readGame(ctx, gameID)
	if errors.Is(err, ErrUnknownGame) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.State != StateFinished, nil
}

// Details returns the raw session record.
func (e *Engine) Details(ctx context.Context, gameID string) (*Session, error) {
	return e.readGame(ctx, gameID)
}

// GlobalStats returns the current cross-session stats record.
func (e *Engine) GlobalStats(ctx context.Context) (*Stats, error) {
	st, err := e.store.ReadStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading stats: %v", ErrUpstream, err)
	}
	return st, nil
}

// finish transitions the session to finished and folds its score into the
// global stats. Callers must check the state first; that check is what
// keeps stats reporting exactly-once per session.
func (e *Engine) finish(ctx context.Context, s *Session) (*Stats, error) {
	s.State = StateFinished
	st, err := e.store.UpdateStats(ctx, func(st *Stats) {
		st.recordCompletion(e.now(), s.Score)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: recording completion: %v", ErrUpstream, err)
	}
	s.AchievedHighestScore, s.AchievedHighestScoreFirst = st.achieved(s.Score)

	metrics.GamesFinished.Inc()
	metrics.FinalScores.Observe(float64(s.Score))
	return st, nil
}

// readGame loads a session, counting the rehydration. Corrupt records are
// discarded so the player can start fresh instead of resuming broken
// state.
func (e *Engine) readGame(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing game id", ErrInvalidInput)
	}

	s, err := e.store.ReadGame(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, ErrUnknownGame
	case errors.Is(err, ErrCorruptState):
		e.logger.Warn("discarding corrupt game record", "game", id, "error", err)
		if derr := e.store.DeleteGame(ctx, id); derr != nil {
			e.logger.Error("deleting corrupt game record", "game", id, "error", derr)
		}
		return nil, ErrUnknownGame
	case err != nil:
		return nil, fmt.Errorf("%w: reading game %s: %v", ErrUpstream, id, err)
	}

	if _, err := e.store.UpdateStats(ctx, func(st *Stats) { st.Counts.Cloned++ }); err != nil {
		return nil, fmt.Errorf("%w: counting rehydration: %v", ErrUpstream, err)
	}
	return s, nil
}

func (e *Engine) questionView(s *Session, st *Stats) *QuestionView {
	return &QuestionView{
		Seed:               s.Current.Seed,
		Options:            s.Current.Options,
		IntervalDays:       s.IntervalDays,
		QuestionNum:        s.Score + 1,
		GlobalHighestScore: st.MaxScore,
	}
}

func (e *Engine) summary(s *Session, st *Stats, limitReached bool) *GameSummary {
	return &GameSummary{
		LimitReached:              limitReached,
		Score:                     s.Score,
		History:                   s.History,
		AchievedHighestScore:      s.AchievedHighestScore,
		AchievedHighestScoreFirst: s.AchievedHighestScoreFirst,
		GlobalHighestScore:        st.MaxScore,
	}
}
