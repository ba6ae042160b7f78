package game

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// State is the session lifecycle stage. new moves to current implicitly on
// the first question read; finished is terminal.
type State string

const (
	StateNew      State = "new"
	StateCurrent  State = "current"
	StateFinished State = "finished"
)

// sessionVersion is bumped whenever the persisted shape changes in a way
// old records cannot satisfy.
const sessionVersion = 1

// Session is the full per-player game state. Everything here is persisted
// between requests; nothing about a session lives in process memory.
type Session struct {
	ID     string `json:"id"`
	Player string `json:"player"`
	State  State  `json:"state"`
	Score  int    `json:"score"`

	Variant          Variant `json:"variant"`
	MaxCandidates    int     `json:"maxCandidates"`
	FirstFewMax      int     `json:"firstFewMax"`
	DistanceOfWrong1 int     `json:"distanceOfWrong1"`
	DistanceOfWrong2 int     `json:"distanceOfWrong2"`

	// IntervalDays is how many days of source material the graph covered
	// when the session was created.
	IntervalDays int `json:"intervalDays"`

	Pool    *Pool      `json:"pool"`
	History []Question `json:"history"`

	// Current is the pending question, nil when none is set.
	Current *Question `json:"current,omitempty"`

	// Set when the session finishes, from the global stats at that moment.
	AchievedHighestScore      bool `json:"achievedHighestScore"`
	AchievedHighestScoreFirst bool `json:"achievedHighestScoreFirst"`
}

// NewSession creates an empty session for player. Policy-denied names are
// applied to the pool before any graph candidates arrive.
func NewSession(id, player string, opts Options, denied []string) *Session {
	s := &Session{
		ID:               id,
		Player:           player,
		State:            StateNew,
		Variant:          opts.Variant,
		MaxCandidates:    opts.MaxCandidates,
		FirstFewMax:      opts.FirstFewMax,
		DistanceOfWrong1: opts.DistanceOfWrong1,
		DistanceOfWrong2: opts.DistanceOfWrong2,
		Pool:             NewPool(),
	}
	for _, name := range denied {
		s.Pool.Deny(name)
	}
	return s
}

// AcceptQuestion appends q to the history and marks it pending. The seed
// is spent either way; under the kill-answer variant the correct answer is
// spent too.
func (s *Session) AcceptQuestion(q *Question) {
	s.History = append(s.History, *q)
	s.Current = q
	s.Pool.Deny(q.Seed)
	if s.Variant.killsAnswer() {
		s.Pool.Deny(q.Answer)
	}
}

func (s *Session) ClearQuestion() {
	s.Current = nil
}

// AnswersMatch compares a submitted answer against the expected one,
// ignoring case and punctuation, so "jean-paul." matches "Jean Paul".
func AnswersMatch(submitted, expected string) bool {
	return normalizeAnswer(submitted) == normalizeAnswer(expected)
}

func normalizeAnswer(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r == '-':
			b.WriteRune(' ')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// sessionEnvelope is the persisted wrapper. The version field lets decode
// reject records written by incompatible code instead of best-effort
// loading a partial session.
type sessionEnvelope struct {
	Version int      `json:"version"`
	Game    *Session `json:"game"`
}

func EncodeSession(s *Session) ([]byte, error) {
	return json.Marshal(sessionEnvelope{Version: sessionVersion, Game: s})
}

// DecodeSession parses and validates a persisted session. Records that do
// not satisfy their declared lifecycle stage come back as ErrCorruptState
// and should be discarded, never operated on.
func DecodeSession(data []byte) (*Session, error) {
	var env sessionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if env.Version != sessionVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptState, env.Version)
	}
	s := env.Game
	if s == nil {
		return nil, fmt.Errorf("%w: empty record", ErrCorruptState)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return s, nil
}

func (s *Session) validate() error {
	if s.ID == "" || s.Player == "" {
		return fmt.Errorf("missing identifiers")
	}
	switch s.State {
	case StateNew, StateCurrent, StateFinished:
	default:
		return fmt.Errorf("unknown state %q", s.State)
	}
	if _, err := ParseVariant(string(s.Variant)); err != nil {
		return err
	}
	if s.Pool == nil {
		return fmt.Errorf("missing candidate pool")
	}
	if s.Current != nil {
		if s.Current.Seed == "" || s.Current.Answer == "" || len(s.Current.Options) != 3 {
			return fmt.Errorf("pending question is incomplete")
		}
	}
	return nil
}
