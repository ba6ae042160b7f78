package game

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func testOptions() Options {
	return Options{
		Variant:          AnySeedKillAnswer,
		DistanceOfWrong1: 2,
		DistanceOfWrong2: 3,
		MaxCandidates:    -1,
		FirstFewMax:      5,
	}
}

func TestNewSessionAppliesPolicyDenylist(t *testing.T) {
	s := NewSession("g1", "p1", testOptions(), []string{"Blocked Name"})

	s.Pool.Seed([]Candidate{
		{Name: "Blocked Name", Connections: 10},
		{Name: "Alpha", Connections: 9},
	}, -1)

	if s.Pool.IsEligible("Blocked Name") {
		t.Error("policy-denied name must never enter the pool")
	}
	if !s.Pool.IsEligible("Alpha") {
		t.Error("expected Alpha in the pool")
	}
}

func TestAcceptQuestion(t *testing.T) {
	s := NewSession("g1", "p1", testOptions(), nil)
	s.Pool.Seed(testCandidates(), -1)

	q := &Question{
		Seed:         "Alpha",
		Answer:       "Beta",
		WrongAnswers: []string{"Gamma", "Delta"},
		Options:      []string{"Gamma", "Beta", "Delta"},
	}
	s.AcceptQuestion(q)

	if len(s.History) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(s.History))
	}
	if s.Current == nil {
		t.Fatal("expected a pending question")
	}
	if s.Pool.IsEligible("Alpha") {
		t.Error("seed must be denied on accept")
	}
	if s.Pool.IsEligible("Beta") {
		t.Error("kill-answer variant must deny the correct answer")
	}
}

func TestAcceptQuestionKeepsAnswerWithoutKillVariant(t *testing.T) {
	opts := testOptions()
	opts.Variant = AnySeed
	s := NewSession("g1", "p1", opts, nil)
	s.Pool.Seed(testCandidates(), -1)

	s.AcceptQuestion(&Question{
		Seed:    "Alpha",
		Answer:  "Beta",
		Options: []string{"Gamma", "Beta", "Delta"},
	})

	if !s.Pool.IsEligible("Beta") {
		t.Error("any_seed variant must keep the answer eligible")
	}
}

func TestAnswersMatch(t *testing.T) {
	tests := []struct {
		submitted, expected string
		want                bool
	}{
		{"jean-paul.", "Jean Paul", true},
		{"JEAN PAUL", "jean paul", true},
		{"St. John", "st john", true},
		{"Jean Paul", "Jean Pierre", false},
		{"", "", true},
	}
	for _, tt := range tests {
		if got := AnswersMatch(tt.submitted, tt.expected); got != tt.want {
			t.Errorf("AnswersMatch(%q, %q) = %v, want %v", tt.submitted, tt.expected, got, tt.want)
		}
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := NewSession("g1", "p1", testOptions(), []string{"Blocked"})
	s.Pool.Seed(testCandidates(), -1)
	s.State = StateFinished
	s.Score = 3
	s.IntervalDays = 2
	s.AchievedHighestScore = true
	s.History = []Question{
		{Seed: "Alpha", Answer: "Beta", WrongAnswers: []string{"Gamma", "Delta"},
			Options: []string{"Delta", "Beta", "Gamma"}, Evidence: json.RawMessage(`[{"id":"a1"}]`)},
	}

	data, err := EncodeSession(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeSession(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.State != StateFinished || got.Score != 3 {
		t.Errorf("lifecycle fields lost: state=%q score=%d", got.State, got.Score)
	}
	if !reflect.DeepEqual(got.History, s.History) {
		t.Errorf("history lost in round trip:\ngot  %+v\nwant %+v", got.History, s.History)
	}
	if !got.AchievedHighestScore {
		t.Error("achievedHighestScore lost in round trip")
	}
	if got.Pool.Len() != s.Pool.Len() {
		t.Errorf("pool size changed: got %d, want %d", got.Pool.Len(), s.Pool.Len())
	}
}

func TestDecodeSessionCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{{{"},
		{"wrong version", `{"version":99,"game":{"id":"g1","player":"p1","state":"new","variant":"any_seed","pool":{"remaining":null,"denylist":null}}}`},
		{"empty record", `{"version":1}`},
		{"missing player", `{"version":1,"game":{"id":"g1","state":"new","variant":"any_seed","pool":{"remaining":null,"denylist":null}}}`},
		{"bad state", `{"version":1,"game":{"id":"g1","player":"p1","state":"paused","variant":"any_seed","pool":{"remaining":null,"denylist":null}}}`},
		{"pending question missing answer", `{"version":1,"game":{"id":"g1","player":"p1","state":"current","variant":"any_seed","pool":{"remaining":null,"denylist":null},"current":{"seed":"Alpha","options":["a","b","c"]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSession([]byte(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrCorruptState) {
				t.Fatalf("expected ErrCorruptState, got %v", err)
			}
		})
	}
}
