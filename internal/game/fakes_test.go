package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// fakeGraph serves canned distance buckets per seed. Seeds without an
// entry get no buckets, which the generator treats as unusable.
type fakeGraph struct {
	buckets    map[string][]DistanceBucket
	candidates []Candidate
	summary    GraphSummary
	evidence   json.RawMessage

	distErr     map[string]error
	evidenceErr error

	distCalls []string
}

func (f *fakeGraph) DistancesFrom(_ context.Context, seed string) ([]DistanceBucket, error) {
	f.distCalls = append(f.distCalls, seed)
	if err := f.distErr[seed]; err != nil {
		return nil, err
	}
	return f.buckets[seed], nil
}

func (f *fakeGraph) EvidenceBetween(_ context.Context, a, b string) (json.RawMessage, error) {
	if f.evidenceErr != nil {
		return nil, f.evidenceErr
	}
	if f.evidence != nil {
		return f.evidence, nil
	}
	return json.RawMessage(fmt.Sprintf(`[{"link":"%s-%s"}]`, a, b)), nil
}

func (f *fakeGraph) TopCandidates(_ context.Context) ([]Candidate, error) {
	return f.candidates, nil
}

func (f *fakeGraph) Summary(_ context.Context) (GraphSummary, error) {
	return f.summary, nil
}

// memStore keeps sessions as encoded blobs, so reads exercise the same
// decode/validate path the SQLite store uses.
type memStore struct {
	games map[string][]byte
	stats []byte

	resetAfter time.Duration
	writeErr   error
}

func newMemStore() *memStore {
	return &memStore{games: make(map[string][]byte), resetAfter: 24 * time.Hour}
}

func (m *memStore) ReadGame(_ context.Context, id string) (*Session, error) {
	data, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return DecodeSession(data)
}

func (m *memStore) WriteGame(_ context.Context, s *Session) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	data, err := EncodeSession(s)
	if err != nil {
		return err
	}
	m.games[s.ID] = data
	return nil
}

func (m *memStore) DeleteGame(_ context.Context, id string) error {
	delete(m.games, id)
	return nil
}

func (m *memStore) ReadStats(context.Context) (*Stats, error) {
	if m.stats == nil {
		return NewStats(m.resetAfter), nil
	}
	var st Stats
	if err := json.Unmarshal(m.stats, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (m *memStore) UpdateStats(ctx context.Context, fn func(*Stats)) (*Stats, error) {
	st, err := m.ReadStats(ctx)
	if err != nil {
		return nil, err
	}
	fn(st)
	data, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}
	m.stats = data
	return st, nil
}
