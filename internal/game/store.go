package game

import "context"

// Store is the persistence surface the engine depends on. Implementations
// must return ErrNotFound for absent records and are expected to fail
// loudly: a failed write is never treated as committed.
type Store interface {
	// ReadGame loads and decodes a session. Undecodable records surface as
	// ErrCorruptState.
	ReadGame(ctx context.Context, id string) (*Session, error)

	WriteGame(ctx context.Context, s *Session) error

	DeleteGame(ctx context.Context, id string) error

	// ReadStats returns the current global stats record, or a fresh one if
	// none has been written yet.
	ReadStats(ctx context.Context) (*Stats, error)

	// UpdateStats applies fn to the stats record atomically with respect
	// to other callers, so concurrent completions cannot lose an update.
	// It returns the record as written.
	UpdateStats(ctx context.Context, fn func(*Stats)) (*Stats, error)
}
