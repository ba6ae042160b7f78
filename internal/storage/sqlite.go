// Package storage implements game.Store on SQLite. Sessions are stored as
// versioned JSON blobs keyed by game ID; the global stats record lives in
// its own single-row table guarded by a version counter.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stadtaev/sixdegrees/internal/game"
)

type SQLite struct {
	db         *sql.DB
	resetAfter time.Duration
}

// NewSQLite wraps db. resetAfter seeds the high-score reset window on the
// first stats record ever written.
func NewSQLite(db *sql.DB, resetAfter time.Duration) *SQLite {
	return &SQLite{db: db, resetAfter: resetAfter}
}

func (s *SQLite) ReadGame(ctx context.Context, id string) (*game.Session, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM games WHERE id = ?
	`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, game.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return game.DecodeSession(data)
}

func (s *SQLite) WriteGame(ctx context.Context, sess *game.Session) error {
	data, err := game.EncodeSession(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO games (id, player_id, state, data, updated_at)
		VALUES (?, ?, ?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (id) DO UPDATE SET
			state = excluded.state,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, sess.ID, sess.Player, string(sess.State), data)
	return err
}

func (s *SQLite) DeleteGame(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	return err
}

func (s *SQLite) ReadStats(ctx context.Context) (*game.Stats, error) {
	st, _, err := s.readStats(ctx)
	return st, err
}

func (s *SQLite) readStats(ctx context.Context) (*game.Stats, int64, error) {
	var (
		data    []byte
		version int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT data, version FROM game_stats WHERE id = ?
	`, game.StatsID).Scan(&data, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return game.NewStats(s.resetAfter), 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	var st game.Stats
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, 0, fmt.Errorf("decoding stats: %w", err)
	}
	return &st, version, nil
}

// UpdateStats applies fn under optimistic concurrency: the row carries a
// version counter and the write only lands if nobody else got there
// first. Losing the race re-reads and retries, so concurrent completions
// never drop an increment.
func (s *SQLite) UpdateStats(ctx context.Context, fn func(*game.Stats)) (*game.Stats, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		st, version, err := s.readStats(ctx)
		if err != nil {
			return nil, err
		}
		fn(st)

		data, err := json.Marshal(st)
		if err != nil {
			return nil, fmt.Errorf("encoding stats: %w", err)
		}

		if version == 0 {
			_, err := s.db.ExecContext(ctx, `
				INSERT INTO game_stats (id, data, version) VALUES (?, ?, 1)
			`, game.StatsID, data)
			if err == nil {
				return st, nil
			}
			if isConflict(err) {
				continue
			}
			return nil, err
		}

		res, err := s.db.ExecContext(ctx, `
			UPDATE game_stats SET data = ?, version = version + 1
			WHERE id = ? AND version = ?
		`, data, game.StatsID, version)
		if err != nil {
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n == 1 {
			return st, nil
		}
		// Lost the race; somebody updated the row underneath us.
	}
}

func isConflict(err error) bool {
	// libSQL surfaces constraint violations as plain errors; match on the
	// SQLite error text since the driver exposes no typed code.
	return err != nil && strings.Contains(err.Error(), "constraint")
}
