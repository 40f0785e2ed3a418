// Package store persists encoded frames in SQLite, keyed by depth.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/borepix/borepix"
)

// Frame is one stored scan line: the encoded PNG plus its dimensions and
// bookkeeping timestamps.
type Frame struct {
	Depth     float64
	Width     int
	Height    int
	PNG       []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Meta describes a stored frame without its image payload.
type Meta struct {
	Depth     float64   `json:"depth"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	SizeBytes int       `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrNotFound is returned when no frame exists at the requested depth.
var ErrNotFound = errors.New("store: frame not found")

// Timestamps are stored as unix seconds; SQLite has no native time type and
// integers compare and round-trip cleanly across drivers.
const schema = `
CREATE TABLE IF NOT EXISTS frames (
	depth      REAL PRIMARY KEY,
	width      INTEGER NOT NULL,
	height     INTEGER NOT NULL,
	image_png  BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);`

// Store wraps a SQLite database holding frames. Methods are safe for
// concurrent use; SQLite serializes writers internally.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures the frames table exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	borepix.Logger().Info("frame store opened", slog.String("path", path))
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

const upsertSQL = `
INSERT INTO frames (depth, width, height, image_png, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(depth) DO UPDATE SET
	width      = excluded.width,
	height     = excluded.height,
	image_png  = excluded.image_png,
	updated_at = excluded.updated_at;`

// UpsertBatch writes one chunk of frames in a single transaction.
// Re-ingesting a depth replaces its image and refreshes updated_at while
// preserving the original created_at.
func (s *Store) UpsertBatch(ctx context.Context, frames []Frame) error {
	if len(frames) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		return fmt.Errorf("store: prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Unix()
	for _, f := range frames {
		if _, err := stmt.ExecContext(ctx, f.Depth, f.Width, f.Height, f.PNG, now, now); err != nil {
			return fmt.Errorf("store: upsert depth %g: %w", f.Depth, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	borepix.Logger().Debug("frames upserted", slog.Int("count", len(frames)))
	return nil
}

// Get returns the frame stored at depth, including its PNG payload.
func (s *Store) Get(ctx context.Context, depth float64) (Frame, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT depth, width, height, image_png, created_at, updated_at
		 FROM frames WHERE depth = ?`, depth)

	var f Frame
	var created, updated int64
	if err := row.Scan(&f.Depth, &f.Width, &f.Height, &f.PNG, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Frame{}, ErrNotFound
		}
		return Frame{}, fmt.Errorf("store: get depth %g: %w", depth, err)
	}
	f.CreatedAt = time.Unix(created, 0).UTC()
	f.UpdatedAt = time.Unix(updated, 0).UTC()
	return f, nil
}

// List returns metadata for all frames ordered by depth, without loading
// the image payloads.
func (s *Store) List(ctx context.Context) ([]Meta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT depth, width, height, length(image_png), created_at, updated_at
		 FROM frames ORDER BY depth`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var metas []Meta
	for rows.Next() {
		var m Meta
		var created, updated int64
		if err := rows.Scan(&m.Depth, &m.Width, &m.Height, &m.SizeBytes, &created, &updated); err != nil {
			return nil, fmt.Errorf("store: list scan: %w", err)
		}
		m.CreatedAt = time.Unix(created, 0).UTC()
		m.UpdatedAt = time.Unix(updated, 0).UTC()
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list rows: %w", err)
	}
	return metas, nil
}

// Count returns the number of stored frames.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM frames`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}
