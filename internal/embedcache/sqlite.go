// internal/embedcache/sqlite.go
//
// SQLite backend (EMBED_CACHE=sqlite) on the database opened by main.

package embedcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLite stores vectors in the embeddings table:
//
//	CREATE TABLE embeddings (key TEXT PRIMARY KEY, vec BLOB NOT NULL, created_at TEXT NOT NULL)
//
// The table is created by the server's migrations.
type SQLite struct {
	db *sql.DB
}

// NewSQLite returns a Cache backed by db.
func NewSQLite(db *sql.DB) *SQLite { return &SQLite{db: db} }

func (s *SQLite) Get(ctx context.Context, key string) ([]float32, bool, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT vec FROM embeddings WHERE key=?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("embedcache: sqlite get: %w", err)
	}
	v, err := Decode(blob)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *SQLite) Set(ctx context.Context, key string, vec []float32) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO embeddings (key, vec, created_at) VALUES (?,?,?)
		 ON CONFLICT(key) DO UPDATE SET vec=excluded.vec`,
		key, Encode(vec), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("embedcache: sqlite set: %w", err)
	}
	return nil
}
