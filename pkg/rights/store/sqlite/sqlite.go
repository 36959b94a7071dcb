package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hellofriends/rights-engine/pkg/rights/store"
)

// sqliteStore implements store.Store on SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database with WAL mode enabled and the
// schema applied.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL improves behavior when the server and a CLI share the file.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS uploads (
	path TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	size_bytes INTEGER NOT NULL DEFAULT 0,
	title TEXT,
	uploaded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS interactions (
	id TEXT PRIMARY KEY,
	language TEXT NOT NULL,
	kind TEXT NOT NULL,
	entry_id TEXT,
	score INTEGER NOT NULL DEFAULT 0,
	fallback INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_interactions_created ON interactions(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// RecordUpload inserts or refreshes an upload record, keyed by path.
func (s *sqliteStore) RecordUpload(ctx context.Context, u store.Upload) error {
	if u.Path == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO uploads (path, name, size_bytes, title, uploaded_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
	name = excluded.name,
	size_bytes = excluded.size_bytes,
	title = excluded.title,
	uploaded_at = excluded.uploaded_at`,
		u.Path, u.Name, u.SizeBytes, u.Title, u.UploadedAt.UTC().Format(time.RFC3339))
	return err
}

// ListUploads returns all uploads ordered by path.
func (s *sqliteStore) ListUploads(ctx context.Context) ([]store.Upload, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT path, name, size_bytes, title, uploaded_at FROM uploads ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Upload
	for rows.Next() {
		var u store.Upload
		var uploadedAt string
		var title sql.NullString
		if err := rows.Scan(&u.Path, &u.Name, &u.SizeBytes, &title, &uploadedAt); err != nil {
			return nil, err
		}
		u.Title = title.String
		u.UploadedAt, _ = time.Parse(time.RFC3339, uploadedAt)
		out = append(out, u)
	}
	return out, rows.Err()
}

// CountUploads returns the number of registered uploads.
func (s *sqliteStore) CountUploads(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM uploads`).Scan(&n)
	return n, err
}

// RecordInteraction appends one interaction event.
func (s *sqliteStore) RecordInteraction(ctx context.Context, it store.Interaction) error {
	fallback := 0
	if it.Fallback {
		fallback = 1
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO interactions (id, language, kind, entry_id, score, fallback, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Language, it.Kind, it.EntryID, it.Score, fallback,
		it.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

// CountInteractions returns the number of recorded interactions.
func (s *sqliteStore) CountInteractions(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&n)
	return n, err
}

// RecentInteractions returns up to limit interactions, newest first.
func (s *sqliteStore) RecentInteractions(ctx context.Context, limit int) ([]store.Interaction, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, language, kind, entry_id, score, fallback, created_at
FROM interactions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Interaction
	for rows.Next() {
		var it store.Interaction
		var entryID sql.NullString
		var fallback int
		var createdAt string
		if err := rows.Scan(&it.ID, &it.Language, &it.Kind, &entryID, &it.Score, &fallback, &createdAt); err != nil {
			return nil, err
		}
		it.EntryID = entryID.String
		it.Fallback = fallback != 0
		it.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, it)
	}
	return out, rows.Err()
}
