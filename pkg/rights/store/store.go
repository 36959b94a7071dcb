// Package store persists the two things the assistant tracks across
// requests: documents dropped into the uploads directory and per-query
// interaction events for the statistics surface. The knowledge base itself
// is deliberately not stored here; it is immutable in-process state.
package store

import (
	"context"
	"time"
)

// Store is the persistence interface for uploads and interactions.
type Store interface {
	Close() error

	// Uploads
	RecordUpload(ctx context.Context, u Upload) error
	ListUploads(ctx context.Context) ([]Upload, error)
	CountUploads(ctx context.Context) (int64, error)

	// Interactions
	RecordInteraction(ctx context.Context, it Interaction) error
	CountInteractions(ctx context.Context) (int64, error)
	RecentInteractions(ctx context.Context, limit int) ([]Interaction, error)
}

// Upload describes one document registered from the uploads directory.
// The content is never read on the query path; only metadata is kept.
type Upload struct {
	Name       string
	Path       string
	SizeBytes  int64
	Title      string
	UploadedAt time.Time
}

// Interaction records one handled query.
type Interaction struct {
	ID        string // ULID
	Language  string
	Kind      string // render.Kind value
	EntryID   string // empty unless Kind is "match"
	Score     int
	Fallback  bool // translation fallback occurred
	CreatedAt time.Time
}
