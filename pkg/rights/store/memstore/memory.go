package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/hellofriends/rights-engine/pkg/rights/store"
)

// Store is an in-memory implementation of store.Store. It backs tests and
// deployments that don't need persistence across restarts.
type Store struct {
	mu           sync.RWMutex
	uploads      map[string]store.Upload
	interactions []store.Interaction
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		uploads: make(map[string]store.Upload),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// RecordUpload inserts or refreshes an upload record, keyed by path.
func (s *Store) RecordUpload(_ context.Context, u store.Upload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.Path == "" {
		return nil
	}
	s.uploads[u.Path] = u
	return nil
}

// ListUploads returns all uploads ordered by path.
func (s *Store) ListUploads(_ context.Context) ([]store.Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Upload, 0, len(s.uploads))
	for _, u := range s.uploads {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// CountUploads returns the number of registered uploads.
func (s *Store) CountUploads(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.uploads)), nil
}

// RecordInteraction appends one interaction event.
func (s *Store) RecordInteraction(_ context.Context, it store.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = append(s.interactions, it)
	return nil
}

// CountInteractions returns the number of recorded interactions.
func (s *Store) CountInteractions(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.interactions)), nil
}

// RecentInteractions returns up to limit interactions, newest first.
func (s *Store) RecentInteractions(_ context.Context, limit int) ([]store.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.interactions) {
		limit = len(s.interactions)
	}
	out := make([]store.Interaction, 0, limit)
	for i := len(s.interactions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.interactions[i])
	}
	return out, nil
}
