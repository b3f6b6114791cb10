package store

import (
	"sync"

	"transaction-summary/internal/domain"
)

// DatasetStore holds the dataset currently served to queries.
// It is safe for concurrent use. Replace swaps a single reference, so a reader
// sees either the previous dataset or the new one in full.
type DatasetStore struct {
	mu      sync.RWMutex
	current *domain.Dataset
}

// New creates an empty store. Queries fail until the first Replace.
func New() *DatasetStore {
	return &DatasetStore{}
}

// Replace makes ds the active dataset. The caller must not modify ds afterwards.
func (s *DatasetStore) Replace(ds *domain.Dataset) {
	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()
}

// Current returns the active dataset and whether one has been loaded.
func (s *DatasetStore) Current() (*domain.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// IsLoaded reports whether a dataset has been loaded.
func (s *DatasetStore) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}
