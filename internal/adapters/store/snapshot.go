package store

import (
	"sync"

	"github.com/scorewatch/scorewatch/internal/domain/model"
)

// SnapshotStore holds the previous and current feed observation. Only
// the poll loop writes it; reads come from the HTTP query path, so the
// in-memory state is guarded independently of the document file.
//
// The current list is persisted wholesale on every swap. After a restart
// the persisted list is loaded back as the previous reference, so the
// first tick diffs against the last pre-restart state instead of
// producing a wall of spurious notices.
type SnapshotStore struct {
	mu       sync.RWMutex
	doc      *Document
	previous []model.EventSnapshot
	current  []model.EventSnapshot
}

// NewSnapshotStore creates a snapshot store backed by the given document.
func NewSnapshotStore(doc *Document) *SnapshotStore {
	return &SnapshotStore{doc: doc}
}

// Load restores the last persisted list into the current slot so the
// next swap treats it as the previous observation. An absent document
// leaves both slots empty, which simply produces no diff notices on the
// first tick.
func (s *SnapshotStore) Load() ([]model.EventSnapshot, error) {
	var persisted []model.EventSnapshot
	if err := s.doc.Load(&persisted); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = persisted
	s.mu.Unlock()
	return persisted, nil
}

// Save persists the current list without rotating slots.
func (s *SnapshotStore) Save(list []model.EventSnapshot) error {
	s.mu.Lock()
	s.current = list
	s.mu.Unlock()
	return s.doc.Save(list)
}

// Swap installs the new observation wholesale: the current list becomes
// the previous one and the new list is persisted as current. It returns
// the displaced list so the caller can hold a coherent (old, new) pair.
// A persistence error does not roll back the in-memory rotation; the
// worst case after a crash is an empty previous reference.
func (s *SnapshotStore) Swap(newList []model.EventSnapshot) ([]model.EventSnapshot, error) {
	s.mu.Lock()
	old := s.current
	s.previous = old
	s.current = newList
	s.mu.Unlock()

	if err := s.doc.Save(newList); err != nil {
		return old, err
	}
	return old, nil
}

// Current returns the most recent observation for read-only queries.
func (s *SnapshotStore) Current() []model.EventSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.EventSnapshot, len(s.current))
	copy(out, s.current)
	return out
}

// Previous returns the observation displaced by the last swap.
func (s *SnapshotStore) Previous() []model.EventSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.EventSnapshot, len(s.previous))
	copy(out, s.previous)
	return out
}
