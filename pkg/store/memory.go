package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/nasdeck/nasdeck/pkg/organizer"
	"github.com/nasdeck/nasdeck/pkg/validation"
)

// MemoryStore is an OrganizerStore that keeps snapshots in memory.
type MemoryStore struct {
	mu       sync.Mutex
	data     *organizer.Organizer
	readOnly bool
	revision int
}

// NewMemoryStore returns a store seeded with a copy of initial, which may be nil.
func NewMemoryStore(initial *organizer.Organizer) *MemoryStore {
	s := &MemoryStore{}
	if initial != nil {
		s.data = initial.Clone()
	}
	return s
}

// SetReadOnly toggles read-only mode.
func (s *MemoryStore) SetReadOnly(ro bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readOnly = ro
}

// Load returns a copy of the stored snapshot.
func (s *MemoryStore) Load(ctx context.Context) (*organizer.Organizer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return organizer.New(), nil
	}
	return s.data.Clone(), nil
}

// Save validates o and stores a normalized copy.
func (s *MemoryStore) Save(ctx context.Context, o *organizer.Organizer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return ErrReadOnly
	}
	normalized, result := validation.ValidateOrganizer(o)
	if err := result.Err(); err != nil {
		return fmt.Errorf("saving organizer: %w", err)
	}
	s.data = normalized
	s.revision++
	return nil
}

// Revision counts successful saves.
func (s *MemoryStore) Revision() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

var _ OrganizerStore = (*MemoryStore)(nil)
