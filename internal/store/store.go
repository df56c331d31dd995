package store

import (
	"context"
	"sync"
	"time"

	"cue-cards/internal/domain"
	apperrors "cue-cards/internal/errors"
	"cue-cards/internal/logging"
)

// Option configures a Store
type Option func(*Store)

// WithClock sets the time source used by MarkDone and Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store holds the in-memory card document and persists every change through a Backend.
//
// Mutations update local state first and then save the whole document. When a
// save fails the document is reloaded from the backend (discarding the unsaved
// change), the error slot is set and the save error is returned. Concurrent
// clients are not detected: the last saved document wins.
type Store struct {
	backend Backend
	now     func() time.Time

	mu      sync.RWMutex
	data    *domain.AppData
	loading bool
	errMsg  string
}

// New creates a Store with an empty document. Call Load to populate it.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
		data:    domain.EmptyAppData(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Data returns a deep copy of the current document
func (s *Store) Data() *domain.AppData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Now returns the store's current time
func (s *Store) Now() time.Time {
	return s.now()
}

// Loading reports whether a load is in progress
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the user-facing error message of the last failed operation, or ""
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Load fetches the document from the backend. On failure the previous document is kept.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	data, err := s.backend.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		logging.Debugf("load failed: %v\n", err)
		s.errMsg = apperrors.MessageLoadFailed
		return err
	}
	s.data = data
	s.errMsg = ""
	return nil
}

// Refresh reloads the document from the backend
func (s *Store) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// AddCard appends card and saves. The caller supplies a unique id and a nil LastDone.
func (s *Store) AddCard(ctx context.Context, card domain.Card) error {
	return s.mutate(ctx, func(d *domain.AppData) bool {
		d.Cards = append(d.Cards, card.Clone())
		return true
	})
}

// UpdateCard replaces the card with the same id. Unknown ids are ignored.
func (s *Store) UpdateCard(ctx context.Context, card domain.Card) error {
	return s.mutate(ctx, func(d *domain.AppData) bool {
		for i := range d.Cards {
			if d.Cards[i].ID == card.ID {
				d.Cards[i] = card.Clone()
				return true
			}
		}
		return false
	})
}

// DeleteCard removes the card with the given id. Unknown ids are ignored.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	return s.mutate(ctx, func(d *domain.AppData) bool {
		for i := range d.Cards {
			if d.Cards[i].ID == id {
				d.Cards = append(d.Cards[:i], d.Cards[i+1:]...)
				return true
			}
		}
		return false
	})
}

// MarkDone stamps the card's LastDone with the current time
func (s *Store) MarkDone(ctx context.Context, id string) error {
	card, ok := s.findCard(id)
	if !ok {
		return nil
	}
	return s.UpdateCard(ctx, card.MarkDone(s.now()))
}

// ArchiveCard sets or clears the card's archived flag
func (s *Store) ArchiveCard(ctx context.Context, id string, archived bool) error {
	card, ok := s.findCard(id)
	if !ok {
		return nil
	}
	card.IsArchived = archived
	return s.UpdateCard(ctx, card)
}

// AddCategory appends name unless an identical category already exists
func (s *Store) AddCategory(ctx context.Context, name string) error {
	return s.mutate(ctx, func(d *domain.AppData) bool {
		if d.HasCategory(name) {
			return false
		}
		d.Categories = append(d.Categories, name)
		return true
	})
}

func (s *Store) findCard(id string) (domain.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.FindCard(id)
}

// mutate applies change to a copy of the document, installs it and saves it.
// change returns false when nothing changed, in which case nothing is saved.
func (s *Store) mutate(ctx context.Context, change func(*domain.AppData) bool) error {
	s.mu.Lock()
	next := s.data.Clone()
	if !change(next) {
		s.mu.Unlock()
		return nil
	}
	s.data = next
	s.mu.Unlock()

	if err := s.backend.Save(ctx, next.Clone()); err != nil {
		logging.Debugf("save failed, resyncing: %v\n", err)
		if loadErr := s.Load(ctx); loadErr != nil {
			logging.Debugf("resync failed: %v\n", loadErr)
			return err
		}
		s.mu.Lock()
		s.errMsg = apperrors.MessageSaveFailed
		s.mu.Unlock()
		return err
	}
	return nil
}
