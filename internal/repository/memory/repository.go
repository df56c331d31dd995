package memory

import (
	"context"
	"sync"

	"cue-cards/internal/repository"
)

// Repository keeps the document in process memory
type Repository struct {
	mu     sync.Mutex
	body   []byte
	stored bool
	writes int
}

// New creates an empty in-memory document store
func New() *Repository {
	return &Repository{}
}

// NewWithDocument creates a store already holding body
func NewWithDocument(body []byte) *Repository {
	r := &Repository{}
	r.body = append([]byte(nil), body...)
	r.stored = true
	return r
}

// Read returns a copy of the stored document
func (r *Repository) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.stored {
		return nil, repository.ErrNoDocument
	}
	return append([]byte(nil), r.body...), nil
}

// Write replaces the stored document
func (r *Repository) Write(ctx context.Context, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.body = append([]byte(nil), body...)
	r.stored = true
	r.writes++
	return nil
}

// Writes reports how many times Write succeeded
func (r *Repository) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// Close is a no-op
func (r *Repository) Close() error {
	return nil
}
