package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNoDocument is returned by Read when nothing has been written yet
var ErrNoDocument = errors.New("no document stored")

// DocumentStore persists one opaque JSON document as a whole.
// Write replaces the stored bytes verbatim; there is no locking or
// versioning, so concurrent writers race and the last one wins.
type DocumentStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, body []byte) error
	Close() error
}

// Timestamped is implemented by stores that record when the document was last written
type Timestamped interface {
	UpdatedAt(ctx context.Context) (time.Time, error)
}
