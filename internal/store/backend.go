package store

import (
	"context"
	"encoding/json"
	"errors"

	"cue-cards/internal/domain"
	apperrors "cue-cards/internal/errors"
	"cue-cards/internal/repository"
)

// Backend loads and saves the whole card document
type Backend interface {
	Load(ctx context.Context) (*domain.AppData, error)
	Save(ctx context.Context, data *domain.AppData) error
}

// DocumentBackend adapts a raw DocumentStore to Backend.
// It is used when the CLI talks to local storage instead of the HTTP endpoint.
// Documents round-trip through domain.AppData, so unknown card fields are
// not preserved across a save.
type DocumentBackend struct {
	docs repository.DocumentStore
}

// NewDocumentBackend wraps docs as a Backend
func NewDocumentBackend(docs repository.DocumentStore) *DocumentBackend {
	return &DocumentBackend{docs: docs}
}

// Load decodes the stored document, or returns an empty one if nothing was saved yet
func (b *DocumentBackend) Load(ctx context.Context) (*domain.AppData, error) {
	body, err := b.docs.Read(ctx)
	if errors.Is(err, repository.ErrNoDocument) {
		return domain.EmptyAppData(), nil
	}
	if err != nil {
		return nil, err
	}

	var data domain.AppData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, apperrors.NewParseError("stored document", err)
	}
	return &data, nil
}

// Save encodes data and replaces the stored document
func (b *DocumentBackend) Save(ctx context.Context, data *domain.AppData) error {
	if data == nil {
		data = domain.EmptyAppData()
	}
	body, err := json.Marshal(data)
	if err != nil {
		return apperrors.NewParseError("document", err)
	}
	return b.docs.Write(ctx, body)
}
