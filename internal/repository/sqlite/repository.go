package sqlite

import (
	"context"
	"database/sql"
	"time"

	apperrors "cue-cards/internal/errors"
	"cue-cards/internal/repository"
	"cue-cards/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// documentID is the only row the documents table may hold
const documentID = 1

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

var (
	_ repository.DocumentStore = (*Repository)(nil)
	_ repository.Timestamped   = (*Repository)(nil)
)

// Repository stores the card document as a single row in SQLite
type Repository struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at dbPath and runs migrations.
// ":memory:" is supported.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperrors.NewStorageError("open database", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("run migrations", err)
	}

	return &Repository{db: db}, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// Read returns the stored document bytes
func (r *Repository) Read(ctx context.Context) ([]byte, error) {
	query := `SELECT body FROM documents WHERE id = ?`
	body, err := QueryString(ctx, r.db, "read document", query, documentID)
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

// Write replaces the stored document with body
func (r *Repository) Write(ctx context.Context, body []byte) error {
	query := `
	INSERT INTO documents (id, body, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`

	return Execute(ctx, r.db, "write document", query, documentID, string(body), FormatTimeForDB(timeNow()))
}

// UpdatedAt returns when the document was last written
func (r *Repository) UpdatedAt(ctx context.Context) (time.Time, error) {
	query := `SELECT updated_at FROM documents WHERE id = ?`
	value, err := QueryString(ctx, r.db, "read document timestamp", query, documentID)
	if err != nil {
		return time.Time{}, err
	}
	t, err := ParseTimeFromDB(value)
	if err != nil {
		return time.Time{}, HandleStorageError("parse document timestamp", err)
	}
	return t, nil
}
