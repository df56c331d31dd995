package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "cue-cards/internal/errors"
	"cue-cards/internal/repository"
)

// HandleStorageError converts database errors to structured app errors
func HandleStorageError(operation string, err error) error {
	return apperrors.NewStorageError(operation, err)
}

// HandleNoRowsError maps sql.ErrNoRows to repository.ErrNoDocument
func HandleNoRowsError(operation string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNoDocument
	}
	return HandleStorageError(operation, err)
}

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Execute runs a statement and wraps any failure as a storage error
func Execute(ctx context.Context, db *sql.DB, operation string, query string, args ...interface{}) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return HandleStorageError(operation, err)
	}
	return nil
}

// QueryString runs a single-row, single-column query
func QueryString(ctx context.Context, db *sql.DB, operation string, query string, args ...interface{}) (string, error) {
	var value string
	if err := db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		return "", HandleNoRowsError(operation, err)
	}
	return value, nil
}
