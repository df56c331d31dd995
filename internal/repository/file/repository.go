package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	apperrors "cue-cards/internal/errors"
	"cue-cards/internal/repository"
)

// Repository stores the document as a single JSON file.
// No caching: every Read goes to disk.
type Repository struct {
	filePath string
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// Option configures a Repository
type Option func(*Repository)

// WithDirPermissions sets the mode used when creating the parent directory
func WithDirPermissions(perm os.FileMode) Option {
	return func(r *Repository) {
		r.dirPerm = perm
	}
}

// New creates a file repository, creating the parent directory if it doesn't exist
func New(filePath string, opts ...Option) (*Repository, error) {
	r := &Repository{
		filePath: filePath,
		dirPerm:  0755,
		filePerm: 0644,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), r.dirPerm); err != nil {
		return nil, apperrors.NewStorageError("create store directory", err)
	}

	return r, nil
}

// Path returns the document file path
func (r *Repository) Path() string {
	return r.filePath
}

// Read returns the file contents, or repository.ErrNoDocument if the file does not exist
func (r *Repository) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, repository.ErrNoDocument
	}
	if err != nil {
		return nil, apperrors.NewStorageError("read document", err)
	}
	return data, nil
}

// Write replaces the file contents with body. The body goes to a temporary
// file that is synced and then renamed over the target, so readers never see
// a partial document.
func (r *Repository) Write(ctx context.Context, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.filePath), "."+filepath.Base(r.filePath)+".*.tmp")
	if err != nil {
		return apperrors.NewStorageError("create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return apperrors.NewStorageError("write document", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return apperrors.NewStorageError("sync document", err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.NewStorageError("close document", err)
	}
	if err := os.Chmod(tmpName, r.filePerm); err != nil {
		return apperrors.NewStorageError("chmod document", err)
	}
	if err := os.Rename(tmpName, r.filePath); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("replace %s", r.filePath), err)
	}
	return nil
}

// Close is a no-op; the file is not held open between calls
func (r *Repository) Close() error {
	return nil
}
