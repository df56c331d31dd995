package scheduler

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"cue-cards/internal/logging"
	"cue-cards/internal/repository"
	"cue-cards/internal/repository/file"
)

// snapshotLayout names snapshot files cards-YYYYMMDD-HHMMSS.json
const snapshotLayout = "20060102-150405"

// SnapshotJob copies the stored document into timestamped files
type SnapshotJob struct {
	docs repository.DocumentStore
	dir  string
	now  func() time.Time

	mu   sync.Mutex
	last []byte
}

// NewSnapshotJob creates a job writing snapshots of docs into dir.
// A nil clock uses time.Now.
func NewSnapshotJob(docs repository.DocumentStore, dir string, now func() time.Time) *SnapshotJob {
	if now == nil {
		now = time.Now
	}
	return &SnapshotJob{docs: docs, dir: dir, now: now}
}

// Run writes one snapshot. It returns "" without writing when no document
// exists yet or the document is unchanged since the previous snapshot.
func (j *SnapshotJob) Run(ctx context.Context) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	body, err := j.docs.Read(ctx)
	if errors.Is(err, repository.ErrNoDocument) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if j.last != nil && bytes.Equal(body, j.last) {
		return "", nil
	}

	path := filepath.Join(j.dir, "cards-"+j.now().Format(snapshotLayout)+".json")
	target, err := file.New(path)
	if err != nil {
		return "", err
	}
	if err := target.Write(ctx, body); err != nil {
		return "", err
	}

	j.last = body
	return path, nil
}

// Func adapts the job to a cron callback that logs failures
func (j *SnapshotJob) Func(ctx context.Context) func() {
	return func() {
		path, err := j.Run(ctx)
		if err != nil {
			logging.Errorf("snapshot failed: %v", err)
			return
		}
		if path != "" {
			logging.Infof("snapshot written to %s", path)
		}
	}
}
