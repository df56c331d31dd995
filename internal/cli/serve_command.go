package cli

import (
	"context"
	"time"

	"cue-cards/internal/config"
	"cue-cards/internal/logging"
	"cue-cards/internal/repository"
	"cue-cards/internal/scheduler"
	"cue-cards/internal/server"
)

// ServeCommand runs the persistence endpoint over the configured document store
type ServeCommand struct {
	config *config.Config
	docs   repository.DocumentStore
}

// NewServeCommand creates a new serve command handler. A nil docs opens the
// store named by the configuration.
func NewServeCommand(cfg *config.Config, docs repository.DocumentStore) *ServeCommand {
	return &ServeCommand{config: cfg, docs: docs}
}

// Execute serves until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	docs := c.docs
	if docs == nil {
		opened, err := config.CreateDocumentStore(c.config)
		if err != nil {
			return err
		}
		defer opened.Close()
		docs = opened
		logging.Infof("using %s store %s", c.config.Storage.Driver, c.config.GetStorePath())
	}
	logLastWrite(ctx, docs)

	if interval := c.config.Server.BackupInterval; interval > 0 {
		sched := scheduler.NewSchedulerService(time.Local)
		job := scheduler.NewSnapshotJob(docs, c.config.GetBackupDir(), nil)
		if _, err := sched.ScheduleInterval(interval, job.Func(ctx)); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
		logging.Infof("snapshots every %s into %s", interval, c.config.GetBackupDir())
	}

	return server.Run(ctx, c.config, docs)
}

func logLastWrite(ctx context.Context, docs repository.DocumentStore) {
	ts, ok := docs.(repository.Timestamped)
	if !ok {
		return
	}
	at, err := ts.UpdatedAt(ctx)
	if err != nil {
		logging.Debugf("no document timestamp: %v\n", err)
		return
	}
	logging.Infof("document last written %s", at.Local().Format(time.RFC3339))
}
