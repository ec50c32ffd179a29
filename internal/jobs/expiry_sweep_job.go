package jobs

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpirySweepJob removes parcels whose retention deadline has passed. Runs
// hourly; the sweep is idempotent so a missed run only delays cleanup.
type ExpirySweepJob struct {
	handler commands.PurgeExpiredTrackingItemsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewExpirySweepJob creates a new job for the retention sweep.
func NewExpirySweepJob(handler commands.PurgeExpiredTrackingItemsCommandHandler, logger *slog.Logger) *ExpirySweepJob {
	return &ExpirySweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "expiry_sweep_job"),
	}
}

// Start begins the expiry sweep job, running at the top of every hour.
func (j *ExpirySweepJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewPurgeExpiredTrackingItemsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Expiry sweep job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiry sweep job started (running hourly)")
	return nil
}

// Stop stops the expiry sweep job.
func (j *ExpirySweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expiry sweep job stopped")
}
