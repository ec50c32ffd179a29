package jobs

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxDispatchJob drains pending outbox messages to the broker on a fixed
// schedule. Runs every five seconds so notification latency stays low without
// hammering an empty table.
type OutboxDispatchJob struct {
	handler commands.DispatchOutboxCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOutboxDispatchJob creates a new job for draining the outbox.
func NewOutboxDispatchJob(handler commands.DispatchOutboxCommandHandler, logger *slog.Logger) *OutboxDispatchJob {
	return &OutboxDispatchJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "outbox_dispatch_job"),
	}
}

// Start begins the outbox dispatch job, running every five seconds.
func (j *OutboxDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewDispatchOutboxCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Outbox dispatch job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job started (running every five seconds)")
	return nil
}

// Stop stops the outbox dispatch job.
func (j *OutboxDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job stopped")
}
