package jobs

import (
	"fmt"
	"log/slog"

	"parceltrack/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxDispatchJob *OutboxDispatchJob
	expirySweepJob    *ExpirySweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	dispatchOutboxHandler commands.DispatchOutboxCommandHandler,
	purgeExpiredHandler commands.PurgeExpiredTrackingItemsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxDispatchJob: NewOutboxDispatchJob(dispatchOutboxHandler, logger),
		expirySweepJob:    NewExpirySweepJob(purgeExpiredHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox dispatch job: %w", err)
	}

	if err := jm.expirySweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxDispatchJob.Stop()
		return fmt.Errorf("failed to start expiry sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.expirySweepJob.Stop()
	jm.outboxDispatchJob.Stop()
}
