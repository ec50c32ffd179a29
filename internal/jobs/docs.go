// Package jobs provides scheduled background tasks for the parcel tracking
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the tracking service.
//
// # Available Jobs
//
// 1. OutboxDispatchJob - Runs every five seconds to publish pending outbox
// messages to the broker, dead-lettering messages that keep failing
// 2. ExpirySweepJob - Runs hourly to remove parcels whose retention deadline
// has passed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchOutboxHandler, purgeExpiredHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs log failures and keep their schedule: a failed pass is retried on
// the next tick. Failed job starts will stop any already running jobs.
package jobs
