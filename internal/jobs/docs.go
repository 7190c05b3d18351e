// Package jobs provides scheduled background tasks for the shipping service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. NotificationRetryJob - Hands notifications whose delivery failed back to the
// dispatcher queue. Runs every thirty seconds unless NOTIFICATION_RETRY_SCHEDULE says otherwise.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(dispatcher, "", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron format with a leading seconds field. A pass that is
// still running when the next one is due is skipped.
//
// # Error Handling
//
// The dispatcher logs delivery failures itself; a retry pass only reports how many
// notifications it requeued.
package jobs
