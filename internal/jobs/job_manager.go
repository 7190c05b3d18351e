package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager owns the scheduled jobs of the service and starts and stops them together.
type JobManager struct {
	notificationRetryJob *NotificationRetryJob
}

// NewJobManager builds the jobs. An empty notificationRetrySchedule selects
// DefaultNotificationRetrySchedule.
func NewJobManager(
	retrier NotificationRetrier,
	notificationRetrySchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		notificationRetryJob: NewNotificationRetryJob(retrier, notificationRetrySchedule, logger),
	}
}

// StartAll starts every job, or none of them when one fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification retry job: %w", err)
	}
	return nil
}

// StopAll stops every job and waits for running passes to finish.
func (jm *JobManager) StopAll() {
	jm.notificationRetryJob.Stop()
}
