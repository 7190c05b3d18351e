package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultNotificationRetrySchedule runs the retry job every thirty seconds.
const DefaultNotificationRetrySchedule = "*/30 * * * * *"

// NotificationRetrier re-queues notifications whose delivery failed.
type NotificationRetrier interface {
	RetryFailed(ctx context.Context) int
}

// NotificationRetryJob periodically hands parked notifications back to the dispatcher.
type NotificationRetryJob struct {
	retrier  NotificationRetrier
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewNotificationRetryJob creates the job. An empty schedule means
// DefaultNotificationRetrySchedule; schedules use the six-field cron format with seconds.
func NewNotificationRetryJob(retrier NotificationRetrier, schedule string, logger *slog.Logger) *NotificationRetryJob {
	if schedule == "" {
		schedule = DefaultNotificationRetrySchedule
	}
	return &NotificationRetryJob{
		retrier:  retrier,
		schedule: schedule,
		timeout:  10 * time.Second,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "notification_retry_job"),
	}
}

// Start registers the job and starts the scheduler. An invalid schedule is returned as
// an error and nothing is started.
func (j *NotificationRetryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification retry job started", "schedule", j.schedule)
	return nil
}

// Run performs a single retry pass.
func (j *NotificationRetryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if n := j.retrier.RetryFailed(ctx); n > 0 {
		j.logger.InfoContext(ctx, "Requeued failed notifications", "count", n)
	}
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *NotificationRetryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification retry job stopped")
}
