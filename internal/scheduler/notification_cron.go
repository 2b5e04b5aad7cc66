package scheduler

import (
	"context"

	"github.com/finmate/finmate-server/internal/jobs"
	"github.com/finmate/finmate-server/pkg/logger"
	"github.com/robfig/cron/v3"
)

// StartNotificationCron runs the deadline scan hourly. Returns the cron so
// the caller can stop it on shutdown.
func StartNotificationCron(notifier *jobs.DeadlineNotifier) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		notifier.RunDailyScan(context.Background())
	})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to schedule deadline scan")
		return c
	}

	c.Start()
	logger.Log.Info("Notification cron started")
	return c
}
