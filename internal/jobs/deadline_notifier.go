package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/finmate/finmate-server/internal/repository"
	"github.com/finmate/finmate-server/internal/services"
	"github.com/finmate/finmate-server/pkg/logger"
	"github.com/sirupsen/logrus"
)

const dueSoonType = "goal_due_soon"

// DeadlineNotifier scans for active goals whose target date falls within the
// next day and notifies their owners once per window.
type DeadlineNotifier struct {
	goalRepo         *repository.GoalRepository
	notificationRepo *repository.NotificationRepository
	notifications    *services.NotificationService
}

// NewDeadlineNotifier creates a new DeadlineNotifier instance.
func NewDeadlineNotifier(goalRepo *repository.GoalRepository, notificationRepo *repository.NotificationRepository, notifications *services.NotificationService) *DeadlineNotifier {
	return &DeadlineNotifier{
		goalRepo:         goalRepo,
		notificationRepo: notificationRepo,
		notifications:    notifications,
	}
}

// RunDailyScan finds goals due within 24 hours and creates a due-soon
// notification for each, skipping goals already notified in the last day.
func (n *DeadlineNotifier) RunDailyScan(ctx context.Context) {
	now := time.Now().UTC()
	goals, err := n.goalRepo.GetActiveGoalsDueBetween(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		logger.Log.WithError(err).Error("Deadline scan failed to fetch goals")
		return
	}

	sent := 0
	for _, goal := range goals {
		already, err := n.notificationRepo.HasRecent(ctx, goal.UserID, goal.ID, dueSoonType, now.Add(-24*time.Hour))
		if err != nil {
			logger.Log.WithError(err).WithField("goal_id", goal.ID.Hex()).Warn("Deadline scan dedupe check failed")
			continue
		}
		if already {
			continue
		}

		remaining := goal.RemainingToSave()
		message := fmt.Sprintf("Your goal %q is due tomorrow. You still need $%.2f.", goal.Name, remaining)
		if remaining <= 0 {
			message = fmt.Sprintf("Your goal %q is due tomorrow and fully funded. Nice work!", goal.Name)
		}

		goalID := goal.ID
		if err := n.notifications.CreateNotification(ctx, goal.UserID, dueSoonType, "⏰ Deadline Approaching", message, &goalID); err != nil {
			logger.Log.WithError(err).WithField("goal_id", goal.ID.Hex()).Warn("Failed to create due-soon notification")
			continue
		}
		sent++
	}

	logger.Log.WithFields(logrus.Fields{
		"scanned": len(goals),
		"sent":    sent,
	}).Info("Deadline scan completed")
}
