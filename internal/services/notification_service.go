package services

import (
	"context"

	"github.com/finmate/finmate-server/internal/apperrors"
	"github.com/finmate/finmate-server/internal/models"
	"github.com/finmate/finmate-server/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

// CreateNotification logs a new notification for a user.
func (s *NotificationService) CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, goalID *primitive.ObjectID) error {
	notif := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Read:    false,
		GoalID:  goalID,
	}
	return s.repo.CreateNotification(ctx, notif)
}

// GetUserNotifications returns all notifications for a user.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	notifications, err := s.repo.GetUserNotifications(ctx, userID)
	if err != nil {
		return nil, apperrors.NewStorage("fetch notifications", err)
	}
	return notifications, nil
}

// MarkNotificationAsRead sets the "read" status of a notification to true.
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, userID primitive.ObjectID, notifID string) error {
	objID, err := primitive.ObjectIDFromHex(notifID)
	if err != nil {
		return apperrors.NewNotFound("notification")
	}

	matched, err := s.repo.MarkAsRead(ctx, objID, userID)
	if err != nil {
		return apperrors.NewStorage("mark notification read", err)
	}
	if matched == 0 {
		return apperrors.NewNotFound("notification")
	}
	return nil
}
