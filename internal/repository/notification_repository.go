package repository

import (
	"context"
	"time"

	"github.com/finmate/finmate-server/internal/models"
	"github.com/finmate/finmate-server/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository handles database operations related to
// notifications.
type NotificationRepository struct {
	collection *mongo.Collection
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// CreateNotification inserts a new notification.
func (r *NotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) error {
	notif.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, notif); err != nil {
		logger.Log.WithError(err).Error("Failed to insert notification")
		return err
	}
	return nil
}

// GetUserNotifications returns a user's notifications, newest first.
func (r *NotificationRepository) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	var notifications []models.Notification

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch notifications")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var notif models.Notification
		if err := cursor.Decode(&notif); err != nil {
			logger.Log.WithError(err).Error("Failed to decode notification")
			return nil, err
		}
		notifications = append(notifications, notif)
	}

	return notifications, nil
}

// MarkAsRead flips a notification's read flag for its owner. Returns the
// matched count so the caller can distinguish a miss.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("notification_id", id.Hex()).Error("Failed to mark notification read")
		return 0, err
	}
	return result.MatchedCount, nil
}

// HasRecent reports whether a notification of the given type already exists
// for the goal within the window, keeping the hourly deadline scan from
// piling up duplicates.
func (r *NotificationRepository) HasRecent(ctx context.Context, userID, goalID primitive.ObjectID, notifType string, since time.Time) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{
		"user_id":    userID,
		"goal_id":    goalID,
		"type":       notifType,
		"created_at": bson.M{"$gte": since},
	}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}
