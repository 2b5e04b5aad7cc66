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

// GoalRepository handles database operations related to goals. It also owns
// the contributions collection because a contribution and its goal update
// always land in the same transaction.
type GoalRepository struct {
	collection    *mongo.Collection
	contributions *mongo.Collection
}

// NewGoalRepository creates a new instance of GoalRepository.
func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{
		collection:    db.Collection("goals"),
		contributions: db.Collection("contributions"),
	}
}

// CreateGoal inserts a new goal in the database.
func (r *GoalRepository) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	result, err := r.collection.InsertOne(ctx, goal)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert goal")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted goal ID")
		return nil, mongo.ErrNilDocument
	}
	goal.ID = insertedID

	logger.Log.WithField("goal_id", goal.ID.Hex()).Info("Goal created successfully")
	return goal, nil
}

// GetGoalByID fetches a goal by its ID.
func (r *GoalRepository) GetGoalByID(ctx context.Context, id primitive.ObjectID) (*models.Goal, error) {
	var goal models.Goal

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&goal)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Warn("Failed to find goal by ID")
		return nil, err
	}

	return &goal, nil
}

// GetGoalsByUser fetches all goals of one user, nearest target date first.
func (r *GoalRepository) GetGoalsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Goal, error) {
	var goals []models.Goal

	findOptions := options.Find().SetSort(bson.D{{Key: "target_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch goals")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var goal models.Goal
		if err := cursor.Decode(&goal); err != nil {
			logger.Log.WithError(err).Error("Failed to decode goal")
			return nil, err
		}
		goals = append(goals, goal)
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id": userID.Hex(),
		"count":   len(goals),
	}).Info("Goals fetched successfully")
	return goals, nil
}

// UpdateGoal replaces the mutable fields of an existing goal.
func (r *GoalRepository) UpdateGoal(ctx context.Context, id primitive.ObjectID, goal *models.Goal) (*models.Goal, error) {
	goal.UpdatedAt = time.Now().UTC()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":              goal.Name,
			"target_amount":     goal.TargetAmount,
			"required_amount":   goal.RequiredAmount,
			"target_date":       goal.TargetDate,
			"is_emergency_fund": goal.IsEmergencyFund,
			"days_remaining":    goal.DaysRemaining,
			"daily_save_rate":   goal.DailySaveRate,
			"weekly_save_rate":  goal.WeeklySaveRate,
			"updated_at":        goal.UpdatedAt,
		}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to update goal")
		return nil, err
	}

	logger.Log.WithField("goal_id", id.Hex()).Info("Goal updated successfully")
	return goal, nil
}

// DeleteGoal deletes a goal and its contribution history.
func (r *GoalRepository) DeleteGoal(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to delete goal")
		return err
	}
	if _, err := r.contributions.DeleteMany(ctx, bson.M{"goal_id": id}); err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to delete goal contributions")
		return err
	}

	logger.Log.WithField("goal_id", id.Hex()).Info("Goal deleted successfully")
	return nil
}

// ApplyContribution appends the contribution and advances the goal's
// aggregate in a single transaction. The increment is keyed on
// is_completed=false, so a ledger frozen by completion is never advanced
// and completed_at can only ever be written once. Returns the post-update
// goal and whether this contribution triggered completion.
//
// mongo.ErrNoDocuments means the goal vanished or completed concurrently;
// the transaction rolls the contribution insert back in that case.
func (r *GoalRepository) ApplyContribution(ctx context.Context, contrib *models.Contribution, now time.Time) (*models.Goal, bool, error) {
	session, err := r.collection.Database().Client().StartSession()
	if err != nil {
		logger.Log.WithError(err).Error("Failed to start mongo session")
		return nil, false, err
	}
	defer session.EndSession(ctx)

	var (
		updated       models.Goal
		justCompleted bool
	)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		justCompleted = false
		contrib.CreatedAt = now

		if _, err := r.contributions.InsertOne(sc, contrib); err != nil {
			return nil, err
		}

		// Atomic increment of the aggregate, valid only while the goal
		// is still active. Two racing contributions can never overwrite
		// each other's sum.
		res := r.collection.FindOneAndUpdate(
			sc,
			bson.M{"_id": contrib.GoalID, "is_completed": false},
			bson.M{
				"$inc": bson.M{"current_amount": contrib.Amount},
				"$set": bson.M{"updated_at": now},
			},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)
		if err := res.Decode(&updated); err != nil {
			return nil, err
		}

		updated.RecalculateRates(now)
		set := bson.M{
			"days_remaining":   updated.DaysRemaining,
			"daily_save_rate":  updated.DailySaveRate,
			"weekly_save_rate": updated.WeeklySaveRate,
		}
		if updated.CurrentAmount >= updated.RequiredAmount {
			justCompleted = true
			updated.IsCompleted = true
			completed := now
			updated.CompletedAt = &completed
			set["is_completed"] = true
			set["completed_at"] = now
		}

		if _, err := r.collection.UpdateOne(sc, bson.M{"_id": contrib.GoalID}, bson.M{"$set": set}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", contrib.GoalID.Hex()).Error("Failed to apply contribution")
		return nil, false, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"goal_id":        contrib.GoalID.Hex(),
		"amount":         contrib.Amount,
		"current_amount": updated.CurrentAmount,
		"completed":      justCompleted,
	}).Info("Contribution applied successfully")
	return &updated, justCompleted, nil
}

// GetActiveGoalsDueBetween fetches uncompleted goals whose target date
// falls inside [from, to). Used by the deadline scan.
func (r *GoalRepository) GetActiveGoalsDueBetween(ctx context.Context, from, to time.Time) ([]models.Goal, error) {
	var goals []models.Goal

	filter := bson.M{
		"is_completed": false,
		"target_date":  bson.M{"$gte": from, "$lt": to},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch goals due soon")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var goal models.Goal
		if err := cursor.Decode(&goal); err != nil {
			logger.Log.WithError(err).Error("Failed to decode goal")
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, nil
}
