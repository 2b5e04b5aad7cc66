package repository

import (
	"context"

	"github.com/finmate/finmate-server/internal/models"
	"github.com/finmate/finmate-server/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContributionRepository reads contribution history. Inserts happen inside
// GoalRepository.ApplyContribution so they share the goal's transaction;
// contributions are append-only and are never updated here.
type ContributionRepository struct {
	collection *mongo.Collection
}

// NewContributionRepository creates a new instance of ContributionRepository.
func NewContributionRepository(db *mongo.Database) *ContributionRepository {
	return &ContributionRepository{
		collection: db.Collection("contributions"),
	}
}

// GetContributionsByGoal fetches a goal's contributions, newest first.
// A limit of 0 means no limit.
func (r *ContributionRepository) GetContributionsByGoal(ctx context.Context, goalID primitive.ObjectID, limit int64) ([]models.Contribution, error) {
	var contributions []models.Contribution

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"goal_id": goalID}, findOptions)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", goalID.Hex()).Error("Failed to fetch contributions")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var contribution models.Contribution
		if err := cursor.Decode(&contribution); err != nil {
			logger.Log.WithError(err).Error("Failed to decode contribution")
			return nil, err
		}
		contributions = append(contributions, contribution)
	}

	return contributions, nil
}

// SumByGoal computes the aggregate contribution total for one goal. The
// goal document carries the same number in current_amount; this recomputes
// it from the source records when the two need to be reconciled.
func (r *ContributionRepository) SumByGoal(ctx context.Context, goalID primitive.ObjectID) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"goal_id": goalID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", goalID.Hex()).Error("Failed to sum contributions")
		return 0, err
	}
	defer cursor.Close(ctx)

	var result struct {
		Total float64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, err
		}
	}
	return result.Total, nil
}
