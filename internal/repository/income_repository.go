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

// IncomeRepository handles database operations related to income sources.
type IncomeRepository struct {
	collection *mongo.Collection
}

// NewIncomeRepository creates a new instance of IncomeRepository.
func NewIncomeRepository(db *mongo.Database) *IncomeRepository {
	return &IncomeRepository{
		collection: db.Collection("incomes"),
	}
}

// CreateIncome inserts a new income source.
func (r *IncomeRepository) CreateIncome(ctx context.Context, income *models.Income) (*models.Income, error) {
	result, err := r.collection.InsertOne(ctx, income)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert income")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted income ID")
		return nil, mongo.ErrNilDocument
	}
	income.ID = insertedID

	logger.Log.WithField("income_id", income.ID.Hex()).Info("Income created successfully")
	return income, nil
}

// GetActiveByUser fetches a user's active income sources, newest first.
func (r *IncomeRepository) GetActiveByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Income, error) {
	var incomes []models.Income

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID, "is_active": true}, findOptions)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch incomes")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var income models.Income
		if err := cursor.Decode(&income); err != nil {
			logger.Log.WithError(err).Error("Failed to decode income")
			return nil, err
		}
		incomes = append(incomes, income)
	}

	return incomes, nil
}

// Deactivate retires an income source without losing its history. Returns
// mongo's matched count so the caller can distinguish a miss.
func (r *IncomeRepository) Deactivate(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("income_id", id.Hex()).Error("Failed to deactivate income")
		return 0, err
	}

	logger.Log.WithField("income_id", id.Hex()).Info("Income deactivated")
	return result.MatchedCount, nil
}
