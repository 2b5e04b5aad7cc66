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

// TransactionRepository handles database operations related to earnings
// and expenses.
type TransactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a new instance of TransactionRepository.
func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		collection: db.Collection("transactions"),
	}
}

// CreateTransaction inserts a new transaction.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	result, err := r.collection.InsertOne(ctx, tx)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert transaction")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted transaction ID")
		return nil, mongo.ErrNilDocument
	}
	tx.ID = insertedID

	logger.Log.WithField("transaction_id", tx.ID.Hex()).Info("Transaction created successfully")
	return tx, nil
}

// GetByUser fetches a user's transactions, newest first. A limit of 0
// means no limit.
func (r *TransactionRepository) GetByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Transaction, error) {
	var transactions []models.Transaction

	findOptions := options.Find().SetSort(bson.D{{Key: "transaction_date", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch transactions")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var tx models.Transaction
		if err := cursor.Decode(&tx); err != nil {
			logger.Log.WithError(err).Error("Failed to decode transaction")
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// Delete removes a transaction owned by userID. Returns the deleted count
// so the caller can distinguish a miss from success.
func (r *TransactionRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("transaction_id", id.Hex()).Error("Failed to delete transaction")
		return 0, err
	}

	logger.Log.WithField("transaction_id", id.Hex()).Info("Transaction deleted")
	return result.DeletedCount, nil
}
