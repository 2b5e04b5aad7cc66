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

// DepartmentRepository handles database operations related to business
// departments.
type DepartmentRepository struct {
	collection *mongo.Collection
}

// NewDepartmentRepository creates a new instance of DepartmentRepository.
func NewDepartmentRepository(db *mongo.Database) *DepartmentRepository {
	return &DepartmentRepository{
		collection: db.Collection("departments"),
	}
}

// CreateDepartment inserts a new department.
func (r *DepartmentRepository) CreateDepartment(ctx context.Context, dept *models.Department) (*models.Department, error) {
	result, err := r.collection.InsertOne(ctx, dept)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert department")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted department ID")
		return nil, mongo.ErrNilDocument
	}
	dept.ID = insertedID

	logger.Log.WithField("department_id", dept.ID.Hex()).Info("Department created successfully")
	return dept, nil
}

// GetActiveByUser fetches a company's active departments, name ascending.
func (r *DepartmentRepository) GetActiveByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Department, error) {
	var departments []models.Department

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID, "is_active": true}, findOptions)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch departments")
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var dept models.Department
		if err := cursor.Decode(&dept); err != nil {
			logger.Log.WithError(err).Error("Failed to decode department")
			return nil, err
		}
		departments = append(departments, dept)
	}

	return departments, nil
}

// UpdateDepartment sets the mutable fields of a department owned by userID.
// Returns the matched count so the caller can distinguish a miss.
func (r *DepartmentRepository) UpdateDepartment(ctx context.Context, id, userID primitive.ObjectID, dept *models.Department) (int64, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{
			"name":              dept.Name,
			"total_budget":      dept.TotalBudget,
			"efficiency_rating": dept.EfficiencyRating,
			"description":       dept.Description,
			"headcount":         dept.Headcount,
			"updated_at":        time.Now().UTC(),
		}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("department_id", id.Hex()).Error("Failed to update department")
		return 0, err
	}

	logger.Log.WithField("department_id", id.Hex()).Info("Department updated successfully")
	return result.MatchedCount, nil
}

// Deactivate retires a department without deleting its history. Returns
// the matched count so the caller can distinguish a miss.
func (r *DepartmentRepository) Deactivate(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("department_id", id.Hex()).Error("Failed to deactivate department")
		return 0, err
	}

	logger.Log.WithField("department_id", id.Hex()).Info("Department deactivated")
	return result.MatchedCount, nil
}
