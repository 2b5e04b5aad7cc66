package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department is a business-account cost center. EfficiencyRating is the
// owner's 1-10 judgement of how well the budget is spent; the AI analysis
// leans on it heavily.
type Department struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name             string             `bson:"name" json:"name"`
	TotalBudget      float64            `bson:"total_budget" json:"total_budget"`
	EfficiencyRating int                `bson:"efficiency_rating" json:"efficiency_rating"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Headcount        *int               `bson:"headcount,omitempty" json:"headcount,omitempty"`
	IsActive         bool               `bson:"is_active" json:"is_active"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}
