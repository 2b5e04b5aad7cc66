package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contribution is an immutable, append-only record of money added toward a
// goal. It is created once and never updated or deleted; the owning goal
// keeps only the running aggregate.
type Contribution struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GoalID    primitive.ObjectID `bson:"goal_id" json:"goal_id"`
	Amount    float64            `bson:"amount" json:"amount"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
