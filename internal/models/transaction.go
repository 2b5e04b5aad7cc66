package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction types.
const (
	TransactionEarning         = "EARNING"
	TransactionFixedExpense    = "FIXED_EXPENSE"
	TransactionVariableExpense = "VARIABLE_EXPENSE"
)

// Transaction is one earning or expense entry. Fixed expenses additionally
// carry their monthly and per-day cost plus the day of month they fall due.
type Transaction struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"user_id" json:"user_id"`
	Name            string              `bson:"name" json:"name"`
	Description     string              `bson:"description,omitempty" json:"description,omitempty"`
	Amount          float64             `bson:"amount" json:"amount"`
	Type            string              `bson:"type" json:"type"`
	DayOfMonth      *int                `bson:"day_of_month,omitempty" json:"day_of_month,omitempty"`
	MonthlyAmount   *float64            `bson:"monthly_amount,omitempty" json:"monthly_amount,omitempty"`
	DailyAmount     *float64            `bson:"daily_amount,omitempty" json:"daily_amount,omitempty"`
	DepartmentID    *primitive.ObjectID `bson:"department_id,omitempty" json:"department_id,omitempty"`
	TransactionDate time.Time           `bson:"transaction_date" json:"transaction_date"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}

// IsValidTransactionType reports whether t is one of the known types.
func IsValidTransactionType(t string) bool {
	switch t {
	case TransactionEarning, TransactionFixedExpense, TransactionVariableExpense:
		return true
	}
	return false
}
