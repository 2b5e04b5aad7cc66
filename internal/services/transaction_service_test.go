package services

import (
	"context"
	"testing"

	"github.com/finmate/finmate-server/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateTransaction_Validation(t *testing.T) {
	svc := NewTransactionService(nil)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.CreateTransaction(ctx, userID, CreateTransactionInput{
		Amount: 100, Type: "EARNING",
	})
	assert.True(t, apperrors.IsValidation(err), "missing name")

	_, err = svc.CreateTransaction(ctx, userID, CreateTransactionInput{
		Name: "Rent", Amount: -50, Type: "FIXED_EXPENSE",
	})
	assert.True(t, apperrors.IsValidation(err), "negative amount")

	_, err = svc.CreateTransaction(ctx, userID, CreateTransactionInput{
		Name: "Rent", Amount: 100, Type: "LOAN",
	})
	assert.True(t, apperrors.IsValidation(err), "unknown type")

	badDay := 40
	_, err = svc.CreateTransaction(ctx, userID, CreateTransactionInput{
		Name: "Rent", Amount: 100, Type: "FIXED_EXPENSE", DayOfMonth: &badDay,
	})
	assert.True(t, apperrors.IsValidation(err), "day of month out of range")

	_, err = svc.CreateTransaction(ctx, userID, CreateTransactionInput{
		Name: "Office snacks", Amount: 100, Type: "VARIABLE_EXPENSE", DepartmentID: "nope",
	})
	assert.True(t, apperrors.IsValidation(err), "malformed department id")
}

func TestDeleteTransaction_BadID(t *testing.T) {
	svc := NewTransactionService(nil)

	err := svc.DeleteTransaction(context.Background(), primitive.NewObjectID(), "zzz")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateIncome_Validation(t *testing.T) {
	svc := NewIncomeService(nil)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.CreateIncome(ctx, userID, CreateIncomeInput{Amount: 100, Frequency: "MONTHLY"})
	assert.True(t, apperrors.IsValidation(err), "missing name")

	_, err = svc.CreateIncome(ctx, userID, CreateIncomeInput{Name: "Salary", Amount: 0, Frequency: "MONTHLY"})
	assert.True(t, apperrors.IsValidation(err), "non-positive amount")

	_, err = svc.CreateIncome(ctx, userID, CreateIncomeInput{Name: "Salary", Amount: 100, Frequency: "BIWEEKLY"})
	assert.True(t, apperrors.IsValidation(err), "unknown frequency")

	rating := 11
	_, err = svc.CreateIncome(ctx, userID, CreateIncomeInput{Name: "Salary", Amount: 100, Frequency: "MONTHLY", ReliabilityRating: &rating})
	assert.True(t, apperrors.IsValidation(err), "rating out of range")
}
