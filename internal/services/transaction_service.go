package services

import (
	"context"
	"time"

	"github.com/finmate/finmate-server/internal/apperrors"
	"github.com/finmate/finmate-server/internal/models"
	"github.com/finmate/finmate-server/internal/repository"
	"github.com/finmate/finmate-server/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionService encapsulates the business logic for earnings and
// expenses.
type TransactionService struct {
	repo *repository.TransactionRepository
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(repo *repository.TransactionRepository) *TransactionService {
	return &TransactionService{
		repo: repo,
	}
}

// CreateTransactionInput carries the user-supplied fields of a transaction.
type CreateTransactionInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Type         string  `json:"type"`
	DayOfMonth   *int    `json:"day_of_month,omitempty"`
	DepartmentID string  `json:"department_id,omitempty"`
}

// CreateTransaction validates the input and stores the entry. Fixed
// expenses get their monthly and per-day cost derived at write time.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID primitive.ObjectID, input CreateTransactionInput) (*models.Transaction, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidation("name", "is required")
	}
	if input.Amount <= 0 {
		return nil, apperrors.NewValidation("amount", "must be greater than 0")
	}
	if !models.IsValidTransactionType(input.Type) {
		return nil, apperrors.NewValidation("type", "must be EARNING, FIXED_EXPENSE or VARIABLE_EXPENSE")
	}

	now := time.Now().UTC()
	tx := &models.Transaction{
		UserID:          userID,
		Name:            input.Name,
		Description:     input.Description,
		Amount:          input.Amount,
		Type:            input.Type,
		TransactionDate: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if input.Type == models.TransactionFixedExpense {
		if input.DayOfMonth != nil && (*input.DayOfMonth < 1 || *input.DayOfMonth > 31) {
			return nil, apperrors.NewValidation("day_of_month", "must be between 1 and 31")
		}
		tx.DayOfMonth = input.DayOfMonth
		monthly := input.Amount
		daily := input.Amount / 30
		tx.MonthlyAmount = &monthly
		tx.DailyAmount = &daily
	}

	if input.DepartmentID != "" {
		deptID, err := primitive.ObjectIDFromHex(input.DepartmentID)
		if err != nil {
			return nil, apperrors.NewValidation("department_id", "is not a valid ID")
		}
		tx.DepartmentID = &deptID
	}

	created, err := s.repo.CreateTransaction(ctx, tx)
	if err != nil {
		return nil, apperrors.NewStorage("create transaction", err)
	}

	logger.Log.WithField("transaction_id", created.ID.Hex()).Info("Transaction created in service layer")
	return created, nil
}

// GetTransactions lists the caller's transactions, newest first.
func (s *TransactionService) GetTransactions(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Transaction, error) {
	transactions, err := s.repo.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.NewStorage("fetch transactions", err)
	}
	return transactions, nil
}

// DeleteTransaction removes one of the caller's transactions.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID primitive.ObjectID, txID string) error {
	objID, err := primitive.ObjectIDFromHex(txID)
	if err != nil {
		return apperrors.NewNotFound("transaction")
	}

	deleted, err := s.repo.Delete(ctx, objID, userID)
	if err != nil {
		return apperrors.NewStorage("delete transaction", err)
	}
	if deleted == 0 {
		return apperrors.NewNotFound("transaction")
	}
	return nil
}
