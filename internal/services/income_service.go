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

// IncomeService encapsulates the business logic for income sources.
type IncomeService struct {
	repo *repository.IncomeRepository
}

// NewIncomeService creates a new instance of IncomeService.
func NewIncomeService(repo *repository.IncomeRepository) *IncomeService {
	return &IncomeService{
		repo: repo,
	}
}

// CreateIncomeInput carries the user-supplied fields of an income source.
type CreateIncomeInput struct {
	Name              string  `json:"name"`
	Amount            float64 `json:"amount"`
	Frequency         string  `json:"frequency"`
	ReliabilityRating *int    `json:"reliability_rating,omitempty"`
}

// CreateIncome validates the input, normalizes the amount to monthly and
// daily figures, and stores the source.
func (s *IncomeService) CreateIncome(ctx context.Context, userID primitive.ObjectID, input CreateIncomeInput) (*models.Income, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidation("name", "is required")
	}
	if input.Amount <= 0 {
		return nil, apperrors.NewValidation("amount", "must be greater than 0")
	}
	monthly, err := models.NormalizeToMonthly(input.Amount, input.Frequency)
	if err != nil {
		return nil, apperrors.NewValidation("frequency", "must be HOURLY, DAILY, WEEKLY, MONTHLY or YEARLY")
	}
	daily, _ := models.NormalizeToDaily(input.Amount, input.Frequency)
	if input.ReliabilityRating != nil && (*input.ReliabilityRating < 1 || *input.ReliabilityRating > 10) {
		return nil, apperrors.NewValidation("reliability_rating", "must be between 1 and 10")
	}

	now := time.Now().UTC()
	income := &models.Income{
		UserID:            userID,
		Name:              input.Name,
		Amount:            input.Amount,
		Frequency:         input.Frequency,
		MonthlyAmount:     monthly,
		DailyAmount:       daily,
		ReliabilityRating: input.ReliabilityRating,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.repo.CreateIncome(ctx, income)
	if err != nil {
		return nil, apperrors.NewStorage("create income", err)
	}

	logger.Log.WithField("income_id", created.ID.Hex()).Info("Income created in service layer")
	return created, nil
}

// GetIncomes lists the caller's active income sources.
func (s *IncomeService) GetIncomes(ctx context.Context, userID primitive.ObjectID) ([]models.Income, error) {
	incomes, err := s.repo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewStorage("fetch incomes", err)
	}
	return incomes, nil
}

// DeactivateIncome retires one of the caller's income sources.
func (s *IncomeService) DeactivateIncome(ctx context.Context, userID primitive.ObjectID, incomeID string) error {
	objID, err := primitive.ObjectIDFromHex(incomeID)
	if err != nil {
		return apperrors.NewNotFound("income")
	}

	matched, err := s.repo.Deactivate(ctx, objID, userID)
	if err != nil {
		return apperrors.NewStorage("deactivate income", err)
	}
	if matched == 0 {
		return apperrors.NewNotFound("income")
	}
	return nil
}
