package services

import (
	"context"
	"time"

	"github.com/finmate/finmate-server/internal/apperrors"
	"github.com/finmate/finmate-server/internal/models"
	"github.com/finmate/finmate-server/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BudgetService derives the monthly budget picture from raw income and
// transaction rows. Its NetDaily output is the disposable-income ceiling
// the pathfinder checks goals against.
type BudgetService struct {
	incomeRepo      *repository.IncomeRepository
	transactionRepo *repository.TransactionRepository
}

// NewBudgetService creates a new instance of BudgetService.
func NewBudgetService(incomeRepo *repository.IncomeRepository, transactionRepo *repository.TransactionRepository) *BudgetService {
	return &BudgetService{
		incomeRepo:      incomeRepo,
		transactionRepo: transactionRepo,
	}
}

// ComputeSummary folds income sources and transactions into one summary.
// currentMonth fixes which month variable expenses and extra earnings are
// counted for. Fixed expenses count in full regardless of date; the net
// daily figure uses the same 30-day month the savings rates do.
func ComputeSummary(incomes []models.Income, transactions []models.Transaction, currentMonth time.Time) models.BudgetSummary {
	var summary models.BudgetSummary

	for _, income := range incomes {
		summary.TotalMonthlyIncome += income.MonthlyAmount
		summary.TotalDailyIncome += income.DailyAmount
	}

	monthStart := time.Date(currentMonth.Year(), currentMonth.Month(), 1, 0, 0, 0, 0, currentMonth.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionFixedExpense:
			summary.TotalFixedExpenses += tx.Amount
		case models.TransactionVariableExpense:
			if !tx.TransactionDate.Before(monthStart) && tx.TransactionDate.Before(monthEnd) {
				summary.TotalVariableExpenses += tx.Amount
			}
		case models.TransactionEarning:
			if !tx.TransactionDate.Before(monthStart) && tx.TransactionDate.Before(monthEnd) {
				summary.TotalExtraEarnings += tx.Amount
			}
		}
	}

	summary.TotalExpenses = summary.TotalFixedExpenses + summary.TotalVariableExpenses
	adjustedIncome := summary.TotalMonthlyIncome + summary.TotalExtraEarnings
	summary.NetMonthly = adjustedIncome - summary.TotalExpenses
	summary.NetDaily = summary.NetMonthly / 30
	if adjustedIncome > 0 {
		summary.SavingsRate = summary.NetMonthly / adjustedIncome * 100
	}

	return summary
}

// Summary computes the caller's budget summary for the current month.
func (s *BudgetService) Summary(ctx context.Context, userID primitive.ObjectID) (*models.BudgetSummary, error) {
	incomes, err := s.incomeRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewStorage("fetch incomes", err)
	}
	transactions, err := s.transactionRepo.GetByUser(ctx, userID, 0)
	if err != nil {
		return nil, apperrors.NewStorage("fetch transactions", err)
	}

	summary := ComputeSummary(incomes, transactions, time.Now().UTC())
	return &summary, nil
}

// DailyDisposableIncome is the feasibility ceiling for the caller's goals.
func (s *BudgetService) DailyDisposableIncome(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	summary, err := s.Summary(ctx, userID)
	if err != nil {
		return 0, err
	}
	return summary.NetDaily, nil
}
