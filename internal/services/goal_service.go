package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/finmate/finmate-server/internal/apperrors"
	"github.com/finmate/finmate-server/internal/models"
	"github.com/finmate/finmate-server/internal/pathfinder"
	"github.com/finmate/finmate-server/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GoalStore is the goal persistence surface the services consume.
// *repository.GoalRepository is the production implementation.
type GoalStore interface {
	CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	GetGoalByID(ctx context.Context, id primitive.ObjectID) (*models.Goal, error)
	GetGoalsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, id primitive.ObjectID, goal *models.Goal) (*models.Goal, error)
	DeleteGoal(ctx context.Context, id primitive.ObjectID) error
	ApplyContribution(ctx context.Context, contrib *models.Contribution, now time.Time) (*models.Goal, bool, error)
}

// ContributionStore reads contribution history. Inserts go through
// GoalStore.ApplyContribution so they share the goal's transaction.
type ContributionStore interface {
	GetContributionsByGoal(ctx context.Context, goalID primitive.ObjectID, limit int64) ([]models.Contribution, error)
	SumByGoal(ctx context.Context, goalID primitive.ObjectID) (float64, error)
}

// GoalService is the goal ledger: it owns goal creation, the contribution
// state machine and the pathfinder preview. A goal has two states, active
// and completed; completion is terminal and a completed ledger rejects
// further contributions.
type GoalService struct {
	repo                GoalStore
	contributionRepo    ContributionStore
	NotificationService *NotificationService
}

// NewGoalService creates a new instance of GoalService.
func NewGoalService(repo GoalStore, contributionRepo ContributionStore, notificationService *NotificationService) *GoalService {
	return &GoalService{
		repo:                repo,
		contributionRepo:    contributionRepo,
		NotificationService: notificationService,
	}
}

// CreateGoalInput carries the user-supplied fields of a new goal. The
// target date arrives as a string and parsing it is part of validation.
type CreateGoalInput struct {
	Name            string  `json:"name"`
	TargetAmount    float64 `json:"target_amount"`
	TargetDate      string  `json:"target_date"`
	IsEmergencyFund bool    `json:"is_emergency_fund"`
}

// ContributeResult is what one successful contribution returns.
// JustCompleted distinguishes "this call completed the goal" from "the
// goal was completed before", so the client can show a one-time
// celebration instead of a routine update.
type ContributeResult struct {
	Goal          *models.Goal         `json:"goal"`
	Contribution  *models.Contribution `json:"contribution"`
	JustCompleted bool                 `json:"just_completed"`
}

// CreateGoal validates the input, computes the required amount and the
// initial savings rates, and stores the goal. Creation only previews the
// required rate; it never gates on feasibility.
func (s *GoalService) CreateGoal(ctx context.Context, userID primitive.ObjectID, input CreateGoalInput) (*models.Goal, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidation("name", "is required")
	}
	if input.TargetAmount <= 0 {
		return nil, apperrors.NewValidation("target_amount", "must be greater than 0")
	}
	targetDate, err := ParseDate(input.TargetDate)
	if err != nil {
		return nil, apperrors.NewValidation("target_date", "must be an ISO date")
	}

	now := time.Now().UTC()
	goal := &models.Goal{
		UserID:          userID,
		Name:            input.Name,
		TargetAmount:    input.TargetAmount,
		RequiredAmount:  pathfinder.RequiredAmount(input.TargetAmount, input.IsEmergencyFund),
		TargetDate:      targetDate,
		IsEmergencyFund: input.IsEmergencyFund,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	goal.RecalculateRates(now)

	created, err := s.repo.CreateGoal(ctx, goal)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create goal")
		return nil, apperrors.NewStorage("create goal", err)
	}

	logger.Log.WithField("goal_id", created.ID.Hex()).Info("Goal created in service layer")
	return created, nil
}

// Contribute appends a contribution to an active goal and advances the
// ledger. The contribution record and the aggregate update land atomically;
// a contribution against a completed goal is rejected with a conflict.
func (s *GoalService) Contribute(ctx context.Context, userID primitive.ObjectID, goalID string, amount float64, note string) (*ContributeResult, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidation("amount", "must be greater than 0")
	}

	objID, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return nil, apperrors.NewNotFound("goal")
	}

	goal, err := s.getOwnedGoal(ctx, objID, userID)
	if err != nil {
		return nil, err
	}
	if goal.IsCompleted {
		return nil, apperrors.NewConflict("goal is already completed")
	}

	contrib := &models.Contribution{
		ID:     primitive.NewObjectID(),
		GoalID: objID,
		Amount: amount,
		Note:   note,
	}

	now := time.Now().UTC()
	updated, justCompleted, err := s.repo.ApplyContribution(ctx, contrib, now)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Lost the race against a contribution that completed the
			// goal; the ledger is frozen now.
			return nil, apperrors.NewConflict("goal is already completed")
		}
		return nil, apperrors.NewStorage("apply contribution", err)
	}

	if justCompleted {
		go func() {
			err := s.NotificationService.CreateNotification(
				context.Background(),
				updated.UserID,
				"goal_completed",
				"🎉 Goal Completed",
				fmt.Sprintf("You’ve reached your savings goal %q!", updated.Name),
				&updated.ID,
			)
			if err != nil {
				logrus.WithError(err).Warn("Failed to send goal completed notification")
			}
		}()
	}

	logger.Log.WithFields(logrus.Fields{
		"goal_id":        goalID,
		"amount":         amount,
		"just_completed": justCompleted,
	}).Info("Contribution recorded in service layer")

	return &ContributeResult{Goal: updated, Contribution: contrib, JustCompleted: justCompleted}, nil
}

// GetGoal retrieves one of the caller's goals with its rates refreshed
// against now. A goal owned by another account is reported as missing.
func (s *GoalService) GetGoal(ctx context.Context, userID primitive.ObjectID, goalID string) (*models.Goal, error) {
	objID, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return nil, apperrors.NewNotFound("goal")
	}

	goal, err := s.getOwnedGoal(ctx, objID, userID)
	if err != nil {
		return nil, err
	}

	// Completed goals are frozen; active ones show rates against today.
	if !goal.IsCompleted {
		goal.RecalculateRates(time.Now().UTC())
	}
	return goal, nil
}

// GetGoals retrieves all of the caller's goals, rates refreshed.
func (s *GoalService) GetGoals(ctx context.Context, userID primitive.ObjectID) ([]models.Goal, error) {
	goals, err := s.repo.GetGoalsByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewStorage("fetch goals", err)
	}

	now := time.Now().UTC()
	for i := range goals {
		if !goals[i].IsCompleted {
			goals[i].RecalculateRates(now)
		}
	}
	return goals, nil
}

// UpdateGoal changes a goal's name, target, date or buffer flag and
// recomputes the derived fields. A completed goal can no longer be updated.
func (s *GoalService) UpdateGoal(ctx context.Context, userID primitive.ObjectID, goalID string, input CreateGoalInput) (*models.Goal, error) {
	objID, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return nil, apperrors.NewNotFound("goal")
	}

	goal, err := s.getOwnedGoal(ctx, objID, userID)
	if err != nil {
		return nil, err
	}
	if goal.IsCompleted {
		return nil, apperrors.NewConflict("completed goals cannot be updated")
	}

	if input.Name == "" {
		return nil, apperrors.NewValidation("name", "is required")
	}
	if input.TargetAmount <= 0 {
		return nil, apperrors.NewValidation("target_amount", "must be greater than 0")
	}
	targetDate, err := ParseDate(input.TargetDate)
	if err != nil {
		return nil, apperrors.NewValidation("target_date", "must be an ISO date")
	}

	goal.Name = input.Name
	goal.TargetAmount = input.TargetAmount
	goal.IsEmergencyFund = input.IsEmergencyFund
	goal.RequiredAmount = pathfinder.RequiredAmount(input.TargetAmount, input.IsEmergencyFund)
	goal.TargetDate = targetDate
	goal.RecalculateRates(time.Now().UTC())

	updated, err := s.repo.UpdateGoal(ctx, objID, goal)
	if err != nil {
		return nil, apperrors.NewStorage("update goal", err)
	}
	return updated, nil
}

// DeleteGoal removes one of the caller's goals along with its contribution
// history.
func (s *GoalService) DeleteGoal(ctx context.Context, userID primitive.ObjectID, goalID string) error {
	objID, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return apperrors.NewNotFound("goal")
	}

	if _, err := s.getOwnedGoal(ctx, objID, userID); err != nil {
		return err
	}
	if err := s.repo.DeleteGoal(ctx, objID); err != nil {
		return apperrors.NewStorage("delete goal", err)
	}
	return nil
}

// GetContributions lists a goal's contribution history, newest first.
func (s *GoalService) GetContributions(ctx context.Context, userID primitive.ObjectID, goalID string, limit int64) ([]models.Contribution, error) {
	objID, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return nil, apperrors.NewNotFound("goal")
	}

	goal, err := s.getOwnedGoal(ctx, objID, userID)
	if err != nil {
		return nil, err
	}

	contributions, err := s.contributionRepo.GetContributionsByGoal(ctx, objID, limit)
	if err != nil {
		return nil, apperrors.NewStorage("fetch contributions", err)
	}

	// History reads double as a ledger audit: the goal's stored aggregate
	// must equal the recomputed sum of its records to the cent.
	if total, sumErr := s.contributionRepo.SumByGoal(ctx, objID); sumErr == nil {
		if math.Abs(total-goal.CurrentAmount) >= 0.01 {
			logger.Log.WithFields(logrus.Fields{
				"goal_id":        goalID,
				"current_amount": goal.CurrentAmount,
				"history_total":  total,
			}).Error("Goal aggregate drifted from contribution history")
		}
	}

	return contributions, nil
}

// PreviewInput is the payload of a stateless pathfinder preview.
type PreviewInput struct {
	GoalAmount            float64  `json:"goal_amount"`
	TargetDate            string   `json:"target_date"`
	IsEmergencyFund       bool     `json:"is_emergency_fund"`
	CurrentSaved          float64  `json:"current_saved"`
	DailyDisposableIncome *float64 `json:"daily_disposable_income,omitempty"`
}

// Preview runs the pathfinder without touching persistence, for "what
// would this goal look like" checks before submission.
func (s *GoalService) Preview(input PreviewInput) (*pathfinder.Result, error) {
	if input.GoalAmount < 0 {
		return nil, apperrors.NewValidation("goal_amount", "must not be negative")
	}
	targetDate, err := ParseDate(input.TargetDate)
	if err != nil {
		return nil, apperrors.NewValidation("target_date", "must be an ISO date")
	}

	result := pathfinder.Calculate(pathfinder.Options{
		GoalAmount:            input.GoalAmount,
		TargetDate:            targetDate,
		IsEmergencyFund:       input.IsEmergencyFund,
		CurrentSaved:          input.CurrentSaved,
		DailyDisposableIncome: input.DailyDisposableIncome,
	}, time.Now().UTC())
	return &result, nil
}

// getOwnedGoal fetches a goal and verifies ownership. A missing goal and a
// goal owned by someone else produce the same error.
func (s *GoalService) getOwnedGoal(ctx context.Context, goalID, userID primitive.ObjectID) (*models.Goal, error) {
	goal, err := s.repo.GetGoalByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("goal")
		}
		return nil, apperrors.NewStorage("fetch goal", err)
	}
	if goal.UserID != userID {
		return nil, apperrors.NewNotFound("goal")
	}
	return goal, nil
}

// ParseDate accepts an RFC 3339 timestamp or a bare ISO date.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
