package services

import (
	"context"
	"testing"
	"time"

	"github.com/finmate/finmate-server/internal/apperrors"
	"github.com/finmate/finmate-server/internal/models"
	"github.com/finmate/finmate-server/pkg/logger"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeGoalStore satisfies GoalStore with canned responses.
type fakeGoalStore struct {
	goal       *models.Goal
	getErr     error
	applyGoal  *models.Goal
	applyJust  bool
	applyErr   error
	applyCalls int
}

func (f *fakeGoalStore) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	return goal, nil
}

func (f *fakeGoalStore) GetGoalByID(ctx context.Context, id primitive.ObjectID) (*models.Goal, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.goal, nil
}

func (f *fakeGoalStore) GetGoalsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Goal, error) {
	return nil, nil
}

func (f *fakeGoalStore) UpdateGoal(ctx context.Context, id primitive.ObjectID, goal *models.Goal) (*models.Goal, error) {
	return goal, nil
}

func (f *fakeGoalStore) DeleteGoal(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (f *fakeGoalStore) ApplyContribution(ctx context.Context, contrib *models.Contribution, now time.Time) (*models.Goal, bool, error) {
	f.applyCalls++
	if f.applyErr != nil {
		return nil, false, f.applyErr
	}
	return f.applyGoal, f.applyJust, nil
}

type fakeContributionStore struct {
	history []models.Contribution
	total   float64
}

func (f *fakeContributionStore) GetContributionsByGoal(ctx context.Context, goalID primitive.ObjectID, limit int64) ([]models.Contribution, error) {
	return f.history, nil
}

func (f *fakeContributionStore) SumByGoal(ctx context.Context, goalID primitive.ObjectID) (float64, error) {
	return f.total, nil
}

func captureLogs(t *testing.T) *logrustest.Hook {
	t.Helper()
	prev := logger.Log
	nullLogger, hook := logrustest.NewNullLogger()
	logger.Log = nullLogger
	t.Cleanup(func() { logger.Log = prev })
	return hook
}

// Validation failures must be caught before any repository call, so a
// service with nil repositories exercises them safely.

func TestContribute_RejectsNonPositiveAmount(t *testing.T) {
	svc := NewGoalService(nil, nil, nil)

	_, err := svc.Contribute(context.Background(), primitive.NewObjectID(), primitive.NewObjectID().Hex(), -5, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Contribute(context.Background(), primitive.NewObjectID(), primitive.NewObjectID().Hex(), 0, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestContribute_CompletedGoalRejected(t *testing.T) {
	userID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()
	completedAt := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeGoalStore{goal: &models.Goal{
		ID:             goalID,
		UserID:         userID,
		RequiredAmount: 1000,
		CurrentAmount:  1000,
		IsCompleted:    true,
		CompletedAt:    &completedAt,
	}}
	svc := NewGoalService(store, nil, nil)

	_, err := svc.Contribute(context.Background(), userID, goalID.Hex(), 25, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Zero(t, store.applyCalls, "a frozen ledger must never reach the write path")
}

func TestContribute_CompletionRaceIsConflict(t *testing.T) {
	userID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()
	store := &fakeGoalStore{
		goal: &models.Goal{
			ID:             goalID,
			UserID:         userID,
			RequiredAmount: 1000,
			CurrentAmount:  990,
		},
		applyErr: mongo.ErrNoDocuments,
	}
	svc := NewGoalService(store, nil, nil)

	_, err := svc.Contribute(context.Background(), userID, goalID.Hex(), 25, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, 1, store.applyCalls)
}

func TestContribute_OtherUsersGoalIsNotFound(t *testing.T) {
	goalID := primitive.NewObjectID()
	store := &fakeGoalStore{goal: &models.Goal{
		ID:             goalID,
		UserID:         primitive.NewObjectID(),
		RequiredAmount: 1000,
	}}
	svc := NewGoalService(store, nil, nil)

	_, err := svc.Contribute(context.Background(), primitive.NewObjectID(), goalID.Hex(), 25, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Zero(t, store.applyCalls)
}

func TestGetContributions_FlagsAggregateDrift(t *testing.T) {
	hook := captureLogs(t)

	userID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()
	store := &fakeGoalStore{goal: &models.Goal{
		ID:             goalID,
		UserID:         userID,
		RequiredAmount: 1000,
		CurrentAmount:  30,
	}}
	contributions := &fakeContributionStore{
		history: []models.Contribution{{GoalID: goalID, Amount: 10}, {GoalID: goalID, Amount: 40}},
		total:   50,
	}
	svc := NewGoalService(store, contributions, nil)

	got, err := svc.GetContributions(context.Background(), userID, goalID.Hex(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, 50.0, hook.LastEntry().Data["history_total"])
}

func TestGetContributions_ConsistentAggregateIsQuiet(t *testing.T) {
	hook := captureLogs(t)

	userID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()
	store := &fakeGoalStore{goal: &models.Goal{
		ID:             goalID,
		UserID:         userID,
		RequiredAmount: 1000,
		CurrentAmount:  50,
	}}
	contributions := &fakeContributionStore{
		history: []models.Contribution{{GoalID: goalID, Amount: 10}, {GoalID: goalID, Amount: 40}},
		total:   50,
	}
	svc := NewGoalService(store, contributions, nil)

	_, err := svc.GetContributions(context.Background(), userID, goalID.Hex(), 0)
	require.NoError(t, err)
	assert.Empty(t, hook.Entries)
}

func TestContribute_BadGoalIDIsNotFound(t *testing.T) {
	svc := NewGoalService(nil, nil, nil)

	_, err := svc.Contribute(context.Background(), primitive.NewObjectID(), "not-a-hex-id", 10, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateGoal_Validation(t *testing.T) {
	svc := NewGoalService(nil, nil, nil)
	userID := primitive.NewObjectID()

	_, err := svc.CreateGoal(context.Background(), userID, CreateGoalInput{
		TargetAmount: 100, TargetDate: "2026-12-31",
	})
	assert.True(t, apperrors.IsValidation(err), "missing name")

	_, err = svc.CreateGoal(context.Background(), userID, CreateGoalInput{
		Name: "Car", TargetAmount: 0, TargetDate: "2026-12-31",
	})
	assert.True(t, apperrors.IsValidation(err), "non-positive target")

	_, err = svc.CreateGoal(context.Background(), userID, CreateGoalInput{
		Name: "Car", TargetAmount: 100, TargetDate: "next tuesday",
	})
	assert.True(t, apperrors.IsValidation(err), "unparseable date")
}

func TestPreview(t *testing.T) {
	svc := NewGoalService(nil, nil, nil)

	future := time.Now().UTC().AddDate(0, 0, 10).Format("2006-01-02")
	res, err := svc.Preview(PreviewInput{
		GoalAmount: 1000,
		TargetDate: future,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, res.DaysRemaining)
	assert.Equal(t, 100.00, res.DailySave)
	assert.True(t, res.IsPossible)
}

func TestPreview_Validation(t *testing.T) {
	svc := NewGoalService(nil, nil, nil)

	_, err := svc.Preview(PreviewInput{GoalAmount: -1, TargetDate: "2026-12-31"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Preview(PreviewInput{GoalAmount: 100, TargetDate: "soon"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2026-06-01T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, 15, got.Hour())

	_, err = ParseDate("06/01/2026")
	assert.Error(t, err)
}
