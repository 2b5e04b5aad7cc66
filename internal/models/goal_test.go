package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGoal() *Goal {
	return &Goal{
		Name:           "Vacation",
		TargetAmount:   1000,
		RequiredAmount: 1000,
		TargetDate:     time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestApplyContribution_Accumulates(t *testing.T) {
	goal := newTestGoal()
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)

	justCompleted := goal.ApplyContribution(100, now)
	assert.False(t, justCompleted)
	assert.Equal(t, 100.00, goal.CurrentAmount)
	assert.False(t, goal.IsCompleted)
	assert.Nil(t, goal.CompletedAt)

	goal.ApplyContribution(50, now)
	assert.Equal(t, 150.00, goal.CurrentAmount)
}

func TestApplyContribution_CompletesGoal(t *testing.T) {
	goal := newTestGoal()
	goal.CurrentAmount = 950
	now := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)

	justCompleted := goal.ApplyContribution(50, now)
	assert.True(t, justCompleted)
	assert.True(t, goal.IsCompleted)
	assert.Equal(t, 1000.00, goal.CurrentAmount)
	require.NotNil(t, goal.CompletedAt)
	assert.Equal(t, now, *goal.CompletedAt)
}

func TestApplyContribution_OverpayCompletesOnce(t *testing.T) {
	goal := newTestGoal()
	goal.CurrentAmount = 990
	now := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)

	justCompleted := goal.ApplyContribution(500, now)
	assert.True(t, justCompleted)
	firstCompletedAt := *goal.CompletedAt

	later := now.Add(48 * time.Hour)
	justCompleted = goal.ApplyContribution(10, later)
	assert.False(t, justCompleted)
	assert.Equal(t, firstCompletedAt, *goal.CompletedAt)
	assert.Equal(t, 1500.00, goal.CurrentAmount)
}

func TestRecalculateRates(t *testing.T) {
	goal := newTestGoal()
	now := time.Date(2026, time.May, 22, 0, 0, 0, 0, time.UTC) // 10 days out

	goal.RecalculateRates(now)
	assert.Equal(t, 10, goal.DaysRemaining)
	assert.Equal(t, 100.00, goal.DailySaveRate)
	assert.Equal(t, 700.00, goal.WeeklySaveRate)
}

func TestRecalculateRates_DeadlineToday(t *testing.T) {
	goal := newTestGoal()
	goal.CurrentAmount = 400
	now := goal.TargetDate.Add(6 * time.Hour)

	goal.RecalculateRates(now)
	assert.Equal(t, 0, goal.DaysRemaining)
	assert.Equal(t, 600.00, goal.DailySaveRate)
}

func TestRecalculateRates_PastDeadlineClampsToZeroDays(t *testing.T) {
	goal := newTestGoal()
	now := goal.TargetDate.AddDate(0, 0, 5)

	goal.RecalculateRates(now)
	assert.Equal(t, 0, goal.DaysRemaining)
	assert.Equal(t, 1000.00, goal.DailySaveRate)
}

func TestRemainingToSave(t *testing.T) {
	goal := newTestGoal()
	assert.Equal(t, 1000.00, goal.RemainingToSave())

	goal.CurrentAmount = 1200
	assert.Equal(t, 0.00, goal.RemainingToSave())
}
