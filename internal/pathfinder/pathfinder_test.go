package pathfinder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculate_BasicRates(t *testing.T) {
	now := date(2026, time.January, 1)
	res := Calculate(Options{
		GoalAmount: 1000,
		TargetDate: date(2026, time.April, 11), // 100 days out
	}, now)

	assert.Equal(t, 100, res.DaysRemaining)
	assert.Equal(t, 10.00, res.DailySave)
	assert.Equal(t, 70.00, res.WeeklySave)
	assert.Equal(t, 300.00, res.MonthlySave)
	assert.Equal(t, 1000.00, res.RequiredAmount)
	assert.True(t, res.IsPossible)
	assert.False(t, res.IsOverdue)
	assert.Equal(t, "📊 100 days remaining", res.StatusMessage)
}

func TestCalculate_EmergencyFundBuffer(t *testing.T) {
	now := date(2026, time.January, 1)
	res := Calculate(Options{
		GoalAmount:      1000,
		TargetDate:      date(2026, time.April, 11),
		IsEmergencyFund: true,
	}, now)

	assert.Equal(t, 1200.00, res.RequiredAmount)
	assert.Equal(t, 12.00, res.DailySave)
	assert.Equal(t, 84.00, res.WeeklySave)
}

func TestCalculate_DeadlineToday(t *testing.T) {
	now := date(2026, time.March, 15)
	res := Calculate(Options{
		GoalAmount:   500,
		TargetDate:   now.Add(23 * time.Hour), // later today
		CurrentSaved: 0,
	}, now)

	assert.Equal(t, 0, res.DaysRemaining)
	assert.Equal(t, 500.00, res.DailySave)
	assert.Equal(t, 500.00, res.WeeklySave)
	assert.Equal(t, 500.00, res.MonthlySave)
	assert.True(t, res.IsPossible)
	assert.Equal(t, "⚠️ Today is the deadline!", res.StatusMessage)
	assert.Equal(t, "Save $500.00 today to hit your goal!", res.SavingsMessage)
}

func TestCalculate_Overdue(t *testing.T) {
	now := date(2026, time.March, 15)
	res := Calculate(Options{
		GoalAmount: 500,
		TargetDate: date(2026, time.March, 14),
	}, now)

	assert.True(t, res.IsOverdue)
	assert.False(t, res.IsPossible)
	assert.Equal(t, 0, res.DaysRemaining)
	assert.Zero(t, res.DailySave)
	assert.Zero(t, res.WeeklySave)
	assert.Equal(t, "❌ Target date has passed. Consider updating your goal.", res.StatusMessage)
	assert.Equal(t, "You still need $500.00", res.SavingsMessage)
}

func TestCalculate_AlreadyAchieved(t *testing.T) {
	now := date(2026, time.March, 15)
	res := Calculate(Options{
		GoalAmount:   500,
		TargetDate:   date(2026, time.June, 1),
		CurrentSaved: 500,
	}, now)

	assert.Zero(t, res.DailySave)
	assert.Equal(t, 100.00, res.ProgressPercentage)
	require.NotNil(t, res.ProjectedDate)
	assert.Equal(t, date(2026, time.March, 15), *res.ProjectedDate)
	assert.Equal(t, "🎉 Congratulations! You've reached your goal!", res.StatusMessage)
	assert.Equal(t, "Goal achieved!", res.SavingsMessage)
}

func TestCalculate_AchievedBeatsOverdue(t *testing.T) {
	now := date(2026, time.March, 15)
	res := Calculate(Options{
		GoalAmount:   500,
		TargetDate:   date(2026, time.January, 1),
		CurrentSaved: 600,
	}, now)

	assert.True(t, res.IsOverdue)
	assert.Equal(t, "Goal achieved!", res.SavingsMessage)
}

func TestCalculate_ZeroGoalAmount(t *testing.T) {
	now := date(2026, time.March, 15)
	res := Calculate(Options{
		GoalAmount: 0,
		TargetDate: date(2026, time.June, 1),
	}, now)

	assert.Equal(t, "Goal achieved!", res.SavingsMessage)
	assert.Zero(t, res.ProgressPercentage)
}

func TestCalculate_WeeklyIsSevenTimesDaily(t *testing.T) {
	now := date(2026, time.January, 1)
	res := Calculate(Options{
		GoalAmount: 1000,
		TargetDate: date(2026, time.January, 8), // 7 days, daily = 142.857...
	}, now)

	assert.Equal(t, 142.86, res.DailySave)
	assert.Equal(t, RoundCents(res.DailySave*7), res.WeeklySave)
	assert.Equal(t, 1000.02, res.WeeklySave)
}

func TestCalculate_IncomeFeasible(t *testing.T) {
	now := date(2026, time.January, 1)
	income := 50.0
	res := Calculate(Options{
		GoalAmount:            1000,
		TargetDate:            date(2026, time.April, 11),
		DailyDisposableIncome: &income,
	}, now)

	assert.True(t, res.IsPossible)
	// 10/day against 50/day leaves a buffer well over a week.
	assert.Equal(t, "🚀 Great pace! You have room to save even more.", res.StatusMessage)
}

func TestCalculate_IncomeTight(t *testing.T) {
	now := date(2026, time.January, 1)
	income := 10.0
	res := Calculate(Options{
		GoalAmount:            1000,
		TargetDate:            date(2026, time.April, 11),
		DailyDisposableIncome: &income,
	}, now)

	assert.True(t, res.IsPossible)
	assert.Equal(t, "💪 Tight but achievable. Stay focused!", res.StatusMessage)
}

func TestCalculate_IncomeInsufficient(t *testing.T) {
	now := date(2026, time.January, 1)
	income := 5.0
	res := Calculate(Options{
		GoalAmount:            1000,
		TargetDate:            date(2026, time.April, 11),
		DailyDisposableIncome: &income,
	}, now)

	assert.False(t, res.IsPossible)
	require.NotNil(t, res.ProjectedDate)
	// ceil(1000 / 5) = 200 days from Jan 1.
	assert.Equal(t, date(2026, time.January, 1).AddDate(0, 0, 200), *res.ProjectedDate)
	assert.Contains(t, res.SavingsMessage, "Jul 20, 2026")
}

func TestCalculate_NoDisposableIncome(t *testing.T) {
	now := date(2026, time.January, 1)
	income := 0.0
	res := Calculate(Options{
		GoalAmount:            1000,
		TargetDate:            date(2026, time.April, 11),
		DailyDisposableIncome: &income,
	}, now)

	assert.False(t, res.IsPossible)
	assert.Nil(t, res.ProjectedDate)
	assert.Equal(t, "❌ No disposable income available for savings.", res.StatusMessage)
	assert.Equal(t, "Review your budget to free up funds.", res.SavingsMessage)
}

func TestCalculate_TimeOfDayIgnored(t *testing.T) {
	// Two timestamps on the same calendar day must produce the same rates.
	morning := time.Date(2026, time.January, 1, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.January, 1, 23, 30, 0, 0, time.UTC)
	opts := Options{
		GoalAmount: 1000,
		TargetDate: time.Date(2026, time.April, 11, 18, 45, 0, 0, time.UTC),
	}

	resA := Calculate(opts, morning)
	resB := Calculate(opts, evening)
	assert.Equal(t, resA.DaysRemaining, resB.DaysRemaining)
	assert.Equal(t, resA.DailySave, resB.DailySave)
}

func TestCalculate_ProgressClamped(t *testing.T) {
	now := date(2026, time.January, 1)
	res := Calculate(Options{
		GoalAmount:   100,
		TargetDate:   date(2026, time.June, 1),
		CurrentSaved: 250,
	}, now)

	assert.Equal(t, 100.00, res.ProgressPercentage)
}

func TestDaysUntil(t *testing.T) {
	now := date(2026, time.March, 15)
	assert.Equal(t, 0, DaysUntil(date(2026, time.March, 15), now))
	assert.Equal(t, 1, DaysUntil(date(2026, time.March, 16), now))
	assert.Equal(t, -1, DaysUntil(date(2026, time.March, 14), now))
	assert.Equal(t, 31, DaysUntil(date(2026, time.April, 15), now))
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 10.01, RoundCents(10.005))
	assert.Equal(t, -10.01, RoundCents(-10.005))
	assert.Equal(t, 10.00, RoundCents(10.004))
	assert.Equal(t, 142.86, RoundCents(1000.0/7))
}

func TestRequiredAmount(t *testing.T) {
	assert.Equal(t, 1000.00, RequiredAmount(1000, false))
	assert.Equal(t, 1200.00, RequiredAmount(1000, true))
}
