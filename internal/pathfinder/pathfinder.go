// Package pathfinder implements the savings-path calculation behind every
// goal: given a target amount, target date and optional emergency-fund
// buffer, it derives the daily/weekly/monthly savings rates required to hit
// the goal and checks them against the user's disposable income.
//
// Calculate is a pure function of its inputs and the supplied "now"; the
// caller picks the time zone through now's location (the server passes UTC
// so day boundaries are deterministic).
package pathfinder

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// EmergencyFundMultiplier is the fixed 20% safety buffer applied to goals
// flagged as emergency funds.
const EmergencyFundMultiplier = 1.2

// Options are the inputs of one calculation. DailyDisposableIncome is
// optional; when nil the goal is treated as unconstrained by income.
type Options struct {
	GoalAmount            float64
	TargetDate            time.Time
	IsEmergencyFund       bool
	CurrentSaved          float64
	DailyDisposableIncome *float64
}

// Result is the outcome of one calculation. Monetary rates are rounded to
// cents, half away from zero.
type Result struct {
	DailySave          float64    `json:"daily_save"`
	WeeklySave         float64    `json:"weekly_save"`
	MonthlySave        float64    `json:"monthly_save"`
	DaysRemaining      int        `json:"days_remaining"`
	RequiredAmount     float64    `json:"required_amount"`
	IsPossible         bool       `json:"is_possible"`
	IsOverdue          bool       `json:"is_overdue"`
	ProgressPercentage float64    `json:"progress_percentage"`
	ProjectedDate      *time.Time `json:"projected_date,omitempty"`
	StatusMessage      string     `json:"status_message"`
	SavingsMessage     string     `json:"savings_message"`
}

// RequiredAmount applies the emergency-fund buffer to the nominal target.
func RequiredAmount(goalAmount float64, isEmergencyFund bool) float64 {
	if isEmergencyFund {
		return goalAmount * EmergencyFundMultiplier
	}
	return goalAmount
}

// StartOfDay strips the time-of-day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil is the signed number of whole days from now's calendar day to
// target's calendar day. Two timestamps on the same calendar day yield 0.
func DaysUntil(target, now time.Time) int {
	from := StartOfDay(now)
	to := StartOfDay(target.In(now.Location()))
	// Round absorbs the odd-length days around DST transitions.
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// RoundCents rounds a monetary amount to 2 decimal places, half away from
// zero.
func RoundCents(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}

// Calculate runs the full savings-path calculation for a fixed now.
func Calculate(opts Options, now time.Time) Result {
	today := StartOfDay(now)
	daysRemaining := DaysUntil(opts.TargetDate, now)

	requiredAmount := RequiredAmount(opts.GoalAmount, opts.IsEmergencyFund)
	remainingToSave := math.Max(0, requiredAmount-opts.CurrentSaved)

	progress := 0.0
	if requiredAmount > 0 {
		progress = clamp(opts.CurrentSaved/requiredAmount*100, 0, 100)
	}

	res := Result{
		DaysRemaining:      maxInt(0, daysRemaining),
		RequiredAmount:     requiredAmount,
		IsPossible:         true,
		IsOverdue:          daysRemaining < 0,
		ProgressPercentage: progress,
	}

	switch {
	case remainingToSave <= 0:
		// Already achieved, regardless of the deadline.
		projected := today
		res.ProjectedDate = &projected
		res.StatusMessage = "🎉 Congratulations! You've reached your goal!"
		res.SavingsMessage = "Goal achieved!"

	case daysRemaining == 0:
		// Deadline is today: the whole remainder is due now.
		due := RoundCents(remainingToSave)
		res.DailySave = due
		res.WeeklySave = due
		res.MonthlySave = due
		res.StatusMessage = "⚠️ Today is the deadline!"
		res.SavingsMessage = fmt.Sprintf("Save $%.2f today to hit your goal!", remainingToSave)

	case daysRemaining < 0:
		// Target date already passed: no valid savings window exists.
		res.IsPossible = false
		res.StatusMessage = "❌ Target date has passed. Consider updating your goal."
		res.SavingsMessage = fmt.Sprintf("You still need $%.2f", remainingToSave)

	default:
		daily := remainingToSave / float64(daysRemaining)
		res.DailySave = RoundCents(daily)
		// Weekly and monthly derive from the rounded daily rate so the
		// week = 7 x day identity holds exactly on the returned values.
		// The 30-day month is a deliberate approximation, not calendar
		// arithmetic.
		res.WeeklySave = RoundCents(res.DailySave * 7)
		res.MonthlySave = RoundCents(res.DailySave * 30)

		if opts.DailyDisposableIncome == nil {
			res.StatusMessage = fmt.Sprintf("📊 %d days remaining", daysRemaining)
			res.SavingsMessage = fmt.Sprintf("Save $%.2f/day or $%.2f/week", res.DailySave, res.WeeklySave)
			break
		}

		income := *opts.DailyDisposableIncome
		if daily > income {
			res.IsPossible = false
			if income > 0 {
				// The date the goal is actually reached at the user's
				// maximum sustainable rate.
				daysNeeded := int(math.Ceil(remainingToSave / income))
				projected := today.AddDate(0, 0, daysNeeded)
				res.ProjectedDate = &projected
				res.StatusMessage = fmt.Sprintf(
					"⚠️ This goal needs $%.2f/day, but you only have $%.2f/day available.",
					res.DailySave, income)
				res.SavingsMessage = fmt.Sprintf(
					"At your current rate, you'd reach this goal by %s",
					projected.Format("Jan 2, 2006"))
			} else {
				res.StatusMessage = "❌ No disposable income available for savings."
				res.SavingsMessage = "Review your budget to free up funds."
			}
			break
		}

		// Comfort-margin tiers, purely for user-facing messaging.
		bufferDays := int(math.Floor((income - daily) / daily * float64(daysRemaining)))
		switch {
		case bufferDays > 7:
			res.StatusMessage = "🚀 Great pace! You have room to save even more."
		case bufferDays > 0:
			res.StatusMessage = "✅ You're on track! Keep it up."
		default:
			res.StatusMessage = "💪 Tight but achievable. Stay focused!"
		}
		res.SavingsMessage = fmt.Sprintf("Save $%.2f/day or $%.2f/week", res.DailySave, res.WeeklySave)
	}

	return res
}

func clamp(v, min, max float64) float64 {
	return math.Min(math.Max(v, min), max)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
