package models

import (
	"math"
	"time"

	"github.com/finmate/finmate-server/internal/pathfinder"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal represents one savings target owned by a single user. CurrentAmount
// is the running sum of all contributions; the contribution records
// themselves live in their own collection and are never referenced back
// from the goal.
type Goal struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name            string             `bson:"name" json:"name"`
	TargetAmount    float64            `bson:"target_amount" json:"target_amount"`
	RequiredAmount  float64            `bson:"required_amount" json:"required_amount"`
	CurrentAmount   float64            `bson:"current_amount" json:"current_amount"`
	TargetDate      time.Time          `bson:"target_date" json:"target_date"`
	IsEmergencyFund bool               `bson:"is_emergency_fund" json:"is_emergency_fund"`
	DaysRemaining   int                `bson:"days_remaining" json:"days_remaining"`
	DailySaveRate   float64            `bson:"daily_save_rate" json:"daily_save_rate"`
	WeeklySaveRate  float64            `bson:"weekly_save_rate" json:"weekly_save_rate"`
	IsCompleted     bool               `bson:"is_completed" json:"is_completed"`
	CompletedAt     *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// RemainingToSave is how much is still missing to reach the required amount.
func (g *Goal) RemainingToSave() float64 {
	return math.Max(0, g.RequiredAmount-g.CurrentAmount)
}

// RecalculateRates refreshes the derived ledger fields against now. When
// the deadline is today or has passed, the whole remainder is due at once.
func (g *Goal) RecalculateRates(now time.Time) {
	days := pathfinder.DaysUntil(g.TargetDate, now)
	if days < 0 {
		days = 0
	}
	g.DaysRemaining = days

	remaining := g.RemainingToSave()
	if days > 0 {
		g.DailySaveRate = pathfinder.RoundCents(remaining / float64(days))
	} else {
		g.DailySaveRate = pathfinder.RoundCents(remaining)
	}
	g.WeeklySaveRate = pathfinder.RoundCents(g.DailySaveRate * 7)
}

// ApplyContribution adds amount to the aggregate, refreshes the derived
// fields and flips the goal to completed once the required amount is met.
// Completion is terminal: CompletedAt is written only on the first
// transition and never touched again. Returns true when this call triggered
// the transition.
func (g *Goal) ApplyContribution(amount float64, now time.Time) bool {
	g.CurrentAmount += amount
	g.UpdatedAt = now
	g.RecalculateRates(now)

	if g.IsCompleted || g.CurrentAmount < g.RequiredAmount {
		return false
	}

	g.IsCompleted = true
	completed := now
	g.CompletedAt = &completed
	return true
}
