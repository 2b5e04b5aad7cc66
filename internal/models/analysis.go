package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Analysis goal types for business accounts.
const (
	AnalysisEfficiency = "EFFICIENCY"
	AnalysisGrowth     = "GROWTH"
)

// Suggestion is one structured recommendation extracted from a free-text
// model response.
type Suggestion struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	PotentialSavings string   `json:"potential_savings,omitempty"`
	Priority         string   `json:"priority"`
	ActionItems      []string `json:"action_items,omitempty"`
	ImpactArea       string   `json:"impact_area,omitempty"`
}

// BusinessAnalysis bundles one analysis run over a company's departments.
// Fallback is true when the model output could not be parsed and
// Suggestions carries the raw text as a single entry.
type BusinessAnalysis struct {
	GoalType        string       `json:"goal_type"`
	TotalBudget     float64      `json:"total_budget"`
	AvgEfficiency   float64      `json:"avg_efficiency"`
	DepartmentCount int          `json:"department_count"`
	Suggestions     []Suggestion `json:"suggestions"`
	RawResponse     string       `json:"raw_response"`
	Fallback        bool         `json:"fallback"`
}

// GoalAnalysis is the AI savings plan for one personal goal, together with
// the locally computed feasibility metrics the prompt was built from.
type GoalAnalysis struct {
	GoalID           primitive.ObjectID `json:"goal_id"`
	DaysRemaining    int                `json:"days_remaining"`
	AmountRemaining  float64            `json:"amount_remaining"`
	RequiredDaily    float64            `json:"required_daily"`
	RequiredWeekly   float64            `json:"required_weekly"`
	RequiredMonthly  float64            `json:"required_monthly"`
	DailyDisposable  float64            `json:"daily_disposable"`
	IsFeasible       bool               `json:"is_feasible"`
	FeasibilityScore float64            `json:"feasibility_score"`
	Plan             string             `json:"plan"`
}
