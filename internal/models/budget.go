package models

// BudgetSummary is the derived monthly budget picture for one account.
// NetDaily doubles as the daily disposable income figure the pathfinder
// uses as its feasibility ceiling.
type BudgetSummary struct {
	TotalMonthlyIncome    float64 `json:"total_monthly_income"`
	TotalDailyIncome      float64 `json:"total_daily_income"`
	TotalExtraEarnings    float64 `json:"total_extra_earnings"`
	TotalFixedExpenses    float64 `json:"total_fixed_expenses"`
	TotalVariableExpenses float64 `json:"total_variable_expenses"`
	TotalExpenses         float64 `json:"total_expenses"`
	NetMonthly            float64 `json:"net_monthly"`
	NetDaily              float64 `json:"net_daily"`
	SavingsRate           float64 `json:"savings_rate"`
}
