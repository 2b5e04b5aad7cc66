package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/finmate/finmate-server/internal/apperrors"
	"github.com/finmate/finmate-server/internal/models"
	"github.com/finmate/finmate-server/internal/pathfinder"
	"github.com/finmate/finmate-server/internal/repository"
	"github.com/finmate/finmate-server/pkg/ai"
	"github.com/finmate/finmate-server/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AnalysisService turns department and goal data into prompts, calls the
// model and parses the response into structured suggestions.
type AnalysisService struct {
	departmentRepo *repository.DepartmentRepository
	goalRepo       GoalStore
	budgetService  *BudgetService
	client         *ai.Client
}

// NewAnalysisService creates a new instance of AnalysisService.
func NewAnalysisService(departmentRepo *repository.DepartmentRepository, goalRepo GoalStore, budgetService *BudgetService, client *ai.Client) *AnalysisService {
	return &AnalysisService{
		departmentRepo: departmentRepo,
		goalRepo:       goalRepo,
		budgetService:  budgetService,
		client:         client,
	}
}

var (
	recommendationSplit = regexp.MustCompile(`(?i)###\s*RECOMMENDATION\s*\d+:`)
	priorityPattern     = regexp.MustCompile(`(?i)\*\*Priority:\*\*\s*(HIGH|MEDIUM|LOW)`)
	savingsPattern      = regexp.MustCompile(`(?i)\*\*(?:Potential Savings|Expected Revenue Increase|Investment Needed):\*\*\s*([^\n]+)`)
	impactPattern       = regexp.MustCompile(`(?i)\*\*Impact Area:\*\*\s*([^\n]+)`)
	descriptionPattern  = regexp.MustCompile(`(?is)\*\*(?:Why This Matters|Growth Strategy):\*\*\s*(.*?)(?:\*\*Action Steps|\*\*Funding|---|$)`)
	actionStepsPattern  = regexp.MustCompile(`(?is)\*\*Action Steps:\*\*\s*(.*?)(?:\*\*|---|$)`)
)

// AnalyzeBusiness runs an efficiency or growth review over the caller's
// active departments. growthTarget only matters for GROWTH runs.
func (s *AnalysisService) AnalyzeBusiness(ctx context.Context, userID primitive.ObjectID, goalType string, growthTarget float64) (*models.BusinessAnalysis, error) {
	if goalType != models.AnalysisEfficiency && goalType != models.AnalysisGrowth {
		return nil, apperrors.NewValidation("goal_type", "must be EFFICIENCY or GROWTH")
	}
	if goalType == models.AnalysisGrowth && growthTarget <= 0 {
		return nil, apperrors.NewValidation("growth_target", "must be greater than 0")
	}

	departments, err := s.departmentRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewStorage("fetch departments", err)
	}
	if len(departments) == 0 {
		return nil, apperrors.NewValidation("departments", "add at least one department before running an analysis")
	}

	totalBudget := 0.0
	totalEfficiency := 0
	for _, d := range departments {
		totalBudget += d.TotalBudget
		totalEfficiency += d.EfficiencyRating
	}
	avgEfficiency := float64(totalEfficiency) / float64(len(departments))

	var prompt string
	if goalType == models.AnalysisEfficiency {
		prompt = buildEfficiencyPrompt(departments, totalBudget, avgEfficiency)
	} else {
		prompt = buildGrowthPrompt(departments, totalBudget, avgEfficiency, growthTarget)
	}

	raw, err := s.client.Generate(ctx, prompt)
	if err != nil {
		logger.Log.WithError(err).Error("Business analysis model call failed")
		return nil, fmt.Errorf("failed to generate analysis: %w", err)
	}

	suggestions, fallback := ParseSuggestions(raw)

	logger.Log.WithFields(logrus.Fields{
		"user_id":     userID.Hex(),
		"goal_type":   goalType,
		"suggestions": len(suggestions),
		"fallback":    fallback,
	}).Info("Business analysis completed")

	return &models.BusinessAnalysis{
		GoalType:        goalType,
		TotalBudget:     totalBudget,
		AvgEfficiency:   math.Round(avgEfficiency*10) / 10,
		DepartmentCount: len(departments),
		Suggestions:     suggestions,
		RawResponse:     raw,
		Fallback:        fallback,
	}, nil
}

func buildEfficiencyPrompt(departments []models.Department, totalBudget, avgEfficiency float64) string {
	var sb strings.Builder
	sb.WriteString("You are a business efficiency consultant. Analyze these departments and recommend where to cut costs without hurting operations.\n\n")
	fmt.Fprintf(&sb, "Total budget: $%.2f/month across %d departments. Average efficiency rating: %.1f/10.\n\nDepartments:\n", totalBudget, len(departments), avgEfficiency)
	for _, d := range departments {
		fmt.Fprintf(&sb, "- %s: $%.2f/month, efficiency %d/10", d.Name, d.TotalBudget, d.EfficiencyRating)
		if d.Headcount != nil {
			fmt.Fprintf(&sb, ", %d people", *d.Headcount)
		}
		if d.Description != "" {
			fmt.Fprintf(&sb, ". %s", d.Description)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\nFocus on the lowest-efficiency departments first. Give exactly 3 recommendations in this format:\n\n")
	sb.WriteString("### RECOMMENDATION 1: [short title]\n")
	sb.WriteString("**Priority:** HIGH, MEDIUM or LOW\n")
	sb.WriteString("**Potential Savings:** [dollar estimate per month]\n")
	sb.WriteString("**Impact Area:** [department or function]\n")
	sb.WriteString("**Why This Matters:** [2-3 sentences]\n")
	sb.WriteString("**Action Steps:**\n- [step]\n- [step]\n")
	return sb.String()
}

func buildGrowthPrompt(departments []models.Department, totalBudget, avgEfficiency, growthTarget float64) string {
	var sb strings.Builder
	sb.WriteString("You are a business growth strategist. Analyze these departments and recommend where to invest to grow revenue.\n\n")
	fmt.Fprintf(&sb, "Total budget: $%.2f/month across %d departments. Average efficiency rating: %.1f/10. Growth target: $%.2f additional monthly revenue.\n\nDepartments:\n", totalBudget, len(departments), avgEfficiency, growthTarget)
	for _, d := range departments {
		fmt.Fprintf(&sb, "- %s: $%.2f/month, efficiency %d/10", d.Name, d.TotalBudget, d.EfficiencyRating)
		if d.Headcount != nil {
			fmt.Fprintf(&sb, ", %d people", *d.Headcount)
		}
		if d.Description != "" {
			fmt.Fprintf(&sb, ". %s", d.Description)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\nFavor the highest-efficiency departments for new investment. Give exactly 3 recommendations in this format:\n\n")
	sb.WriteString("### RECOMMENDATION 1: [short title]\n")
	sb.WriteString("**Priority:** HIGH, MEDIUM or LOW\n")
	sb.WriteString("**Expected Revenue Increase:** [dollar estimate per month]\n")
	sb.WriteString("**Impact Area:** [department or function]\n")
	sb.WriteString("**Growth Strategy:** [2-3 sentences]\n")
	sb.WriteString("**Action Steps:**\n- [step]\n- [step]\n")
	return sb.String()
}

// ParseSuggestions splits a markdown model response into structured
// suggestions. The second return value is true when nothing parsed and the
// raw text was wrapped as a single fallback suggestion.
func ParseSuggestions(raw string) ([]models.Suggestion, bool) {
	blocks := recommendationSplit.Split(raw, -1)
	var suggestions []models.Suggestion

	// blocks[0] is whatever precedes the first heading.
	for _, block := range blocks[1:] {
		block = strings.TrimSpace(block)
		if len(block) < 50 {
			continue
		}

		sug := models.Suggestion{Priority: "MEDIUM"}

		lines := strings.SplitN(block, "\n", 2)
		sug.Title = strings.TrimSpace(strings.Trim(lines[0], "*# "))

		if m := priorityPattern.FindStringSubmatch(block); m != nil {
			sug.Priority = strings.ToUpper(m[1])
		}
		if m := savingsPattern.FindStringSubmatch(block); m != nil {
			sug.PotentialSavings = strings.TrimSpace(m[1])
		}
		if m := impactPattern.FindStringSubmatch(block); m != nil {
			sug.ImpactArea = strings.TrimSpace(m[1])
		}
		if m := descriptionPattern.FindStringSubmatch(block); m != nil {
			sug.Description = strings.TrimSpace(m[1])
		}
		if m := actionStepsPattern.FindStringSubmatch(block); m != nil {
			for _, line := range strings.Split(m[1], "\n") {
				line = strings.TrimSpace(line)
				if strings.HasPrefix(line, "- ") {
					sug.ActionItems = append(sug.ActionItems, strings.TrimPrefix(line, "- "))
				}
			}
		}

		if sug.Title != "" {
			suggestions = append(suggestions, sug)
		}
	}

	if len(suggestions) == 0 {
		return []models.Suggestion{{
			Title:       "Analysis",
			Description: strings.TrimSpace(raw),
			Priority:    "MEDIUM",
		}}, true
	}
	return suggestions, false
}

// AnalyzeGoal builds a savings plan for one of the caller's goals, combining
// locally computed feasibility metrics with the model's narrative plan.
func (s *AnalysisService) AnalyzeGoal(ctx context.Context, userID primitive.ObjectID, goalID string) (*models.GoalAnalysis, error) {
	objID, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return nil, apperrors.NewNotFound("goal")
	}

	goal, err := s.goalRepo.GetGoalByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("goal")
		}
		return nil, apperrors.NewStorage("fetch goal", err)
	}
	if goal.UserID != userID {
		return nil, apperrors.NewNotFound("goal")
	}
	if goal.IsCompleted {
		return nil, apperrors.NewConflict("goal is already completed")
	}

	now := time.Now().UTC()
	remaining := goal.RemainingToSave()
	days := pathfinder.DaysUntil(goal.TargetDate, now)
	if days < 0 {
		days = 0
	}

	requiredDaily := remaining
	if days > 0 {
		requiredDaily = remaining / float64(days)
	}
	requiredDaily = pathfinder.RoundCents(requiredDaily)
	requiredWeekly := pathfinder.RoundCents(requiredDaily * 7)
	requiredMonthly := pathfinder.RoundCents(requiredDaily * 30)

	disposable, err := s.budgetService.DailyDisposableIncome(ctx, userID)
	if err != nil {
		return nil, err
	}

	isFeasible := disposable >= requiredDaily
	score := 0.0
	if disposable > 0 && requiredDaily > 0 {
		score = math.Min(100, disposable/requiredDaily*100)
		score = math.Round(score*10) / 10
	} else if requiredDaily == 0 {
		score = 100
	}

	prompt := fmt.Sprintf(
		"You are a personal finance coach. Write a short, encouraging savings plan.\n\n"+
			"Goal: %s\nRemaining to save: $%.2f\nDays until deadline: %d\n"+
			"Required: $%.2f/day ($%.2f/week, $%.2f/month)\nDaily disposable income: $%.2f\nFeasible at current income: %t\n\n"+
			"Give 3-5 concrete steps. Keep it under 200 words.",
		goal.Name, remaining, days, requiredDaily, requiredWeekly, requiredMonthly, disposable, isFeasible)

	plan, err := s.client.Generate(ctx, prompt)
	if err != nil {
		logger.Log.WithError(err).Error("Goal analysis model call failed")
		return nil, fmt.Errorf("failed to generate savings plan: %w", err)
	}

	return &models.GoalAnalysis{
		GoalID:           goal.ID,
		DaysRemaining:    days,
		AmountRemaining:  pathfinder.RoundCents(remaining),
		RequiredDaily:    requiredDaily,
		RequiredWeekly:   requiredWeekly,
		RequiredMonthly:  requiredMonthly,
		DailyDisposable:  pathfinder.RoundCents(disposable),
		IsFeasible:       isFeasible,
		FeasibilityScore: score,
		Plan:             strings.TrimSpace(plan),
	}, nil
}
