package services

import (
	"context"
	"errors"
	"testing"

	"github.com/finmate/finmate-server/internal/apperrors"
	"github.com/finmate/finmate-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const sampleAnalysisResponse = `Here is my analysis of your departments.

### RECOMMENDATION 1: Consolidate marketing tooling
**Priority:** HIGH
**Potential Savings:** $2,400/month
**Impact Area:** Marketing
**Why This Matters:** The marketing department runs three overlapping analytics platforms. Consolidating onto one would cut licensing costs without losing capability.
**Action Steps:**
- Audit current tool usage across the team
- Cancel the two least-used subscriptions
- Renegotiate the remaining contract annually

---

### RECOMMENDATION 2: Shift support to async channels
**Priority:** MEDIUM
**Potential Savings:** $1,100/month
**Impact Area:** Customer Support
**Why This Matters:** Phone support consumes most of the support budget but handles a minority of tickets.
**Action Steps:**
- Move FAQ traffic to the help center
- Limit phone hours to peak windows
`

func TestParseSuggestions(t *testing.T) {
	suggestions, fallback := ParseSuggestions(sampleAnalysisResponse)
	require.False(t, fallback)
	require.Len(t, suggestions, 2)

	first := suggestions[0]
	assert.Equal(t, "Consolidate marketing tooling", first.Title)
	assert.Equal(t, "HIGH", first.Priority)
	assert.Equal(t, "$2,400/month", first.PotentialSavings)
	assert.Equal(t, "Marketing", first.ImpactArea)
	assert.Contains(t, first.Description, "overlapping analytics platforms")
	require.Len(t, first.ActionItems, 3)
	assert.Equal(t, "Audit current tool usage across the team", first.ActionItems[0])

	second := suggestions[1]
	assert.Equal(t, "Shift support to async channels", second.Title)
	assert.Equal(t, "MEDIUM", second.Priority)
	assert.Len(t, second.ActionItems, 2)
}

func TestParseSuggestions_GrowthFormat(t *testing.T) {
	raw := `### RECOMMENDATION 1: Double down on engineering
**Priority:** high
**Expected Revenue Increase:** $5,000/month
**Impact Area:** Engineering
**Growth Strategy:** The engineering department has the highest efficiency rating and the clearest path to shipping revenue features faster.
**Action Steps:**
- Hire one senior engineer
`
	suggestions, fallback := ParseSuggestions(raw)
	require.False(t, fallback)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "HIGH", suggestions[0].Priority)
	assert.Equal(t, "$5,000/month", suggestions[0].PotentialSavings)
	assert.Contains(t, suggestions[0].Description, "highest efficiency rating")
}

func TestParseSuggestions_FallbackOnUnstructuredText(t *testing.T) {
	raw := "Your departments look broadly healthy. Consider reviewing the marketing budget quarterly and keeping engineering staffed."

	suggestions, fallback := ParseSuggestions(raw)
	require.True(t, fallback)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Analysis", suggestions[0].Title)
	assert.Equal(t, raw, suggestions[0].Description)
	assert.Equal(t, "MEDIUM", suggestions[0].Priority)
}

func TestAnalyzeBusiness_Validation(t *testing.T) {
	svc := NewAnalysisService(nil, nil, nil, nil)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.AnalyzeBusiness(ctx, userID, "PROFIT", 0)
	assert.True(t, apperrors.IsValidation(err), "unknown goal type")

	_, err = svc.AnalyzeBusiness(ctx, userID, "GROWTH", 0)
	assert.True(t, apperrors.IsValidation(err), "growth without target")
}

func TestAnalyzeGoal_BadID(t *testing.T) {
	svc := NewAnalysisService(nil, nil, nil, nil)

	_, err := svc.AnalyzeGoal(context.Background(), primitive.NewObjectID(), "not-hex")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAnalyzeGoal_MissingGoalIsNotFound(t *testing.T) {
	svc := NewAnalysisService(nil, &fakeGoalStore{getErr: mongo.ErrNoDocuments}, nil, nil)

	_, err := svc.AnalyzeGoal(context.Background(), primitive.NewObjectID(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAnalyzeGoal_FetchFailureIsStorageError(t *testing.T) {
	svc := NewAnalysisService(nil, &fakeGoalStore{getErr: errors.New("connection reset")}, nil, nil)

	_, err := svc.AnalyzeGoal(context.Background(), primitive.NewObjectID(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
	assert.False(t, apperrors.IsNotFound(err))
}

func TestAnalyzeGoal_CompletedGoalIsConflict(t *testing.T) {
	userID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()
	svc := NewAnalysisService(nil, &fakeGoalStore{goal: &models.Goal{
		ID:          goalID,
		UserID:      userID,
		IsCompleted: true,
	}}, nil, nil)

	_, err := svc.AnalyzeGoal(context.Background(), userID, goalID.Hex())
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestParseSuggestions_SkipsTinyBlocks(t *testing.T) {
	raw := "### RECOMMENDATION 1: Too short\nok\n### RECOMMENDATION 2: A real one\n**Priority:** LOW\n**Why This Matters:** This block is long enough to be treated as a genuine recommendation with content."

	suggestions, fallback := ParseSuggestions(raw)
	require.False(t, fallback)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "A real one", suggestions[0].Title)
	assert.Equal(t, "LOW", suggestions[0].Priority)
}
