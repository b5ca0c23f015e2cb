package plans

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryPlanHasCatalogEntry(t *testing.T) {
	for _, plan := range []PlanType{FreePlan, StarterPlan, CreatorPlan, BusinessPlan} {
		limits, exists := PlanCatalog[plan]
		require.True(t, exists, "plan %s missing from catalog", plan)
		assert.NotEmpty(t, limits.Name)
		assert.NotEmpty(t, limits.Features)
	}
}

func TestHasReachedLimit(t *testing.T) {
	tests := []struct {
		name    string
		plan    PlanType
		used    int
		reached bool
	}{
		{"free under limit", FreePlan, 2, false},
		{"free at limit", FreePlan, 3, true},
		{"free over limit", FreePlan, 10, true},
		{"free fresh month", FreePlan, 0, false},
		{"starter under limit", StarterPlan, 29, false},
		{"starter at limit", StarterPlan, 30, true},
		{"creator never limited", CreatorPlan, 100000, false},
		{"business never limited", BusinessPlan, 100000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.reached, HasReachedLimit(tt.plan, tt.used))
		})
	}
}

func TestRemainingVideosNeverNegative(t *testing.T) {
	assert.Equal(t, 3, RemainingVideos(FreePlan, 0))
	assert.Equal(t, 1, RemainingVideos(FreePlan, 2))
	assert.Equal(t, 0, RemainingVideos(FreePlan, 3))
	assert.Equal(t, 0, RemainingVideos(FreePlan, 50))
	assert.Equal(t, Unlimited, RemainingVideos(CreatorPlan, 50))
}

func TestRemainingVideosMonotonic(t *testing.T) {
	prev := RemainingVideos(StarterPlan, 0)
	for used := 1; used <= 40; used++ {
		cur := RemainingVideos(StarterPlan, used)
		assert.LessOrEqual(t, cur, prev, "remaining increased at usage %d", used)
		assert.GreaterOrEqual(t, cur, 0)
		prev = cur
	}
}

func TestPriceFor(t *testing.T) {
	monthly, custom := PriceFor(StarterPlan, BillingMonthly)
	assert.False(t, custom)
	assert.Equal(t, 19.0, monthly)

	yearly, custom := PriceFor(CreatorPlan, BillingYearly)
	assert.False(t, custom)
	assert.Equal(t, 29.0, yearly)

	_, custom = PriceFor(BusinessPlan, BillingMonthly)
	assert.True(t, custom)
}

func TestPriceJSONShape(t *testing.T) {
	fixed, err := json.Marshal(PlanCatalog[StarterPlan].Price)
	require.NoError(t, err)
	assert.JSONEq(t, `{"monthly":19,"yearly":15}`, string(fixed))

	custom, err := json.Marshal(PlanCatalog[BusinessPlan].Price)
	require.NoError(t, err)
	assert.Equal(t, `"custom"`, string(custom))
}

func TestIsValidPlan(t *testing.T) {
	assert.True(t, IsValidPlan(StarterPlan))
	assert.False(t, IsValidPlan(PlanType("enterprise")))
}
