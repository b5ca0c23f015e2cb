package usage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"repurposly_backend/internal/model"
	"repurposly_backend/pkg/plans"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Subscription{},
		&model.UsageTracking{},
	))

	return db
}

func createSubscription(t *testing.T, db *gorm.DB, userID uint, plan plans.PlanType, status model.SubscriptionStatus) {
	t.Helper()

	sub := model.Subscription{
		UserID:             userID,
		PlanType:           plan,
		Status:             status,
		CurrentPeriodStart: time.Now(),
		CurrentPeriodEnd:   time.Now().AddDate(0, 1, 0),
	}
	require.NoError(t, db.Create(&sub).Error)
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	first, err := GetOrCreate(db, 1, 6, 2026)
	require.NoError(t, err)
	assert.Equal(t, 0, first.VideosGenerated)

	second, err := GetOrCreate(db, 1, 6, 2026)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&model.UsageTracking{}).Where("user_id = ?", 1).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateSeparatesPeriods(t *testing.T) {
	db := setupTestDB(t)

	june, err := GetOrCreate(db, 1, 6, 2026)
	require.NoError(t, err)
	july, err := GetOrCreate(db, 1, 7, 2026)
	require.NoError(t, err)

	assert.NotEqual(t, june.ID, july.ID)
}

func TestIncrementCountsFromOne(t *testing.T) {
	db := setupTestDB(t)

	// Merely checking several times must not move the counter.
	for i := 0; i < 3; i++ {
		_, err := GetOrCreate(db, 1, 6, 2026)
		require.NoError(t, err)
	}

	record, err := Increment(db, 1, 6, 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, record.VideosGenerated)

	record, err = Increment(db, 1, 6, 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, record.VideosGenerated)
}

func TestIncrementWithoutRecordFails(t *testing.T) {
	db := setupTestDB(t)

	_, err := Increment(db, 42, 6, 2026)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoUsageRecord)
}

func TestCheckLimitNoSubscription(t *testing.T) {
	db := setupTestDB(t)

	result, err := CheckLimit(db, 1)
	require.NoError(t, err)
	assert.False(t, result.CanGenerate)
	assert.Contains(t, result.Message, "subscription")
}

func TestCheckLimitInactiveSubscription(t *testing.T) {
	db := setupTestDB(t)
	createSubscription(t, db, 1, plans.StarterPlan, model.SubscriptionStatusPastDue)

	result, err := CheckLimit(db, 1)
	require.NoError(t, err)
	assert.False(t, result.CanGenerate)
	assert.Contains(t, result.Message, "past_due")
}

func TestCheckLimitAllowsActiveUnderQuota(t *testing.T) {
	db := setupTestDB(t)
	createSubscription(t, db, 1, plans.FreePlan, model.SubscriptionStatusActive)

	result, err := CheckLimit(db, 1)
	require.NoError(t, err)
	assert.True(t, result.CanGenerate)
	assert.Equal(t, 0, result.VideosGenerated)
	assert.Equal(t, 3, result.Limit)
}

func TestCheckLimitIdempotentSnapshot(t *testing.T) {
	db := setupTestDB(t)
	createSubscription(t, db, 1, plans.StarterPlan, model.SubscriptionStatusActive)

	first, err := CheckLimit(db, 1)
	require.NoError(t, err)
	second, err := CheckLimit(db, 1)
	require.NoError(t, err)

	assert.Equal(t, first.VideosGenerated, second.VideosGenerated)
	assert.Equal(t, first.Limit, second.Limit)
	assert.Equal(t, first.CanGenerate, second.CanGenerate)
}

func TestCheckLimitBlocksAtQuota(t *testing.T) {
	db := setupTestDB(t)
	createSubscription(t, db, 1, plans.FreePlan, model.SubscriptionStatusActive)

	now := time.Now()
	_, err := GetOrCreate(db, 1, int(now.Month()), now.Year())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := Increment(db, 1, int(now.Month()), now.Year())
		require.NoError(t, err)
	}

	result, err := CheckLimit(db, 1)
	require.NoError(t, err)
	assert.False(t, result.CanGenerate)
	assert.Contains(t, result.Message, "monthly limit of 3")
}

func TestCheckLimitUnlimitedPlanNeverBlocks(t *testing.T) {
	db := setupTestDB(t)
	createSubscription(t, db, 1, plans.CreatorPlan, model.SubscriptionStatusActive)

	now := time.Now()
	_, err := GetOrCreate(db, 1, int(now.Month()), now.Year())
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		_, err := Increment(db, 1, int(now.Month()), now.Year())
		require.NoError(t, err)
	}

	result, err := CheckLimit(db, 1)
	require.NoError(t, err)
	assert.True(t, result.CanGenerate)
	assert.Equal(t, 50, result.VideosGenerated)
}
