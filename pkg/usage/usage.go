package usage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"repurposly_backend/internal/model"
	"repurposly_backend/pkg/plans"
)

// ErrNoUsageRecord is returned by Increment when there is no row to update;
// the caller is expected to have gone through GetOrCreate (or CheckLimit)
// first.
var ErrNoUsageRecord = errors.New("usage record not found")

// GetOrCreate fetches the usage row for the (user, month, year) triple,
// inserting a zero-valued one if it does not exist yet. The composite unique
// index makes the insert race-safe: the loser of a concurrent first-access
// simply re-reads the winner's row.
func GetOrCreate(db *gorm.DB, userID uint, month, year int) (*model.UsageTracking, error) {
	var usage model.UsageTracking
	err := db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&usage).Error
	if err == nil {
		return &usage, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	usage = model.UsageTracking{
		UserID:          userID,
		Month:           month,
		Year:            year,
		VideosGenerated: 0,
		LastUpdated:     time.Now(),
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&usage).Error; err != nil {
		return nil, err
	}
	if usage.ID == 0 {
		// Lost the insert race; another request created the row.
		if err := db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
			First(&usage).Error; err != nil {
			return nil, err
		}
	}
	return &usage, nil
}

// Increment adds one generated video to the user's counter for the given
// period. It never creates the row: a zero-row update is an error, not a
// silent no-op.
func Increment(db *gorm.DB, userID uint, month, year int) (*model.UsageTracking, error) {
	result := db.Model(&model.UsageTracking{}).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Updates(map[string]interface{}{
			"videos_generated": gorm.Expr("videos_generated + ?", 1),
			"last_updated":     time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: user %d period %d/%d", ErrNoUsageRecord, userID, month, year)
	}

	var usage model.UsageTracking
	if err := db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&usage).Error; err != nil {
		return nil, err
	}
	return &usage, nil
}

// CheckResult is the usage gate's verdict for one generation request.
type CheckResult struct {
	CanGenerate     bool
	Message         string
	PlanType        plans.PlanType
	VideosGenerated int
	Limit           int
}

// CheckLimit decides whether the user may generate content right now:
// subscription must exist and be active, and the plan's monthly quota must
// not be exhausted. Checking may lazily create this month's zero-valued
// usage row; that side effect is idempotent.
func CheckLimit(db *gorm.DB, userID uint) (*CheckResult, error) {
	var sub model.Subscription
	if err := db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CheckResult{
				CanGenerate: false,
				Message:     "Unable to verify your subscription. Please contact support.",
			}, nil
		}
		return nil, err
	}

	if !sub.IsActive() {
		return &CheckResult{
			CanGenerate: false,
			Message: fmt.Sprintf("Your subscription is %s. Please update your payment method or upgrade your plan.",
				sub.Status),
			PlanType: sub.PlanType,
			Limit:    plans.VideoLimit(sub.PlanType),
		}, nil
	}

	// Quota buckets are calendar months on wall-clock time, not rolling
	// windows anchored to the billing period.
	now := time.Now()
	record, err := GetOrCreate(db, userID, int(now.Month()), now.Year())
	if err != nil {
		return nil, err
	}

	limit := plans.VideoLimit(sub.PlanType)
	if plans.HasReachedLimit(sub.PlanType, record.VideosGenerated) {
		return &CheckResult{
			CanGenerate: false,
			Message: fmt.Sprintf("You've reached your monthly limit of %d videos. Upgrade your plan to continue generating content.",
				limit),
			PlanType:        sub.PlanType,
			VideosGenerated: record.VideosGenerated,
			Limit:           limit,
		}, nil
	}

	return &CheckResult{
		CanGenerate:     true,
		PlanType:        sub.PlanType,
		VideosGenerated: record.VideosGenerated,
		Limit:           limit,
	}, nil
}
