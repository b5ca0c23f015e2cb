package model

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"repurposly_backend/pkg/plans"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
)

// Subscription is the user's current plan as reconciled with Dodo Payments.
// One row per user: every user-keyed write goes through an upsert on user_id,
// so a downgrade overwrites the row instead of stacking a second one.
type Subscription struct {
	gorm.Model
	UserID             uint               `json:"user_id" gorm:"uniqueIndex;not null"`
	PlanType           plans.PlanType     `json:"plan_type" gorm:"not null;default:'free'"`
	Status             SubscriptionStatus `json:"status" gorm:"not null;default:'active'"`
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	DodoSubscriptionID string             `json:"dodo_subscription_id" gorm:"index"`
	DodoCustomerID     string             `json:"dodo_customer_id"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive
}

// GetCurrentSubscription fetches the user's single subscription row.
func GetCurrentSubscription(db *gorm.DB, userID uint) (*Subscription, error) {
	var sub Subscription
	if err := db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpsertSubscription writes a subscription keyed on user_id: inserts when the
// user has none, otherwise overwrites the plan/status/period/provider fields
// of the existing row.
func UpsertSubscription(db *gorm.DB, sub *Subscription) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan_type",
			"status",
			"current_period_start",
			"current_period_end",
			"dodo_subscription_id",
			"dodo_customer_id",
			"updated_at",
		}),
	}).Create(sub).Error
}

// UpdateSubscriptionWhere updates the row matching a Dodo subscription id and
// reports how many rows matched. Zero matches is the caller's business: the
// provider may reference a subscription this system never saw activate.
func UpdateSubscriptionWhere(db *gorm.DB, dodoSubscriptionID string, updates map[string]interface{}) (int64, error) {
	updates["updated_at"] = time.Now()
	result := db.Model(&Subscription{}).
		Where("dodo_subscription_id = ?", dodoSubscriptionID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// DowngradeToFree reseeds the user on the free tier with a one-year period,
// clearing the payment-provider identifiers. Because of the user_id upsert
// this replaces the old row rather than stacking a second one.
func DowngradeToFree(db *gorm.DB, userID uint) error {
	now := time.Now()
	return UpsertSubscription(db, &Subscription{
		UserID:             userID,
		PlanType:           plans.FreePlan,
		Status:             SubscriptionStatusActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(1, 0, 0),
		DodoSubscriptionID: "",
		DodoCustomerID:     "",
	})
}
