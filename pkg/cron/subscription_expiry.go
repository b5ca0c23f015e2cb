package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"repurposly_backend/internal/model"
	"repurposly_backend/pkg/database"
	"repurposly_backend/pkg/email"
	"repurposly_backend/pkg/plans"
)

func InitSubscriptionExpiryCron() {
	c := cron.New()

	_, err := c.AddFunc("0 9 * * *", func() {
		expireLapsedSubscriptions()
		warnExpiringSubscriptions()
	})

	if err != nil {
		log.Printf("Could not initialize subscription expiry cron: %v", err)
		return
	}

	c.Start()
}

// expireLapsedSubscriptions is the safety net for missed subscription.expired
// webhooks: paid subscriptions whose period ended while still active or
// past_due get downgraded to the free tier.
func expireLapsedSubscriptions() {
	log.Println("Checking for lapsed subscriptions...")

	var subs []model.Subscription
	err := database.DB.
		Where("current_period_end < ? AND status IN ? AND plan_type <> ?",
			time.Now(),
			[]model.SubscriptionStatus{model.SubscriptionStatusActive, model.SubscriptionStatusPastDue},
			plans.FreePlan).
		Find(&subs).Error
	if err != nil {
		log.Printf("Error fetching lapsed subscriptions: %v", err)
		return
	}

	for _, sub := range subs {
		if err := model.DowngradeToFree(database.DB, sub.UserID); err != nil {
			log.Printf("Error downgrading user %d: %v", sub.UserID, err)
			continue
		}
		log.Printf("User %d downgraded to free plan (subscription lapsed)", sub.UserID)
	}
}

func warnExpiringSubscriptions() {
	log.Println("Checking for expiring subscriptions...")

	warningDays := []int{7, 3}

	for _, days := range warningDays {
		var subs []model.Subscription
		targetDate := time.Now().AddDate(0, 0, days).Format("2006-01-02")

		err := database.DB.
			Where("DATE(current_period_end) = ? AND status = ? AND plan_type <> ?",
				targetDate, model.SubscriptionStatusActive, plans.FreePlan).
			Preload("User").
			Find(&subs).Error
		if err != nil {
			log.Printf("Error fetching expiring subscriptions: %v", err)
			continue
		}

		log.Printf("Found %d subscriptions expiring in %d days", len(subs), days)

		for _, sub := range subs {
			if email.GlobalEmailService == nil {
				continue
			}

			err := email.GlobalEmailService.SendSubscriptionExpiryWarning(
				sub.User.Email,
				sub.User.FullName,
				plans.DisplayName(sub.PlanType),
				sub.CurrentPeriodEnd,
				days,
			)
			if err != nil {
				log.Printf("Error sending expiry warning to %s: %v", sub.User.Email, err)
			} else {
				log.Printf("Sent expiry warning to %s for subscription expiring in %d days", sub.User.Email, days)
			}
		}
	}
}
