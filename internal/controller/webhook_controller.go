package controller

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"repurposly_backend/internal/model"
	"repurposly_backend/pkg/analytics"
	"repurposly_backend/pkg/database"
	"repurposly_backend/pkg/dodo"
	"repurposly_backend/pkg/email"
	"repurposly_backend/pkg/plans"
)

// DodoWebhookEvent is the shape Dodo Payments delivers. The metadata block
// echoes whatever the checkout session attached, which is how events are
// tied back to a local user.
type DodoWebhookEvent struct {
	EventType string `json:"event_type"`
	Data      struct {
		CustomerID     string `json:"customer_id"`
		CustomerEmail  string `json:"customer_email"`
		SubscriptionID string `json:"subscription_id"`
		PaymentID      string `json:"payment_id"`
		Metadata       struct {
			UserID       string `json:"user_id"`
			PlanType     string `json:"plan_type"`
			BillingCycle string `json:"billing_cycle"`
		} `json:"metadata"`
		Subscription *struct {
			ID                 string `json:"id"`
			Status             string `json:"status"`
			CurrentPeriodStart string `json:"current_period_start"`
			CurrentPeriodEnd   string `json:"current_period_end"`
		} `json:"subscription"`
	} `json:"data"`
}

var webhookSecret string

func InitWebhookController(secret string) {
	webhookSecret = secret
}

// HandleDodoWebhook verifies and dispatches payment-provider events. After a
// valid signature the response is always {received:true}: a malformed event
// is dropped with a logged diagnostic, not bounced for redelivery.
func HandleDodoWebhook(c *fiber.Ctx) error {
	signature := c.Get("webhook-signature")
	if signature == "" || webhookSecret == "" {
		log.Println("Missing webhook signature or secret")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	payload := c.Body()
	err := dodo.VerifySignature(webhookSecret, c.Get("webhook-id"), c.Get("webhook-timestamp"), signature, payload)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	var event DodoWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Printf("Unparseable webhook payload: %v", err)
		return c.JSON(fiber.Map{"received": true})
	}

	log.Printf("Received webhook event: %s", event.EventType)

	switch event.EventType {
	case "payment.succeeded":
		handlePaymentSucceeded(&event)
	case "subscription.active":
		handleSubscriptionActive(&event)
	case "subscription.renewed":
		handleSubscriptionRenewed(&event)
	case "subscription.cancelled":
		handleSubscriptionCancelled(&event)
	case "subscription.expired":
		handleSubscriptionExpired(&event)
	case "subscription.failed":
		handleSubscriptionFailed(&event)
	case "payment.failed":
		handlePaymentFailed(&event)
	default:
		log.Printf("Unhandled event type: %s", event.EventType)
	}

	return c.JSON(fiber.Map{"received": true})
}

func parseWebhookUserID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parsePeriodTime accepts both RFC3339 and bare dates; Dodo has sent both.
func parsePeriodTime(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func handlePaymentSucceeded(event *DodoWebhookEvent) {
	userID := event.Data.Metadata.UserID
	planType := event.Data.Metadata.PlanType

	if userID == "" || planType == "" {
		log.Println("Missing user_id or plan_type in webhook metadata")
		return
	}

	// Informational only; subscription.active carries the state change.
	log.Printf("Payment succeeded for user %s, plan: %s", userID, planType)
}

func handleSubscriptionActive(event *DodoWebhookEvent) {
	sub := event.Data.Subscription
	userID, userOK := parseWebhookUserID(event.Data.Metadata.UserID)
	planType := plans.PlanType(event.Data.Metadata.PlanType)

	if !userOK || planType == "" || sub == nil {
		log.Println("Missing required data in subscription.active webhook")
		return
	}
	if !plans.IsValidPlan(planType) {
		log.Printf("Unknown plan type in subscription.active webhook: %s", planType)
		return
	}

	periodStart, startOK := parsePeriodTime(sub.CurrentPeriodStart)
	periodEnd, endOK := parsePeriodTime(sub.CurrentPeriodEnd)
	if !startOK || !endOK {
		log.Printf("Unparseable period dates in subscription.active webhook: %q / %q",
			sub.CurrentPeriodStart, sub.CurrentPeriodEnd)
		return
	}

	err := model.UpsertSubscription(database.DB, &model.Subscription{
		UserID:             userID,
		PlanType:           planType,
		Status:             model.SubscriptionStatusActive,
		CurrentPeriodStart: periodStart,
		CurrentPeriodEnd:   periodEnd,
		DodoSubscriptionID: sub.ID,
		DodoCustomerID:     event.Data.CustomerID,
	})
	if err != nil {
		log.Printf("Error updating subscription: %v", err)
		return
	}

	log.Printf("Subscription activated for user %d", userID)

	analytics.Capture(userID, "subscription_activated", map[string]interface{}{
		"plan_type":            planType,
		"dodo_subscription_id": sub.ID,
	})

	if email.GlobalEmailService != nil {
		var user model.User
		if err := database.DB.First(&user, userID).Error; err == nil {
			price, _ := plans.PriceFor(planType, plans.BillingCycle(event.Data.Metadata.BillingCycle))
			limit := plans.VideoLimit(planType)
			limitLabel := strconv.Itoa(limit)
			if limit == plans.Unlimited {
				limitLabel = "unlimited"
			}
			err := email.GlobalEmailService.SendSubscriptionStartedEmail(
				user.Email, user.FullName, plans.DisplayName(planType),
				price, limitLabel, periodEnd, false,
			)
			if err != nil {
				log.Printf("Could not send subscription email: %v", err)
			}
		}
	}
}

func handleSubscriptionRenewed(event *DodoWebhookEvent) {
	sub := event.Data.Subscription
	if sub == nil {
		log.Println("Missing subscription data in renewal webhook")
		return
	}

	periodStart, startOK := parsePeriodTime(sub.CurrentPeriodStart)
	periodEnd, endOK := parsePeriodTime(sub.CurrentPeriodEnd)
	if !startOK || !endOK {
		log.Printf("Unparseable period dates in renewal webhook: %q / %q",
			sub.CurrentPeriodStart, sub.CurrentPeriodEnd)
		return
	}

	rows, err := model.UpdateSubscriptionWhere(database.DB, sub.ID, map[string]interface{}{
		"current_period_start": periodStart,
		"current_period_end":   periodEnd,
		"status":               model.SubscriptionStatusActive,
	})
	if err != nil {
		log.Printf("Error renewing subscription: %v", err)
		return
	}
	if rows == 0 {
		log.Printf("Renewal webhook for unknown subscription: %s", sub.ID)
		return
	}

	log.Printf("Subscription renewed: %s", sub.ID)

	if email.GlobalEmailService != nil {
		var record model.Subscription
		err := database.DB.Where("dodo_subscription_id = ?", sub.ID).
			Preload("User").First(&record).Error
		if err == nil {
			price, _ := plans.PriceFor(record.PlanType, plans.BillingMonthly)
			limit := plans.VideoLimit(record.PlanType)
			limitLabel := strconv.Itoa(limit)
			if limit == plans.Unlimited {
				limitLabel = "unlimited"
			}
			err := email.GlobalEmailService.SendSubscriptionStartedEmail(
				record.User.Email, record.User.FullName, plans.DisplayName(record.PlanType),
				price, limitLabel, periodEnd, true,
			)
			if err != nil {
				log.Printf("Could not send subscription renewal email: %v", err)
			}
		}
	}
}

func handleSubscriptionCancelled(event *DodoWebhookEvent) {
	sub := event.Data.Subscription
	if sub == nil {
		log.Println("Missing subscription data in cancellation webhook")
		return
	}

	var record model.Subscription
	recordErr := database.DB.Where("dodo_subscription_id = ?", sub.ID).
		Preload("User").First(&record).Error

	rows, err := model.UpdateSubscriptionWhere(database.DB, sub.ID, map[string]interface{}{
		"status": model.SubscriptionStatusCancelled,
	})
	if err != nil {
		log.Printf("Error cancelling subscription: %v", err)
		return
	}
	if rows == 0 {
		log.Printf("Cancellation webhook for unknown subscription: %s", sub.ID)
		return
	}

	log.Printf("Subscription cancelled: %s", sub.ID)

	if email.GlobalEmailService != nil && recordErr == nil {
		err := email.GlobalEmailService.SendSubscriptionCancelledEmail(
			record.User.Email, record.User.FullName,
			plans.DisplayName(record.PlanType), record.CurrentPeriodEnd,
		)
		if err != nil {
			log.Printf("Could not send subscription cancellation email: %v", err)
		}
	}
}

func handleSubscriptionExpired(event *DodoWebhookEvent) {
	sub := event.Data.Subscription
	if sub == nil {
		log.Println("Missing subscription data in expiration webhook")
		return
	}

	rows, err := model.UpdateSubscriptionWhere(database.DB, sub.ID, map[string]interface{}{
		"status": model.SubscriptionStatusExpired,
	})
	if err != nil {
		log.Printf("Error expiring subscription: %v", err)
	} else if rows == 0 {
		log.Printf("Expiration webhook for unknown subscription: %s", sub.ID)
	}

	// Reseed the user on the free tier. The upsert is keyed on user_id, so
	// this replaces the expired row instead of leaving two rows behind.
	if userID, ok := parseWebhookUserID(event.Data.Metadata.UserID); ok {
		if err := model.DowngradeToFree(database.DB, userID); err != nil {
			log.Printf("Error creating free subscription: %v", err)
			return
		}
		log.Printf("User %d downgraded to free plan", userID)

		analytics.Capture(userID, "subscription_expired", map[string]interface{}{
			"dodo_subscription_id": sub.ID,
		})
	}
}

func handleSubscriptionFailed(event *DodoWebhookEvent) {
	sub := event.Data.Subscription
	if sub == nil {
		log.Println("Missing subscription data in failed webhook")
		return
	}

	rows, err := model.UpdateSubscriptionWhere(database.DB, sub.ID, map[string]interface{}{
		"status": model.SubscriptionStatusPastDue,
	})
	if err != nil {
		log.Printf("Error updating failed subscription: %v", err)
		return
	}
	if rows == 0 {
		log.Printf("Failure webhook for unknown subscription: %s", sub.ID)
		return
	}

	log.Printf("Subscription marked as past_due: %s", sub.ID)
}

func handlePaymentFailed(event *DodoWebhookEvent) {
	subscriptionID := event.Data.SubscriptionID

	if subscriptionID == "" {
		// One-time purchase failure, nothing to reconcile.
		log.Println("Payment failed for one-time purchase")
		return
	}

	// The paired subscription.failed event is authoritative for state.
	log.Printf("Payment failed for subscription: %s", subscriptionID)
}
