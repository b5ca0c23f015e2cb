package controller

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"repurposly_backend/internal/model"
	"repurposly_backend/pkg/analytics"
	"repurposly_backend/pkg/config"
	"repurposly_backend/pkg/database"
	"repurposly_backend/pkg/dodo"
	"repurposly_backend/pkg/plans"
	"repurposly_backend/pkg/utils/jwt"
)

type CheckoutInput struct {
	PlanType     plans.PlanType     `json:"planType" validate:"required"`
	BillingCycle plans.BillingCycle `json:"billingCycle"`
}

var (
	dodoClient *dodo.Client
	dodoConfig config.DodoConfig
)

func InitSubscriptionController(client *dodo.Client, cfg config.DodoConfig) {
	dodoClient = client
	dodoConfig = cfg
}

// planOrder keeps /plans responses stable.
var planOrder = []plans.PlanType{
	plans.FreePlan,
	plans.StarterPlan,
	plans.CreatorPlan,
	plans.BusinessPlan,
}

func ListPlans(c *fiber.Ctx) error {
	result := make([]fiber.Map, 0, len(planOrder))
	for _, planType := range planOrder {
		limits := plans.PlanCatalog[planType]
		result = append(result, fiber.Map{
			"plan_type": planType,
			"name":      limits.Name,
			"limit":     plans.QuotaJSON(limits.VideosPerMonth),
			"features":  limits.Features,
			"price":     limits.Price,
		})
	}

	return c.JSON(result)
}

// productIDFor maps (plan, billing cycle) to the Dodo product. Business is
// custom-priced, so it has a single product regardless of cycle.
func productIDFor(planType plans.PlanType, cycle plans.BillingCycle) (string, error) {
	switch {
	case planType == plans.StarterPlan && cycle == plans.BillingMonthly:
		return dodoConfig.StarterMonthly, nil
	case planType == plans.StarterPlan && cycle == plans.BillingYearly:
		return dodoConfig.StarterYearly, nil
	case planType == plans.CreatorPlan && cycle == plans.BillingMonthly:
		return dodoConfig.CreatorMonthly, nil
	case planType == plans.CreatorPlan && cycle == plans.BillingYearly:
		return dodoConfig.CreatorYearly, nil
	case planType == plans.BusinessPlan:
		return dodoConfig.Business, nil
	}
	return "", fmt.Errorf("no product for plan %s cycle %s", planType, cycle)
}

func CreateCheckoutSession(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(CheckoutInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	// Free is not purchasable; everything else must be a known plan.
	switch input.PlanType {
	case plans.StarterPlan, plans.CreatorPlan, plans.BusinessPlan:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan type",
		})
	}

	productID, err := productIDFor(input.PlanType, input.BillingCycle)
	if err != nil || productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan configuration",
		})
	}

	session, err := dodoClient.CreateCheckoutSession(c.Context(), dodo.CheckoutSessionParams{
		ProductCart: []dodo.ProductCartItem{
			{ProductID: productID, Quantity: 1},
		},
		Metadata: map[string]string{
			"user_id":       fmt.Sprintf("%d", claims.UserID),
			"plan_type":     string(input.PlanType),
			"billing_cycle": string(input.BillingCycle),
		},
	})
	if err != nil {
		log.Printf("Error creating checkout session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create checkout session",
		})
	}

	analytics.Capture(claims.UserID, "checkout_started", map[string]interface{}{
		"plan_type":     input.PlanType,
		"billing_cycle": input.BillingCycle,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"sessionId":   session.SessionID,
			"checkoutUrl": session.CheckoutURL,
		},
	})
}

func GetMySubscription(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	sub, err := model.GetCurrentSubscription(database.DB, claims.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Subscription not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch subscription",
		})
	}

	planDetails := plans.PlanCatalog[sub.PlanType]

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":                 sub.ID,
			"planType":           sub.PlanType,
			"planName":           planDetails.Name,
			"status":             sub.Status,
			"currentPeriodStart": sub.CurrentPeriodStart,
			"currentPeriodEnd":   sub.CurrentPeriodEnd,
			"dodoSubscriptionId": sub.DodoSubscriptionID,
			"dodoCustomerId":     sub.DodoCustomerID,
			"features":           planDetails.Features,
			"limit":              plans.QuotaJSON(planDetails.VideosPerMonth),
			"price":              planDetails.Price,
		},
	})
}
