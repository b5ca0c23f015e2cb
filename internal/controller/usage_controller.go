package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"repurposly_backend/internal/model"
	"repurposly_backend/pkg/database"
	"repurposly_backend/pkg/plans"
	"repurposly_backend/pkg/usage"
	"repurposly_backend/pkg/utils/jwt"
)

// CheckUsage reports the caller's current month usage against their plan.
// Checking may lazily create the month's zero-valued usage row.
func CheckUsage(c *fiber.Ctx) error {
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

	now := time.Now()
	record, err := usage.GetOrCreate(database.DB, claims.UserID, int(now.Month()), now.Year())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create usage record",
		})
	}

	limit := plans.VideoLimit(sub.PlanType)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"planType":        sub.PlanType,
			"planName":        plans.DisplayName(sub.PlanType),
			"videosGenerated": record.VideosGenerated,
			"limit":           plans.QuotaJSON(limit),
			"remaining":       plans.QuotaJSON(plans.RemainingVideos(sub.PlanType, record.VideosGenerated)),
			"limitReached":    plans.HasReachedLimit(sub.PlanType, record.VideosGenerated),
			"subscription": fiber.Map{
				"status":           sub.Status,
				"currentPeriodEnd": sub.CurrentPeriodEnd,
			},
		},
	})
}

// IncrementUsage counts one generated video against the caller's month.
func IncrementUsage(c *fiber.Ctx) error {
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

	if !sub.IsActive() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Subscription is not active",
		})
	}

	now := time.Now()
	record, err := usage.GetOrCreate(database.DB, claims.UserID, int(now.Month()), now.Year())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create usage record",
		})
	}

	if plans.HasReachedLimit(sub.PlanType, record.VideosGenerated) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Usage limit reached",
			"message": fmt.Sprintf("You have reached your monthly limit of %d videos. Please upgrade your plan to continue.",
				plans.VideoLimit(sub.PlanType)),
			"limitReached": true,
		})
	}

	record, err = usage.Increment(database.DB, claims.UserID, int(now.Month()), now.Year())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update usage",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"videosGenerated": record.VideosGenerated,
			"limit":           plans.QuotaJSON(plans.VideoLimit(sub.PlanType)),
		},
	})
}
