package middleware

import (
	"github.com/gofiber/fiber/v2"

	"repurposly_backend/pkg/database"
	"repurposly_backend/pkg/usage"
	"repurposly_backend/pkg/utils/jwt"
)

// CheckUsageLimit gates generation requests on the caller's subscription
// status and monthly quota.
func CheckUsageLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		result, err := usage.CheckLimit(database.DB, claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not verify usage limits",
			})
		}

		if !result.CanGenerate {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":         result.Message,
				"limit_reached": true,
			})
		}

		return c.Next()
	}
}
