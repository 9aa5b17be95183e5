package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HandleCheckSubscriptionStatus serves the read-only projection of the
// ledger and the subscription window.
func HandleCheckSubscriptionStatus(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		return badRequest(c, "A user ID is required")
	}

	status, err := entitlementService.CheckSubscriptionStatus(c.Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return serverError(c, "Failed to check the subscription status")
	}

	if !status.IsPremium {
		return c.JSON(fiber.Map{
			"isPremium": false,
			"isActive":  false,
			"message":   "No active subscription",
		})
	}

	response := fiber.Map{
		"isPremium":        true,
		"isActive":         status.IsActive,
		"subscriptionType": status.SubscriptionType,
	}
	if status.Lifetime {
		response["endDate"] = nil
		response["daysRemaining"] = "unlimited"
	} else {
		response["endDate"] = status.EndDate.UTC().Format(time.RFC3339)
		response["daysRemaining"] = status.DaysRemaining
	}
	return c.JSON(response)
}
