package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type checkCreditsRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// HandleCheckCredits authorizes one generation attempt for the user and
// reports the remaining balance. For non-premium accounts the call itself
// debits a credit; an exhausted balance is a regular response, not an error.
func HandleCheckCredits(c *fiber.Ctx) error {
	var req checkCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "A user ID is required")
	}

	decision, err := entitlementService.AuthorizeGeneration(c.Context(), req.UserID)
	if err != nil {
		return serverError(c, "Failed to check credits")
	}

	if decision.Unlimited {
		return c.JSON(fiber.Map{"canGenerate": true, "credits": "unlimited"})
	}
	return c.JSON(fiber.Map{"canGenerate": decision.Allowed, "credits": decision.RemainingCredits})
}
