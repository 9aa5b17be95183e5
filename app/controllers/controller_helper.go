package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ideaspark/ideaspark/internal/pkg/billing"
	"github.com/ideaspark/ideaspark/internal/pkg/entitlement"
	"github.com/ideaspark/ideaspark/internal/pkg/ideagen"
	"github.com/ideaspark/ideaspark/internal/pkg/youtube"
)

// Shared service handles for the API controllers. Set once at router
// installation; the controllers never construct clients from ambient
// process state themselves.
var (
	entitlementService *entitlement.Service
	billingService     *billing.Service
	ideaService        *ideagen.Service
	videoClient        *youtube.Client

	validate = validator.New()
)

// InitializeAPIControllers wires the API controllers with their services.
func InitializeAPIControllers(
	entitlements *entitlement.Service,
	billingSvc *billing.Service,
	ideas *ideagen.Service,
	videos *youtube.Client,
) {
	entitlementService = entitlements
	billingService = billingSvc
	ideaService = ideas
	videoClient = videos
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}
