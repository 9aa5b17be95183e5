package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ideaspark/ideaspark/internal/pkg/billing"
)

type createPaymentIntentRequest struct {
	Amount       int64                `json:"amount" validate:"required,gt=0"`
	UserID       string               `json:"userId" validate:"required"`
	CustomerInfo billing.CustomerInfo `json:"customerInfo" validate:"required"`
}

type confirmSubscriptionRequest struct {
	UserID          string `json:"userId" validate:"required"`
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

// HandleCreatePaymentIntent starts an annual subscription charge with the
// payment processor and returns the client secret for card capture.
func HandleCreatePaymentIntent(c *fiber.Ctx) error {
	var req createPaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "A valid amount, user ID and customer information are required")
	}

	clientSecret, err := billingService.CreatePaymentIntent(c.Context(), billing.PaymentIntentInput{
		AmountCents: req.Amount,
		UserID:      strings.TrimSpace(req.UserID),
		Customer:    req.CustomerInfo,
	})
	if err != nil {
		if errors.Is(err, billing.ErrValidation) {
			return badRequest(c, "A valid amount, user ID and customer information are required")
		}
		log.Printf("create payment intent failed: %v", err)
		return serverError(c, "Failed to create the payment intent")
	}

	return c.JSON(fiber.Map{"clientSecret": clientSecret})
}

// HandleConfirmSubscription verifies the payment server-side and flips the
// account to premium. Safe to call more than once with the same payment
// intent id.
func HandleConfirmSubscription(c *fiber.Ctx) error {
	var req confirmSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "A user ID and payment intent ID are required")
	}

	result, err := billingService.ConfirmAnnualSubscription(c.Context(), strings.TrimSpace(req.UserID), strings.TrimSpace(req.PaymentIntentID))
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrValidation):
			return badRequest(c, "A user ID and payment intent ID are required")
		case errors.Is(err, billing.ErrPaymentNotCompleted):
			return badRequest(c, "The payment has not been completed")
		default:
			log.Printf("confirm subscription failed: %v", err)
			return serverError(c, "Failed to confirm the subscription")
		}
	}

	message := "Annual subscription confirmed and premium status updated"
	if result.AlreadyDone {
		message = "Subscription was already confirmed"
	}
	return c.JSON(fiber.Map{"success": true, "message": message})
}
