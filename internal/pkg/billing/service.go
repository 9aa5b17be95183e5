package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	stripe "github.com/stripe/stripe-go/v82"

	"github.com/ideaspark/ideaspark/app/models"
	"github.com/ideaspark/ideaspark/app/repository"
)

// Service converts payment processor events into durable entitlement state.
type Service struct {
	stripe        *StripeClient
	credits       repository.UserCreditRepository
	subscriptions repository.SubscriptionRepository
	events        repository.PaymentEventRepository

	now func() time.Time
}

// NewService creates a billing service from an injected Stripe client and
// repositories.
func NewService(
	stripeClient *StripeClient,
	credits repository.UserCreditRepository,
	subscriptions repository.SubscriptionRepository,
	events repository.PaymentEventRepository,
) *Service {
	return &Service{
		stripe:        stripeClient,
		credits:       credits,
		subscriptions: subscriptions,
		events:        events,
		now:           time.Now,
	}
}

// CreatePaymentIntent validates the checkout request, registers the customer
// with the processor and starts the charge. Returns the client secret the
// browser needs to complete card capture.
func (s *Service) CreatePaymentIntent(ctx context.Context, in PaymentIntentInput) (string, error) {
	if in.AmountCents <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if strings.TrimSpace(in.UserID) == "" {
		return "", fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if strings.TrimSpace(in.Customer.Email) == "" || strings.TrimSpace(in.Customer.Name) == "" {
		return "", fmt.Errorf("%w: customer info is required", ErrValidation)
	}

	cust, err := s.stripe.CreateCustomer(ctx, in.Customer)
	if err != nil {
		return "", err
	}

	intent, err := s.stripe.CreatePaymentIntent(ctx, in.AmountCents, cust.ID, in.UserID)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

// ConfirmAnnualSubscription turns a succeeded payment into a subscription
// window and the premium flag. The payment intent id is the idempotency
// key: a duplicate confirmation finds the processed event and returns the
// prior result without re-running side effects. A retry after a mid-flight
// persistence failure re-runs steps that are themselves idempotent (window
// upsert, premium flag), so no second window and no corrupted end date.
func (s *Service) ConfirmAnnualSubscription(ctx context.Context, userID, paymentIntentID string) (*ConfirmationResult, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(paymentIntentID) == "" {
		return nil, fmt.Errorf("%w: userId and paymentIntentId are required", ErrValidation)
	}

	created, event, err := s.events.CreateIfNotExists(&models.PaymentEvent{
		PaymentIntentID: paymentIntentID,
		UserID:          userID,
	})
	if err != nil {
		return nil, err
	}
	if !created && event.Processed() {
		return &ConfirmationResult{Success: true, AlreadyDone: true}, nil
	}

	// Verify with the processor before any local mutation. A timed-out or
	// failed lookup leaves the ledger and subscription store untouched.
	intent, err := s.stripe.RetrievePaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, ErrPaymentNotCompleted
	}

	start := s.now()
	amount := float64(intent.Amount) / 100 // minor units to dollars
	sub, err := s.subscriptions.UpsertAnnual(userID, start, amount)
	if err != nil {
		return nil, err
	}

	if _, err := s.credits.SetPremium(userID); err != nil {
		return nil, err
	}

	if err := s.events.MarkProcessed(event.ID, intent.Amount); err != nil {
		return nil, err
	}

	return &ConfirmationResult{
		Success: true,
		EndDate: sub.EndDate.UTC().Format(time.RFC3339),
	}, nil
}
