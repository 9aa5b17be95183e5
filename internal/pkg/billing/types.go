package billing

import "errors"

// Sentinel errors for the closed set of user-facing payment failure
// categories. External processor details never pass through verbatim.
var (
	// ErrPaymentNotCompleted means the processor reports the payment intent
	// in any state other than succeeded. Not retryable with the same intent.
	ErrPaymentNotCompleted = errors.New("payment has not been completed")
	// ErrPaymentProcessor wraps processor lookup/creation failures.
	// Retryable by the caller with the same payment intent id.
	ErrPaymentProcessor = errors.New("payment processor error")
	// ErrValidation rejects malformed billing requests before any side effect.
	ErrValidation = errors.New("invalid billing request")
)

// CustomerInfo carries the billing details collected at checkout.
type CustomerInfo struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PaymentIntentInput is the normalized input for starting a charge.
type PaymentIntentInput struct {
	// AmountCents is the charge in the currency's minor unit.
	AmountCents int64
	UserID      string
	Customer    CustomerInfo
}

// ConfirmationResult reports the durable outcome of a confirmation attempt.
type ConfirmationResult struct {
	Success     bool
	AlreadyDone bool
	EndDate     string
}
