package billing

import (
	"context"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripeClient wraps the Stripe SDK calls the billing service needs. The
// SDK functions are held as fields so tests can swap them without network
// access; the secret key is injected at construction, never read from
// ambient process state inside this package.
type StripeClient struct {
	createCustomer        func(params *stripe.CustomerParams) (*stripe.Customer, error)
	createPaymentIntent   func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	retrievePaymentIntent func(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// NewStripeClient configures the Stripe SDK with the given secret key and
// returns a client bound to the real SDK endpoints.
func NewStripeClient(secretKey string) *StripeClient {
	stripe.Key = strings.TrimSpace(secretKey)
	return &StripeClient{
		createCustomer:        customer.New,
		createPaymentIntent:   paymentintent.New,
		retrievePaymentIntent: paymentintent.Get,
	}
}

// CreateCustomer registers the checkout customer with Stripe.
func (c *StripeClient) CreateCustomer(ctx context.Context, info CustomerInfo) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(info.Email),
		Name:  stripe.String(info.Name),
		Address: &stripe.AddressParams{
			Line1:      stripe.String(info.Address),
			City:       stripe.String(info.City),
			State:      stripe.String(info.State),
			PostalCode: stripe.String(info.PostalCode),
			Country:    stripe.String(info.Country),
		},
	}
	params.Context = ctx

	cust, err := c.createCustomer(params)
	if err != nil {
		return nil, fmt.Errorf("%w: create customer: %v", ErrPaymentProcessor, err)
	}
	return cust, nil
}

// CreatePaymentIntent starts an annual-subscription charge for the user.
func (c *StripeClient) CreatePaymentIntent(ctx context.Context, amountCents int64, customerID, userID string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Customer: stripe.String(customerID),
	}
	params.Context = ctx
	params.AddMetadata("userId", userID)
	params.AddMetadata("subscriptionType", "annual")

	intent, err := c.createPaymentIntent(params)
	if err != nil {
		return nil, fmt.Errorf("%w: create payment intent: %v", ErrPaymentProcessor, err)
	}
	return intent, nil
}

// RetrievePaymentIntent looks the intent up server-side. Confirmation never
// trusts a client-supplied "it worked" flag.
func (c *StripeClient) RetrievePaymentIntent(ctx context.Context, paymentIntentID string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := c.retrievePaymentIntent(paymentIntentID, params)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieve payment intent: %v", ErrPaymentProcessor, err)
	}
	return intent, nil
}
