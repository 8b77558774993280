package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeClient is a thin wrapper around stripe-go implementing
// ProcessorClient. The global stripe.Key is set at startup.
type StripeClient struct{}

// CreateCustomer registers the payer with Stripe.
func (StripeClient) CreateCustomer(ctx context.Context, email, name, userID string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	params.AddMetadata("userId", userID)

	c, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe customer: %w", err)
	}
	return c.ID, nil
}

// CreateIntent opens a PaymentIntent for amount minor units.
func (StripeClient) CreateIntent(ctx context.Context, amount int64, currency, customerRef, description string, metadata map[string]string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}
	params.Context = ctx
	if customerRef != "" {
		params.Customer = stripe.String(customerRef)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi.ID, pi.ClientSecret, nil
}

// IntentSucceeded retrieves the intent and checks its status.
func (StripeClient) IntentSucceeded(ctx context.Context, ref string) (bool, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(ref, params)
	if err != nil {
		return false, fmt.Errorf("failed to retrieve payment intent %s: %w", ref, err)
	}
	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}
