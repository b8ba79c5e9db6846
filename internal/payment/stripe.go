package payment

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// StripeIntents retrieves payment intents with a dedicated API client rather
// than the package-level stripe.Key.
type StripeIntents struct {
	client *paymentintent.Client
}

func NewStripeIntents(secretKey string) (*StripeIntents, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	return newStripeIntents(stripe.GetBackend(stripe.APIBackend), secretKey), nil
}

func newStripeIntents(b stripe.Backend, secretKey string) *StripeIntents {
	return &StripeIntents{client: &paymentintent.Client{B: b, Key: secretKey}}
}

func (s *StripeIntents) IntentStatus(ctx context.Context, id, clientSecret string) (stripe.PaymentIntentStatus, error) {
	params := &stripe.PaymentIntentParams{ClientSecret: stripe.String(clientSecret)}
	params.Context = ctx

	intent, err := s.client.Get(id, params)
	if err != nil {
		return "", err
	}
	return intent.Status, nil
}
