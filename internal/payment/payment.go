// Package payment reports the outcome of a Stripe payment and marks orders paid.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/backend"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/stripe/stripe-go/v81"
	"go.uber.org/zap"
)

var ErrMalformedSecret = errors.New("malformed payment intent client secret")

const (
	MsgSucceeded   = "Payment succeeded!"
	MsgProcessing  = "Your payment is processing."
	MsgRetry       = "Your payment was not successful, please try again."
	MsgUnknown     = "Something went wrong."
	MsgUnavailable = "An unexpected error occurred."
)

func MessageForStatus(status stripe.PaymentIntentStatus) string {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return MsgSucceeded
	case stripe.PaymentIntentStatusProcessing:
		return MsgProcessing
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		return MsgRetry
	default:
		return MsgUnknown
	}
}

// IntentIDFromSecret extracts "pi_123" from a client secret "pi_123_secret_abc".
func IntentIDFromSecret(clientSecret string) (string, error) {
	id, _, ok := strings.Cut(clientSecret, "_secret_")
	if !ok || !strings.HasPrefix(id, "pi_") {
		return "", ErrMalformedSecret
	}
	return id, nil
}

// IntentFetcher looks up the current status of a payment intent.
type IntentFetcher interface {
	IntentStatus(ctx context.Context, id, clientSecret string) (stripe.PaymentIntentStatus, error)
}

type Service struct {
	intents IntentFetcher
	client  *backend.Client
	logger  logger.ZapLogger
}

func NewService(intents IntentFetcher, client *backend.Client, log logger.ZapLogger) *Service {
	return &Service{
		intents: intents,
		client:  client,
		logger:  log,
	}
}

// Confirm returns the message for the payment behind clientSecret. An empty
// secret means the customer has not returned from a payment yet.
func (s *Service) Confirm(ctx context.Context, clientSecret string) (string, error) {
	clientSecret = strings.TrimSpace(clientSecret)
	if clientSecret == "" {
		return "", nil
	}
	id, err := IntentIDFromSecret(clientSecret)
	if err != nil {
		return "", err
	}

	status, err := s.intents.IntentStatus(ctx, id, clientSecret)
	if err != nil {
		s.logger.Error("failed to retrieve payment intent", zap.String("payment_intent", id), zap.Error(err))
		return MsgUnavailable, fmt.Errorf("payment: failed to retrieve intent: %w", err)
	}
	s.logger.Debug("payment intent status", zap.String("payment_intent", id), zap.String("status", string(status)))
	return MessageForStatus(status), nil
}

type paidInput struct {
	OrderID string `json:"orderId"`
}

func (s *Service) MarkPaid(ctx context.Context, orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return errors.New("order id is required")
	}
	if err := s.client.Put(ctx, "order.paid", "/order/paid", paidInput{OrderID: orderID}, nil); err != nil {
		return fmt.Errorf("failed to mark order %s paid: %w", orderID, err)
	}
	s.logger.Info("order marked paid", zap.String("order_id", orderID))
	return nil
}
