package services

import (
	"context"
	"fmt"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/client"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/models"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/payments"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/logging"
)

// SubscriptionService buys a membership plan: create the payment intent,
// let the payment sheet authorize it, then confirm settlement.
type SubscriptionService interface {
	CreateIntent(ctx context.Context, planID string) (*models.PaymentIntent, error)
	Confirm(ctx context.Context, subscriptionID string) <-chan payments.ConfirmResult
}

type subscriptionService struct {
	client    client.Client
	confirmer *payments.Confirmer
	logger    logging.Logger
}

func NewSubscriptionService(c client.Client, confirmer *payments.Confirmer, logger logging.Logger) SubscriptionService {
	return &subscriptionService{
		client:    c,
		confirmer: confirmer,
		logger:    logger.With("module", "subscription_service"),
	}
}

func (s *subscriptionService) CreateIntent(ctx context.Context, planID string) (*models.PaymentIntent, error) {
	pi, err := s.client.CreatePaymentIntent(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	s.logger.Info(ctx, "payment intent created", "plan", planID, "subscription_id", pi.SubscriptionID)
	return pi, nil
}

// Confirm starts confirmation in the background; see payments.Confirmer.
func (s *subscriptionService) Confirm(ctx context.Context, subscriptionID string) <-chan payments.ConfirmResult {
	return s.confirmer.ConfirmAsync(ctx, subscriptionID)
}
