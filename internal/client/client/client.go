package client

import (
	"context"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/models"
)

// Client is the FitFlow backend API as seen by the app.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Login(ctx context.Context, username, password string) (*models.AuthResult, error)
	SetToken(token string)
	CreatePaymentIntent(ctx context.Context, planID string) (*models.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, subscriptionID string) (*models.ConfirmationResponse, error)
}
