package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/models"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/payments"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/logging"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/retry"
)

func TestSubscription_CreateIntent(t *testing.T) {
	fc := &fakeClient{Intent: &models.PaymentIntent{ClientSecret: "cs", SubscriptionID: "sub_1"}}
	svc := NewSubscriptionService(fc, payments.New(fc, logging.Discard()), logging.Discard())

	pi, err := svc.CreateIntent(context.Background(), "monthly")
	require.NoError(t, err)
	assert.Equal(t, "sub_1", pi.SubscriptionID)
}

func TestSubscription_CreateIntent_ErrorWrapped(t *testing.T) {
	fc := &fakeClient{IntentErr: errors.New("boom")}
	svc := NewSubscriptionService(fc, payments.New(fc, logging.Discard()), logging.Discard())

	_, err := svc.CreateIntent(context.Background(), "monthly")
	require.EqualError(t, err, "create payment intent: boom")
}

func TestSubscription_Confirm(t *testing.T) {
	fc := &fakeClient{}
	conf := payments.New(fc, logging.Discard(), payments.WithPolicy(retry.Policy{MaxAttempts: 5, Delay: time.Millisecond}))
	svc := NewSubscriptionService(fc, conf, logging.Discard())

	res := <-svc.Confirm(context.Background(), "sub_1")
	require.Nil(t, res.Err)
	assert.Equal(t, "sub_1", res.Confirmation.SubscriptionID)
}
