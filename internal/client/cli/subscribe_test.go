package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/client"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/models"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/payments"
)

func loggedInApp(subs *fakeSubs) *App {
	a, _ := newTestApp(&fakeAuth{}, subs, "")
	a.setSession(&models.Session{Username: "demo", Token: "tok"})
	return a
}

func TestSubscribe_Success(t *testing.T) {
	out := capturePrintln(t)
	stubInputs(t, []string{"y"}, nil)
	subs := &fakeSubs{result: payments.ConfirmResult{Confirmation: &payments.Confirmation{SubscriptionID: "sub_monthly", Status: "succeeded", Attempts: 2}}}
	a := loggedInApp(subs)

	require.NoError(t, a.Subscribe(context.Background(), []string{"monthly"}))

	assert.Equal(t, []string{"monthly"}, subs.plans)
	assert.Equal(t, []string{"sub_monthly"}, subs.confirmed)
	assert.Equal(t, []string{`Subscription to "monthly" is active.`}, out.all())
}

func TestSubscribe_Declined(t *testing.T) {
	out := capturePrintln(t)
	stubInputs(t, []string{"yes"}, nil)
	subs := &fakeSubs{result: payments.ConfirmResult{Err: &payments.ConfirmationError{SubscriptionID: "sub_declined", Reason: "Your card was declined", Attempts: 1}}}
	a := loggedInApp(subs)

	err := a.Subscribe(context.Background(), []string{"declined"})

	var ce *payments.ConfirmationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"Payment failed: Your card was declined"}, out.all())
}

func TestSubscribe_Timeout(t *testing.T) {
	out := capturePrintln(t)
	stubInputs(t, []string{"Y"}, nil)
	subs := &fakeSubs{result: payments.ConfirmResult{Err: &payments.ConfirmationError{Reason: payments.ReasonTimeout, Attempts: 5}}}
	a := loggedInApp(subs)

	require.Error(t, a.Subscribe(context.Background(), []string{"monthly"}))
	assert.True(t, out.contains("Payment is still processing"))
}

func TestSubscribe_Cancelled(t *testing.T) {
	for _, answer := range []string{"n", "", "maybe"} {
		t.Run(answer, func(t *testing.T) {
			out := capturePrintln(t)
			stubInputs(t, []string{answer}, nil)
			subs := &fakeSubs{}
			a := loggedInApp(subs)

			require.NoError(t, a.Subscribe(context.Background(), []string{"monthly"}))
			assert.Empty(t, subs.confirmed)
			assert.Equal(t, []string{"Payment cancelled."}, out.all())
		})
	}
}

func TestSubscribe_Guards(t *testing.T) {
	t.Run("not logged in", func(t *testing.T) {
		out := capturePrintln(t)
		subs := &fakeSubs{}
		a, _ := newTestApp(&fakeAuth{}, subs, "")
		require.ErrorIs(t, a.Subscribe(context.Background(), []string{"monthly"}), client.ErrUnauthorized)
		assert.Empty(t, subs.plans)
		assert.Equal(t, []string{"Please log in first."}, out.all())
	})
	t.Run("usage", func(t *testing.T) {
		out := capturePrintln(t)
		subs := &fakeSubs{}
		a := loggedInApp(subs)
		require.NoError(t, a.Subscribe(context.Background(), nil))
		assert.Empty(t, subs.plans)
		assert.Equal(t, []string{"Usage: subscribe <plan>"}, out.all())
	})
}

func TestSubscribe_IntentErrors(t *testing.T) {
	t.Run("session expired", func(t *testing.T) {
		out := capturePrintln(t)
		subs := &fakeSubs{intentErr: &client.HTTPError{StatusCode: 401, Message: "invalid token"}}
		a := loggedInApp(subs)

		require.ErrorIs(t, a.Subscribe(context.Background(), []string{"monthly"}), client.ErrUnauthorized)
		assert.False(t, a.isLoggedIn())
		assert.Equal(t, []string{"Session expired, please log in again."}, out.all())
	})
	t.Run("unknown plan", func(t *testing.T) {
		out := capturePrintln(t)
		subs := &fakeSubs{intentErr: &client.HTTPError{StatusCode: 422, Code: "unknown_plan", Message: "Unknown plan"}}
		a := loggedInApp(subs)

		require.Error(t, a.Subscribe(context.Background(), []string{"weekly"}))
		assert.True(t, a.isLoggedIn())
		assert.Equal(t, []string{"Could not start payment: Unknown plan"}, out.all())
	})
}

func TestWaitWithSpinner_Animates(t *testing.T) {
	old := spinnerInterval
	spinnerInterval = time.Millisecond
	t.Cleanup(func() { spinnerInterval = old })

	subs := &fakeSubs{delay: 30 * time.Millisecond, result: payments.ConfirmResult{Confirmation: &payments.Confirmation{Status: "succeeded"}}}
	a, out := newTestApp(&fakeAuth{}, subs, "")

	res := a.waitWithSpinner(subs.Confirm(context.Background(), "sub_1"))

	require.NotNil(t, res.Confirmation)
	assert.Greater(t, strings.Count(out.String(), "Confirming payment"), 1)
	assert.Contains(t, out.String(), "Confirming payment /")
}

func TestWaitWithSpinner_ClosedChannel(t *testing.T) {
	a, _ := newTestApp(&fakeAuth{}, &fakeSubs{}, "")
	ch := make(chan payments.ConfirmResult)
	close(ch)

	res := a.waitWithSpinner(ch)
	require.NotNil(t, res.Err)
	assert.Equal(t, "no result", res.Err.Reason)
}
