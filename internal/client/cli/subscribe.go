package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/client"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/payments"
)

var spinnerInterval = 100 * time.Millisecond

const spinnerFrames = `|/-\`

// Subscribe buys a plan: it creates the payment intent, asks the user to
// authorize the charge (the payment sheet), then waits for settlement with
// a spinner.
func (a *App) Subscribe(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return client.ErrUnauthorized
	}
	if len(args) != 1 {
		printlnFn("Usage: subscribe <plan>")
		return nil
	}
	plan := args[0]

	intent, err := a.subscriptionService.CreateIntent(ctx, plan)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.setSession(nil)
			printlnFn("Session expired, please log in again.")
			return err
		}
		printlnFn("Could not start payment:", client.UserMessage(err))
		return err
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Authorize payment for plan %q? [y/N]", plan), a.out)
	if err != nil {
		return err
	}
	if ans := strings.ToLower(answer); ans != "y" && ans != "yes" {
		printlnFn("Payment cancelled.")
		return nil
	}

	res := a.waitWithSpinner(a.subscriptionService.Confirm(ctx, intent.SubscriptionID))
	if res.Err != nil {
		if res.Err.Timeout() {
			printlnFn("Payment is still processing. Check your subscription status later.")
		} else {
			printlnFn("Payment failed:", res.Err.Reason)
		}
		return res.Err
	}

	printlnFn(fmt.Sprintf("Subscription to %q is active.", plan))
	return nil
}

// waitWithSpinner animates a spinner on a.out until ch delivers.
func (a *App) waitWithSpinner(ch <-chan payments.ConfirmResult) payments.ConfirmResult {
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		fmt.Fprintf(a.out, "\rConfirming payment %c", spinnerFrames[i%len(spinnerFrames)])
		select {
		case res, ok := <-ch:
			fmt.Fprint(a.out, "\r                    \r")
			if !ok {
				return payments.ConfirmResult{Err: &payments.ConfirmationError{Reason: "no result"}}
			}
			return res
		case <-ticker.C:
		}
	}
}
