package payments

import (
	"errors"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/client"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/models"
)

// AttemptStatus classifies the last server answer seen for an attempt.
type AttemptStatus int

const (
	// Pending means no answer has been seen yet.
	Pending AttemptStatus = iota
	// Succeeded means the server confirmed the payment.
	Succeeded
	// Processing means the server is still settling the payment.
	Processing
	// Failed means the call errored or the server declined the payment.
	Failed
)

func (s AttemptStatus) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Processing:
		return "processing"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Attempt tracks one confirmation loop. AttemptNumber is 0-based.
type Attempt struct {
	SubscriptionID string
	AttemptNumber  int
	Status         AttemptStatus
}

// observe records the outcome of the current call. A reply still in the
// processing state counts as Processing even when it came with a non-2xx
// status.
func (a *Attempt) observe(resp *models.ConfirmationResponse, err error) {
	switch {
	case processingReply(err):
		a.Status = Processing
	case err != nil, resp == nil:
		a.Status = Failed
	case resp.Success:
		a.Status = Succeeded
	case resp.Processing():
		a.Status = Processing
	default:
		a.Status = Failed
	}
}

func processingReply(err error) bool {
	var he *client.HTTPError
	return errors.As(err, &he) && he.Status == models.PaymentStatusProcessing
}
