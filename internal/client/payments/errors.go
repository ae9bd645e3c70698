package payments

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/client"
)

// ReasonTimeout is reported when settlement was still processing after the
// last attempt.
const ReasonTimeout = "timeout"

// ConfirmationError is the only error Confirm returns.
type ConfirmationError struct {
	SubscriptionID string
	Reason         string
	Attempts       int
	Err            error
}

func (e *ConfirmationError) Error() string {
	return fmt.Sprintf("payment confirmation for %s failed after %d attempt(s): %s", e.SubscriptionID, e.Attempts, e.Reason)
}

func (e *ConfirmationError) Unwrap() error { return e.Err }

// Timeout reports whether the payment never left the processing state.
func (e *ConfirmationError) Timeout() bool { return e.Reason == ReasonTimeout }

var (
	errProcessing = errors.New("payment still processing")
)

// declinedError is a 2xx body that reports a failure.
type declinedError struct {
	status  string
	message string
}

func (e *declinedError) Error() string {
	if e.message != "" {
		return e.message
	}
	if e.status != "" {
		return "payment " + e.status
	}
	return "payment was not confirmed"
}

// terminalStatus lists the 4xx answers that end the loop at once.
var terminalStatus = map[int]bool{
	http.StatusBadRequest:          true,
	http.StatusUnauthorized:        true,
	http.StatusPaymentRequired:     true,
	http.StatusForbidden:           true,
	http.StatusNotFound:            true,
	http.StatusConflict:            true,
	http.StatusUnprocessableEntity: true,
}

func isRetryable(err error) bool {
	if errors.Is(err, errProcessing) || processingReply(err) {
		return true
	}
	var he *client.HTTPError
	if errors.As(err, &he) {
		return !terminalStatus[he.StatusCode]
	}
	return true
}

// reason turns the last error into the text shown to the user.
func reason(err error) string {
	if errors.Is(err, errProcessing) {
		return ReasonTimeout
	}
	return client.UserMessage(err)
}
