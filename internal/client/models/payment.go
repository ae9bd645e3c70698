package models

// Status values reported by the payment confirmation endpoint.
const (
	PaymentStatusProcessing = "processing"
	PaymentStatusSucceeded  = "succeeded"
	PaymentStatusFailed     = "failed"
)

type PaymentIntentRequest struct {
	PlanID string `json:"planId"`
}

// PaymentIntent is returned by the intent creation endpoint and handed to
// the payment sheet before confirmation.
type PaymentIntent struct {
	ClientSecret   string `json:"clientSecret"`
	SubscriptionID string `json:"subscriptionId"`
}

type ConfirmationRequest struct {
	SubscriptionID string `json:"subscriptionId"`
}

// ConfirmationResponse is the confirmation endpoint body.
type ConfirmationResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Processing reports whether settlement is still in flight.
func (r *ConfirmationResponse) Processing() bool {
	return r != nil && !r.Success && r.Status == PaymentStatusProcessing
}
