// Package payments confirms settlement of a subscription payment after the
// payment sheet has authorized it.
//
// The backend may answer "processing" for a while after authorization, so
// Confirmer polls the confirmation endpoint: at most DefaultMaxAttempts calls
// with a fixed DefaultDelay between them. A success ends the loop at once, as
// does a terminal 4xx answer. Every other outcome is retried. Whatever goes
// wrong, the caller gets a single *ConfirmationError whose Reason can be put
// in front of the user; a poll that never leaves "processing" yields Reason
// "timeout".
package payments
