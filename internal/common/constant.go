// Package common contains shared constants and helpers used across
// FitFlow client components.
package common

// Keys of the local key-value store.
const (
	LoginAttemptsKey  = "login_attempts"
	SessionUserKey    = "session_user"
	SessionTokenKey   = "session_token"
	SessionExpiresKey = "session_expires"
)

// RequestIDHeaderName carries a client-generated request id on outbound calls.
const RequestIDHeaderName = "X-Request-ID"
