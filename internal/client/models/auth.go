package models

import "time"

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is the authentication endpoint response.
type AuthResult struct {
	OK      bool   `json:"ok"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// Session is the locally saved result of a successful login.
type Session struct {
	Username  string
	Token     string
	ExpiresAt time.Time
}

// Valid reports whether the session exists and has not expired at now.
// A zero ExpiresAt never expires.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}
