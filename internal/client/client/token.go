package client

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims reads the subject and expiry of a session token. The signature
// is not checked: only the server can do that, the client just needs to know
// when to ask the user to log in again.
func TokenClaims(token string) (subject string, expiresAt time.Time, err error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "", time.Time{}, fmt.Errorf("parse session token: %w", err)
	}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return claims.Subject, expiresAt, nil
}
