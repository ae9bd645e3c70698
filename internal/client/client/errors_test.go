package client

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHTTPError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
		wantStat string
	}{
		{name: "message field", status: 402, body: `{"error":"card_declined","message":"Your card was declined"}`, wantCode: "card_declined", wantMsg: "Your card was declined"},
		{name: "error field only", status: 400, body: `{"error":"invalid_request"}`, wantCode: "invalid_request", wantMsg: "invalid_request"},
		{name: "plain text", status: 502, body: "bad gateway\n", wantMsg: "bad gateway"},
		{name: "empty body", status: 500, body: "", wantMsg: ""},
		{name: "confirmation body", status: 409, body: `{"success":false,"status":"processing"}`, wantStat: "processing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newHTTPError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.status, e.StatusCode)
			assert.Equal(t, tt.wantCode, e.Code)
			assert.Equal(t, tt.wantMsg, e.Message)
			assert.Equal(t, tt.wantStat, e.Status)
		})
	}
}

func TestHTTPError_Is(t *testing.T) {
	err := fmt.Errorf("login: %w", &HTTPError{StatusCode: http.StatusUnauthorized})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, &HTTPError{StatusCode: http.StatusForbidden}, ErrUnauthorized)
}

func TestHTTPError_Temporary(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503} {
		assert.True(t, (&HTTPError{StatusCode: code}).Temporary(), code)
	}
	for _, code := range []int{400, 401, 402, 403, 404, 409, 422} {
		assert.False(t, (&HTTPError{StatusCode: code}).Temporary(), code)
	}
}

func TestHTTPError_Error(t *testing.T) {
	assert.Equal(t, "http 503 Service Unavailable", (&HTTPError{StatusCode: 503}).Error())
	assert.Equal(t, "http 402: declined", (&HTTPError{StatusCode: 402, Message: "declined"}).Error())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Contains(t, UserMessage(fmt.Errorf("%w: dial tcp", ErrUnavailable)), "could not be reached")
	assert.Equal(t, "Your card was declined", UserMessage(&HTTPError{StatusCode: 402, Message: "Your card was declined"}))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}
