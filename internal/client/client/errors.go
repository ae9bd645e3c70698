package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnavailable means the request never got an HTTP answer.
	ErrUnavailable           = errors.New("server unavailable")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)

// HTTPError is a non-2xx response. Message comes from the JSON error body
// when there is one, otherwise from the raw body text. Status keeps the
// body's "status" field, which a confirmation reply may carry whatever the
// HTTP code.
type HTTPError struct {
	StatusCode int
	Code       string
	Message    string
	Status     string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Temporary reports whether repeating the request may succeed.
func (e *HTTPError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return e.StatusCode >= 500
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// newHTTPError builds an HTTPError from a response status and body.
func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		e.Code = eb.Error
		e.Message = eb.Message
		e.Status = eb.Status
		if e.Message == "" {
			e.Message = eb.Error
		}
		return e
	}

	e.Message = strings.TrimSpace(string(body))
	return e
}

// UserMessage renders err for an alert shown to the user.
func UserMessage(err error) string {
	var he *HTTPError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnavailable):
		return "The server could not be reached. Check your connection and try again."
	case errors.As(err, &he) && he.Message != "":
		return he.Message
	default:
		return err.Error()
	}
}
