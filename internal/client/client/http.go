package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/client/models"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/common"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/logging"
)

const maxBodySize = 1 << 20

// HTTPClient talks to the FitFlow REST backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPClient returns a client for baseURL. timeout bounds every request.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("module", "api_client"),
	}
}

// SetToken sets the bearer token sent with every request.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/ping", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

// Login posts the credentials. Rejected credentials come back as a result
// with OK == false and a nil error, whether the server used 200 or 401.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", models.Credentials{Username: username, Password: password}, &res)

	var he *HTTPError
	if errors.As(err, &he) && he.StatusCode == http.StatusUnauthorized {
		return &models.AuthResult{OK: false, Message: he.Message}, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) CreatePaymentIntent(ctx context.Context, planID string) (*models.PaymentIntent, error) {
	var pi models.PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/api/payments/intent", models.PaymentIntentRequest{PlanID: planID}, &pi); err != nil {
		return nil, err
	}
	return &pi, nil
}

func (c *HTTPClient) ConfirmPayment(ctx context.Context, subscriptionID string) (*models.ConfirmationResponse, error) {
	var cr models.ConfirmationResponse
	if err := c.do(ctx, http.MethodPost, "/api/payments/confirm", models.ConfirmationRequest{SubscriptionID: subscriptionID}, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.logger.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHTTPError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

var _ Client = (*HTTPClient)(nil)
