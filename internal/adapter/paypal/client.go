package paypal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// APIError carries the provider-side message for a failed PayPal call. It is
// surfaced verbatim to the checkout caller.
type APIError struct {
	StatusCode int
	Message    string
}

func (e APIError) Error() string {
	return fmt.Sprintf("paypal: %s (status %d)", e.Message, e.StatusCode)
}

// CaptureResult is the normalized outcome of an order capture.
type CaptureResult struct {
	OrderID string
	Status  string
	Payer   string
}

// Client exposes the capture operation used by the PayPal intake adapter.
type Client interface {
	CaptureOrder(ctx context.Context, paypalOrderID string) (*CaptureResult, error)
}

// HTTPClient implements Client against the PayPal Orders v2 API with
// client-credentials token caching.
type HTTPClient struct {
	baseURL      *url.URL
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *slog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type captureResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Payer  struct {
		PayerID string `json:"payer_id"`
	} `json:"payer"`
}

type errorResponse struct {
	Message string `json:"message"`
	Details []struct {
		Description string `json:"description"`
	} `json:"details"`
}

// NewHTTPClient creates a PayPal client with default timeout.
func NewHTTPClient(baseURL, clientID, clientSecret string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse paypal url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("paypal url must be absolute")
	}
	return &HTTPClient{
		baseURL:      parsed,
		clientID:     clientID,
		clientSecret: clientSecret,
		logger:       logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// CaptureOrder captures an approved PayPal order and returns the provider's
// capture status.
func (c *HTTPClient) CaptureOrder(ctx context.Context, paypalOrderID string) (*CaptureResult, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL.JoinPath("/v2/checkout/orders/", paypalOrderID, "/capture")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader("{}"))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error("paypal capture failed",
			slog.String("order", paypalOrderID),
			slog.Int("status", resp.StatusCode),
		)
		return nil, APIError{StatusCode: resp.StatusCode, Message: errorMessage(body, resp.Status)}
	}

	var capture captureResponse
	if err := json.Unmarshal(body, &capture); err != nil {
		return nil, err
	}
	if !strings.EqualFold(capture.Status, "COMPLETED") {
		return nil, APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("capture not completed: %s", capture.Status)}
	}

	return &CaptureResult{OrderID: capture.ID, Status: capture.Status, Payer: capture.Payer.PayerID}, nil
}

// token returns a cached client-credentials token, refreshing it when close
// to expiry.
func (c *HTTPClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	endpoint := c.baseURL.JoinPath("/v1/oauth2/token")
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", APIError{StatusCode: resp.StatusCode, Message: errorMessage(body, resp.Status)}
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("paypal: token response missing access_token")
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second).Add(-time.Minute)
	return c.accessToken, nil
}

func errorMessage(body []byte, fallback string) string {
	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if len(apiErr.Details) > 0 && apiErr.Details[0].Description != "" {
			return apiErr.Details[0].Description
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return fallback
}
