package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/solterra/storefront/internal/domain/model"
)

// APIError carries the human-readable message Stripe returned for a failed
// request.
type APIError struct {
	StatusCode int
	Message    string
}

func (e APIError) Error() string {
	return fmt.Sprintf("stripe: %s (status %d)", e.Message, e.StatusCode)
}

// Client exposes the Checkout Session operation used by the storefront.
type Client interface {
	CreateCheckoutSession(ctx context.Context, items []model.OrderItem) (string, error)
}

// HTTPClient implements Client against the Stripe REST API.
type HTTPClient struct {
	baseURL    *url.URL
	secretKey  string
	successURL string
	cancelURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewHTTPClient creates a Stripe client with default timeout.
func NewHTTPClient(baseURL, secretKey, successURL, cancelURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse stripe url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("stripe url must be absolute")
	}
	return &HTTPClient{
		baseURL:    parsed,
		secretKey:  secretKey,
		successURL: successURL,
		cancelURL:  cancelURL,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// CreateCheckoutSession creates a payment-mode Checkout Session and returns
// the redirect URL to send the buyer to.
func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, items []model.OrderItem) (string, error) {
	endpoint := c.baseURL.JoinPath("/v1/checkout/sessions")

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)
	for i, item := range items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(toCents(item.UnitPrice), 10))
		form.Set(prefix+"[price_data][product_data][name]", item.Title)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
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
		var apiErr errorResponse
		_ = json.Unmarshal(body, &apiErr)
		message := apiErr.Error.Message
		if message == "" {
			message = resp.Status
		}
		c.logger.Error("stripe session create failed",
			slog.Int("status", resp.StatusCode),
			slog.String("message", message),
		)
		return "", APIError{StatusCode: resp.StatusCode, Message: message}
	}

	var session sessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return "", err
	}
	if session.URL == "" {
		return "", fmt.Errorf("stripe: session response missing url")
	}
	return session.URL, nil
}

func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
