package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/solterra/storefront/internal/domain/model"
)

// APIError describes a rejected Brevo request.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e APIError) Error() string {
	return fmt.Sprintf("brevo: %s %s (status %d)", e.Code, e.Message, e.StatusCode)
}

// HTTPClient upserts CRM contacts via the Brevo contacts API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

type contactPayload struct {
	Email         string         `json:"email"`
	Attributes    map[string]any `json:"attributes,omitempty"`
	UpdateEnabled bool           `json:"updateEnabled"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewHTTPClient creates a Brevo client with default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse brevo url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("brevo url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// UpsertContact creates or updates one contact. The contact type travels as
// a CONTACT_TYPE attribute so segments stay filterable remotely.
func (c *HTTPClient) UpsertContact(ctx context.Context, contactType model.ContactType, contact model.Contact) error {
	attributes := make(map[string]any, len(contact.Attributes)+2)
	for k, v := range contact.Attributes {
		attributes[k] = v
	}
	attributes["CONTACT_TYPE"] = string(contactType)
	if contact.Country != "" {
		attributes["COUNTRY"] = contact.Country
	}

	payload := contactPayload{Email: contact.Email, Attributes: attributes, UpdateEnabled: true}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := c.baseURL.JoinPath("/v3/contacts")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	default:
		raw, _ := io.ReadAll(resp.Body)
		var apiErr errorResponse
		_ = json.Unmarshal(raw, &apiErr)
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		c.logger.Error("brevo upsert failed",
			slog.Int("status", resp.StatusCode),
			slog.String("code", apiErr.Code),
		)
		return APIError{StatusCode: resp.StatusCode, Code: apiErr.Code, Message: apiErr.Message}
	}
}
