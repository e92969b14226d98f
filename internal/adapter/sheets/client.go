package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/solterra/storefront/internal/domain/model"
)

const ledgerRange = "Orders!A:G"

// APIError describes a non-2xx response from the spreadsheet API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e APIError) Error() string {
	return fmt.Sprintf("sheets: %s (status %d)", e.Message, e.StatusCode)
}

// HTTPClient pushes and reads order ledger rows via the Sheets values API.
type HTTPClient struct {
	baseURL       *url.URL
	apiToken      string
	spreadsheetID string
	httpClient    *http.Client
	logger        *slog.Logger
}

type valuesPayload struct {
	Values [][]any `json:"values"`
}

// NewHTTPClient creates a ledger client with default timeout.
func NewHTTPClient(baseURL, apiToken, spreadsheetID string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse sheets url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("sheets url must be absolute")
	}
	return &HTTPClient{
		baseURL:       parsed,
		apiToken:      apiToken,
		spreadsheetID: spreadsheetID,
		logger:        logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// UpsertOrder appends one ledger row for the order. The ledger keeps the last
// appended row per order id as authoritative.
func (c *HTTPClient) UpsertOrder(ctx context.Context, entry model.LedgerEntry) error {
	endpoint := c.baseURL.JoinPath("/v4/spreadsheets/", c.spreadsheetID, "/values/", ledgerRange+":append")
	query := endpoint.Query()
	query.Set("valueInputOption", "RAW")
	endpoint.RawQuery = query.Encode()

	payload := valuesPayload{Values: [][]any{{
		entry.OrderID,
		entry.Email,
		entry.TotalAmount,
		entry.Currency,
		entry.Status,
		entry.EmailSent,
		entry.PaidAt,
	}}}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("ledger append failed",
			slog.String("order", entry.OrderID),
			slog.Int("status", resp.StatusCode),
		)
		return APIError{StatusCode: resp.StatusCode, Message: string(raw)}
	}
	return nil
}

// ListOrders reads the full ledger range and decodes rows into entries.
// Malformed rows are skipped.
func (c *HTTPClient) ListOrders(ctx context.Context) ([]model.LedgerEntry, error) {
	endpoint := c.baseURL.JoinPath("/v4/spreadsheets/", c.spreadsheetID, "/values/", ledgerRange)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var payload valuesPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	entries := make([]model.LedgerEntry, 0, len(payload.Values))
	for _, row := range payload.Values {
		if len(row) < 7 {
			continue
		}
		entries = append(entries, model.LedgerEntry{
			OrderID:     asString(row[0]),
			Email:       asString(row[1]),
			TotalAmount: asFloat(row[2]),
			Currency:    asString(row[3]),
			Status:      asString(row[4]),
			EmailSent:   asBool(row[5]),
			PaidAt:      asString(row[6]),
		})
	}
	return entries, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case string:
		f, _ := strconv.ParseFloat(value, 64)
		return f
	}
	return 0
}

func asBool(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		b, _ := strconv.ParseBool(value)
		return b
	}
	return false
}
