package paypal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(server.URL, "client-id", "client-secret", discardLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func paypalStub(t *testing.T, tokenCalls *int32, captureStatus string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			atomic.AddInt32(tokenCalls, 1)
			user, pass, ok := r.BasicAuth()
			if !ok || user != "client-id" || pass != "client-secret" {
				t.Errorf("unexpected basic auth %q %q", user, pass)
			}
			if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
				t.Errorf("unexpected grant request: %v", r.PostForm)
			}
			_, _ = w.Write([]byte(`{"access_token":"A21AA","expires_in":3600}`))
		case "/v2/checkout/orders/8XU12345/capture":
			if got := r.Header.Get("Authorization"); got != "Bearer A21AA" {
				t.Errorf("unexpected authorization %q", got)
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"8XU12345","status":"` + captureStatus + `","payer":{"payer_id":"PAYER99"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestCaptureOrder(t *testing.T) {
	var tokenCalls int32
	client := newTestClient(t, paypalStub(t, &tokenCalls, "COMPLETED"))

	result, err := client.CaptureOrder(context.Background(), "8XU12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OrderID != "8XU12345" || result.Status != "COMPLETED" || result.Payer != "PAYER99" {
		t.Fatalf("unexpected result %+v", result)
	}

	// Second capture reuses the cached token.
	if _, err := client.CaptureOrder(context.Background(), "8XU12345"); err != nil {
		t.Fatalf("second capture: %v", err)
	}
	if got := atomic.LoadInt32(&tokenCalls); got != 1 {
		t.Fatalf("expected 1 token request, got %d", got)
	}
}

func TestCaptureOrderNotCompleted(t *testing.T) {
	var tokenCalls int32
	client := newTestClient(t, paypalStub(t, &tokenCalls, "PENDING"))

	_, err := client.CaptureOrder(context.Background(), "8XU12345")
	var apiErr APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
}

func TestCaptureOrderProviderRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			_, _ = w.Write([]byte(`{"access_token":"A21AA","expires_in":3600}`))
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"UNPROCESSABLE_ENTITY","details":[{"description":"Order already captured."}]}`))
	})

	_, err := client.CaptureOrder(context.Background(), "8XU12345")
	var apiErr APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Order already captured." {
		t.Fatalf("expected detail description, got %q", apiErr.Message)
	}
}

func TestCaptureOrderTokenFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Client Authentication failed"}`))
	})

	_, err := client.CaptureOrder(context.Background(), "8XU12345")
	var apiErr APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", apiErr.StatusCode)
	}
}

func TestNewHTTPClientRejectsRelativeURL(t *testing.T) {
	if _, err := NewHTTPClient("not-a-url", "id", "secret", discardLogger()); err == nil {
		t.Fatal("expected error for relative base url")
	}
}
