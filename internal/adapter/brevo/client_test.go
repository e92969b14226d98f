package brevo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/solterra/storefront/internal/domain/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(server.URL, "xkeysib-test", discardLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestUpsertContact(t *testing.T) {
	var gotKey string
	var gotPayload contactPayload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/contacts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})

	contact := model.Contact{
		Email:      "buyer@example.com",
		Country:    "FR",
		Attributes: map[string]any{"FIRSTNAME": "Ana"},
	}
	if err := client.UpsertContact(context.Background(), model.ContactTypeBuyer, contact); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != "xkeysib-test" {
		t.Fatalf("unexpected api key %q", gotKey)
	}
	if gotPayload.Email != "buyer@example.com" || !gotPayload.UpdateEnabled {
		t.Fatalf("unexpected payload %+v", gotPayload)
	}
	if gotPayload.Attributes["CONTACT_TYPE"] != string(model.ContactTypeBuyer) {
		t.Fatalf("contact type attribute missing: %+v", gotPayload.Attributes)
	}
	if gotPayload.Attributes["COUNTRY"] != "FR" || gotPayload.Attributes["FIRSTNAME"] != "Ana" {
		t.Fatalf("attributes not merged: %+v", gotPayload.Attributes)
	}
}

func TestUpsertContactOmitsEmptyCountry(t *testing.T) {
	var gotPayload contactPayload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.UpsertContact(context.Background(), model.ContactTypeNewsletter, model.Contact{Email: "a@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gotPayload.Attributes["COUNTRY"]; ok {
		t.Fatalf("empty country must be omitted: %+v", gotPayload.Attributes)
	}
}

func TestUpsertContactAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid_parameter","message":"Email is invalid"}`))
	})

	err := client.UpsertContact(context.Background(), model.ContactTypeBuyer, model.Contact{Email: "broken"})
	var apiErr APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "invalid_parameter" || apiErr.Message != "Email is invalid" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}
