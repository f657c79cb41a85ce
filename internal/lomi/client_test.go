package lomi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateCheckoutSession(t *testing.T) {
	var captured checkoutRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/checkout-sessions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("missing API key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"url": "https://pay.example.com/s/abc", "checkout_session_id": "cs_123"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	session, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{
		Amount:            20000,
		CurrencyCode:      "XOF",
		SuccessURL:        "https://app.example.com/ok",
		CancelURL:         "https://app.example.com/cancel",
		ReservationID:     7,
		ExpirationMinutes: 30,
		Title:             "Court A",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if session.URL != "https://pay.example.com/s/abc" {
		t.Fatalf("unexpected url %q", session.URL)
	}
	if session.SessionID != "cs_123" {
		t.Fatalf("unexpected session id %q", session.SessionID)
	}

	if captured.Amount != 20000 || captured.CurrencyCode != "XOF" {
		t.Fatalf("unexpected request payload %+v", captured)
	}
	if len(captured.AllowedProviders) != 1 || captured.AllowedProviders[0] != "WAVE" {
		t.Fatalf("expected WAVE provider, got %v", captured.AllowedProviders)
	}
	if captured.Metadata["reservationId"] != "7" {
		t.Fatalf("expected reservation metadata, got %v", captured.Metadata)
	}
}

func TestCreateCheckoutSessionGatewayRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key")
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{Amount: 100, CurrencyCode: "XOF"})

	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if gwErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", gwErr.Status)
	}
}

func TestCreateCheckoutSessionMissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{Amount: 100, CurrencyCode: "XOF"})

	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
}

func TestSimulatedSession(t *testing.T) {
	session := SimulatedSession("https://app.example.com", 15000, "XOF", 42)

	if !strings.HasPrefix(session.SessionID, "sim_") {
		t.Fatalf("expected sim_ prefix, got %q", session.SessionID)
	}
	if !strings.HasPrefix(session.URL, "https://app.example.com/payment-simulation?") {
		t.Fatalf("unexpected url %q", session.URL)
	}
	for _, want := range []string{"amount=15000", "currency=XOF", "reservation_id=42"} {
		if !strings.Contains(session.URL, want) {
			t.Fatalf("url %q missing %q", session.URL, want)
		}
	}
}
