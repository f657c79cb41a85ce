// Package lomi is a minimal client for the lomi. checkout API.
package lomi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const defaultRequestTimeout = 15 * time.Second

// GatewayError reports a failed or malformed gateway exchange. Status is the
// HTTP status the gateway answered with, or 0 when the exchange itself failed.
type GatewayError struct {
	Status  int
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("lomi gateway: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("lomi gateway: %s", e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// CheckoutParams describes one checkout session to create.
type CheckoutParams struct {
	Amount            int64
	CurrencyCode      string
	SuccessURL        string
	CancelURL         string
	ReservationID     int64
	ExpirationMinutes int
	Title             string
	Description       string
	CustomerEmail     string
	CustomerName      string
	CustomerPhone     string
}

// CheckoutSession is the gateway's answer to a session create.
type CheckoutSession struct {
	SessionID string
	URL       string
}

// Client talks to the lomi. REST API.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient builds a Client for the given API base URL and key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: defaultRequestTimeout},
	}
}

type checkoutRequest struct {
	Amount            int64             `json:"amount"`
	CurrencyCode      string            `json:"currency_code"`
	SuccessURL        string            `json:"success_url"`
	CancelURL         string            `json:"cancel_url"`
	AllowedProviders  []string          `json:"allowed_providers"`
	Metadata          map[string]string `json:"metadata"`
	ExpirationMinutes int               `json:"expiration_minutes"`
	Title             string            `json:"title,omitempty"`
	PublicDescription string            `json:"public_description,omitempty"`
	CustomerEmail     string            `json:"customer_email,omitempty"`
	CustomerName      string            `json:"customer_name,omitempty"`
	CustomerPhone     string            `json:"customer_phone,omitempty"`
}

type checkoutResponse struct {
	Data struct {
		URL               string `json:"url"`
		CheckoutSessionID string `json:"checkout_session_id"`
	} `json:"data"`
}

// CreateCheckoutSession creates a hosted checkout session and returns its
// redirect URL. Non-2xx answers and answers without a URL become a
// *GatewayError.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (CheckoutSession, error) {
	payload := checkoutRequest{
		Amount:           params.Amount,
		CurrencyCode:     params.CurrencyCode,
		SuccessURL:       params.SuccessURL,
		CancelURL:        params.CancelURL,
		AllowedProviders: []string{"WAVE"},
		Metadata: map[string]string{
			"reservationId": strconv.FormatInt(params.ReservationID, 10),
		},
		ExpirationMinutes: params.ExpirationMinutes,
		Title:             params.Title,
		PublicDescription: params.Description,
		CustomerEmail:     params.CustomerEmail,
		CustomerName:      params.CustomerName,
		CustomerPhone:     params.CustomerPhone,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return CheckoutSession{}, &GatewayError{Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout-sessions", bytes.NewReader(body))
	if err != nil {
		return CheckoutSession{}, &GatewayError{Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return CheckoutSession{}, &GatewayError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Bounded read keeps a hostile answer from ballooning the error.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return CheckoutSession{}, &GatewayError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("unexpected status: %s", string(snippet)),
		}
	}

	var decoded checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return CheckoutSession{}, &GatewayError{Status: resp.StatusCode, Message: "decode response", Err: err}
	}
	if decoded.Data.URL == "" {
		return CheckoutSession{}, &GatewayError{Status: resp.StatusCode, Message: "response missing checkout url"}
	}

	return CheckoutSession{
		SessionID: decoded.Data.CheckoutSessionID,
		URL:       decoded.Data.URL,
	}, nil
}

// SimulatedSession fabricates an offline checkout session pointing at the
// in-app payment simulation page.
func SimulatedSession(baseURL string, amount int64, currency string, reservationID int64) CheckoutSession {
	sessionID := "sim_" + uuid.New().String()
	values := url.Values{}
	values.Set("amount", strconv.FormatInt(amount, 10))
	values.Set("currency", currency)
	values.Set("reservation_id", strconv.FormatInt(reservationID, 10))

	return CheckoutSession{
		SessionID: sessionID,
		URL:       baseURL + "/payment-simulation?" + values.Encode(),
	}
}
