// Package checkout is the client side of the checkout flow: a single-shot
// session initiation call and a bounded poller that resolves the payment
// outcome after the customer returns from the hosted payment page.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Order is the chargeable intent submitted to the session endpoint.
type Order struct {
	PlanType      string
	CustomerEmail string
	IsCustom      bool
	Amount        float64 // submitted as custom_amount for custom plans
}

// ValidationError is a local pre-flight failure; no network call was made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// PaymentDetails is the status endpoint's response body.
type PaymentDetails struct {
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

// FormattedAmount renders the paid amount in major units, e.g. "100.00".
func (d *PaymentDetails) FormattedAmount() string {
	return fmt.Sprintf("%.2f", float64(d.AmountTotal)/100)
}

// PlanName returns the plan name from session metadata, or "Custom Plan" when
// absent.
func (d *PaymentDetails) PlanName() string {
	if d.Metadata != nil && d.Metadata["plan_name"] != "" {
		return d.Metadata["plan_name"]
	}
	return "Custom Plan"
}

// CustomerEmail returns the customer email echoed back in session metadata,
// or "" when absent.
func (d *PaymentDetails) CustomerEmail() string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata["customer_email"]
}

// Client talks to the checkout API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createSessionRequest struct {
	PlanType      string   `json:"plan_type"`
	CustomerEmail string   `json:"customer_email"`
	CustomAmount  *float64 `json:"custom_amount"`
}

type createSessionResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
	Error     string `json:"error"`
	Detail    string `json:"detail"`
}

// InitiateCheckout validates the order, submits it once, and returns the URL
// the caller must redirect the customer to. Validation failures return a
// *ValidationError before any network call; a failed creation call is never
// retried automatically.
func (c *Client) InitiateCheckout(ctx context.Context, order Order) (string, error) {
	if strings.TrimSpace(order.CustomerEmail) == "" {
		return "", &ValidationError{Msg: "Please enter your email address"}
	}
	if order.IsCustom && order.Amount <= 0 {
		return "", &ValidationError{Msg: "Please enter a valid amount"}
	}

	req := createSessionRequest{
		PlanType:      order.PlanType,
		CustomerEmail: order.CustomerEmail,
	}
	if order.IsCustom {
		amount := order.Amount
		req.CustomAmount = &amount
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/checkout/session", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read checkout response: %w", err)
	}

	var parsed createSessionResponse
	_ = json.Unmarshal(data, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%s", serverMessage(parsed))
	}
	// A 2xx without a redirect URL is treated the same as a server error.
	if parsed.URL == "" {
		return "", fmt.Errorf("%s", serverMessage(parsed))
	}
	return parsed.URL, nil
}

// GetCheckoutStatus queries the status endpoint for one session.
func (c *Client) GetCheckoutStatus(ctx context.Context, sessionID string) (*PaymentDetails, error) {
	endpoint := c.baseURL + "/api/checkout/status/" + url.PathEscape(sessionID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("check payment status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("check payment status: unexpected status %d", resp.StatusCode)
	}

	var details PaymentDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &details, nil
}

// serverMessage prefers the server-supplied detail over a generic message.
func serverMessage(resp createSessionResponse) string {
	if resp.Error != "" {
		return resp.Error
	}
	if resp.Detail != "" {
		return resp.Detail
	}
	return "Failed to create checkout session"
}
