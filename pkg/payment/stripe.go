package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultStripeBaseURL = "https://api.stripe.com"

// StripeGateway drives Stripe's hosted Checkout over its form-encoded API.
type StripeGateway struct {
	apiKey        string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
}

// StripeOption customizes a StripeGateway.
type StripeOption func(*StripeGateway)

// WithStripeBaseURL overrides the API base URL (used in tests).
func WithStripeBaseURL(u string) StripeOption {
	return func(g *StripeGateway) { g.baseURL = strings.TrimRight(u, "/") }
}

// WithStripeHTTPClient overrides the HTTP client.
func WithStripeHTTPClient(c *http.Client) StripeOption {
	return func(g *StripeGateway) { g.httpClient = c }
}

// NewStripeGateway creates a gateway authenticated with the given secret key.
func NewStripeGateway(apiKey, webhookSecret string, opts ...StripeOption) *StripeGateway {
	g := &StripeGateway{
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		baseURL:       defaultStripeBaseURL,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type stripeSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateSession opens a hosted checkout session for a single line item.
func (g *StripeGateway) CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(toMinorUnits(params.Amount), 10))
	name := params.Metadata["plan_name"]
	if name == "" {
		name = "Checkout"
	}
	form.Set("line_items[0][price_data][product_data][name]", name)
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var sess stripeSession
	if err := g.do(ctx, http.MethodPost, "/v1/checkout/sessions", strings.NewReader(form.Encode()), &sess); err != nil {
		return nil, err
	}
	if sess.ID == "" || sess.URL == "" {
		return nil, fmt.Errorf("stripe: create session returned no id or url")
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

// GetSessionStatus fetches the current state of a session.
func (g *StripeGateway) GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	var sess stripeSession
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	if err := g.do(ctx, http.MethodGet, path, nil, &sess); err != nil {
		return nil, err
	}
	return &SessionStatus{
		ID:            sess.ID,
		Status:        sess.Status,
		PaymentStatus: sess.PaymentStatus,
		AmountTotal:   sess.AmountTotal,
		Currency:      sess.Currency,
		Metadata:      sess.Metadata,
	}, nil
}

// VerifyWebhookSignature checks a Stripe-Signature header (t=...,v1=...)
// against the webhook secret.
func (g *StripeGateway) VerifyWebhookSignature(payload []byte, header string) bool {
	if g.webhookSecret == "" || header == "" {
		return false
	}
	var timestamp string
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return true
		}
	}
	return false
}

func (g *StripeGateway) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("stripe: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("stripe: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("stripe: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr stripeError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe: %s (status %d)", apiErr.Error.Message, resp.StatusCode)
		}
		return fmt.Errorf("stripe: unexpected status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("stripe: decode response: %w", err)
	}
	return nil
}

// toMinorUnits converts dollars to cents, rounding to the nearest cent.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
