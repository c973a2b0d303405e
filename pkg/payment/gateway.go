package payment

import "context"

// Gateway is the hosted-checkout payment provider boundary.
type Gateway interface {
	// CreateSession opens a hosted checkout session and returns its ID and
	// the URL the customer must be redirected to.
	CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error)
	// GetSessionStatus queries the authoritative state of a session.
	GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error)
	// VerifyWebhookSignature checks a webhook payload against its signature
	// header.
	VerifyWebhookSignature(payload []byte, header string) bool
}

// CreateSessionParams describes one checkout session to open.
type CreateSessionParams struct {
	Amount     float64 // major currency units, e.g. dollars
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// Session is a freshly created hosted checkout session.
type Session struct {
	ID  string
	URL string
}

// SessionStatus is the provider's view of a session.
//
// PaymentStatus is "paid", "unpaid" or "no_payment_required"; Status is
// "open", "complete" or "expired".
type SessionStatus struct {
	ID            string
	Status        string
	PaymentStatus string
	AmountTotal   int64 // minor currency units
	Currency      string
	Metadata      map[string]string
}
