package payment

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockGateway is an in-memory Gateway for tests and local development. Created
// sessions start unpaid/open; tests drive them to a terminal state with
// MarkPaid or MarkExpired.
type MockGateway struct {
	mu       sync.Mutex
	seq      int
	sessions map[string]*SessionStatus

	// CreateErr, when set, is returned by CreateSession.
	CreateErr error
	// StatusErr, when set, is returned by GetSessionStatus.
	StatusErr error
}

// NewMockGateway creates an empty mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{sessions: make(map[string]*SessionStatus)}
}

func (g *MockGateway) CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error) {
	if g.CreateErr != nil {
		return nil, g.CreateErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	id := fmt.Sprintf("cs_test_%d", g.seq)
	g.sessions[id] = &SessionStatus{
		ID:            id,
		Status:        "open",
		PaymentStatus: "unpaid",
		AmountTotal:   toMinorUnits(params.Amount),
		Currency:      params.Currency,
		Metadata:      params.Metadata,
	}
	url := strings.Replace(params.SuccessURL, "{CHECKOUT_SESSION_ID}", id, 1)
	return &Session{ID: id, URL: url}, nil
}

func (g *MockGateway) GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	if g.StatusErr != nil {
		return nil, g.StatusErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	status, ok := g.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("mock gateway: unknown session %q", sessionID)
	}
	copied := *status
	return &copied, nil
}

func (g *MockGateway) VerifyWebhookSignature(payload []byte, header string) bool {
	return header != ""
}

// MarkPaid moves a session to paid/complete.
func (g *MockGateway) MarkPaid(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.sessions[sessionID]; ok {
		s.PaymentStatus = "paid"
		s.Status = "complete"
	}
}

// MarkExpired moves a session to expired.
func (g *MockGateway) MarkExpired(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.sessions[sessionID]; ok {
		s.Status = "expired"
	}
}
