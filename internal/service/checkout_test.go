package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webxmedia/backend/internal/domain"
	"github.com/webxmedia/backend/pkg/payment"
)

// memTransactionStore is an in-memory TransactionStore for service tests.
type memTransactionStore struct {
	txs []*domain.PaymentTransaction
}

func (m *memTransactionStore) Create(ctx context.Context, tx *domain.PaymentTransaction) error {
	m.txs = append(m.txs, tx)
	return nil
}

func (m *memTransactionStore) FindBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error) {
	for _, tx := range m.txs {
		if tx.SessionID == sessionID {
			return tx, nil
		}
	}
	return nil, nil
}

func (m *memTransactionStore) UpdateStatus(ctx context.Context, sessionID, paymentStatus, status string) error {
	for _, tx := range m.txs {
		if tx.SessionID == sessionID {
			tx.PaymentStatus = paymentStatus
			tx.Status = status
		}
	}
	return nil
}

func (m *memTransactionStore) UpdatePaymentStatus(ctx context.Context, sessionID, paymentStatus string) error {
	for _, tx := range m.txs {
		if tx.SessionID == sessionID {
			tx.PaymentStatus = paymentStatus
		}
	}
	return nil
}

func (m *memTransactionStore) ListAll(ctx context.Context, limit int) ([]*domain.PaymentTransaction, error) {
	return m.txs, nil
}

func newCheckoutFixture() (*CheckoutService, *payment.MockGateway, *memTransactionStore) {
	gateway := payment.NewMockGateway()
	store := &memTransactionStore{}
	svc := NewCheckoutService(gateway, store, "https://webxmedia.example.com", zerolog.Nop())
	return svc, gateway, store
}

func TestCreateSessionCatalogPlan(t *testing.T) {
	svc, _, store := newCheckoutFixture()

	resp, err := svc.CreateSession(context.Background(), domain.CreateCheckoutRequest{
		PlanType:      "silver",
		CustomerEmail: "jane@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.Contains(t, resp.URL, resp.SessionID, "redirect URL carries the real session ID")

	require.Len(t, store.txs, 1)
	tx := store.txs[0]
	assert.Equal(t, resp.SessionID, tx.SessionID)
	assert.Equal(t, 100.0, tx.Amount)
	assert.Equal(t, "usd", tx.Currency)
	assert.Equal(t, "pending", tx.PaymentStatus)
	assert.Equal(t, "initiated", tx.Status)
	assert.Equal(t, "Silver Plan", tx.Metadata["plan_name"])
	assert.Equal(t, resp.URL, tx.Metadata["checkout_url"])
}

func TestCreateSessionCustomPlan(t *testing.T) {
	svc, _, store := newCheckoutFixture()

	amount := 37.5
	resp, err := svc.CreateSession(context.Background(), domain.CreateCheckoutRequest{
		PlanType:      "custom",
		CustomerEmail: "jane@example.com",
		CustomAmount:  &amount,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.URL)

	require.Len(t, store.txs, 1)
	assert.Equal(t, 37.5, store.txs[0].Amount)
	assert.Equal(t, "Custom Plan - $37.5", store.txs[0].Metadata["plan_name"])
}

func TestCreateSessionRejectsBadInput(t *testing.T) {
	zero := 0.0
	tests := []struct {
		name string
		req  domain.CreateCheckoutRequest
		msg  string
	}{
		{
			name: "unknown plan",
			req:  domain.CreateCheckoutRequest{PlanType: "platinum", CustomerEmail: "a@b.com"},
			msg:  "Invalid plan type",
		},
		{
			name: "custom without amount",
			req:  domain.CreateCheckoutRequest{PlanType: "custom", CustomerEmail: "a@b.com"},
			msg:  "Invalid custom amount",
		},
		{
			name: "custom with zero amount",
			req:  domain.CreateCheckoutRequest{PlanType: "custom", CustomerEmail: "a@b.com", CustomAmount: &zero},
			msg:  "Invalid custom amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, store := newCheckoutFixture()
			_, err := svc.CreateSession(context.Background(), tt.req)
			require.Error(t, err)
			appErr, ok := domain.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, 400, appErr.Code)
			assert.Equal(t, tt.msg, appErr.Message)
			assert.Empty(t, store.txs, "no transaction is recorded for a rejected request")
		})
	}
}

func TestGetStatusRefreshesTransaction(t *testing.T) {
	svc, gateway, store := newCheckoutFixture()

	resp, err := svc.CreateSession(context.Background(), domain.CreateCheckoutRequest{
		PlanType:      "gold",
		CustomerEmail: "jane@example.com",
	})
	require.NoError(t, err)

	gateway.MarkPaid(resp.SessionID)

	status, err := svc.GetStatus(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "paid", status.PaymentStatus)
	assert.Equal(t, "complete", status.Status)
	assert.Equal(t, int64(25000), status.AmountTotal)
	assert.Equal(t, "Gold Plan", status.Metadata["plan_name"])

	tx, err := store.FindBySessionID(context.Background(), resp.SessionID)
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, "paid", tx.PaymentStatus)
	assert.Equal(t, "complete", tx.Status)
}

func TestHandleWebhook(t *testing.T) {
	svc, _, store := newCheckoutFixture()

	resp, err := svc.CreateSession(context.Background(), domain.CreateCheckoutRequest{
		PlanType:      "bronze",
		CustomerEmail: "jane@example.com",
	})
	require.NoError(t, err)

	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"` + resp.SessionID + `","payment_status":"paid"}}}`)

	t.Run("missing signature rejected", func(t *testing.T) {
		err := svc.HandleWebhook(context.Background(), payload, "")
		require.Error(t, err)
		appErr, ok := domain.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("valid event applied", func(t *testing.T) {
		require.NoError(t, svc.HandleWebhook(context.Background(), payload, "t=1,v1=ok"))
		tx, err := store.FindBySessionID(context.Background(), resp.SessionID)
		require.NoError(t, err)
		require.NotNil(t, tx)
		assert.Equal(t, "paid", tx.PaymentStatus)
	})

	t.Run("malformed payload rejected", func(t *testing.T) {
		err := svc.HandleWebhook(context.Background(), []byte("not json"), "t=1,v1=ok")
		require.Error(t, err)
	})
}
