package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/webxmedia/backend/internal/domain"
	"github.com/webxmedia/backend/pkg/payment"
)

// TransactionStore is the persistence boundary for payment transactions.
type TransactionStore interface {
	Create(ctx context.Context, tx *domain.PaymentTransaction) error
	FindBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error)
	UpdateStatus(ctx context.Context, sessionID, paymentStatus, status string) error
	UpdatePaymentStatus(ctx context.Context, sessionID, paymentStatus string) error
	ListAll(ctx context.Context, limit int) ([]*domain.PaymentTransaction, error)
}

// CheckoutService creates hosted checkout sessions and answers status queries.
type CheckoutService struct {
	gateway   payment.Gateway
	txs       TransactionStore
	publicURL string
	log       zerolog.Logger
}

// NewCheckoutService creates a CheckoutService. publicURL is the externally
// reachable base URL used to build the success and cancel redirect targets.
func NewCheckoutService(gateway payment.Gateway, txs TransactionStore, publicURL string, log zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		gateway:   gateway,
		txs:       txs,
		publicURL: publicURL,
		log:       log,
	}
}

// CreateSession resolves the chargeable amount for the requested plan, opens a
// hosted checkout session, records a pending transaction, and returns the
// redirect URL.
func (s *CheckoutService) CreateSession(ctx context.Context, req domain.CreateCheckoutRequest) (*domain.CreateCheckoutResponse, error) {
	var amount float64
	var planName string

	switch {
	case req.PlanType == "custom":
		if req.CustomAmount == nil || *req.CustomAmount <= 0 {
			return nil, domain.ErrBadRequest("Invalid custom amount")
		}
		amount = *req.CustomAmount
		planName = "Custom Plan - $" + strconv.FormatFloat(amount, 'f', -1, 64)
	case domain.KnownPlan(req.PlanType):
		plan := domain.ResolvePlan(req.PlanType)
		amount = plan.BasePrice
		planName = plan.Name
	default:
		return nil, domain.ErrBadRequest("Invalid plan type")
	}

	// The gateway substitutes the real session ID for the placeholder when
	// the customer is redirected back.
	successURL := s.publicURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := s.publicURL + "/checkout/cancel"

	sess, err := s.gateway.CreateSession(ctx, payment.CreateSessionParams{
		Amount:     amount,
		Currency:   "usd",
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Metadata: map[string]string{
			"plan_type":      req.PlanType,
			"customer_email": req.CustomerEmail,
			"plan_name":      planName,
		},
	})
	if err != nil {
		s.log.Error().Err(err).Str("plan", req.PlanType).Msg("checkout session creation failed")
		return nil, domain.ErrInternal("Failed to create checkout session", err)
	}

	tx := domain.NewPaymentTransaction(sess.ID, amount, "usd", req.PlanType, req.CustomerEmail, map[string]string{
		"plan_name":    planName,
		"checkout_url": sess.URL,
	})
	if err := s.txs.Create(ctx, tx); err != nil {
		s.log.Error().Err(err).Str("session_id", sess.ID).Msg("failed to record payment transaction")
		return nil, domain.ErrInternal("Failed to create checkout session", err)
	}

	return &domain.CreateCheckoutResponse{URL: sess.URL, SessionID: sess.ID}, nil
}

// GetStatus queries the gateway for a session's authoritative state and
// refreshes the stored transaction when one exists.
func (s *CheckoutService) GetStatus(ctx context.Context, sessionID string) (*domain.CheckoutStatus, error) {
	status, err := s.gateway.GetSessionStatus(ctx, sessionID)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("checkout status query failed")
		return nil, domain.ErrInternal("Failed to check payment status", err)
	}

	tx, err := s.txs.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, domain.ErrInternal("Failed to check payment status", err)
	}
	if tx != nil {
		if err := s.txs.UpdateStatus(ctx, sessionID, status.PaymentStatus, status.Status); err != nil {
			s.log.Error().Err(err).Str("session_id", sessionID).Msg("failed to refresh payment transaction")
		}
	}

	return &domain.CheckoutStatus{
		Status:        status.Status,
		PaymentStatus: status.PaymentStatus,
		AmountTotal:   status.AmountTotal,
		Currency:      status.Currency,
		Metadata:      status.Metadata,
	}, nil
}

// webhookEvent is the subset of a gateway webhook payload we act on.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string `json:"id"`
			PaymentStatus string `json:"payment_status"`
		} `json:"object"`
	} `json:"data"`
}

// HandleWebhook verifies and applies a gateway notification, updating the
// stored transaction's payment status.
func (s *CheckoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if !s.gateway.VerifyWebhookSignature(payload, signature) {
		return domain.ErrBadRequest("invalid webhook signature")
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return domain.ErrBadRequest("invalid webhook payload")
	}
	if event.Data.Object.ID == "" {
		return nil // nothing to apply
	}

	status := event.Data.Object.PaymentStatus
	if status == "" {
		return nil
	}
	if err := s.txs.UpdatePaymentStatus(ctx, event.Data.Object.ID, status); err != nil {
		return domain.ErrInternal("failed to apply webhook", err)
	}
	s.log.Info().Str("session_id", event.Data.Object.ID).Str("payment_status", status).Msg("webhook applied")
	return nil
}

// ListTransactions returns recent transactions for staff review.
func (s *CheckoutService) ListTransactions(ctx context.Context) ([]*domain.PaymentTransaction, error) {
	txs, err := s.txs.ListAll(ctx, 1000)
	if err != nil {
		return nil, domain.ErrInternal("failed to list transactions", err)
	}
	return txs, nil
}
