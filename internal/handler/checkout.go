package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/webxmedia/backend/internal/domain"
	"github.com/webxmedia/backend/internal/service"
)

// CheckoutHandler handles checkout session endpoints.
type CheckoutHandler struct {
	svc *service.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(svc *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// CreateSession handles POST /api/checkout/session.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCheckoutRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	resp, err := h.svc.CreateSession(r.Context(), req)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, resp)
}

// GetStatus handles GET /api/checkout/status/{sessionID}.
func (h *CheckoutHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		Error(w, domain.ErrBadRequest("missing session ID"))
		return
	}

	status, err := h.svc.GetStatus(r.Context(), sessionID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, status)
}

// Webhook handles POST /api/webhook/stripe.
func (h *CheckoutHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		Error(w, domain.ErrBadRequest("failed to read webhook body"))
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if err := h.svc.HandleWebhook(r.Context(), payload, signature); err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// ListTransactions handles GET /api/transactions (admin only, gated in router).
func (h *CheckoutHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.ListTransactions(r.Context())
	if err != nil {
		Error(w, err)
		return
	}
	if txs == nil {
		txs = []*domain.PaymentTransaction{}
	}
	JSON(w, http.StatusOK, txs)
}
