package domain

import (
	"time"

	"github.com/google/uuid"
)

// CreateCheckoutRequest is the body of POST /api/checkout/session.
type CreateCheckoutRequest struct {
	PlanType      string   `json:"plan_type" validate:"required"`
	CustomerEmail string   `json:"customer_email" validate:"omitempty,email"`
	CustomAmount  *float64 `json:"custom_amount"`
}

// CreateCheckoutResponse carries the hosted-payment redirect target.
type CreateCheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// CheckoutStatus is the authoritative view of one checkout session as reported
// by the payment gateway. PaymentStatus "paid" is the only proof of payment;
// Status "expired" is terminal.
type CheckoutStatus struct {
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"` // minor currency units
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

// PaymentTransaction is the stored record of one checkout attempt.
type PaymentTransaction struct {
	ID            string            `json:"id"`
	SessionID     string            `json:"session_id"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	PlanType      string            `json:"plan_type"`
	CustomerEmail string            `json:"customer_email"`
	PaymentStatus string            `json:"payment_status"` // pending, paid, unpaid
	Status        string            `json:"status"`         // initiated, open, complete, expired
	Metadata      map[string]string `json:"metadata"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewPaymentTransaction builds the initial pending record for a freshly
// created session.
func NewPaymentTransaction(sessionID string, amount float64, currency, planType, customerEmail string, metadata map[string]string) *PaymentTransaction {
	now := time.Now().UTC()
	return &PaymentTransaction{
		ID:            uuid.New().String(),
		SessionID:     sessionID,
		Amount:        amount,
		Currency:      currency,
		PlanType:      planType,
		CustomerEmail: customerEmail,
		PaymentStatus: "pending",
		Status:        "initiated",
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
