package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/webxmedia/backend/internal/domain"
)

// TransactionRepository handles database operations for payment transactions.
type TransactionRepository struct {
	db *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new payment transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.PaymentTransaction) error {
	metadata, err := json.Marshal(tx.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode transaction metadata: %w", err)
	}
	query := `
		INSERT INTO payment_transactions (id, session_id, amount, currency, plan_type, customer_email, payment_status, status, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.Exec(ctx, query,
		tx.ID, tx.SessionID, tx.Amount, tx.Currency, tx.PlanType,
		tx.CustomerEmail, tx.PaymentStatus, tx.Status, metadata,
		tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment transaction: %w", err)
	}
	return nil
}

// FindBySessionID returns the transaction for a checkout session, or nil when
// none exists.
func (r *TransactionRepository) FindBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error) {
	query := `
		SELECT id, session_id, amount, currency, plan_type, customer_email, payment_status, status, metadata, created_at, updated_at
		FROM payment_transactions WHERE session_id = $1
	`
	row := r.db.QueryRow(ctx, query, sessionID)

	var tx domain.PaymentTransaction
	var metadata []byte
	err := row.Scan(
		&tx.ID, &tx.SessionID, &tx.Amount, &tx.Currency, &tx.PlanType,
		&tx.CustomerEmail, &tx.PaymentStatus, &tx.Status, &metadata,
		&tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find payment transaction: %w", err)
	}
	if err := json.Unmarshal(metadata, &tx.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode transaction metadata: %w", err)
	}
	return &tx, nil
}

// UpdateStatus records the latest gateway-reported state for a session.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, sessionID, paymentStatus, status string) error {
	query := `
		UPDATE payment_transactions
		SET payment_status = $1, status = $2, updated_at = $3
		WHERE session_id = $4
	`
	_, err := r.db.Exec(ctx, query, paymentStatus, status, time.Now().UTC(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to update payment transaction: %w", err)
	}
	return nil
}

// UpdatePaymentStatus records a webhook-reported payment status for a session.
func (r *TransactionRepository) UpdatePaymentStatus(ctx context.Context, sessionID, paymentStatus string) error {
	query := `
		UPDATE payment_transactions
		SET payment_status = $1, updated_at = $2
		WHERE session_id = $3
	`
	_, err := r.db.Exec(ctx, query, paymentStatus, time.Now().UTC(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return nil
}

// ListAll returns transactions newest first, up to limit.
func (r *TransactionRepository) ListAll(ctx context.Context, limit int) ([]*domain.PaymentTransaction, error) {
	query := `
		SELECT id, session_id, amount, currency, plan_type, customer_email, payment_status, status, metadata, created_at, updated_at
		FROM payment_transactions ORDER BY created_at DESC LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.PaymentTransaction
	for rows.Next() {
		var tx domain.PaymentTransaction
		var metadata []byte
		if err := rows.Scan(
			&tx.ID, &tx.SessionID, &tx.Amount, &tx.Currency, &tx.PlanType,
			&tx.CustomerEmail, &tx.PaymentStatus, &tx.Status, &metadata,
			&tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment transaction: %w", err)
		}
		if err := json.Unmarshal(metadata, &tx.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode transaction metadata: %w", err)
		}
		txs = append(txs, &tx)
	}
	return txs, nil
}
